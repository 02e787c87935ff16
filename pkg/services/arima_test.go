package services

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestARIModelForecastIntegratesDifferences(t *testing.T) {
	series := []float64{0, 1, 3, 6, 10, 15, 21}
	model := &ariModel{
		order:        5,
		differencing: 1,
		coefficients: []float64{0.5, 0, 0, 0, 0},
		levels:       [][]float64{series, difference(series)},
	}

	got := model.forecast(2)
	require.Len(t, got, 2)
	assert.InDelta(t, 24.0, got[0], 1e-9)
	assert.InDelta(t, 25.5, got[1], 1e-9)
}

func TestFitARIRecoversAR1Coefficient(t *testing.T) {
	series := make([]float64, 20)
	series[0] = 100
	for i := 1; i < len(series); i++ {
		series[i] = 0.8 * series[i-1]
	}

	model, err := fitARI(series, 1, 0)
	require.NoError(t, err)
	require.Len(t, model.coefficients, 1)
	assert.InDelta(t, 0.8, model.coefficients[0], 1e-9)

	next := model.forecast(1)
	assert.InDelta(t, 0.8*series[len(series)-1], next[0], 1e-9)
}

func TestFitARIInsufficientHistory(t *testing.T) {
	_, err := fitARI([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, 5, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientHistory))
	assert.True(t, errors.Is(err, ErrModelFit))
}

func TestFitARIDegenerateSeries(t *testing.T) {
	series := make([]float64, 30)
	for i := range series {
		series[i] = 500
	}

	_, err := fitARI(series, 5, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModelFit))
	assert.False(t, errors.Is(err, ErrInsufficientHistory))
}

func TestFitARIFiniteCoefficients(t *testing.T) {
	series := make([]float64, 40)
	for i := range series {
		series[i] = 1000 + 200*math.Sin(float64(i)/3) + float64(i%7)*13
	}

	model, err := fitARI(series, 5, 1)
	require.NoError(t, err)
	require.Len(t, model.coefficients, 5)
	for _, c := range model.coefficients {
		assert.False(t, math.IsNaN(c) || math.IsInf(c, 0))
	}
}

func TestDifference(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3}, difference([]float64{0, 1, 3, 6}))
	assert.Nil(t, difference([]float64{5}))
}
