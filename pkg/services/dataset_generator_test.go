package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateHistoricalSeriesDeterministic(t *testing.T) {
	opts := DefaultDatasetOptions()

	first := GenerateHistoricalSeries(opts)
	second := GenerateHistoricalSeries(opts)
	require.Len(t, first, 52)
	assert.Equal(t, first, second)

	opts.Seed = 7
	other := GenerateHistoricalSeries(opts)
	assert.NotEqual(t, first, other)

	for i, o := range first {
		assert.GreaterOrEqual(t, o.CallVolume, 0)
		if i > 0 {
			assert.True(t, o.Timestamp.After(first[i-1].Timestamp))
		}
	}
}

func TestWriteSeriesCSVRoundTrip(t *testing.T) {
	series := GenerateHistoricalSeries(DefaultDatasetOptions())

	var buf bytes.Buffer
	require.NoError(t, WriteSeriesCSV(&buf, series))
	assert.Contains(t, buf.String(), "date,call_volume\n2023-01-01,")

	parsed, err := ParseSeriesCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, series, parsed)
}
