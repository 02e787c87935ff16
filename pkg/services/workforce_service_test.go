package services

import (
	"errors"
	"testing"

	"wfm-api/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkforce(source HistoricalSeriesSource) *WorkforceService {
	return NewWorkforceService(NewForecastService(source, DefaultForecastOptions()), NewScheduleAllocator())
}

func defaultPlanOptions(periods int) PlanOptions {
	return PlanOptions{
		Periods:     periods,
		Profile:     "standard",
		Allocation:  DefaultAllocationConfig(10),
		LowerBound:  DefaultLowerBound,
		UpperBound:  DefaultUpperBound,
		SplitShifts: true,
	}
}

func TestWorkforcePlan(t *testing.T) {
	ws := newTestWorkforce(staticSource(GenerateHistoricalSeries(DefaultDatasetOptions())))

	plan, err := ws.Plan(defaultPlanOptions(4))
	require.NoError(t, err)

	assert.NotEmpty(t, plan.PlanID)
	assert.Equal(t, "standard", plan.Profile)
	assert.False(t, plan.Forecast.Degraded)
	require.Len(t, plan.Schedule.Entries, 12)
	assert.Equal(t, 4, plan.Schedule.Entries[11].Week)
	assert.Equal(t, 3, plan.Schedule.Entries[11].Shift)
	assert.Equal(t, 50.0, plan.Validation.LowerBound)
	assert.LessOrEqual(t, plan.Schedule.Summary.TotalAgents, 10*12)

	other, err := ws.Plan(defaultPlanOptions(4))
	require.NoError(t, err)
	assert.NotEqual(t, plan.PlanID, other.PlanID)
	assert.Equal(t, plan.Schedule, other.Schedule)
}

func TestWorkforcePlanUndivided(t *testing.T) {
	ws := newTestWorkforce(staticSource(constantSeries(1, 100)))
	opts := defaultPlanOptions(3)
	opts.SplitShifts = false

	plan, err := ws.Plan(opts)
	require.NoError(t, err)
	assert.True(t, plan.Forecast.Degraded)
	require.Len(t, plan.Schedule.Entries, 3)
	for i, e := range plan.Schedule.Entries {
		assert.Equal(t, i+1, e.Week)
		assert.Equal(t, 1, e.Shift)
	}
}

func TestWorkforcePlanErrors(t *testing.T) {
	loads := 0
	source := SeriesSourceFunc(func() ([]models.Observation, error) {
		loads++
		return constantSeries(1, 100), nil
	})
	ws := newTestWorkforce(source)

	t.Run("invalid agents", func(t *testing.T) {
		opts := defaultPlanOptions(2)
		opts.Allocation.NumAgents = 0
		_, err := ws.Plan(opts)
		assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	})

	t.Run("invalid bounds", func(t *testing.T) {
		opts := defaultPlanOptions(2)
		opts.LowerBound, opts.UpperBound = 95, 10
		_, err := ws.Plan(opts)
		assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	})

	// 設定エラーは履歴データを読む前に返す
	assert.Equal(t, 0, loads)

	t.Run("source unavailable", func(t *testing.T) {
		failing := newTestWorkforce(SeriesSourceFunc(func() ([]models.Observation, error) {
			return nil, errors.New("disk offline")
		}))
		_, err := failing.Plan(defaultPlanOptions(2))
		assert.True(t, errors.Is(err, ErrDataSourceUnavailable))
	})
}
