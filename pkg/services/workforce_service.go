package services

import (
	"time"

	"wfm-api/pkg/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PlanOptions 予測→配置→検証の一括実行パラメータ
type PlanOptions struct {
	Periods     int
	Profile     string
	Allocation  models.AllocationConfig
	LowerBound  float64
	UpperBound  float64
	SplitShifts bool
}

// WorkforceService 予測エンジン・配置エンジン・検証器をつなぐパイプライン
type WorkforceService struct {
	forecastService *ForecastService
	allocator       *ScheduleAllocator
	logger          *logrus.Entry
}

// NewWorkforceService 新しいパイプラインサービスを作成
func NewWorkforceService(forecastService *ForecastService, allocator *ScheduleAllocator) *WorkforceService {
	return &WorkforceService{
		forecastService: forecastService,
		allocator:       allocator,
		logger:          logrus.WithField("component", "workforce_service"),
	}
}

// ForecastService 内部の予測サービスを返す
func (ws *WorkforceService) ForecastService() *ForecastService {
	return ws.forecastService
}

// Allocator 内部の配置エンジンを返す
func (ws *WorkforceService) Allocator() *ScheduleAllocator {
	return ws.allocator
}

// Plan 履歴データから予測し、シフトごとの人員配置と検証結果をまとめて返す
func (ws *WorkforceService) Plan(opts PlanOptions) (*models.StaffingPlan, error) {
	if err := ValidateAllocationConfig(opts.Allocation); err != nil {
		return nil, err
	}
	validator, err := NewScheduleValidatorWithBounds(opts.LowerBound, opts.UpperBound)
	if err != nil {
		return nil, err
	}

	forecastOpts := ws.forecastService.Options()
	forecastOpts.SplitShifts = opts.SplitShifts
	forecast, err := ws.forecastService.ForecastWithOptions(opts.Periods, forecastOpts)
	if err != nil {
		return nil, err
	}

	schedule, err := ws.allocator.AllocatePeriods(forecast.Values, opts.Allocation, forecast.ShiftsPerPeriod)
	if err != nil {
		return nil, err
	}

	plan := &models.StaffingPlan{
		PlanID:     uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Profile:    opts.Profile,
		Forecast:   forecast,
		Config:     opts.Allocation,
		Schedule:   schedule,
		Validation: validator.Validate(schedule.Entries),
	}

	ws.logger.WithFields(logrus.Fields{
		"plan_id":      plan.PlanID,
		"profile":      opts.Profile,
		"periods":      opts.Periods,
		"degraded":     forecast.Degraded,
		"total_agents": schedule.Summary.TotalAgents,
		"valid":        plan.Validation.Valid,
	}).Info("staffing plan generated")
	return plan, nil
}
