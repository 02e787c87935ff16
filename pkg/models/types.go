package models

import "time"

// Observation 1基準期間ぶんの履歴コール量
type Observation struct {
	Timestamp  time.Time `json:"timestamp"`
	CallVolume int       `json:"call_volume"`
}

// ForecastResult 需要予測の結果
// Values はシフト単位（または分割しない場合は基準期間単位）の予測値で、
// Degraded が true の場合はモデル学習に失敗し固定値フォールバックが使われたことを示す。
type ForecastResult struct {
	Values          []float64 `json:"predictions"`
	BasePeriods     []float64 `json:"base_period_forecasts"`
	Periods         int       `json:"periods"`
	ShiftsPerPeriod int       `json:"shifts_per_period"`
	Degraded        bool      `json:"degraded"`
	DegradedReason  string    `json:"degraded_reason,omitempty"`
	Coefficients    []float64 `json:"ar_coefficients,omitempty"`
	Observations    int       `json:"observations"`
}

// AllocationConfig 人員配置の設定（1回の呼び出し内で不変）
type AllocationConfig struct {
	NumAgents         int     `json:"num_agents" yaml:"num_agents"`
	MaxCallsPerAgent  int     `json:"max_calls_per_agent" yaml:"max_calls_per_agent"`
	PeakBufferRatio   float64 `json:"peak_buffer_ratio" yaml:"peak_buffer_ratio"`
	UtilizationTarget float64 `json:"utilization_target" yaml:"utilization_target"`
	OptimalLow        float64 `json:"optimal_low" yaml:"optimal_low"`
	OptimalHigh       float64 `json:"optimal_high" yaml:"optimal_high"`
}

// ScheduleEntry 1シフトぶんの配置結果
type ScheduleEntry struct {
	Week             int     `json:"week"`
	Shift            int     `json:"shift"`
	ForecastedCalls  float64 `json:"forecasted_calls"`
	BaseAgentsNeeded int     `json:"base_agents_needed"`
	PeakBuffer       int     `json:"peak_buffer"`
	AgentsNeeded     int     `json:"agents_needed"`
	CallsPerAgent    float64 `json:"calls_per_agent"`
	LoadPercentage   float64 `json:"load_percentage"`
	IsOptimal        bool    `json:"is_optimal"`
}

// ScheduleSummary 配置結果の診断情報
type ScheduleSummary struct {
	TotalAgents       int     `json:"total_agents"`
	AgentBudget       int     `json:"agent_budget"`
	PreRebalanceTotal int     `json:"pre_rebalance_total"`
	Rebalanced        bool    `json:"rebalanced"`
	ReductionFactor   float64 `json:"reduction_factor"`
	PeakForecast      float64 `json:"peak_forecast"`
	PeakWeek          int     `json:"peak_week"`
	PeakShift         int     `json:"peak_shift"`
	AverageForecast   float64 `json:"average_forecast"`
	AverageLoad       float64 `json:"average_load"`
	OptimalEntries    int     `json:"optimal_entries"`
	Entries           int     `json:"entries"`
}

// Schedule 配置結果と診断情報
type Schedule struct {
	Entries []ScheduleEntry `json:"schedule"`
	Summary ScheduleSummary `json:"summary"`
}

// ValidationReport スケジュール検証の結果
type ValidationReport struct {
	Valid         bool            `json:"valid"`
	LowerBound    float64         `json:"lower_bound"`
	UpperBound    float64         `json:"upper_bound"`
	Underutilized []ScheduleEntry `json:"underutilized"`
	Overloaded    []ScheduleEntry `json:"overloaded"`
}

// StaffingPlan 予測から検証までを一括実行した結果
type StaffingPlan struct {
	PlanID     string           `json:"plan_id"`
	CreatedAt  time.Time        `json:"created_at"`
	Profile    string           `json:"profile"`
	Forecast   ForecastResult   `json:"forecast"`
	Config     AllocationConfig `json:"config"`
	Schedule   Schedule         `json:"schedule"`
	Validation ValidationReport `json:"validation"`
}
