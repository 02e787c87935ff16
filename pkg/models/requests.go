package models

// ForecastRequest 需要予測リクエスト
type ForecastRequest struct {
	NumWeeks    int   `json:"num_weeks" binding:"required,min=1,max=520"`
	SplitShifts *bool `json:"split_shifts,omitempty"`
}

// SchedulingRequest 人員配置リクエスト
// 省略されたフィールドはプロファイルの既定値で補完される。
type SchedulingRequest struct {
	ForecastedCalls   []float64 `json:"forecasted_calls" binding:"required"`
	NumAgents         int       `json:"num_agents"`
	Profile           string    `json:"profile,omitempty"`
	MaxCallsPerAgent  *int      `json:"max_calls_per_agent,omitempty"`
	PeakBufferRatio   *float64  `json:"peak_buffer_ratio,omitempty"`
	UtilizationTarget *float64  `json:"utilization_target,omitempty"`
}

// ValidationRequest スケジュール検証リクエスト
type ValidationRequest struct {
	Schedule   []ScheduleEntry `json:"schedule" binding:"required"`
	LowerBound *float64        `json:"lower_bound,omitempty"`
	UpperBound *float64        `json:"upper_bound,omitempty"`
}

// PlanRequest 予測→配置→検証の一括リクエスト
type PlanRequest struct {
	NumWeeks          int      `json:"num_weeks" binding:"required,min=1,max=520"`
	SplitShifts       *bool    `json:"split_shifts,omitempty"`
	NumAgents         int      `json:"num_agents"`
	Profile           string   `json:"profile,omitempty"`
	MaxCallsPerAgent  *int     `json:"max_calls_per_agent,omitempty"`
	PeakBufferRatio   *float64 `json:"peak_buffer_ratio,omitempty"`
	UtilizationTarget *float64 `json:"utilization_target,omitempty"`
}
