package services

import (
	"math"

	"wfm-api/pkg/metrics"
	"wfm-api/pkg/models"
)

const (
	// DefaultLowerBound 過少稼働とみなす負荷率（%）
	DefaultLowerBound = 50.0
	// DefaultUpperBound 過負荷とみなす負荷率（%）
	DefaultUpperBound = 90.0
)

// ScheduleValidator スケジュールの負荷率が許容範囲内かを検査する
type ScheduleValidator struct {
	lowerBound float64
	upperBound float64
}

// NewScheduleValidator 既定の範囲（50〜90%）で検証器を作成
func NewScheduleValidator() *ScheduleValidator {
	return &ScheduleValidator{lowerBound: DefaultLowerBound, upperBound: DefaultUpperBound}
}

// NewScheduleValidatorWithBounds 任意の範囲で検証器を作成
func NewScheduleValidatorWithBounds(lower, upper float64) (*ScheduleValidator, error) {
	if math.IsNaN(lower) || math.IsNaN(upper) || lower < 0 || upper < lower {
		return nil, invalidConfig("bounds", "must satisfy 0 <= lower <= upper")
	}
	return &ScheduleValidator{lowerBound: lower, upperBound: upper}, nil
}

// Bounds 検証範囲を返す
func (v *ScheduleValidator) Bounds() (float64, float64) {
	return v.lowerBound, v.upperBound
}

// Validate スケジュールを検査する。スケジュール自体は変更しない。
func (v *ScheduleValidator) Validate(schedule []models.ScheduleEntry) models.ValidationReport {
	report := models.ValidationReport{
		LowerBound:    v.lowerBound,
		UpperBound:    v.upperBound,
		Underutilized: []models.ScheduleEntry{},
		Overloaded:    []models.ScheduleEntry{},
	}
	for _, e := range schedule {
		switch {
		case e.LoadPercentage < v.lowerBound:
			report.Underutilized = append(report.Underutilized, e)
		case e.LoadPercentage > v.upperBound:
			report.Overloaded = append(report.Overloaded, e)
		}
	}
	report.Valid = len(report.Underutilized) == 0 && len(report.Overloaded) == 0

	result := "balanced"
	if !report.Valid {
		result = "unbalanced"
	}
	metrics.ValidationsTotal.WithLabelValues(result).Inc()
	metrics.EntriesOutOfBand.WithLabelValues("underutilized").Set(float64(len(report.Underutilized)))
	metrics.EntriesOutOfBand.WithLabelValues("overloaded").Set(float64(len(report.Overloaded)))
	return report
}
