package services

import (
	"errors"
	"math"
	"time"

	"wfm-api/pkg/metrics"
	"wfm-api/pkg/models"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxCallsPerAgent 1エージェントが1シフトで対応できる最大コール数
	DefaultMaxCallsPerAgent = 40
	// DefaultPeakBufferRatio ピーク対応の上乗せ比率（standardプロファイル）
	DefaultPeakBufferRatio = 0.1
	// DefaultUtilizationTarget 目標稼働率
	DefaultUtilizationTarget = 0.7
	// DefaultOptimalLow 最適負荷帯の下限（%）
	DefaultOptimalLow = 50.0
	// DefaultOptimalHigh 最適負荷帯の上限（%）
	DefaultOptimalHigh = 90.0
	// ShiftsPerWeek 1基準期間あたりのシフト数
	ShiftsPerWeek = 3

	// ソフト上限はエージェント数の120%
	softCapPercent = 120
)

// DefaultAllocationConfig 既定値で埋めた配置設定を返す
func DefaultAllocationConfig(numAgents int) models.AllocationConfig {
	return models.AllocationConfig{
		NumAgents:         numAgents,
		MaxCallsPerAgent:  DefaultMaxCallsPerAgent,
		PeakBufferRatio:   DefaultPeakBufferRatio,
		UtilizationTarget: DefaultUtilizationTarget,
		OptimalLow:        DefaultOptimalLow,
		OptimalHigh:       DefaultOptimalHigh,
	}
}

// ValidateAllocationConfig 配置設定を検証する。
// 最適負荷帯が両方0の場合は既定の50〜90%として扱う。
func ValidateAllocationConfig(cfg models.AllocationConfig) error {
	if cfg.NumAgents <= 0 {
		return invalidConfig("num_agents", "must be positive")
	}
	if cfg.MaxCallsPerAgent <= 0 {
		return invalidConfig("max_calls_per_agent", "must be positive")
	}
	if math.IsNaN(cfg.UtilizationTarget) || cfg.UtilizationTarget <= 0 || cfg.UtilizationTarget > 1 {
		return invalidConfig("utilization_target", "must be in (0, 1]")
	}
	if math.IsNaN(cfg.PeakBufferRatio) || cfg.PeakBufferRatio < 0 || cfg.PeakBufferRatio > 1 {
		return invalidConfig("peak_buffer_ratio", "must be in [0, 1]")
	}
	low, high := optimalBand(cfg)
	if low < 0 || high <= low {
		return invalidConfig("optimal_band", "must satisfy 0 <= low < high")
	}
	return nil
}

func optimalBand(cfg models.AllocationConfig) (float64, float64) {
	if cfg.OptimalLow == 0 && cfg.OptimalHigh == 0 {
		return DefaultOptimalLow, DefaultOptimalHigh
	}
	return cfg.OptimalLow, cfg.OptimalHigh
}

// ScheduleAllocator 予測ベクトルからシフトごとの必要人数を算出する
type ScheduleAllocator struct {
	logger *logrus.Entry
}

// NewScheduleAllocator 新しい配置エンジンを作成
func NewScheduleAllocator() *ScheduleAllocator {
	return &ScheduleAllocator{
		logger: logrus.WithField("component", "schedule_allocator"),
	}
}

// Allocate 1週3シフトの並びとして予測ベクトルを配置する
func (a *ScheduleAllocator) Allocate(forecast []float64, cfg models.AllocationConfig) (models.Schedule, error) {
	return a.AllocatePeriods(forecast, cfg, ShiftsPerWeek)
}

// AllocatePeriods 1基準期間あたり shiftsPerPeriod 件として予測ベクトルを配置する。
// 各エントリでヒューリスティックに人数を決めた後、合計が予算を超えれば全体を比例縮小する。
func (a *ScheduleAllocator) AllocatePeriods(forecast []float64, cfg models.AllocationConfig, shiftsPerPeriod int) (models.Schedule, error) {
	if err := a.validateInput(forecast, cfg, shiftsPerPeriod); err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			metrics.AllocationRejectedTotal.WithLabelValues(ce.Field).Inc()
		}
		a.logger.WithError(err).Warn("allocation rejected")
		return models.Schedule{}, err
	}

	start := time.Now()
	defer func() { metrics.AllocationDurationSeconds.Observe(time.Since(start).Seconds()) }()

	maxCalls := float64(cfg.MaxCallsPerAgent)
	avg := mean(forecast)
	softMax := (cfg.NumAgents*softCapPercent + 99) / 100

	entries := make([]models.ScheduleEntry, len(forecast))
	for i, f := range forecast {
		// 人数は上限で丸めてから整数に変換する（巨大な予測値でのオーバーフロー防止）
		base := math.Ceil(f / maxCalls)

		variance := 0.0
		if avg > 0 {
			variance = f / avg
		}
		buffer := math.Ceil(f * cfg.PeakBufferRatio * variance / maxCalls)

		agents := capAgents(base+buffer, softMax)
		load := loadPercentage(f, agents, maxCalls)

		// 稼働率補正: 過少・過負荷のどちらでも目標稼働率から人数を引き直す。
		// 補正後もリバランス前はソフト上限を超えない。
		if load < 50*cfg.UtilizationTarget || load > 100/cfg.UtilizationTarget {
			agents = capAgents(math.Ceil(f/(maxCalls*cfg.UtilizationTarget)), softMax)
		}

		entries[i] = models.ScheduleEntry{
			Week:             i/shiftsPerPeriod + 1,
			Shift:            i%shiftsPerPeriod + 1,
			ForecastedCalls:  f,
			BaseAgentsNeeded: saturatingInt(base),
			PeakBuffer:       saturatingInt(buffer),
			AgentsNeeded:     agents,
		}
		refreshEntry(&entries[i], maxCalls, cfg)
	}

	summary := models.ScheduleSummary{
		AgentBudget:     cfg.NumAgents * len(forecast),
		ReductionFactor: 1,
	}
	summary.PreRebalanceTotal = totalAgents(entries)

	if summary.PreRebalanceTotal > summary.AgentBudget {
		rebalance(entries, summary.AgentBudget, summary.PreRebalanceTotal)
		for i := range entries {
			refreshEntry(&entries[i], maxCalls, cfg)
		}
		summary.Rebalanced = true
		summary.ReductionFactor = float64(summary.AgentBudget) / float64(summary.PreRebalanceTotal)
		metrics.RebalanceTotal.Inc()
	}

	summarize(&summary, entries, avg)
	metrics.AgentsScheduled.Set(float64(summary.TotalAgents))

	a.logger.WithFields(logrus.Fields{
		"entries":      len(entries),
		"total_agents": summary.TotalAgents,
		"budget":       summary.AgentBudget,
		"rebalanced":   summary.Rebalanced,
	}).Debug("schedule allocated")

	return models.Schedule{Entries: entries, Summary: summary}, nil
}

func (a *ScheduleAllocator) validateInput(forecast []float64, cfg models.AllocationConfig, shiftsPerPeriod int) error {
	if len(forecast) == 0 {
		return invalidConfig("forecasted_calls", "must not be empty")
	}
	for _, f := range forecast {
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return invalidConfig("forecasted_calls", "must contain finite non-negative values")
		}
	}
	if shiftsPerPeriod <= 0 {
		return invalidConfig("shifts_per_period", "must be positive")
	}
	return ValidateAllocationConfig(cfg)
}

// rebalance 合計人数を予算内に比例縮小する。
// 各エントリは最低1人を保ち、切り上げで予算を超えた分は人数の多いエントリから1人ずつ減らす。
func rebalance(entries []models.ScheduleEntry, budget, total int) {
	for i := range entries {
		entries[i].AgentsNeeded = max(1, entries[i].AgentsNeeded*budget/total)
	}

	for excess := totalAgents(entries) - budget; excess > 0; excess-- {
		largest := -1
		for i := range entries {
			if entries[i].AgentsNeeded > 1 && (largest == -1 || entries[i].AgentsNeeded > entries[largest].AgentsNeeded) {
				largest = i
			}
		}
		if largest == -1 {
			return
		}
		entries[largest].AgentsNeeded--
	}
}

// capAgents 必要人数を [1, softMax] に収めて整数化する
func capAgents(x float64, softMax int) int {
	if x >= float64(softMax) {
		return softMax
	}
	return max(1, int(x))
}

// saturatingInt 診断用の人数を int32 の範囲で飽和させて整数化する
func saturatingInt(x float64) int {
	if x >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(x)
}

func refreshEntry(e *models.ScheduleEntry, maxCalls float64, cfg models.AllocationConfig) {
	e.CallsPerAgent = 0
	if e.AgentsNeeded > 0 {
		e.CallsPerAgent = e.ForecastedCalls / float64(e.AgentsNeeded)
	}
	e.LoadPercentage = 100 * e.CallsPerAgent / maxCalls
	low, high := optimalBand(cfg)
	e.IsOptimal = e.LoadPercentage >= low && e.LoadPercentage <= high
}

func loadPercentage(calls float64, agents int, maxCalls float64) float64 {
	if agents <= 0 {
		return 0
	}
	return 100 * (calls / float64(agents)) / maxCalls
}

func summarize(s *models.ScheduleSummary, entries []models.ScheduleEntry, avg float64) {
	s.Entries = len(entries)
	s.AverageForecast = avg
	var loadSum float64
	for i, e := range entries {
		s.TotalAgents += e.AgentsNeeded
		loadSum += e.LoadPercentage
		if e.IsOptimal {
			s.OptimalEntries++
		}
		if i == 0 || e.ForecastedCalls > s.PeakForecast {
			s.PeakForecast = e.ForecastedCalls
			s.PeakWeek = e.Week
			s.PeakShift = e.Shift
		}
	}
	if len(entries) > 0 {
		s.AverageLoad = loadSum / float64(len(entries))
	}
}

func totalAgents(entries []models.ScheduleEntry) int {
	total := 0
	for _, e := range entries {
		total += e.AgentsNeeded
	}
	return total
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
