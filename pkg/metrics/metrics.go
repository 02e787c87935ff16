// Package metrics はPrometheus向けのパイプライン指標を提供する。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry アプリケーション専用のレジストリ
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ---- 予測 ----

// ForecastRunsTotal 予測の実行回数（mode: model|fallback）
var ForecastRunsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "wfm",
	Subsystem: "forecast",
	Name:      "runs_total",
	Help:      "Number of forecast runs by mode",
}, []string{"mode"})

// ForecastFallbackTotal モデル学習に失敗しフォールバックした回数
var ForecastFallbackTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "wfm",
	Subsystem: "forecast",
	Name:      "fallback_total",
	Help:      "Number of forecasts served from the constant fallback, by reason",
}, []string{"reason"})

// ForecastDurationSeconds 予測処理の所要時間
var ForecastDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "wfm",
	Subsystem: "forecast",
	Name:      "duration_seconds",
	Help:      "Time taken to fit the model and project the horizon",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
})

// DataSourceErrorsTotal 履歴データ読み込みの失敗回数
var DataSourceErrorsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "wfm",
	Subsystem: "source",
	Name:      "errors_total",
	Help:      "Historical data loads that failed",
})

// ---- 配置 ----

// AllocationDurationSeconds 配置計算の所要時間
var AllocationDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "wfm",
	Subsystem: "allocator",
	Name:      "duration_seconds",
	Help:      "Time taken to build a schedule",
	Buckets:   []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
})

// AllocationRejectedTotal 不正な設定で拒否された配置要求
var AllocationRejectedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "wfm",
	Subsystem: "allocator",
	Name:      "rejected_total",
	Help:      "Allocation requests rejected for invalid configuration, by field",
}, []string{"field"})

// RebalanceTotal 全体リバランスが発動した回数
var RebalanceTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "wfm",
	Subsystem: "allocator",
	Name:      "rebalance_total",
	Help:      "Schedules whose aggregate staffing was scaled down to the agent budget",
})

// AgentsScheduled 直近のスケジュールの合計配置人数
var AgentsScheduled = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "wfm",
	Subsystem: "allocator",
	Name:      "agents_scheduled",
	Help:      "Total agents in the most recent schedule",
})

// ---- 検証 ----

// ValidationsTotal 検証結果（result: balanced|unbalanced）
var ValidationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "wfm",
	Subsystem: "validator",
	Name:      "runs_total",
	Help:      "Schedule validations by result",
}, []string{"result"})

// EntriesOutOfBand 直近の検証で範囲外となったエントリ数（kind: underutilized|overloaded）
var EntriesOutOfBand = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "wfm",
	Subsystem: "validator",
	Name:      "entries_out_of_band",
	Help:      "Entries outside the utilization bounds in the most recent validation",
}, []string{"kind"})
