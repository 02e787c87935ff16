package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"wfm-api/pkg/metrics"
	"wfm-api/pkg/models"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultAROrder 自己回帰の次数
	DefaultAROrder = 5
	// DefaultDifferencing 差分の階数
	DefaultDifferencing = 1
	// DefaultFallbackCallsPerShift モデル学習失敗時に返す1シフトあたりのコール数
	DefaultFallbackCallsPerShift = 100.0
)

// DefaultShiftRatios 朝・昼・夜シフトへの配分比率
var DefaultShiftRatios = []float64{0.5, 0.3, 0.2}

// ForecastOptions 予測エンジンの設定
type ForecastOptions struct {
	AROrder               int
	Differencing          int
	ShiftRatios           []float64
	SplitShifts           bool
	FallbackCallsPerShift float64
}

// DefaultForecastOptions 既定の予測設定（ARIMA(5,1,0)、3シフト分割）
func DefaultForecastOptions() ForecastOptions {
	ratios := make([]float64, len(DefaultShiftRatios))
	copy(ratios, DefaultShiftRatios)
	return ForecastOptions{
		AROrder:               DefaultAROrder,
		Differencing:          DefaultDifferencing,
		ShiftRatios:           ratios,
		SplitShifts:           true,
		FallbackCallsPerShift: DefaultFallbackCallsPerShift,
	}
}

func (o ForecastOptions) validate() error {
	if o.AROrder < 1 {
		return invalidConfig("ar_order", "must be positive")
	}
	if o.Differencing < 0 {
		return invalidConfig("differencing", "must not be negative")
	}
	if o.FallbackCallsPerShift < 0 {
		return invalidConfig("fallback_calls_per_shift", "must not be negative")
	}
	if o.SplitShifts {
		if len(o.ShiftRatios) == 0 {
			return invalidConfig("shift_ratios", "must not be empty")
		}
		var sum float64
		for _, r := range o.ShiftRatios {
			if r < 0 {
				return invalidConfig("shift_ratios", "must not contain negative ratios")
			}
			sum += r
		}
		if sum > 1+1e-9 {
			return invalidConfig("shift_ratios", "must sum to at most 1")
		}
	}
	return nil
}

func (o ForecastOptions) shiftsPerPeriod() int {
	if o.SplitShifts {
		return len(o.ShiftRatios)
	}
	return 1
}

// ForecastService 履歴コール量から将来需要を予測するエンジン
type ForecastService struct {
	source HistoricalSeriesSource
	opts   ForecastOptions
	logger *logrus.Entry
}

// NewForecastService 新しい予測サービスを作成
func NewForecastService(source HistoricalSeriesSource, opts ForecastOptions) *ForecastService {
	return &ForecastService{
		source: source,
		opts:   opts,
		logger: logrus.WithField("component", "forecast_engine"),
	}
}

// Source 履歴データの供給元を返す
func (fs *ForecastService) Source() HistoricalSeriesSource {
	return fs.source
}

// Options 予測設定を返す
func (fs *ForecastService) Options() ForecastOptions {
	return fs.opts
}

// Forecast 履歴データを1回読み込んで periods 期先まで予測する。
// 履歴データの読み込みに失敗した場合のみエラーを返す。
func (fs *ForecastService) Forecast(periods int) (models.ForecastResult, error) {
	return fs.ForecastWithOptions(periods, fs.opts)
}

// ForecastWithOptions 呼び出しごとに設定を差し替えて予測する（分割なしモード等）
func (fs *ForecastService) ForecastWithOptions(periods int, opts ForecastOptions) (models.ForecastResult, error) {
	if fs.source == nil {
		return models.ForecastResult{}, fmt.Errorf("%w: no historical source configured", ErrDataSourceUnavailable)
	}
	history, err := fs.source.LoadHistoricalSeries()
	if err != nil {
		metrics.DataSourceErrorsTotal.Inc()
		fs.logger.WithError(err).Error("historical data unavailable")
		if !errors.Is(err, ErrDataSourceUnavailable) {
			err = fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
		}
		return models.ForecastResult{}, err
	}
	return ForecastSeries(history, periods, opts)
}

// ForecastSeries 与えられた履歴系列から予測する純粋関数。
// モデル学習の失敗はエラーにせず、固定値フォールバックと Degraded フラグで返す。
func ForecastSeries(history []models.Observation, periods int, opts ForecastOptions) (models.ForecastResult, error) {
	if periods <= 0 {
		return models.ForecastResult{}, invalidConfig("periods", "must be positive")
	}
	if err := opts.validate(); err != nil {
		return models.ForecastResult{}, err
	}

	start := time.Now()
	defer func() { metrics.ForecastDurationSeconds.Observe(time.Since(start).Seconds()) }()

	logger := logrus.WithFields(logrus.Fields{
		"component":    "forecast_engine",
		"periods":      periods,
		"observations": len(history),
	})

	series := make([]float64, len(history))
	for i, o := range history {
		series[i] = float64(o.CallVolume)
	}

	model, err := fitARI(series, opts.AROrder, opts.Differencing)
	if err != nil {
		reason := "model_fit"
		if errors.Is(err, ErrInsufficientHistory) {
			reason = "insufficient_history"
		}
		metrics.ForecastRunsTotal.WithLabelValues("fallback").Inc()
		metrics.ForecastFallbackTotal.WithLabelValues(reason).Inc()
		logger.WithError(err).WithField("reason", reason).Warn("model fit failed, serving constant fallback forecast")
		return fallbackForecast(periods, len(history), opts, err), nil
	}

	base := model.forecast(periods)
	for i, v := range base {
		base[i] = math.Max(0, v)
	}

	result := models.ForecastResult{
		BasePeriods:     base,
		Periods:         periods,
		ShiftsPerPeriod: opts.shiftsPerPeriod(),
		Coefficients:    model.coefficients,
		Observations:    len(history),
	}
	if opts.SplitShifts {
		result.Values = SplitIntoShifts(base, opts.ShiftRatios)
	} else {
		result.Values = append([]float64(nil), base...)
	}

	metrics.ForecastRunsTotal.WithLabelValues("model").Inc()
	logger.WithField("values", len(result.Values)).Debug("forecast generated")
	return result, nil
}

// SplitIntoShifts 基準期間の予測値を比率でシフトに分割し、整数に切り捨てる
func SplitIntoShifts(base []float64, ratios []float64) []float64 {
	out := make([]float64, 0, len(base)*len(ratios))
	for _, v := range base {
		v = math.Max(0, v)
		for _, r := range ratios {
			out = append(out, math.Trunc(v*r))
		}
	}
	return out
}

func fallbackForecast(periods, observations int, opts ForecastOptions, cause error) models.ForecastResult {
	shifts := opts.shiftsPerPeriod()
	values := make([]float64, periods*shifts)
	for i := range values {
		values[i] = opts.FallbackCallsPerShift
	}
	base := make([]float64, periods)
	for i := range base {
		base[i] = opts.FallbackCallsPerShift * float64(shifts)
	}
	return models.ForecastResult{
		Values:          values,
		BasePeriods:     base,
		Periods:         periods,
		ShiftsPerPeriod: shifts,
		Degraded:        true,
		DegradedReason:  cause.Error(),
		Observations:    observations,
	}
}
