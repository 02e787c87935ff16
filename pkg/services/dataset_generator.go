package services

import (
	"encoding/csv"
	"io"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"wfm-api/pkg/models"

	"gonum.org/v1/gonum/stat/distuv"
)

// monthlySeasonality 月ごとの季節係数（1月〜12月）
var monthlySeasonality = []float64{1.2, 1.1, 1.0, 0.9, 1.0, 1.1, 0.8, 0.7, 0.9, 1.0, 1.1, 1.3}

// DatasetOptions サンプル履歴データの生成条件
type DatasetOptions struct {
	Start      time.Time
	Weeks      int
	BaseVolume float64
	Trend      float64 // 1週あたりの増加率
	Noise      float64 // 正規ノイズの標準偏差（平均1）
	Seed       uint64
}

// DefaultDatasetOptions 52週・週平均1000コールの既定条件
func DefaultDatasetOptions() DatasetOptions {
	return DatasetOptions{
		Start:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Weeks:      52,
		BaseVolume: 1000,
		Trend:      0.001,
		Noise:      0.1,
		Seed:       42,
	}
}

// GenerateHistoricalSeries 季節性・トレンド・ノイズを持つ週次コール量を生成する。
// 同じシードからは常に同じ系列が得られる。
func GenerateHistoricalSeries(opts DatasetOptions) []models.Observation {
	noise := distuv.Normal{Mu: 1, Sigma: opts.Noise, Src: rand.NewPCG(opts.Seed, opts.Seed)}

	series := make([]models.Observation, 0, opts.Weeks)
	for i := 0; i < opts.Weeks; i++ {
		seasonal := monthlySeasonality[i%len(monthlySeasonality)]
		trend := 1 + float64(i)*opts.Trend
		volume := opts.BaseVolume * seasonal * noise.Rand() * trend

		series = append(series, models.Observation{
			Timestamp:  opts.Start.AddDate(0, 0, 7*i),
			CallVolume: int(math.Round(math.Max(0, volume))),
		})
	}
	return series
}

// WriteSeriesCSV 観測系列を date,call_volume 形式のCSVで書き出す
func WriteSeriesCSV(w io.Writer, series []models.Observation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "call_volume"}); err != nil {
		return err
	}
	for _, o := range series {
		if err := cw.Write([]string{o.Timestamp.Format("2006-01-02"), strconv.Itoa(o.CallVolume)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
