package services

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ariModel 移動平均項を持たない ARIMA(p,d,0) モデル。
// 差分系列に対して定数項なしの条件付き最小二乗で AR 係数を推定する。
type ariModel struct {
	order        int
	differencing int
	coefficients []float64
	levels       [][]float64 // levels[k] は k 回差分した系列
}

// minObservations p次・d階差分のモデル学習に必要な最小観測数
func minObservations(p, d int) int {
	// 差分後に回帰の式数が係数の数を上回ること
	return 2*p + d + 1
}

// fitARI 系列に ARIMA(p,d,0) を当てはめる
func fitARI(series []float64, p, d int) (*ariModel, error) {
	if p < 1 || d < 0 {
		return nil, fmt.Errorf("%w: unsupported order (%d,%d,0)", ErrModelFit, p, d)
	}
	if len(series) < minObservations(p, d) {
		return nil, fmt.Errorf("%w: need %d observations, got %d",
			ErrInsufficientHistory, minObservations(p, d), len(series))
	}

	levels := make([][]float64, d+1)
	levels[0] = series
	for k := 1; k <= d; k++ {
		levels[k] = difference(levels[k-1])
	}
	w := levels[d]
	if isConstant(w) {
		return nil, fmt.Errorf("%w: degenerate series (differenced values are constant)", ErrModelFit)
	}

	rows := len(w) - p
	X := mat.NewDense(rows, p, nil)
	y := mat.NewVecDense(rows, nil)
	for r := 0; r < rows; r++ {
		t := p + r
		for j := 0; j < p; j++ {
			X.Set(r, j, w[t-1-j])
		}
		y.SetVec(r, w[t])
	}

	var beta mat.VecDense
	if err := beta.SolveVec(X, y); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelFit, err)
	}

	coefficients := make([]float64, p)
	for j := 0; j < p; j++ {
		c := beta.AtVec(j)
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: non-finite coefficient", ErrModelFit)
		}
		coefficients[j] = c
	}

	return &ariModel{
		order:        p,
		differencing: d,
		coefficients: coefficients,
		levels:       levels,
	}, nil
}

// forecast steps 期先までの水準値を予測する
func (m *ariModel) forecast(steps int) []float64 {
	d := m.differencing
	lasts := make([]float64, d)
	for k := 0; k < d; k++ {
		lasts[k] = m.levels[k][len(m.levels[k])-1]
	}

	w := m.levels[d]
	history := make([]float64, len(w), len(w)+steps)
	copy(history, w)

	out := make([]float64, steps)
	for h := 0; h < steps; h++ {
		n := len(history)
		var next float64
		for j, phi := range m.coefficients {
			next += phi * history[n-1-j]
		}
		history = append(history, next)

		// 差分を積み上げて元の水準に戻す
		v := next
		for k := d - 1; k >= 0; k-- {
			lasts[k] += v
			v = lasts[k]
		}
		out[h] = v
	}
	return out
}

func difference(xs []float64) []float64 {
	if len(xs) < 2 {
		return nil
	}
	out := make([]float64, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		out[i-1] = xs[i] - xs[i-1]
	}
	return out
}

func isConstant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}
