package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration 配置設定・入力ベクトルが不正
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrDataSourceUnavailable 履歴データが存在しない、または形式が不正
	ErrDataSourceUnavailable = errors.New("historical data source unavailable")
	// ErrModelFit モデル学習の失敗（予測エンジン内部で回復される）
	ErrModelFit = errors.New("model fit failed")
	// ErrInsufficientHistory 学習に必要な観測数が足りない
	ErrInsufficientHistory = fmt.Errorf("%w: insufficient history", ErrModelFit)
)

// ConfigError 不正な設定項目を表すエラー。errors.Is(err, ErrInvalidConfiguration) が成立する。
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}

func invalidConfig(field, reason string) error {
	return &ConfigError{Field: field, Reason: reason}
}
