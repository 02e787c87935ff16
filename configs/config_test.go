package config

import (
	"testing"
)

func TestLoadConfig(t *testing.T) {
	// テスト用の環境変数を設定
	testCases := map[string]string{
		"PORT":                     "9090",
		"ENVIRONMENT":              "test",
		"LOG_LEVEL":                "debug",
		"API_KEY":                  "secret",
		"HISTORICAL_DATA_PATH":     "testdata/calls.xlsx",
		"STAFFING_PROFILES_PATH":   "testdata/profiles.yaml",
		"DEFAULT_PROFILE":          "peak",
		"FALLBACK_CALLS_PER_SHIFT": "120.5",
		"MAX_CALLS_PER_AGENT":      "35",
	}
	for key, value := range testCases {
		t.Setenv(key, value)
	}

	// 設定を読み込み
	cfg := LoadConfig()

	// 検証
	if cfg.Port != "9090" {
		t.Errorf("Expected Port to be '9090', got '%s'", cfg.Port)
	}
	if cfg.Environment != "test" {
		t.Errorf("Expected Environment to be 'test', got '%s'", cfg.Environment)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be 'debug', got '%s'", cfg.LogLevel)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("Expected APIKey to be 'secret', got '%s'", cfg.APIKey)
	}
	if cfg.HistoricalDataPath != "testdata/calls.xlsx" {
		t.Errorf("Expected HistoricalDataPath to be 'testdata/calls.xlsx', got '%s'", cfg.HistoricalDataPath)
	}
	if cfg.DefaultProfile != "peak" {
		t.Errorf("Expected DefaultProfile to be 'peak', got '%s'", cfg.DefaultProfile)
	}
	if cfg.FallbackCallsPerShift != 120.5 {
		t.Errorf("Expected FallbackCallsPerShift to be 120.5, got %v", cfg.FallbackCallsPerShift)
	}
	if cfg.MaxCallsPerAgent != 35 {
		t.Errorf("Expected MaxCallsPerAgent to be 35, got %d", cfg.MaxCallsPerAgent)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	// 環境変数を空にする（空文字は未設定として扱われる）
	vars := []string{
		"PORT", "ENVIRONMENT", "LOG_LEVEL", "API_KEY", "ADMIN_USERNAME",
		"HISTORICAL_DATA_PATH", "STAFFING_PROFILES_PATH", "DEFAULT_PROFILE",
		"FALLBACK_CALLS_PER_SHIFT", "MAX_CALLS_PER_AGENT",
	}
	for _, v := range vars {
		t.Setenv(v, "")
	}

	// 設定を読み込み
	cfg := LoadConfig()

	// デフォルト値の検証
	if cfg.Port != "8080" {
		t.Errorf("Expected default Port to be '8080', got '%s'", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("Expected default Environment to be 'development', got '%s'", cfg.Environment)
	}
	if cfg.AdminUsername != "admin" {
		t.Errorf("Expected default AdminUsername to be 'admin', got '%s'", cfg.AdminUsername)
	}
	if cfg.HistoricalDataPath != "data/historical_data.csv" {
		t.Errorf("Expected default HistoricalDataPath, got '%s'", cfg.HistoricalDataPath)
	}
	if cfg.FallbackCallsPerShift != 100 {
		t.Errorf("Expected default FallbackCallsPerShift to be 100, got %v", cfg.FallbackCallsPerShift)
	}
	if cfg.MaxCallsPerAgent != 0 {
		t.Errorf("Expected default MaxCallsPerAgent to be 0 (profile value), got %d", cfg.MaxCallsPerAgent)
	}
}

func TestLoadConfigIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MAX_CALLS_PER_AGENT", "forty")
	t.Setenv("FALLBACK_CALLS_PER_SHIFT", "n/a")

	cfg := LoadConfig()
	if cfg.MaxCallsPerAgent != 0 {
		t.Errorf("Expected MaxCallsPerAgent to fall back to 0, got %d", cfg.MaxCallsPerAgent)
	}
	if cfg.FallbackCallsPerShift != 100 {
		t.Errorf("Expected FallbackCallsPerShift to fall back to 100, got %v", cfg.FallbackCallsPerShift)
	}
}
