// Package bootstrap はサーバー・CLI・サーバーレス関数で共通の初期化処理をまとめる。
package bootstrap

import (
	"errors"
	"io/fs"

	config "wfm-api/configs"
	"wfm-api/pkg/handlers"
	"wfm-api/pkg/services"

	"github.com/sirupsen/logrus"
)

// SetupLogging はログレベルと出力形式を設定する。本番環境ではJSON形式で出力する。
func SetupLogging(level, environment string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Invalid log level %q, falling back to info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	if environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// LoadProfiles は配置プロファイルを読み込む。ファイルがない場合は組み込みの既定値を使う。
// MAX_CALLS_PER_AGENT が指定されていれば全プロファイルの値を上書きする。
func LoadProfiles(cfg *config.Config) (*config.StaffingProfiles, error) {
	profiles, err := config.LoadStaffingProfiles(cfg.StaffingProfilesPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		logrus.WithField("path", cfg.StaffingProfilesPath).Warn("staffing profiles not found, using built-in defaults")
		profiles = config.DefaultStaffingProfiles()
	}
	if cfg.MaxCallsPerAgent > 0 {
		for name, p := range profiles.Profiles {
			p.MaxCallsPerAgent = cfg.MaxCallsPerAgent
			profiles.Profiles[name] = p
		}
	}
	if cfg.DefaultProfile != "" {
		if _, ok := profiles.Profiles[cfg.DefaultProfile]; ok {
			profiles.Default = cfg.DefaultProfile
		}
	}
	return profiles, nil
}

// ForecastOptions は設定値から予測エンジンのオプションを作る
func ForecastOptions(cfg *config.Config) services.ForecastOptions {
	opts := services.DefaultForecastOptions()
	opts.FallbackCallsPerShift = cfg.FallbackCallsPerShift
	return opts
}

// NewWorkforceService は予測〜検証パイプラインを組み立てる
func NewWorkforceService(cfg *config.Config) *services.WorkforceService {
	source := services.NewFileSeriesSource(cfg.HistoricalDataPath)
	forecastService := services.NewForecastService(source, ForecastOptions(cfg))
	return services.NewWorkforceService(forecastService, services.NewScheduleAllocator())
}

// NewDependencies はHTTPルーターに必要な依存関係を組み立てる
func NewDependencies(cfg *config.Config) (handlers.Dependencies, error) {
	profiles, err := LoadProfiles(cfg)
	if err != nil {
		return handlers.Dependencies{}, err
	}
	return handlers.Dependencies{
		Config:     cfg,
		Profiles:   profiles,
		Workforce:  NewWorkforceService(cfg),
		Monitoring: services.NewMonitoringService(),
	}, nil
}
