package main

import (
	config "wfm-api/configs"
	"wfm-api/pkg/bootstrap"
	"wfm-api/pkg/handlers"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .envファイルを読み込み
	if err := godotenv.Load(); err != nil {
		logrus.Warnf(".env file not found or could not be loaded: %v", err)
	}

	cfg := config.LoadConfig()
	bootstrap.SetupLogging(cfg.LogLevel, cfg.Environment)

	deps, err := bootstrap.NewDependencies(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize dependencies")
	}

	r := handlers.NewRouter(deps)

	logrus.WithFields(logrus.Fields{
		"port":            cfg.Port,
		"historical_data": cfg.HistoricalDataPath,
		"default_profile": deps.Profiles.Default,
	}).Info("Starting Workforce Management API server")
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
