package main

import (
	config "wfm-api/configs"
	"wfm-api/pkg/bootstrap"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel     string // ログレベル
	envFile      string // .envファイルのパス
	dataPath     string // 履歴データのパス（未指定ならHISTORICAL_DATA_PATH）
	profilesPath string // 配置プロファイルのパス

	cfg *config.Config
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:           "wfm",
	Short:         "Call volume forecasting and shift staffing planner",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(envFile); err != nil {
			logrus.Debugf("env file %s not loaded: %v", envFile, err)
		}
		cfg = config.LoadConfig()
		if dataPath != "" {
			cfg.HistoricalDataPath = dataPath
		}
		if profilesPath != "" {
			cfg.StaffingProfilesPath = profilesPath
		}
		level := cfg.LogLevel
		if cmd.Flags().Changed("log") {
			level = logLevel
		}
		bootstrap.SetupLogging(level, cfg.Environment)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to the .env file")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Historical data file (.csv or .xlsx)")
	rootCmd.PersistentFlags().StringVar(&profilesPath, "profiles", "", "Staffing profiles YAML file")

	rootCmd.AddCommand(forecastCmd, scheduleCmd, planCmd, generateDataCmd)
}
