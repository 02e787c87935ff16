package main

import (
	"fmt"
	"os"

	"wfm-api/pkg/bootstrap"
	"wfm-api/pkg/services"

	"github.com/spf13/cobra"
)

var (
	forecastWeeks   int
	forecastNoSplit bool
	forecastJSON    bool
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast shift-level call volume from the historical dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := bootstrap.ForecastOptions(cfg)
		opts.SplitShifts = !forecastNoSplit

		engine := services.NewForecastService(services.NewFileSeriesSource(cfg.HistoricalDataPath), opts)
		result, err := engine.Forecast(forecastWeeks)
		if err != nil {
			return err
		}

		if forecastJSON {
			return writeJSON(os.Stdout, result)
		}
		if result.Degraded {
			fmt.Fprintf(os.Stderr, "WARNING: model fit failed, constant fallback forecast used (%s)\n", result.DegradedReason)
		}
		for i, v := range result.Values {
			week := i/result.ShiftsPerPeriod + 1
			shift := i%result.ShiftsPerPeriod + 1
			fmt.Printf("week %d shift %d: %.0f\n", week, shift, v)
		}
		return nil
	},
}

func init() {
	forecastCmd.Flags().IntVar(&forecastWeeks, "weeks", 4, "Number of base periods to forecast")
	forecastCmd.Flags().BoolVar(&forecastNoSplit, "no-split", false, "Return base-period forecasts without shift decomposition")
	forecastCmd.Flags().BoolVar(&forecastJSON, "json", false, "Print the full forecast result as JSON")
}
