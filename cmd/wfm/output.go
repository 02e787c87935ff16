package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"wfm-api/pkg/models"
	"wfm-api/pkg/services"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// openOutput は出力先を開く。空文字または "-" の場合は標準出力。
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// closeOutput は出力先を閉じ、書き込み時にエラーがなければ Close のエラーを返す
func closeOutput(closeFn func() error, err *error) {
	if cerr := closeFn(); cerr != nil && *err == nil {
		*err = cerr
	}
}

func writeScheduleText(w io.Writer, schedule models.Schedule) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "WEEK\tSHIFT\tFORECAST\tAGENTS\tCALLS/AGENT\tLOAD%\tOPTIMAL\t")
	for _, e := range schedule.Entries {
		fmt.Fprintf(tw, "%d\t%d\t%.0f\t%d\t%.1f\t%.1f\t%t\t\n",
			e.Week, e.Shift, e.ForecastedCalls, e.AgentsNeeded, e.CallsPerAgent, e.LoadPercentage, e.IsOptimal)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := schedule.Summary
	fmt.Fprintf(w, "\nTotal agents: %d (budget %d)\n", s.TotalAgents, s.AgentBudget)
	if s.Rebalanced {
		fmt.Fprintf(w, "Rebalanced from %d agents (factor %.3f)\n", s.PreRebalanceTotal, s.ReductionFactor)
	}
	fmt.Fprintf(w, "Peak forecast: %.0f calls (week %d, shift %d)\n", s.PeakForecast, s.PeakWeek, s.PeakShift)
	fmt.Fprintf(w, "Average forecast: %.1f calls, average load %.1f%%\n", s.AverageForecast, s.AverageLoad)
	fmt.Fprintf(w, "Optimal entries: %d/%d\n", s.OptimalEntries, s.Entries)
	return nil
}

func writeValidationText(w io.Writer, report models.ValidationReport) {
	status := "balanced"
	if !report.Valid {
		status = "unbalanced"
	}
	fmt.Fprintf(w, "Validation (%.0f%%-%.0f%%): %s, %d underutilized, %d overloaded\n",
		report.LowerBound, report.UpperBound, status, len(report.Underutilized), len(report.Overloaded))
}

func writeSchedule(w io.Writer, format string, schedule models.Schedule) error {
	switch format {
	case "json":
		return writeJSON(w, schedule)
	case "csv":
		return services.WriteScheduleCSV(w, schedule)
	case "xlsx":
		return services.WriteScheduleXLSX(w, schedule)
	case "text":
		return writeScheduleText(w, schedule)
	default:
		return fmt.Errorf("format must be one of: text, json, csv, xlsx (got: %s)", format)
	}
}
