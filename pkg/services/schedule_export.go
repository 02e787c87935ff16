package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"wfm-api/pkg/models"

	"github.com/xuri/excelize/v2"
)

var scheduleHeader = []string{
	"week", "shift", "forecasted_calls", "base_agents_needed", "peak_buffer",
	"agents_needed", "calls_per_agent", "load_percentage", "is_optimal",
}

// WriteScheduleCSV スケジュールをCSV形式で書き出す
func WriteScheduleCSV(w io.Writer, schedule models.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scheduleHeader); err != nil {
		return err
	}
	for _, e := range schedule.Entries {
		record := []string{
			strconv.Itoa(e.Week),
			strconv.Itoa(e.Shift),
			strconv.FormatFloat(e.ForecastedCalls, 'f', 2, 64),
			strconv.Itoa(e.BaseAgentsNeeded),
			strconv.Itoa(e.PeakBuffer),
			strconv.Itoa(e.AgentsNeeded),
			strconv.FormatFloat(e.CallsPerAgent, 'f', 2, 64),
			strconv.FormatFloat(e.LoadPercentage, 'f', 2, 64),
			strconv.FormatBool(e.IsOptimal),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteScheduleXLSX スケジュールと診断情報をExcelブックとして書き出す
func WriteScheduleXLSX(w io.Writer, schedule models.Schedule) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Schedule"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	for col, name := range scheduleHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	for i, e := range schedule.Entries {
		row := []interface{}{
			e.Week, e.Shift, e.ForecastedCalls, e.BaseAgentsNeeded, e.PeakBuffer,
			e.AgentsNeeded, e.CallsPerAgent, e.LoadPercentage, e.IsOptimal,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("行 %d の書き込みに失敗: %w", i+2, err)
		}
	}

	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	s := schedule.Summary
	summaryRows := [][]interface{}{
		{"total_agents", s.TotalAgents},
		{"agent_budget", s.AgentBudget},
		{"pre_rebalance_total", s.PreRebalanceTotal},
		{"rebalanced", s.Rebalanced},
		{"reduction_factor", s.ReductionFactor},
		{"peak_forecast", s.PeakForecast},
		{"peak_week", s.PeakWeek},
		{"peak_shift", s.PeakShift},
		{"average_forecast", s.AverageForecast},
		{"average_load", s.AverageLoad},
		{"optimal_entries", s.OptimalEntries},
		{"entries", s.Entries},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}
