package main

import (
	"wfm-api/pkg/bootstrap"
	"wfm-api/pkg/services"

	"github.com/spf13/cobra"
)

var (
	planWeeks   int
	planNoSplit bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Forecast, allocate and validate a staffing plan in one run",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		allocation, profile, profileName, err := resolveAllocation(cmd, scheduleProfile, scheduleAgents)
		if err != nil {
			return err
		}

		workforce := bootstrap.NewWorkforceService(cfg)
		plan, err := workforce.Plan(services.PlanOptions{
			Periods:     planWeeks,
			Profile:     profileName,
			Allocation:  allocation,
			LowerBound:  profile.Validation.LowerBound,
			UpperBound:  profile.Validation.UpperBound,
			SplitShifts: !planNoSplit,
		})
		if err != nil {
			return err
		}

		w, closeFn, err := openOutput(scheduleOut)
		if err != nil {
			return err
		}
		defer closeOutput(closeFn, &err)

		switch scheduleFormat {
		case "json":
			return writeJSON(w, plan)
		case "text":
			if plan.Forecast.Degraded {
				cmd.PrintErrf("WARNING: model fit failed, constant fallback forecast used (%s)\n", plan.Forecast.DegradedReason)
			}
			if err := writeScheduleText(w, plan.Schedule); err != nil {
				return err
			}
			writeValidationText(w, plan.Validation)
			return nil
		default:
			if plan.Forecast.Degraded {
				cmd.PrintErrln("WARNING: model fit failed, constant fallback forecast used")
			}
			return writeSchedule(w, scheduleFormat, plan.Schedule)
		}
	},
}

func init() {
	planCmd.Flags().IntVar(&planWeeks, "weeks", 4, "Number of base periods to forecast")
	planCmd.Flags().BoolVar(&planNoSplit, "no-split", false, "Allocate one entry per base period without shift decomposition")
	addAllocationFlags(planCmd)
}
