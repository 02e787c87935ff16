package main

import (
	"fmt"

	config "wfm-api/configs"
	"wfm-api/pkg/bootstrap"
	"wfm-api/pkg/models"
	"wfm-api/pkg/services"

	"github.com/spf13/cobra"
)

var (
	scheduleCalls       []float64
	scheduleAgents      int
	scheduleProfile     string
	scheduleMaxCalls    int
	schedulePeakBuffer  float64
	scheduleUtilization float64
	scheduleFormat      string
	scheduleOut         string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Allocate agents for an explicit forecast vector",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		allocation, _, _, err := resolveAllocation(cmd, scheduleProfile, scheduleAgents)
		if err != nil {
			return err
		}

		schedule, err := services.NewScheduleAllocator().Allocate(scheduleCalls, allocation)
		if err != nil {
			return err
		}

		w, closeFn, err := openOutput(scheduleOut)
		if err != nil {
			return err
		}
		defer closeOutput(closeFn, &err)
		return writeSchedule(w, scheduleFormat, schedule)
	},
}

// resolveAllocation はプロファイルの既定値にフラグの指定値を重ねる
func resolveAllocation(cmd *cobra.Command, profileName string, agents int) (models.AllocationConfig, config.StaffingProfile, string, error) {
	profiles, err := bootstrap.LoadProfiles(cfg)
	if err != nil {
		return models.AllocationConfig{}, config.StaffingProfile{}, "", err
	}
	if profileName == "" {
		profileName = profiles.Default
	}
	profile, ok := profiles.Get(profileName)
	if !ok {
		return models.AllocationConfig{}, profile, "", fmt.Errorf("unknown profile %q (available: %v)", profileName, profiles.Names())
	}

	allocation := profile.AllocationConfig(agents)
	if cmd.Flags().Changed("max-calls") {
		allocation.MaxCallsPerAgent = scheduleMaxCalls
	}
	if cmd.Flags().Changed("peak-buffer") {
		allocation.PeakBufferRatio = schedulePeakBuffer
	}
	if cmd.Flags().Changed("utilization") {
		allocation.UtilizationTarget = scheduleUtilization
	}
	return allocation, profile, profileName, nil
}

func addAllocationFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&scheduleAgents, "agents", 0, "Nominal agent pool size per shift (required)")
	cmd.Flags().StringVar(&scheduleProfile, "profile", "", "Staffing profile name")
	cmd.Flags().IntVar(&scheduleMaxCalls, "max-calls", services.DefaultMaxCallsPerAgent, "Maximum calls per agent per shift")
	cmd.Flags().Float64Var(&schedulePeakBuffer, "peak-buffer", services.DefaultPeakBufferRatio, "Peak buffer ratio in [0,1]")
	cmd.Flags().Float64Var(&scheduleUtilization, "utilization", services.DefaultUtilizationTarget, "Utilization target in (0,1]")
	cmd.Flags().StringVar(&scheduleFormat, "format", "text", "Output format: text|json|csv|xlsx")
	cmd.Flags().StringVarP(&scheduleOut, "out", "o", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("agents")
}

func init() {
	scheduleCmd.Flags().Float64SliceVar(&scheduleCalls, "calls", nil, "Comma-separated forecast vector")
	_ = scheduleCmd.MarkFlagRequired("calls")
	addAllocationFlags(scheduleCmd)
}
