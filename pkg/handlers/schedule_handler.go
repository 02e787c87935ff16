package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	config "wfm-api/configs"
	"wfm-api/pkg/models"
	"wfm-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler 人員配置ハンドラー
type ScheduleHandler struct {
	workforceService *services.WorkforceService
	profiles         *config.StaffingProfiles
}

// NewScheduleHandler 新しい人員配置ハンドラーを作成
func NewScheduleHandler(workforceService *services.WorkforceService, profiles *config.StaffingProfiles) *ScheduleHandler {
	return &ScheduleHandler{
		workforceService: workforceService,
		profiles:         profiles,
	}
}

// resolveAllocation プロファイルの既定値にリクエストの指定値を重ねて配置設定を作る
func (sh *ScheduleHandler) resolveAllocation(profileName string, numAgents int, maxCalls *int, peakBuffer, utilization *float64) (models.AllocationConfig, config.StaffingProfile, error) {
	profile, ok := sh.profiles.Get(profileName)
	if !ok {
		return models.AllocationConfig{}, profile, &services.ConfigError{
			Field:  "profile",
			Reason: fmt.Sprintf("%q is not defined", profileName),
		}
	}

	cfg := profile.AllocationConfig(numAgents)
	if maxCalls != nil {
		cfg.MaxCallsPerAgent = *maxCalls
	}
	if peakBuffer != nil {
		cfg.PeakBufferRatio = *peakBuffer
	}
	if utilization != nil {
		cfg.UtilizationTarget = *utilization
	}
	return cfg, profile, nil
}

// GenerateSchedule 予測ベクトルからシフトごとの必要人数を算出
func (sh *ScheduleHandler) GenerateSchedule(c *gin.Context) {
	var request models.SchedulingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}

	cfg, _, err := sh.resolveAllocation(request.Profile, request.NumAgents,
		request.MaxCallsPerAgent, request.PeakBufferRatio, request.UtilizationTarget)
	if err != nil {
		respondError(c, "配置設定が不正です", err)
		return
	}

	schedule, err := sh.workforceService.Allocator().Allocate(request.ForecastedCalls, cfg)
	if err != nil {
		respondError(c, "スケジュールの生成に失敗しました", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    schedule,
	})
}

// ValidateSchedule スケジュールの負荷率が許容範囲内か検査
func (sh *ScheduleHandler) ValidateSchedule(c *gin.Context) {
	var request models.ValidationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}

	lower, upper := services.DefaultLowerBound, services.DefaultUpperBound
	if request.LowerBound != nil {
		lower = *request.LowerBound
	}
	if request.UpperBound != nil {
		upper = *request.UpperBound
	}

	validator, err := services.NewScheduleValidatorWithBounds(lower, upper)
	if err != nil {
		respondError(c, "検証範囲が不正です", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    validator.Validate(request.Schedule),
	})
}

// GeneratePlan 予測→配置→検証を一括実行
func (sh *ScheduleHandler) GeneratePlan(c *gin.Context) {
	var request models.PlanRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}

	plan, err := sh.buildPlan(request)
	if err != nil {
		respondError(c, "人員計画の生成に失敗しました", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    plan,
	})
}

// ExportPlan 一括実行の結果をExcelまたはCSVでダウンロード
func (sh *ScheduleHandler) ExportPlan(c *gin.Context) {
	var request models.PlanRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}

	plan, err := sh.buildPlan(request)
	if err != nil {
		respondError(c, "人員計画の生成に失敗しました", err)
		return
	}

	var buf bytes.Buffer
	switch format := c.DefaultQuery("format", "xlsx"); format {
	case "xlsx":
		if err := services.WriteScheduleXLSX(&buf, plan.Schedule); err != nil {
			respondError(c, "Excelファイルの生成に失敗しました", err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=schedule-%s.xlsx", plan.PlanID))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	case "csv":
		if err := services.WriteScheduleCSV(&buf, plan.Schedule); err != nil {
			respondError(c, "CSVファイルの生成に失敗しました", err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=schedule-%s.csv", plan.PlanID))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   fmt.Sprintf("無効な形式です: %s。'xlsx' または 'csv' を指定してください。", format),
		})
	}
}

// GetProfiles 利用可能な配置プロファイルを返す
func (sh *ScheduleHandler) GetProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sh.profiles,
	})
}

func (sh *ScheduleHandler) buildPlan(request models.PlanRequest) (*models.StaffingPlan, error) {
	cfg, profile, err := sh.resolveAllocation(request.Profile, request.NumAgents,
		request.MaxCallsPerAgent, request.PeakBufferRatio, request.UtilizationTarget)
	if err != nil {
		return nil, err
	}

	name := request.Profile
	if name == "" {
		name = sh.profiles.Default
	}
	split := sh.workforceService.ForecastService().Options().SplitShifts
	if request.SplitShifts != nil {
		split = *request.SplitShifts
	}
	return sh.workforceService.Plan(services.PlanOptions{
		Periods:     request.NumWeeks,
		Profile:     name,
		Allocation:  cfg,
		LowerBound:  profile.Validation.LowerBound,
		UpperBound:  profile.Validation.UpperBound,
		SplitShifts: split,
	})
}
