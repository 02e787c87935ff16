package handlers

import (
	"net/http"

	"wfm-api/pkg/models"
	"wfm-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// ForecastHandler コール量予測ハンドラー
type ForecastHandler struct {
	forecastService *services.ForecastService
}

// NewForecastHandler 新しい予測ハンドラーを作成
func NewForecastHandler(forecastService *services.ForecastService) *ForecastHandler {
	return &ForecastHandler{forecastService: forecastService}
}

// PredictCalls 履歴データから num_weeks 週ぶんのシフト別コール量を予測
func (fh *ForecastHandler) PredictCalls(c *gin.Context) {
	var request models.ForecastRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}

	opts := fh.forecastService.Options()
	if request.SplitShifts != nil {
		opts.SplitShifts = *request.SplitShifts
	}

	forecast, err := fh.forecastService.ForecastWithOptions(request.NumWeeks, opts)
	if err != nil {
		respondError(c, "需要予測の実行に失敗しました", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    forecast,
	})
}
