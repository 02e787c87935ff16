package handlers

import (
	"net/http"
	"strings"
	"sync/atomic"

	config "wfm-api/configs"
	"wfm-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// isMaintenanceMode はサーバーがメンテナンスモードかどうかを示します。
var isMaintenanceMode atomic.Bool

// AdminHandler は管理者向け操作のハンドラです。
type AdminHandler struct {
	AdminUsername string
	AdminPassword string
	source        services.HistoricalSeriesSource
}

// NewAdminHandler は新しいAdminHandlerを生成します。
func NewAdminHandler(cfg *config.Config, source services.HistoricalSeriesSource) *AdminHandler {
	return &AdminHandler{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		source:        source,
	}
}

// AdminCredentials は管理者認証のためのリクエストボディです。
type AdminCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AdminHandler) authorize(c *gin.Context) bool {
	var input AdminCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return false
	}
	// パスワード未設定の場合は管理操作を無効化
	if h.AdminPassword == "" || input.Username != h.AdminUsername || input.Password != h.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return false
	}
	return true
}

// StartMaintenance はメンテナンスモードを開始します。
func (h *AdminHandler) StartMaintenance(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	isMaintenanceMode.Store(true)
	logrus.WithField("component", "admin").Warn("maintenance mode started")
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance mode started"})
}

// StopMaintenance はメンテナンスモードを停止します。
func (h *AdminHandler) StopMaintenance(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	isMaintenanceMode.Store(false)
	logrus.WithField("component", "admin").Info("maintenance mode stopped")
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance mode stopped"})
}

// HistoricalDataStatus は履歴データの読み込み状況です。
type HistoricalDataStatus struct {
	Available    bool   `json:"available"`
	Observations int    `json:"observations"`
	FirstPeriod  string `json:"firstPeriod,omitempty"`
	LastPeriod   string `json:"lastPeriod,omitempty"`
	Error        string `json:"error,omitempty"`
}

// GetHealthStatus は現在のサーバーの状態と履歴データの読み込み可否を返します。
func (h *AdminHandler) GetHealthStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"isMaintenanceMode": isMaintenanceMode.Load(),
		"historicalData":    h.historicalDataStatus(),
	})
}

func (h *AdminHandler) historicalDataStatus() HistoricalDataStatus {
	if h.source == nil {
		return HistoricalDataStatus{Error: "no historical source configured"}
	}
	series, err := h.source.LoadHistoricalSeries()
	if err != nil {
		return HistoricalDataStatus{Error: err.Error()}
	}
	return HistoricalDataStatus{
		Available:    true,
		Observations: len(series),
		FirstPeriod:  series[0].Timestamp.Format("2006-01-02"),
		LastPeriod:   series[len(series)-1].Timestamp.Format("2006-01-02"),
	}
}

// MaintenanceGuard はメンテナンス中に予測・配置APIへのリクエストを拒否します。
func MaintenanceGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isMaintenanceMode.Load() && !strings.HasPrefix(c.Request.URL.Path, "/api/v1/admin") {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error":   "Server is in maintenance mode",
			})
			return
		}
		c.Next()
	}
}

// HealthCheck は外部のヘルスチェッカー（例: ロードバランサー）からのリクエストに応答します。
func HealthCheck(c *gin.Context) {
	if isMaintenanceMode.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "message": "Server is in maintenance mode"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
