package handlers

import (
	"net/http"

	config "wfm-api/configs"
	"wfm-api/pkg/metrics"
	"wfm-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies はルーターの構築に必要なサービス群です。
type Dependencies struct {
	Config     *config.Config
	Profiles   *config.StaffingProfiles
	Workforce  *services.WorkforceService
	Monitoring *services.MonitoringService
}

// APIKeyAuth はX-API-KEYヘッダーでリクエストを認証するミドルウェアです。
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-API-KEY") != apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// NewRouter はAPIのルーティングを設定したGinエンジンを返します。
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(deps.Monitoring.LoggingMiddleware())
	r.Use(cors.Default())

	forecastHandler := NewForecastHandler(deps.Workforce.ForecastService())
	scheduleHandler := NewScheduleHandler(deps.Workforce, deps.Profiles)
	adminHandler := NewAdminHandler(deps.Config, deps.Workforce.ForecastService().Source())
	monitoringHandler := NewMonitoringHandler(deps.Monitoring)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Workforce Management API"})
	})
	r.GET("/health", HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	v1 := r.Group("/api/v1")
	v1.Use(APIKeyAuth(deps.Config.APIKey))
	{
		admin := v1.Group("/admin")
		{
			admin.GET("/health-status", adminHandler.GetHealthStatus)
			admin.POST("/maintenance/start", adminHandler.StartMaintenance)
			admin.POST("/maintenance/stop", adminHandler.StopMaintenance)
		}

		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}

		v1.GET("/profiles", scheduleHandler.GetProfiles)

		pipeline := v1.Group("")
		pipeline.Use(MaintenanceGuard())
		{
			pipeline.POST("/forecast", forecastHandler.PredictCalls)
			pipeline.POST("/schedule", scheduleHandler.GenerateSchedule)
			pipeline.POST("/schedule/validate", scheduleHandler.ValidateSchedule)
			pipeline.POST("/plan", scheduleHandler.GeneratePlan)
			pipeline.POST("/plan/export", scheduleHandler.ExportPlan)
		}
	}

	return r
}
