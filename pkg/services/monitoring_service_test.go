package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMonitoredRouter(s *MonitoringService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(s.LoggingMiddleware())
	router.GET("/api/v1/profiles", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/v1/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	router.GET("/api/v1/admin/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestLoggingMiddlewareRecordsRequests(t *testing.T) {
	fixed := time.Date(2026, 10, 18, 10, 30, 0, 0, time.UTC)
	s := NewMonitoringService()
	s.now = func() time.Time { return fixed }
	router := newMonitoredRouter(s)

	for _, path := range []string{"/api/v1/profiles", "/api/v1/profiles", "/api/v1/broken", "/api/v1/admin/health", "/metrics"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	}

	data := s.GetDashboardData(24)
	assert.Equal(t, map[string]int{"/api/v1/profiles": 2, "/api/v1/broken": 1}, data.Endpoints)
	require.Len(t, data.RequestsOverTime, 24)
	assert.Equal(t, 3, data.RequestsOverTime[23].Requests)
	assert.Equal(t, "10:00", data.RequestsOverTime[23].Time)

	assert.Equal(t, []StatusCount{
		{Name: "2xx Success", Value: 2},
		{Name: "4xx Client Error", Value: 0},
		{Name: "5xx Server Error", Value: 1},
	}, data.StatusCodes)
	require.Len(t, data.RecentErrors, 1)
	assert.Equal(t, "/api/v1/broken", data.RecentErrors[0].Path)
	require.Len(t, data.AvgResponseTimes, 2)
	assert.Equal(t, "/api/v1/broken", data.AvgResponseTimes[0].Endpoint)
}

func TestLoggingMiddlewareKeepsRequestID(t *testing.T) {
	s := NewMonitoringService()
	router := newMonitoredRouter(s)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/profiles", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	data := s.GetDashboardData(1)
	assert.Len(t, data.Endpoints, 1)
}

func TestLogRequestDropsOldestEntries(t *testing.T) {
	s := NewMonitoringService()
	for i := 0; i < maxLogEntries+5; i++ {
		s.LogRequest(LogEntry{Path: "/p", StatusCode: i})
	}

	assert.Len(t, s.logs, maxLogEntries)
	assert.Equal(t, 5, s.logs[0].StatusCode)
}

func TestGetDashboardDataExcludesOldEntries(t *testing.T) {
	fixed := time.Date(2026, 10, 18, 10, 30, 0, 0, time.UTC)
	s := NewMonitoringService()
	s.now = func() time.Time { return fixed }

	s.LogRequest(LogEntry{Path: "/old", StatusCode: 200, Timestamp: fixed.Add(-48 * time.Hour)})
	s.LogRequest(LogEntry{Path: "/new", StatusCode: 200, Timestamp: fixed.Add(-time.Hour)})

	data := s.GetDashboardData(24)
	assert.Equal(t, map[string]int{"/new": 1}, data.Endpoints)
	assert.Equal(t, 1, data.RequestsOverTime[22].Requests)
}
