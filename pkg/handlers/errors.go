package handlers

import (
	"errors"
	"net/http"

	"wfm-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// respondError はエラー種別に応じたステータスコードでエラーを返す
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidConfiguration):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrDataSourceUnavailable):
		status = http.StatusServiceUnavailable
	}

	body := gin.H{
		"success": false,
		"error":   message + ": " + err.Error(),
	}
	var ce *services.ConfigError
	if errors.As(err, &ce) {
		body["field"] = ce.Field
	}
	c.JSON(status, body)
}

// respondBindError はリクエストボディの解析失敗を返す
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "リクエストの解析に失敗しました: " + err.Error(),
	})
}
