// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"worldexplorer/internal/api"
)

// Health は /health エンドポイントを処理します。
// レスポンスには稼働環境名を含め、キャッシュを防止します。
func Health(environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
		default:
			c.JSON(http.StatusOK, api.HealthResponse{Status: "ok", Environment: environment})
		}
	}
}
