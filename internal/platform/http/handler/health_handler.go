// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brightloop_backend/internal/api"
	"brightloop_backend/internal/platform/logger"
)

// Pinger はヘルスチェック対象の依存先です。
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc は関数をPingerとして扱うためのアダプターです。
type PingFunc func(ctx context.Context) error

// Ping はf(ctx)を呼び出します。
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler はサービスのヘルスチェックを処理します。
type HealthHandler struct {
	db  Pinger
	now func() time.Time
}

// NewHealthHandler はHealthHandlerを生成します。dbがnilの場合はDBの確認を省略します。
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, now: time.Now}
}

// Health はサービスヘルスチェック用エンドポイントを処理します。
// DBに到達できない場合は503を返します。キャッシュは常に無効化します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
		return
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	}

	resp := api.HealthResponse{Status: "OK", Timestamp: h.now().UTC()}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			logger.FromContext(c.Request.Context()).Warn("health check: database unreachable", zap.Error(err))
			resp.Status = "DEGRADED"
			resp.Database = "unreachable"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		resp.Database = "ok"
	}
	c.JSON(http.StatusOK, resp)
}
