package middleware

import (
	"context"
	"net/http"

	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ConfigKey = "config"
	ModelKey  = "model"
)

// RequestContext 設定請求逾時並把設定與模型狀態注入 gin context
func RequestContext(cfg *config.Config, model interface{}) gin.HandlerFunc {
	timeout := cfg.Server.RequestTimeout

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
			c.Request = c.Request.WithContext(ctx)
		}

		c.Set(ConfigKey, cfg)
		if model != nil {
			c.Set(ModelKey, model)
		}

		c.Next()

		// handler 沒有回應且已逾時
		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeout),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, common.ErrGatewayTimeout.Response(false))
		}
	}
}

// Config 取出注入的設定
func Config(c *gin.Context) (*config.Config, bool) {
	v, ok := c.Get(ConfigKey)
	if !ok {
		return nil, false
	}
	cfg, ok := v.(*config.Config)
	return cfg, ok
}

// Debug 目前是否回傳錯誤細節
func Debug(c *gin.Context) bool {
	cfg, ok := Config(c)
	return ok && cfg.App.Debug
}
