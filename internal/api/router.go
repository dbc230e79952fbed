package api

import (
	"time"

	"recipe-recommender/internal/api/handlers/admin"
	"recipe-recommender/internal/api/handlers/health"
	"recipe-recommender/internal/api/handlers/recommend"
	"recipe-recommender/internal/api/middleware"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/observability/metrics"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies 路由需要的服務；Reloader 與 Metrics 可為 nil
type Dependencies struct {
	Recommendations recommend.Recommender
	Vocabulary      recommend.VocabularyProvider
	Model           health.ModelSource
	Reloader        admin.ModelReloader
	Metrics         *metrics.Metrics
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.RequestContext(cfg, deps.Model))

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	handler := recommend.NewHandler(deps.Recommendations, deps.Vocabulary)

	api := router.Group("/api/v1")
	{
		api.GET("/ingredients-by-category", handler.HandleIngredientsByCategory)
		api.POST("/recommendations", handler.HandleRecommendations)
		api.POST("/recommendations/ids", handler.HandleRecommendationIDs)

		if cfg.Model.ReloadEndpoint && deps.Reloader != nil {
			api.POST("/admin/model/reload", admin.HandleModelReload(deps.Reloader))
		}
	}

	common.LogInfo("Router setup completed",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Bool("reload_endpoint", cfg.Model.ReloadEndpoint && deps.Reloader != nil),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}
