package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-recommender/internal/api"
	"recipe-recommender/internal/core/cache"
	"recipe-recommender/internal/core/ingredient"
	"recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/core/similarity"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/infrastructure/recipeapi"
	"recipe-recommender/internal/infrastructure/repository/postgres"
	"recipe-recommender/internal/infrastructure/resilience"
	"recipe-recommender/internal/observability/metrics"
	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（.env 由 LoadConfig 處理）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("env", cfg.App.Env),
		zap.String("model_dir", cfg.Model.Dir),
		zap.String("resolver", cfg.Resolver.Backend),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	m := metrics.New(cfg.App.Name)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStart()

	// 食材目錄與食譜資料庫
	db, err := postgres.OpenDB(startCtx, cfg.Database)
	if err != nil {
		common.LogFatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	catalog := postgres.NewCatalogRepository(db, resilience.NewBreaker("catalog", cfg.Breaker))

	var resolver recipe.RecipeResolver
	switch cfg.Resolver.Backend {
	case "http":
		resolver = recipeapi.NewClient(cfg.Resolver, resilience.NewBreaker("recipe-api", cfg.Breaker))
	default:
		resolver = postgres.NewRecipeRepository(db, resilience.NewBreaker("recipes", cfg.Breaker))
	}

	store := newCacheStore(startCtx, cfg)
	if store != nil {
		defer store.Close()
	}

	// 相似度模型；載入失敗時以降級模式啟動
	holder := similarity.NewHolder()
	reloader := similarity.NewReloader(holder, modelPaths(cfg.Model), func(idx *similarity.Index, err error) {
		m.ObserveReload(err)
		m.SetModelAvailable(holder.Available())
		if err != nil {
			common.LogWarn("模型不可用，推薦功能降級", zap.Error(err))
			return
		}
		common.LogInfo("模型已載入",
			zap.String("version", idx.Metadata().Version),
			zap.String("fingerprint", idx.Fingerprint()),
			zap.Int("recipes", idx.Rows()),
			zap.Int("vocabulary", idx.VocabularySize()),
		)
	})
	_, _ = reloader.Reload()

	recommender := recipe.NewRecommender(holder, recipe.Options{
		TopN:     cfg.Recommend.TopN,
		MinScore: cfg.Recommend.MinScore,
	})
	recommendations := recipe.NewRecommendationService(recommender, resolver, store, m)
	vocabulary := recipe.NewVocabularyService(catalog, ingredient.VocabularyOptions{
		MinUsage:       cfg.Vocabulary.MinUsage,
		MaxPerCategory: cfg.Vocabulary.MaxPerCategory,
	})

	router := api.SetupRouter(cfg, api.Dependencies{
		Recommendations: recommendations,
		Vocabulary:      vocabulary,
		Model:           holder,
		Reloader:        reloader,
		Metrics:         m,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
			zap.Bool("model_available", holder.Available()),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// SIGHUP 重新載入模型，SIGINT/SIGTERM 關閉
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range signals {
		if sig == syscall.SIGHUP {
			common.LogInfo("收到 SIGHUP，重新載入模型")
			_, _ = reloader.Reload()
			continue
		}
		break
	}
	signal.Stop(signals)

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo("Server exited")
}

func modelPaths(cfg config.ModelConfig) similarity.Paths {
	return similarity.Paths{
		Dir:         cfg.Dir,
		Manifest:    cfg.Manifest,
		Vectorizer:  cfg.Vectorizer,
		Matrix:      cfg.Matrix,
		RecipeIDMap: cfg.RecipeIDMap,
	}
}

// newCacheStore 快取不可用時不影響推薦，只是不快取
func newCacheStore(ctx context.Context, cfg *config.Config) cache.Store {
	if !cfg.Cache.Enabled {
		return nil
	}
	if cfg.Cache.Backend == "redis" {
		store, err := cache.NewRedisStore(ctx, cfg.Redis, cfg.Cache.TTL)
		if err != nil {
			common.LogWarn("Redis 快取不可用，停用推薦快取", zap.Error(err))
			return nil
		}
		return store
	}
	return cache.NewManager(cfg.Cache)
}
