package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-recommender/internal/api/middleware"
	"recipe-recommender/internal/core/similarity"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// ModelSource 目前的模型快照
type ModelSource interface {
	Current() *similarity.Index
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Model     ModelStatus            `json:"model"`
}

// ModelStatus 模型狀態
type ModelStatus struct {
	Available   bool      `json:"available"`
	Version     string    `json:"version,omitempty"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	Recipes     int       `json:"recipes,omitempty"`
	LoadedAt    time.Time `json:"loaded_at,omitempty"`
}

func modelStatus(c *gin.Context) ModelStatus {
	v, ok := c.Get(middleware.ModelKey)
	if !ok {
		return ModelStatus{}
	}
	src, ok := v.(ModelSource)
	if !ok {
		return ModelStatus{}
	}
	idx := src.Current()
	if idx == nil {
		return ModelStatus{}
	}
	meta := idx.Metadata()
	return ModelStatus{
		Available:   true,
		Version:     meta.Version,
		Fingerprint: meta.Fingerprint,
		Recipes:     idx.Rows(),
		LoadedAt:    meta.LoadedAt,
	}
}

// HealthCheck 健康檢查處理器；模型未載入時狀態為 degraded，但仍回 200
func HealthCheck(c *gin.Context) {
	cfg, ok := middleware.Config(c)
	if !ok {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, common.ErrInternalError.Response(false))
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	model := modelStatus(c)
	status := "ok"
	if !model.Available {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Model: model,
	})
}

// ReadinessCheck 模型未載入時回 503
func ReadinessCheck(c *gin.Context) {
	model := modelStatus(c)
	if !model.Available {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"model":  "unavailable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"model":  model.Fingerprint,
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
