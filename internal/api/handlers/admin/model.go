package admin

import (
	"net/http"

	"recipe-recommender/internal/api/middleware"
	"recipe-recommender/internal/core/similarity"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// ModelReloader 重新載入模型檔案
type ModelReloader interface {
	Reload() (*similarity.Index, error)
}

// HandleModelReload POST /api/v1/admin/model/reload，失敗時保留原本的模型；
// 載入結果的日誌由 Reloader 的 hook 負責
func HandleModelReload(reloader ModelReloader) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, err := reloader.Reload()
		if err != nil {
			ce := common.ErrModelUnavailable.WithError(err)
			c.AbortWithStatusJSON(ce.Status, ce.Response(middleware.Debug(c)))
			return
		}

		meta := idx.Metadata()
		c.JSON(http.StatusOK, gin.H{
			"status":      "reloaded",
			"version":     meta.Version,
			"fingerprint": meta.Fingerprint,
			"recipes":     idx.Rows(),
			"vocabulary":  idx.VocabularySize(),
			"loaded_at":   meta.LoadedAt,
		})
	}
}
