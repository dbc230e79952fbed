package recommend

import (
	"context"
	"errors"
	"io"
	"net/http"

	"recipe-recommender/internal/api/middleware"
	"recipe-recommender/internal/core/ingredient"
	"recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/infrastructure/resilience"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recommender 推薦服務
type Recommender interface {
	Recommend(ctx context.Context, ingredients []string) ([]common.RecipeSummary, error)
	RecommendIDs(ctx context.Context, ingredients []string) ([]int64, error)
}

// VocabularyProvider 分類食材清單
type VocabularyProvider interface {
	GetCategorizedVocabulary(ctx context.Context) (ingredient.Vocabulary, error)
}

// Request 推薦請求
type Request struct {
	Ingredients []string `json:"ingredients"`
}

// IDsResponse 僅含排序後的食譜 ID
type IDsResponse struct {
	IDs []int64 `json:"ids"`
}

type Handler struct {
	recommender Recommender
	vocabulary  VocabularyProvider
}

func NewHandler(recommender Recommender, vocabulary VocabularyProvider) *Handler {
	return &Handler{recommender: recommender, vocabulary: vocabulary}
}

// HandleRecommendations POST /api/v1/recommendations
func (h *Handler) HandleRecommendations(c *gin.Context) {
	ingredients, ok := bindIngredients(c)
	if !ok {
		return
	}

	recipes, err := h.recommender.Recommend(c.Request.Context(), ingredients)
	if err != nil {
		respondError(c, err)
		return
	}
	if recipes == nil {
		recipes = []common.RecipeSummary{}
	}
	c.JSON(http.StatusOK, recipes)
}

// HandleRecommendationIDs POST /api/v1/recommendations/ids
func (h *Handler) HandleRecommendationIDs(c *gin.Context) {
	ingredients, ok := bindIngredients(c)
	if !ok {
		return
	}

	ids, err := h.recommender.RecommendIDs(c.Request.Context(), ingredients)
	if err != nil {
		respondError(c, err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}
	c.JSON(http.StatusOK, IDsResponse{IDs: ids})
}

// HandleIngredientsByCategory GET /api/v1/ingredients-by-category
func (h *Handler) HandleIngredientsByCategory(c *gin.Context) {
	vocab, err := h.vocabulary.GetCategorizedVocabulary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vocab.Labeled())
}

func bindIngredients(c *gin.Context) ([]string, bool) {
	// 未帶 Content-Length 的超大請求由 MaxBytesReader 在讀取時截斷
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, common.ErrBodyTooLarge.WithError(err))
			return nil, false
		}
		writeError(c, common.ErrInvalidRequest.WithError(err))
		return nil, false
	}

	var req Request
	if err := common.ParseJSONBytes(body, &req); err != nil {
		common.LogWarn("無法解析推薦請求",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		writeError(c, common.ErrInvalidRequest.WithError(err))
		return nil, false
	}
	if len(req.Ingredients) == 0 {
		writeError(c, common.ErrIngredientsMissing)
		return nil, false
	}
	return req.Ingredients, true
}

// respondError 將領域錯誤轉為 HTTP 錯誤
func respondError(c *gin.Context, err error) {
	var ce *common.CustomError
	switch {
	case recipe.IsKind(err, recipe.ErrInvalidInput):
		ce = common.ErrIngredientsMissing.WithError(err)
	case recipe.IsKind(err, recipe.ErrModelUnavailable):
		ce = common.ErrModelUnavailable.WithError(err)
	case errors.Is(err, context.DeadlineExceeded):
		ce = common.ErrGatewayTimeout.WithError(err)
	case resilience.IsCircuitOpen(err):
		ce = common.ErrServiceUnavailable.WithError(err)
	default:
		ce = common.AsCustomError(err)
	}

	if ce.Status >= http.StatusInternalServerError {
		common.LogError("請求處理失敗",
			zap.Error(err),
			zap.String("code", ce.Code),
			zap.String("request_id", requestid.Get(c)),
		)
	}
	writeError(c, ce)
}

func writeError(c *gin.Context, ce *common.CustomError) {
	_ = c.Error(ce)
	c.AbortWithStatusJSON(ce.Status, ce.Response(middleware.Debug(c)))
}
