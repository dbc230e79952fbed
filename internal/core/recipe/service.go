package recipe

import (
	"context"
	"strconv"
	"time"

	"recipe-recommender/internal/core/cache"
	"recipe-recommender/internal/core/ingredient"
	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// CatalogSource 食材目錄（每一筆食譜用到的食材）
type CatalogSource interface {
	ListIngredients(ctx context.Context) ([]ingredient.CatalogEntry, error)
}

// RecipeResolver 依 ID 取得食譜摘要，不存在的 ID 直接略過
type RecipeResolver interface {
	ResolveRecipes(ctx context.Context, ids []int64) ([]common.RecipeSummary, error)
}

// Observer 接收每次推薦的結果統計
type Observer interface {
	ObserveRecommendation(resultCount int, cacheHit bool, duration time.Duration, err error)
}

// RecommendationService 推薦 + 快取 + 食譜摘要解析
type RecommendationService struct {
	recommender *Recommender
	resolver    RecipeResolver
	cache       cache.Store
	observer    Observer
}

// NewRecommendationService store 與 observer 可為 nil
func NewRecommendationService(recommender *Recommender, resolver RecipeResolver, store cache.Store, observer Observer) *RecommendationService {
	return &RecommendationService{
		recommender: recommender,
		resolver:    resolver,
		cache:       store,
		observer:    observer,
	}
}

// RecommendIDs 回傳排序好的食譜 ID
func (s *RecommendationService) RecommendIDs(ctx context.Context, ingredients []string) ([]int64, error) {
	start := time.Now()
	ids, query, hit, err := s.recommendIDs(ctx, ingredients)
	s.observe(query, len(ids), hit, time.Since(start), err)
	return ids, err
}

// Recommend 回傳排序好的食譜摘要；解析不到的 ID 會被略過
func (s *RecommendationService) Recommend(ctx context.Context, ingredients []string) ([]common.RecipeSummary, error) {
	start := time.Now()
	ids, query, hit, err := s.recommendIDs(ctx, ingredients)
	if err != nil {
		s.observe(query, 0, hit, time.Since(start), err)
		return nil, err
	}

	recipes := make([]common.RecipeSummary, 0)
	if len(ids) > 0 {
		found, err := s.resolver.ResolveRecipes(ctx, ids)
		if err != nil {
			err = WrapError(ErrUpstream, "resolve recipes", err)
			s.observe(query, 0, hit, time.Since(start), err)
			return nil, err
		}
		recipes = common.OrderRecipes(ids, found)
	}

	s.observe(query, len(recipes), hit, time.Since(start), nil)
	return recipes, nil
}

func (s *RecommendationService) recommendIDs(ctx context.Context, ingredients []string) ([]int64, string, bool, error) {
	idx, query, err := s.recommender.prepare(ctx, ingredients)
	if err != nil {
		return nil, query, false, err
	}

	common.LogDebug("推薦查詢",
		zap.Strings("original", ingredients),
		zap.String("search_text", query),
	)

	opts := s.recommender.Options()
	key := cache.Key("recommend",
		idx.Fingerprint(),
		query,
		strconv.Itoa(opts.TopN),
		strconv.FormatFloat(opts.MinScore, 'g', -1, 64),
	)

	if ids, ok := s.fromCache(ctx, key); ok {
		return ids, query, true, nil
	}

	ids := RecommendWithIndex(idx, query, opts)
	s.toCache(ctx, key, ids)
	return ids, query, false, nil
}

func (s *RecommendationService) fromCache(ctx context.Context, key string) ([]int64, bool) {
	if s.cache == nil {
		return nil, false
	}
	val, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		common.LogWarn("讀取推薦快取失敗", zap.Error(err))
		return nil, false
	}
	if !ok {
		common.LogCacheMiss("recommend")
		return nil, false
	}

	var ids []int64
	if err := common.ParseJSON(val, &ids); err != nil {
		common.LogWarn("推薦快取內容無法解析", zap.Error(err))
		return nil, false
	}
	common.LogCacheHit("recommend")
	if ids == nil {
		ids = []int64{}
	}
	return ids, true
}

func (s *RecommendationService) toCache(ctx context.Context, key string, ids []int64) {
	if s.cache == nil {
		return
	}
	val, err := common.ToJSON(ids)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, val); err != nil {
		common.LogWarn("寫入推薦快取失敗", zap.Error(err))
	}
}

func (s *RecommendationService) observe(query string, count int, hit bool, d time.Duration, err error) {
	common.LogRecommendation(query, count, d, err)
	if s.observer != nil {
		s.observer.ObserveRecommendation(count, hit, d, err)
	}
}

// VocabularyService 依目錄即時產生分類食材清單
type VocabularyService struct {
	catalog CatalogSource
	opts    ingredient.VocabularyOptions
}

func NewVocabularyService(catalog CatalogSource, opts ingredient.VocabularyOptions) *VocabularyService {
	return &VocabularyService{catalog: catalog, opts: opts}
}

// GetCategorizedVocabulary 每次呼叫都重新讀取目錄並彙整
func (s *VocabularyService) GetCategorizedVocabulary(ctx context.Context) (ingredient.Vocabulary, error) {
	entries, err := s.catalog.ListIngredients(ctx)
	if err != nil {
		return nil, WrapError(ErrUpstream, "list ingredients", err)
	}

	vocab := ingredient.BuildVocabulary(entries, s.opts)
	common.LogDebug("食材分類完成",
		zap.Int("catalog_rows", len(entries)),
		zap.Int("entries", vocab.Total()),
	)
	return vocab, nil
}
