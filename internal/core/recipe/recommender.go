package recipe

import (
	"context"
	"strings"

	"recipe-recommender/internal/core/ingredient"
	"recipe-recommender/internal/core/similarity"
)

const (
	DefaultTopN     = 20
	DefaultMinScore = 0.01
)

// IndexSource 提供目前的模型快照，尚未載入時回傳 nil
type IndexSource interface {
	Current() *similarity.Index
}

// Options 推薦結果的數量上限與分數門檻（分數需嚴格大於 MinScore）
type Options struct {
	TopN     int
	MinScore float64
}

func DefaultOptions() Options {
	return Options{TopN: DefaultTopN, MinScore: DefaultMinScore}
}

func (o Options) normalize() Options {
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	return o
}

// Recommender 依食材清單找出最相似的食譜 ID
type Recommender struct {
	source IndexSource
	opts   Options
}

func NewRecommender(source IndexSource, opts Options) *Recommender {
	return &Recommender{source: source, opts: opts.normalize()}
}

func (r *Recommender) Options() Options {
	return r.opts
}

// Recommend 回傳依相似度排序的食譜 ID，沒有相符結果時回傳空切片
func (r *Recommender) Recommend(ctx context.Context, raw []string) ([]int64, error) {
	idx, query, err := r.prepare(ctx, raw)
	if err != nil {
		return nil, err
	}
	return RecommendWithIndex(idx, query, r.opts), nil
}

// prepare 驗證輸入並取得本次請求使用的快照
func (r *Recommender) prepare(ctx context.Context, raw []string) (*similarity.Index, string, error) {
	if len(raw) == 0 {
		return nil, "", WrapError(ErrInvalidInput, "recommend", nil)
	}

	var idx *similarity.Index
	if r.source != nil {
		idx = r.source.Current()
	}
	if idx == nil {
		return nil, "", WrapError(ErrModelUnavailable, "recommend", nil)
	}

	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	return idx, QueryText(raw), nil
}

// QueryText 正規化每個食材並以單一空白串接
func QueryText(raw []string) string {
	parts := make([]string, 0, len(raw))
	for _, name := range ingredient.CanonicalizeAll(raw) {
		if name != "" {
			parts = append(parts, name)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// RecommendWithIndex 對指定快照評分並套用門檻與數量上限
func RecommendWithIndex(idx *similarity.Index, queryText string, opts Options) []int64 {
	opts = opts.normalize()
	ids := make([]int64, 0, opts.TopN)
	if queryText == "" {
		return ids
	}

	for _, s := range idx.Score(queryText) {
		if len(ids) >= opts.TopN {
			break
		}
		// 已排序，之後的分數只會更低
		if s.Score <= opts.MinScore {
			break
		}
		if id, ok := idx.RecipeID(s.Row); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
