package similarity

import (
	"fmt"
	"sort"
	"time"
)

// Scored 一列（食譜）的相似度分數
type Scored struct {
	Row   int
	Score float64
}

// Metadata 模型快照的描述資訊
type Metadata struct {
	Version     string
	Fingerprint string
	LoadedAt    time.Time
}

// Index 不可變的相似度索引快照，可被多個 goroutine 同時讀取
type Index struct {
	vectorizer *Vectorizer
	rows       []TermVector
	norms      []float64
	recipeIDs  []int64
	meta       Metadata
}

// NewIndex 組合 vectorizer、矩陣與 row -> recipe id 對照表
func NewIndex(v *Vectorizer, m *Matrix, recipeIDs []int64, meta Metadata) (*Index, error) {
	if v == nil || m == nil {
		return nil, fmt.Errorf("vectorizer and matrix are required")
	}
	if m.Cols() != v.Size() {
		return nil, fmt.Errorf("matrix has %d columns, vocabulary has %d terms", m.Cols(), v.Size())
	}
	if len(recipeIDs) != m.Rows() {
		return nil, fmt.Errorf("recipe id map has %d entries, matrix has %d rows", len(recipeIDs), m.Rows())
	}

	rows := make([]TermVector, m.Rows())
	norms := make([]float64, m.Rows())
	for i := range rows {
		rows[i] = m.Row(i)
		norms[i] = rows[i].Norm()
	}

	ids := make([]int64, len(recipeIDs))
	copy(ids, recipeIDs)

	if meta.LoadedAt.IsZero() {
		meta.LoadedAt = time.Now()
	}

	return &Index{
		vectorizer: v,
		rows:       rows,
		norms:      norms,
		recipeIDs:  ids,
		meta:       meta,
	}, nil
}

// Score 計算查詢文字與每一列的 cosine 相似度，依分數由高到低排序；同分保持列順序
func (idx *Index) Score(queryText string) []Scored {
	q := idx.vectorizer.Transform(queryText)
	qNorm := q.Norm()

	out := make([]Scored, len(idx.rows))
	for i, row := range idx.rows {
		out[i] = Scored{Row: i, Score: cosineWithNorms(q, row, qNorm, idx.norms[i])}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	return out
}

// RecipeID 取得列對應的食譜 ID
func (idx *Index) RecipeID(row int) (int64, bool) {
	if row < 0 || row >= len(idx.recipeIDs) {
		return 0, false
	}
	return idx.recipeIDs[row], true
}

// Rows 索引中的食譜數
func (idx *Index) Rows() int {
	return len(idx.rows)
}

// VocabularySize 詞彙表大小
func (idx *Index) VocabularySize() int {
	return idx.vectorizer.Size()
}

func (idx *Index) Metadata() Metadata {
	return idx.meta
}

func (idx *Index) Fingerprint() string {
	return idx.meta.Fingerprint
}
