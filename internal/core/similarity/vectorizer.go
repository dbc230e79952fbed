package similarity

import (
	"fmt"
	"math"
	"strings"
)

const defaultTokenPattern = `(?u)\b\w\w+\b`

// VectorizerSpec 離線訓練好的詞權重模型（TF-IDF）序列化格式
type VectorizerSpec struct {
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf"`
	Lowercase    *bool          `json:"lowercase,omitempty"`
	SublinearTF  bool           `json:"sublinear_tf"`
	Norm         string         `json:"norm"`
	NgramRange   [2]int         `json:"ngram_range"`
	TokenPattern string         `json:"token_pattern,omitempty"`
}

// Vectorizer 把文字轉成固定詞彙表上的稀疏向量；詞彙表外的 token 直接忽略
type Vectorizer struct {
	vocabulary  map[string]int
	idf         []float64
	lowercase   bool
	sublinearTF bool
	l2          bool
	minN, maxN  int
	token       *tokenizer
}

// NewVectorizer 驗證並建立 Vectorizer
func NewVectorizer(spec VectorizerSpec) (*Vectorizer, error) {
	size := len(spec.Vocabulary)
	if size == 0 {
		return nil, fmt.Errorf("vocabulary is empty")
	}

	seen := make([]bool, size)
	for term, idx := range spec.Vocabulary {
		if idx < 0 || idx >= size {
			return nil, fmt.Errorf("term %q has column %d outside [0,%d)", term, idx, size)
		}
		if seen[idx] {
			return nil, fmt.Errorf("column %d is assigned to more than one term", idx)
		}
		seen[idx] = true
	}

	idf := spec.IDF
	if len(idf) == 0 {
		idf = make([]float64, size)
		for i := range idf {
			idf[i] = 1
		}
	} else if len(idf) != size {
		return nil, fmt.Errorf("idf has %d weights, vocabulary has %d terms", len(idf), size)
	}
	for i, w := range idf {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("idf weight %d is not finite", i)
		}
	}

	minN, maxN := spec.NgramRange[0], spec.NgramRange[1]
	if minN == 0 && maxN == 0 {
		minN, maxN = 1, 1
	}
	if minN < 1 || maxN < minN {
		return nil, fmt.Errorf("invalid ngram range [%d,%d]", minN, maxN)
	}

	var l2 bool
	switch strings.ToLower(spec.Norm) {
	case "", "l2":
		l2 = true
	case "none":
	default:
		return nil, fmt.Errorf("unsupported norm %q", spec.Norm)
	}

	pattern := spec.TokenPattern
	if pattern == "" {
		pattern = defaultTokenPattern
	}
	token, err := compileTokenPattern(pattern)
	if err != nil {
		return nil, err
	}

	lowercase := true
	if spec.Lowercase != nil {
		lowercase = *spec.Lowercase
	}

	vocab := make(map[string]int, size)
	for term, idx := range spec.Vocabulary {
		vocab[term] = idx
	}

	return &Vectorizer{
		vocabulary:  vocab,
		idf:         idf,
		lowercase:   lowercase,
		sublinearTF: spec.SublinearTF,
		l2:          l2,
		minN:        minN,
		maxN:        maxN,
		token:       token,
	}, nil
}

// Size 詞彙表大小，即向量維度
func (v *Vectorizer) Size() int {
	return len(v.idf)
}

// Tokens 依模型的 token 規則切詞並產生 n-gram
func (v *Vectorizer) Tokens(text string) []string {
	if v.lowercase {
		text = strings.ToLower(text)
	}
	words := v.token.split(text)
	if v.minN == 1 && v.maxN == 1 {
		return words
	}

	var out []string
	for n := v.minN; n <= v.maxN; n++ {
		for i := 0; i+n <= len(words); i++ {
			out = append(out, strings.Join(words[i:i+n], " "))
		}
	}
	return out
}

// Transform 將文字轉為 TermVector
func (v *Vectorizer) Transform(text string) TermVector {
	counts := make(map[int]float64)
	for _, tok := range v.Tokens(text) {
		if idx, ok := v.vocabulary[tok]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	var sumSquares float64
	for idx, tf := range counts {
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		w := tf * v.idf[idx]
		counts[idx] = w
		sumSquares += w * w
	}

	if v.l2 && sumSquares > 0 {
		n := math.Sqrt(sumSquares)
		for idx := range counts {
			counts[idx] /= n
		}
	}
	return NewTermVector(counts)
}
