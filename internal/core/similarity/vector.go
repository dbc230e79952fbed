package similarity

import (
	"math"
	"sort"
)

// Term 稀疏向量中的一個維度與權重
type Term struct {
	Index  int
	Weight float64
}

// TermVector 依 Index 排序的稀疏向量，建立後不再修改
type TermVector []Term

// NewTermVector 由 index -> weight 建立排序好的向量，權重為 0 的維度會被略過
func NewTermVector(weights map[int]float64) TermVector {
	if len(weights) == 0 {
		return nil
	}
	v := make(TermVector, 0, len(weights))
	for idx, w := range weights {
		if w == 0 {
			continue
		}
		v = append(v, Term{Index: idx, Weight: w})
	}
	if len(v) == 0 {
		return nil
	}
	sort.Slice(v, func(i, j int) bool {
		return v[i].Index < v[j].Index
	})
	return v
}

// Norm L2 範數
func (v TermVector) Norm() float64 {
	var sum float64
	for _, t := range v {
		sum += t.Weight * t.Weight
	}
	return math.Sqrt(sum)
}

// Dot 以 merge-join 計算內積，O(n+m)
func Dot(a, b TermVector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Index == b[j].Index:
			dot += a[i].Weight * b[j].Weight
			i++
			j++
		case a[i].Index < b[j].Index:
			i++
		default:
			j++
		}
	}
	return dot
}

// CosineSimilarity 任一向量為零向量時回傳 0
func CosineSimilarity(a, b TermVector) float64 {
	return cosineWithNorms(a, b, a.Norm(), b.Norm())
}

func cosineWithNorms(a, b TermVector, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := Dot(a, b) / (normA * normB)
	// 浮點誤差
	if sim > 1 {
		return 1
	}
	if sim < -1 {
		return -1
	}
	return sim
}
