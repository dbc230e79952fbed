package similarity

import (
	"fmt"
	"math"
)

// MatrixSpec CSR 格式的文件-詞矩陣，每列是一份食譜
type MatrixSpec struct {
	Shape   [2]int    `json:"shape"`
	Indptr  []int     `json:"indptr"`
	Indices []int     `json:"indices"`
	Data    []float64 `json:"data"`
}

// Matrix 載入後不可變的文件-詞矩陣
type Matrix struct {
	rows []TermVector
	cols int
}

// NewMatrix 驗證 CSR 結構並把每一列轉成 TermVector
func NewMatrix(spec MatrixSpec) (*Matrix, error) {
	nRows, nCols := spec.Shape[0], spec.Shape[1]
	if nRows < 0 || nCols <= 0 {
		return nil, fmt.Errorf("invalid shape [%d,%d]", nRows, nCols)
	}
	if len(spec.Indptr) != nRows+1 {
		return nil, fmt.Errorf("indptr has %d entries, want %d", len(spec.Indptr), nRows+1)
	}
	if len(spec.Indices) != len(spec.Data) {
		return nil, fmt.Errorf("indices (%d) and data (%d) differ in length", len(spec.Indices), len(spec.Data))
	}
	if spec.Indptr[0] != 0 || spec.Indptr[nRows] != len(spec.Data) {
		return nil, fmt.Errorf("indptr must start at 0 and end at %d", len(spec.Data))
	}

	for r := 0; r < nRows; r++ {
		if spec.Indptr[r+1] < spec.Indptr[r] {
			return nil, fmt.Errorf("indptr decreases at row %d", r)
		}
	}

	rows := make([]TermVector, nRows)
	for r := 0; r < nRows; r++ {
		start, end := spec.Indptr[r], spec.Indptr[r+1]
		weights := make(map[int]float64, end-start)
		for k := start; k < end; k++ {
			col := spec.Indices[k]
			if col < 0 || col >= nCols {
				return nil, fmt.Errorf("row %d references column %d outside [0,%d)", r, col, nCols)
			}
			w := spec.Data[k]
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, fmt.Errorf("row %d has a non-finite weight", r)
			}
			weights[col] += w
		}
		rows[r] = NewTermVector(weights)
	}

	return &Matrix{rows: rows, cols: nCols}, nil
}

// Rows 列數（食譜數）
func (m *Matrix) Rows() int {
	return len(m.rows)
}

// Cols 欄數（詞彙表大小）
func (m *Matrix) Cols() int {
	return m.cols
}

// Row 取得第 i 列
func (m *Matrix) Row(i int) TermVector {
	return m.rows[i]
}
