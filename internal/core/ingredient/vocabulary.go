package ingredient

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category 食材顯示分類
type Category string

const (
	CategoryProtein   Category = "Protein"
	CategoryVegetable Category = "Vegetable"
	CategorySeasoning Category = "Seasoning"
	CategoryGrain     Category = "Grain"
	CategoryOther     Category = "Other"
)

// Label 對外 API 使用的分類名稱
func (c Category) Label() string {
	switch c {
	case CategoryProtein:
		return "Protein"
	case CategoryVegetable:
		return "Sayuran"
	case CategorySeasoning:
		return "Bumbu"
	case CategoryGrain:
		return "Biji-bijian"
	default:
		return "Lainnya"
	}
}

// CategoryKeywords 一個分類與其關鍵字集合
type CategoryKeywords struct {
	Category Category
	Keywords []string
}

// categoryTable 依優先順序排列；沒有命中任何關鍵字的歸入 Other
var categoryTable = []CategoryKeywords{
	{CategoryProtein, []string{"ayam", "daging sapi", "ikan", "udang", "telur", "tahu", "tempe"}},
	{CategoryVegetable, []string{"bawang", "wortel", "kentang", "tomat", "seledri", "sawi", "kangkung", "bayam"}},
	{CategorySeasoning, []string{"garam", "lada", "merica", "kunyit", "ketumbar", "jahe", "lengkuas", "cabai", "cabe"}},
	{CategoryGrain, []string{"beras", "nasi", "mie", "tepung"}},
}

// Categories 所有分類，Other 一定在最後
func Categories() []Category {
	out := make([]Category, 0, len(categoryTable)+1)
	for _, ck := range categoryTable {
		out = append(out, ck.Category)
	}
	return append(out, CategoryOther)
}

// Classify 將標準食材名稱歸入唯一的分類
func Classify(canonical string) Category {
	for _, ck := range categoryTable {
		for _, kw := range ck.Keywords {
			if strings.Contains(canonical, kw) {
				return ck.Category
			}
		}
	}
	return CategoryOther
}

// CatalogEntry 食材目錄中的一筆資料
type CatalogEntry struct {
	RawName      string
	CategoryHint string
}

const (
	DefaultMinUsage       = 10
	DefaultMaxPerCategory = 20
)

// VocabularyOptions 分類清單的門檻與上限。
// MinUsage 為 0 表示不過濾；負數與 MaxPerCategory <= 0 會套用預設值。
type VocabularyOptions struct {
	MinUsage       int
	MaxPerCategory int
}

// DefaultVocabularyOptions 預設門檻 10 次、每類最多 20 項
func DefaultVocabularyOptions() VocabularyOptions {
	return VocabularyOptions{MinUsage: DefaultMinUsage, MaxPerCategory: DefaultMaxPerCategory}
}

func (o VocabularyOptions) normalize() VocabularyOptions {
	if o.MinUsage < 0 {
		o.MinUsage = DefaultMinUsage
	}
	if o.MaxPerCategory <= 0 {
		o.MaxPerCategory = DefaultMaxPerCategory
	}
	return o
}

// Vocabulary 分類 -> 排序後的顯示名稱
type Vocabulary map[Category][]string

// Labeled 以對外分類名稱為 key 輸出
func (v Vocabulary) Labeled() map[string][]string {
	out := make(map[string][]string, len(v))
	for _, c := range Categories() {
		names := v[c]
		if names == nil {
			names = []string{}
		}
		out[c.Label()] = names
	}
	return out
}

// Total 所有分類的食材總數
func (v Vocabulary) Total() int {
	n := 0
	for _, names := range v {
		n += len(names)
	}
	return n
}

// CountUsage 以標準食材名稱統計目錄中的出現次數
func CountUsage(catalog []CatalogEntry) map[string]int {
	counts := make(map[string]int)
	for _, entry := range catalog {
		counts[Canonicalize(entry.RawName)]++
	}
	return counts
}

// BuildVocabulary 由目錄產生分類清單：統計、過濾冷門食材、分類、排序、截斷。
// 一定回傳五個分類，即使目錄為空。
func BuildVocabulary(catalog []CatalogEntry, opts VocabularyOptions) Vocabulary {
	opts = opts.normalize()

	buckets := make(map[Category][]string, len(categoryTable)+1)
	for name, count := range CountUsage(catalog) {
		if name == "" || count < opts.MinUsage {
			continue
		}
		c := Classify(name)
		buckets[c] = append(buckets[c], name)
	}

	title := cases.Title(language.Indonesian)
	vocab := make(Vocabulary, len(categoryTable)+1)
	for _, c := range Categories() {
		names := buckets[c]
		sort.Strings(names)
		if len(names) > opts.MaxPerCategory {
			names = names[:opts.MaxPerCategory]
		}

		display := make([]string, len(names))
		for i, n := range names {
			display[i] = title.String(n)
		}
		vocab[c] = display
	}
	return vocab
}
