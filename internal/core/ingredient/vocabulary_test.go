package ingredient

import (
	"fmt"
	"sort"
	"testing"
)

func repeat(name string, n int) []CatalogEntry {
	out := make([]CatalogEntry, n)
	for i := range out {
		out[i] = CatalogEntry{RawName: name, CategoryHint: "lainnya"}
	}
	return out
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func TestBuildVocabularyPopularityFilter(t *testing.T) {
	var catalog []CatalogEntry
	catalog = append(catalog, repeat("tomat", 9)...)
	catalog = append(catalog, repeat("Ayam", 12)...)

	vocab := BuildVocabulary(catalog, VocabularyOptions{MinUsage: 10, MaxPerCategory: 20})

	if !contains(vocab[CategoryProtein], "Ayam") {
		t.Fatalf("expected Ayam under Protein, got %v", vocab[CategoryProtein])
	}
	for c, names := range vocab {
		if contains(names, "Tomat") {
			t.Fatalf("tomat has 9 usages and must be filtered, found under %s", c)
		}
	}
}

func TestBuildVocabularyDuplicatesAccumulate(t *testing.T) {
	// 不同原始名稱對應到同一個標準名稱時要累加
	catalog := []CatalogEntry{}
	catalog = append(catalog, repeat("cabe rawit", 5)...)
	catalog = append(catalog, repeat("cabai merah", 5)...)

	vocab := BuildVocabulary(catalog, VocabularyOptions{MinUsage: 10, MaxPerCategory: 20})
	if !contains(vocab[CategorySeasoning], "Cabai") {
		t.Fatalf("expected accumulated Cabai under Seasoning, got %v", vocab[CategorySeasoning])
	}
}

func TestBuildVocabularyEmptyCatalogHasAllCategories(t *testing.T) {
	vocab := BuildVocabulary(nil, DefaultVocabularyOptions())

	if len(vocab) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(vocab))
	}
	for _, c := range Categories() {
		names, ok := vocab[c]
		if !ok {
			t.Fatalf("missing category %s", c)
		}
		if names == nil || len(names) != 0 {
			t.Fatalf("category %s should be an empty list, got %#v", c, names)
		}
	}
}

func TestBuildVocabularyCapAndSort(t *testing.T) {
	var catalog []CatalogEntry
	for i := 0; i < 30; i++ {
		catalog = append(catalog, repeat(fmt.Sprintf("ikan %02d", 29-i), 2)...)
	}

	vocab := BuildVocabulary(catalog, VocabularyOptions{MinUsage: 1, MaxPerCategory: 20})
	protein := vocab[CategoryProtein]
	// 所有 "ikan xx" 都會被正規化成 "ikan"
	if len(protein) != 1 || protein[0] != "Ikan" {
		t.Fatalf("expected a single Ikan entry, got %v", protein)
	}

	catalog = catalog[:0]
	for i := 0; i < 30; i++ {
		catalog = append(catalog, CatalogEntry{RawName: fmt.Sprintf("daun %02d", 29-i)})
	}
	vocab = BuildVocabulary(catalog, VocabularyOptions{MinUsage: 1, MaxPerCategory: 20})
	other := vocab[CategoryOther]
	if len(other) != 20 {
		t.Fatalf("expected 20 entries after cap, got %d", len(other))
	}
	if !sort.StringsAreSorted(other) {
		t.Fatalf("bucket not sorted: %v", other)
	}
	if other[0] != "Daun 00" || other[19] != "Daun 19" {
		t.Fatalf("expected alphabetical head of the list, got %q .. %q", other[0], other[19])
	}
}

func TestBuildVocabularyEndToEndScenario(t *testing.T) {
	catalog := []CatalogEntry{
		{RawName: "Bawang Merah", CategoryHint: "sayuran"},
		{RawName: "Bawang merah segar", CategoryHint: "sayuran"},
	}
	catalog = append(catalog, repeat("Ayam Kampung", 12)...)

	vocab := BuildVocabulary(catalog, VocabularyOptions{MinUsage: 1, MaxPerCategory: 20})

	if !contains(vocab[CategoryVegetable], "Bawang Merah") {
		t.Fatalf("expected Bawang Merah under Vegetable, got %v", vocab[CategoryVegetable])
	}
	if !contains(vocab[CategoryProtein], "Ayam") {
		t.Fatalf("expected Ayam under Protein, got %v", vocab[CategoryProtein])
	}
	if vocab.Total() != 2 {
		t.Fatalf("expected 2 entries in total, got %d", vocab.Total())
	}
}

func TestClassifyPriority(t *testing.T) {
	cases := map[string]Category{
		"ayam":          CategoryProtein,
		"daging sapi":   CategoryProtein,
		"bawang merah":  CategoryVegetable,
		"bayam":         CategoryProtein, // "bayam" 含有 "ayam"，Protein 優先
		"kangkung":      CategoryVegetable,
		"garam":         CategorySeasoning,
		"cabai":         CategorySeasoning,
		"tepung":        CategoryGrain,
		"beras":         CategoryGrain,
		"santan kental": CategoryOther,
	}
	for in, want := range cases {
		if got := Classify(in); got != want {
			t.Errorf("Classify(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestVocabularyLabeled(t *testing.T) {
	vocab := BuildVocabulary(repeat("garam", 3), VocabularyOptions{MinUsage: 1})
	labeled := vocab.Labeled()

	for _, key := range []string{"Protein", "Sayuran", "Bumbu", "Biji-bijian", "Lainnya"} {
		if _, ok := labeled[key]; !ok {
			t.Fatalf("missing label %q in %v", key, labeled)
		}
	}
	if !contains(labeled["Bumbu"], "Garam") {
		t.Fatalf("expected Garam under Bumbu, got %v", labeled["Bumbu"])
	}
}

func TestVocabularyOptionsDefaults(t *testing.T) {
	o := VocabularyOptions{MinUsage: -1, MaxPerCategory: 0}.normalize()
	if o.MinUsage != DefaultMinUsage || o.MaxPerCategory != DefaultMaxPerCategory {
		t.Fatalf("unexpected defaults: %+v", o)
	}
}
