package ingredient

import "testing"

func TestCanonicalizeAlliumPriority(t *testing.T) {
	cases := map[string]string{
		"bawang bombay cincang": "bawang bombai",
		"Bawang Bombai":         "bawang bombai",
		"daun bawang segar":     "daun bawang",
		"  Bawang Merah  ":      "bawang merah",
		"bawang merah segar":    "bawang merah",
		"3 siung bawang putih":  "bawang putih",
		"bawang pre":            "bawang prei",
		"batang bawang prei":    "bawang prei",
	}
	for in, want := range cases {
		if got := Canonicalize(in); got != want {
			t.Errorf("Canonicalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanonicalizeGroups(t *testing.T) {
	cases := map[string]string{
		"Daging Sapi Has Dalam": "daging sapi",
		"iga sapi":              "daging sapi",
		"Ayam Kampung":          "ayam",
		"fillet ikan dori":      "ikan",
		"udang kupas":           "udang",
		"telur ayam":            "ayam",
		"2 butir telur":         "telur",
		"tahu putih":            "tahu",
		"tempe mendoan":         "tempe",
		"wortel iris":           "wortel",
		"kentang":               "kentang",
		"tomat merah":           "tomat",
		"cabe rawit":            "cabai",
		"cabai keriting":        "cabai",
		"seledri":               "seledri",
		"garam secukupnya":      "garam",
		"merica bubuk":          "lada",
		"lada hitam":            "lada",
		"kunyit":                "kunyit",
		"ketumbar bubuk":        "ketumbar",
		"jahe":                  "jahe",
		"lengkuas geprek":       "lengkuas",
		"nasi putih":            "beras",
		"beras merah":           "beras",
		"mie telur":             "telur",
		"mee kuning":            "mie",
		"tepung terigu":         "tepung",
	}
	for in, want := range cases {
		if got := Canonicalize(in); got != want {
			t.Errorf("Canonicalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanonicalizeFallback(t *testing.T) {
	if got := Canonicalize("  Santan KENTAL "); got != "santan kental" {
		t.Fatalf("fallback = %q, want %q", got, "santan kental")
	}
	if got := Canonicalize(""); got != "" {
		t.Fatalf("empty input = %q, want empty", got)
	}
	if got := Canonicalize("   \t"); got != "" {
		t.Fatalf("blank input = %q, want empty", got)
	}
	// NFKC folds full-width letters before matching
	if got := Canonicalize("ＡＹＡＭ goreng"); got != "ayam" {
		t.Fatalf("full-width input = %q, want ayam", got)
	}
}

func TestCanonicalizeIsIdempotentOnCanonicalForms(t *testing.T) {
	for _, rule := range Rules() {
		once := Canonicalize(rule.Canonical)
		if once != rule.Canonical {
			t.Errorf("Canonicalize(%q) = %q, canonical form must map to itself", rule.Canonical, once)
		}
	}
	for _, in := range []string{"Bawang Bombay Cincang", "santan", "@@!!", "ikan asin"} {
		once := Canonicalize(in)
		if twice := Canonicalize(once); twice != once {
			t.Errorf("Canonicalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestCanonicalizeDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		if got := Canonicalize("Bawang Putih Goreng"); got != "bawang putih" {
			t.Fatalf("iteration %d: got %q", i, got)
		}
	}
}

func TestEachRuleMatchesItsPatterns(t *testing.T) {
	for _, rule := range Rules() {
		for _, p := range rule.Patterns {
			if !rule.Matches(p) {
				t.Errorf("rule %q does not match its own pattern %q", rule.Canonical, p)
			}
		}
	}
}

func TestRulesGroupOrder(t *testing.T) {
	order := []RuleGroup{GroupAllium, GroupProtein, GroupVegetable, GroupSeasoning, GroupStaple}
	pos := 0
	for _, rule := range Rules() {
		for pos < len(order) && order[pos] != rule.Group {
			pos++
		}
		if pos == len(order) {
			t.Fatalf("rule %q (group %s) is out of group order", rule.Canonical, rule.Group)
		}
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	r := Rules()
	r[0].Canonical = "mutated"
	if Rules()[0].Canonical == "mutated" {
		t.Fatalf("Rules() must not expose the internal table")
	}
}

func TestCanonicalizeAllKeepsOrder(t *testing.T) {
	got := CanonicalizeAll([]string{"Ayam", "santan", "Bawang Merah"})
	want := []string{"ayam", "santan", "bawang merah"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
