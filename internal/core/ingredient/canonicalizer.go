package ingredient

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// RuleGroup 規則所屬的群組，群組順序即為比對優先順序
type RuleGroup string

const (
	GroupAllium    RuleGroup = "allium"
	GroupProtein   RuleGroup = "protein"
	GroupVegetable RuleGroup = "vegetable"
	GroupSeasoning RuleGroup = "seasoning"
	GroupStaple    RuleGroup = "staple"
)

// Rule 一條正規化規則：任一 pattern 為輸入的子字串時，輸出 Canonical
type Rule struct {
	Group     RuleGroup
	Patterns  []string
	Canonical string
}

// Matches 檢查已正規化的輸入是否命中此規則
func (r Rule) Matches(normalized string) bool {
	for _, p := range r.Patterns {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return false
}

// rules 由上而下比對，第一條命中者勝出。
// "bawang" 是共同前綴，所以蔥屬類的多字規則必須排在最前面，且沒有泛用的 "bawang" 規則。
var rules = []Rule{
	{GroupAllium, []string{"bawang merah"}, "bawang merah"},
	{GroupAllium, []string{"bawang putih"}, "bawang putih"},
	{GroupAllium, []string{"bawang bombai", "bawang bombay"}, "bawang bombai"},
	{GroupAllium, []string{"daun bawang"}, "daun bawang"},
	{GroupAllium, []string{"bawang prei", "bawang pre"}, "bawang prei"},

	{GroupProtein, []string{"daging sapi", "sapi"}, "daging sapi"},
	{GroupProtein, []string{"daging ayam", "ayam"}, "ayam"},
	{GroupProtein, []string{"ikan"}, "ikan"},
	{GroupProtein, []string{"udang"}, "udang"},
	{GroupProtein, []string{"telur"}, "telur"},
	{GroupProtein, []string{"tahu"}, "tahu"},
	{GroupProtein, []string{"tempe"}, "tempe"},

	{GroupVegetable, []string{"wortel"}, "wortel"},
	{GroupVegetable, []string{"kentang"}, "kentang"},
	{GroupVegetable, []string{"tomat"}, "tomat"},
	{GroupVegetable, []string{"cabai", "cabe"}, "cabai"},
	{GroupVegetable, []string{"seledri"}, "seledri"},

	{GroupSeasoning, []string{"garam"}, "garam"},
	{GroupSeasoning, []string{"merica", "lada"}, "lada"},
	{GroupSeasoning, []string{"kunyit"}, "kunyit"},
	{GroupSeasoning, []string{"ketumbar"}, "ketumbar"},
	{GroupSeasoning, []string{"jahe"}, "jahe"},
	{GroupSeasoning, []string{"lengkuas"}, "lengkuas"},

	{GroupStaple, []string{"beras", "nasi"}, "beras"},
	{GroupStaple, []string{"mie", "mee"}, "mie"},
	{GroupStaple, []string{"tepung"}, "tepung"},
}

// Rules 回傳規則表的副本（依優先順序）
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Normalize 做 NFKC 正規化、轉小寫並去除前後空白
func Normalize(raw string) string {
	return strings.TrimSpace(strings.ToLower(norm.NFKC.String(raw)))
}

// Canonicalize 將任意食材字串對應到標準食材名稱。
// 沒有規則命中時回傳正規化後的輸入本身；空字串回傳空字串。
func Canonicalize(raw string) string {
	normalized := Normalize(raw)
	if normalized == "" {
		return ""
	}
	for _, rule := range rules {
		if rule.Matches(normalized) {
			return rule.Canonical
		}
	}
	return normalized
}

// CanonicalizeAll 依輸入順序逐一正規化
func CanonicalizeAll(raw []string) []string {
	out := make([]string, len(raw))
	for i, r := range raw {
		out[i] = Canonicalize(r)
	}
	return out
}
