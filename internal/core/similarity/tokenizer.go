package similarity

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// 模型匯出的 token 規則以 Unicode 定義 \w 與 \b；Go regexp 的 \w、\b 只認 ASCII，
// 因此先把字元類別改寫成 Unicode 屬性，模式兩端的 \b 改由比對後檢查
const (
	wordClass    = `\p{L}\p{N}_`
	nonWordClass = `[^\p{L}\p{N}_]`
)

type tokenizer struct {
	re                *regexp.Regexp
	leading, trailing bool
}

func compileTokenPattern(pattern string) (*tokenizer, error) {
	expr, leading, trailing, err := translateTokenPattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("token pattern %q: %w", pattern, err)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile token pattern %q: %w", pattern, err)
	}
	return &tokenizer{re: re, leading: leading, trailing: trailing}, nil
}

// translateTokenPattern 只支援出現在模式開頭或結尾的 \b
func translateTokenPattern(pattern string) (expr string, leading, trailing bool, err error) {
	p := strings.TrimPrefix(pattern, "(?u)")

	var b strings.Builder
	inClass := false
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c == '\\' && i+1 < len(p) {
			start := i
			i++
			switch e := p[i]; e {
			case 'w':
				if inClass {
					b.WriteString(wordClass)
				} else {
					b.WriteString("[" + wordClass + "]")
				}
			case 'W':
				if inClass {
					return "", false, false, fmt.Errorf(`\W inside a character class is not supported`)
				}
				b.WriteString(nonWordClass)
			case 'd':
				b.WriteString(`\p{Nd}`)
			case 'D':
				b.WriteString(`\P{Nd}`)
			case 'b':
				switch {
				case inClass:
					b.WriteString(`\x08`)
				case start == 0:
					leading = true
				case i == len(p)-1:
					trailing = true
				default:
					return "", false, false, fmt.Errorf(`\b is only supported at the start or end`)
				}
			case 'B':
				return "", false, false, fmt.Errorf(`\B is not supported`)
			default:
				b.WriteByte('\\')
				b.WriteByte(e)
			}
			continue
		}

		switch {
		case c == '[' && !inClass:
			inClass = true
			b.WriteByte(c)
			if i+1 < len(p) && p[i+1] == '^' {
				i++
				b.WriteByte('^')
			}
			continue
		case c == ']' && inClass:
			inClass = false
		}
		b.WriteByte(c)
	}
	return b.String(), leading, trailing, nil
}

func (t *tokenizer) split(text string) []string {
	matches := t.re.FindAllStringIndex(text, -1)
	words := make([]string, 0, len(matches))
	for _, m := range matches {
		if t.leading && !wordBoundary(text, m[0]) {
			continue
		}
		if t.trailing && !wordBoundary(text, m[1]) {
			continue
		}
		words = append(words, text[m[0]:m[1]])
	}
	return words
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func wordBoundary(text string, pos int) bool {
	before, after := false, false
	if pos > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:pos])
		before = isWordRune(r)
	}
	if pos < len(text) {
		r, _ := utf8.DecodeRuneInString(text[pos:])
		after = isWordRune(r)
	}
	return before != after
}
