// Package textnorm normalizes text for whitespace- and case-insensitive
// comparison.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Normalize removes every Unicode whitespace code point from text and then
// applies full Unicode case folding, so multi-codepoint folds such as
// "ß" → "ss" are handled. Invalid UTF-8 sequences become U+FFFD.
//
// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	// A Caser must not be shared between goroutines.
	folded := cases.Fold().String(stripped)
	return strings.Map(foldCherokee, folded)
}

// Cherokee folds to its uppercase block, but cases.Fold maps it to the
// lowercase letters, which it then folds back up.
var cherokeeLower = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x13f8, Hi: 0x13fd, Stride: 1},
		{Lo: 0xab70, Hi: 0xabbf, Stride: 1},
	},
}

func foldCherokee(r rune) rune {
	if unicode.Is(cherokeeLower, r) {
		return unicode.ToUpper(r)
	}
	return r
}
