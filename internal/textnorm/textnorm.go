// Package textnorm folds account names and rubro labels so keyword rules
// match regardless of case, accents or spacing ("Mercaderías" == "mercaderias").
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns s lower-cased by Unicode case folding, stripped of
// diacritics, with runs of whitespace collapsed to one space.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	folded := cases.Fold().String(stripped)
	return strings.Join(strings.Fields(folded), " ")
}

// Equal reports whether a and b are the same label after folding.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Words splits the folded s into words, dropping punctuation.
func Words(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '$'
	})
}

// MatchAny reports whether some keyword occurs in s starting at a word
// boundary. Each keyword word must be a prefix of the matching word of s, so
// "rodado" matches "Rodados" while "iva" does not match "cooperativas".
func MatchAny(s string, keywords []string) bool {
	ws := Words(s)
	for _, k := range keywords {
		kw := Words(k)
		if len(kw) == 0 {
			continue
		}
		for i := 0; i+len(kw) <= len(ws); i++ {
			if wordsMatch(ws[i:], kw) {
				return true
			}
		}
	}
	return false
}

// HasPrefixAny reports whether s starts with some keyword, word by word.
func HasPrefixAny(s string, keywords []string) bool {
	ws := Words(s)
	for _, k := range keywords {
		kw := Words(k)
		if len(kw) > 0 && len(kw) <= len(ws) && wordsMatch(ws, kw) {
			return true
		}
	}
	return false
}

func wordsMatch(ws, kw []string) bool {
	for j, k := range kw {
		if !strings.HasPrefix(ws[j], k) {
			return false
		}
	}
	return true
}

// Set is a lookup of folded labels.
type Set map[string]struct{}

// NewSet folds every label into a Set.
func NewSet(labels []string) Set {
	s := make(Set, len(labels))
	for _, l := range labels {
		s[Fold(l)] = struct{}{}
	}
	return s
}

// Has reports whether label is in the set after folding.
func (s Set) Has(label string) bool {
	_, ok := s[Fold(label)]
	return ok
}
