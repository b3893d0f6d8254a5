package journal

import (
	"github.com/ajustes-contables/rt6/internal/model"
	"github.com/ajustes-contables/rt6/internal/textnorm"
)

// DefaultClosingKeywords identify refundición (closing) entries by memo prefix.
var DefaultClosingKeywords = []string{
	"refundicion",
	"asiento de cierre",
	"cierre de ejercicio",
	"cierre de cuentas de resultado",
}

// DefaultOpeningKeywords identify entries that carry prior-year balances.
var DefaultOpeningKeywords = []string{
	"reapertura",
	"asiento de apertura",
	"saldos iniciales",
}

// ClosingDetector recognizes closing and opening entries.
type ClosingDetector struct {
	Keywords        []string
	OpeningKeywords []string
}

// NewClosingDetector returns a detector using keywords, or the defaults when empty.
func NewClosingDetector(keywords []string) ClosingDetector {
	if len(keywords) == 0 {
		keywords = DefaultClosingKeywords
	}
	return ClosingDetector{Keywords: keywords, OpeningKeywords: DefaultOpeningKeywords}
}

// IsClosing reports whether e is a closing entry, either by its explicit
// kind or by a memo that starts with a keyword.
func (d ClosingDetector) IsClosing(e model.JournalEntry) bool {
	if e.Kind == model.EntryClosing {
		return true
	}
	if e.Kind == model.EntryOpening {
		return false
	}
	return textnorm.HasPrefixAny(e.Memo, d.Keywords)
}

// IsOpening reports whether e opens the fiscal year with prior balances.
func (d ClosingDetector) IsOpening(e model.JournalEntry) bool {
	if e.Kind == model.EntryOpening {
		return true
	}
	if e.Kind == model.EntryClosing {
		return false
	}
	return textnorm.HasPrefixAny(e.Memo, d.OpeningKeywords)
}

// Split separates regular and opening entries from closing ones, preserving order.
func (d ClosingDetector) Split(entries []model.JournalEntry) (regular, closing []model.JournalEntry) {
	for _, e := range entries {
		if d.IsClosing(e) {
			closing = append(closing, e)
			continue
		}
		regular = append(regular, e)
	}
	return regular, closing
}
