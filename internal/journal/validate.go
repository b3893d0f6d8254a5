package journal

import (
	"fmt"

	"github.com/ajustes-contables/rt6/internal/id"
	"github.com/ajustes-contables/rt6/internal/model"
)

// WarningKind names a non-fatal journal condition.
type WarningKind string

const (
	WarnUnbalanced     WarningKind = "unbalanced"
	WarnNegativeAmount WarningKind = "negative-amount"
	WarnUnknownAccount WarningKind = "unknown-account"
	WarnHeaderMovement WarningKind = "header-movement"
	WarnEmptyAccount   WarningKind = "empty-account"
	WarnMisfiledEntry  WarningKind = "misfiled-entry"
)

// Warning describes a condition the engine tolerates but surfaces. The
// balance engine is a read-side calculator, so none of these reject an entry.
type Warning struct {
	Kind        WarningKind
	EntryID     string
	AccountID   string
	Description string
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s [%s]: %s", w.Kind, w.EntryID, w.Description)
}

// AccountChecker answers chart-of-accounts questions for Check.
type AccountChecker interface {
	Exists(id string) bool
	IsHeader(id string) bool
}

// Check inspects entries and returns every warning found, in entry order.
func Check(entries []model.JournalEntry, accounts AccountChecker) []Warning {
	var warns []Warning

	for _, e := range entries {
		if w, ok := checkID(e); !ok {
			warns = append(warns, w)
		}

		debit, credit := e.Totals()
		if !debit.Equal(credit) {
			warns = append(warns, Warning{
				Kind:        WarnUnbalanced,
				EntryID:     e.ID,
				Description: fmt.Sprintf("debits (%s) != credits (%s)", debit.StringFixed(2), credit.StringFixed(2)),
			})
		}

		for _, l := range e.Lines {
			if l.AccountID == "" {
				warns = append(warns, Warning{
					Kind:        WarnEmptyAccount,
					EntryID:     e.ID,
					Description: "line without account is ignored",
				})
				continue
			}

			if l.Debit.IsNegative() || l.Credit.IsNegative() {
				warns = append(warns, Warning{
					Kind:        WarnNegativeAmount,
					EntryID:     e.ID,
					AccountID:   l.AccountID,
					Description: fmt.Sprintf("negative amount (debit %s, credit %s)", l.Debit, l.Credit),
				})
			}

			if accounts == nil {
				continue
			}
			if !accounts.Exists(l.AccountID) {
				warns = append(warns, Warning{
					Kind:        WarnUnknownAccount,
					EntryID:     e.ID,
					AccountID:   l.AccountID,
					Description: fmt.Sprintf("unknown account %s", l.AccountID),
				})
			} else if accounts.IsHeader(l.AccountID) {
				warns = append(warns, Warning{
					Kind:        WarnHeaderMovement,
					EntryID:     e.ID,
					AccountID:   l.AccountID,
					Description: fmt.Sprintf("header account %s received a direct movement", l.AccountID),
				})
			}
		}
	}

	return warns
}

// checkID verifies that an entry ID is YYYY-MM-NNN and names the month of the
// entry's date, which is also the journal file it is stored in.
func checkID(e model.JournalEntry) (Warning, bool) {
	year, month, _, err := id.ParseEntryID(e.ID)
	if err != nil {
		return Warning{Kind: WarnMisfiledEntry, EntryID: e.ID, Description: err.Error()}, false
	}
	if year != e.Date.Year() || month != int(e.Date.Month()) {
		return Warning{
			Kind:        WarnMisfiledEntry,
			EntryID:     e.ID,
			Description: fmt.Sprintf("entry dated %s is filed under %04d-%02d", e.Date.Format("2006-01-02"), year, month),
		}, false
	}
	return Warning{}, true
}
