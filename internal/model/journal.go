package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind marks journal entries that need special treatment.
type EntryKind string

const (
	EntryRegular EntryKind = ""
	EntryClosing EntryKind = "closing" // refundición / cierre de cuentas de resultado
	EntryOpening EntryKind = "opening" // reapertura
)

// Line is one debit/credit row of a journal entry.
type Line struct {
	AccountID   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// JournalEntry is a dated set of lines. It need not balance.
type JournalEntry struct {
	ID    string
	Date  time.Time
	Memo  string
	Kind  EntryKind
	Lines []Line
}

// Totals returns the sum of debits and credits across all lines.
func (e JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// Movement is a ledger posting with the running balance after it was applied.
type Movement struct {
	EntryID string
	Date    time.Time
	Memo    string
	Debit   decimal.Decimal
	Credit  decimal.Decimal
	Balance decimal.Decimal
}

// AccountBalance is the mayorización of one account. It is rebuilt on every
// recompute and never patched in place.
type AccountBalance struct {
	AccountID    string
	Balance      decimal.Decimal // signed per normal side
	Movements    []Movement
	TotalDebit   decimal.Decimal
	TotalCredit  decimal.Decimal
	LastMovement time.Time
}
