// Package ledger computes per-account balances (mayorización) from journal
// entries.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ajustes-contables/rt6/internal/model"
)

const dayFormat = "2006-01-02"

// Options controls a balance computation.
type Options struct {
	// Cutoff is the inclusive closing date. Entries dated after it are
	// skipped entirely. The zero value means no cutoff.
	Cutoff time.Time
}

// ComputeBalances builds a fresh AccountBalance for every account referenced
// by at least one line. Entries are processed in stable date order; accounts
// absent from the chart use the DEBIT convention.
func ComputeBalances(entries []model.JournalEntry, accounts []model.Account, opts Options) map[string]model.AccountBalance {
	sides := make(map[string]model.NormalSide, len(accounts))
	for _, a := range accounts {
		sides[a.ID] = a.Side()
	}

	sorted := make([]model.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Format(dayFormat) < sorted[j].Date.Format(dayFormat)
	})

	balances := make(map[string]model.AccountBalance)
	for _, e := range sorted {
		if After(e.Date, opts.Cutoff) {
			continue
		}
		for _, l := range e.Lines {
			if l.AccountID == "" {
				continue
			}

			b, ok := balances[l.AccountID]
			if !ok {
				b = model.AccountBalance{
					AccountID:   l.AccountID,
					Balance:     decimal.Zero,
					TotalDebit:  decimal.Zero,
					TotalCredit: decimal.Zero,
				}
			}

			net := l.Debit.Sub(l.Credit)
			if sides[l.AccountID] == model.SideCredit {
				net = net.Neg()
			}
			b.TotalDebit = b.TotalDebit.Add(l.Debit)
			b.TotalCredit = b.TotalCredit.Add(l.Credit)
			b.Balance = b.Balance.Add(net)
			b.LastMovement = e.Date

			memo := l.Description
			if memo == "" {
				memo = e.Memo
			}
			b.Movements = append(b.Movements, model.Movement{
				EntryID: e.ID,
				Date:    e.Date,
				Memo:    memo,
				Debit:   l.Debit,
				Credit:  l.Credit,
				Balance: b.Balance,
			})
			balances[l.AccountID] = b
		}
	}
	return balances
}

// After reports whether date falls after the inclusive cutoff, comparing
// calendar days only. A zero cutoff never excludes anything.
func After(date, cutoff time.Time) bool {
	if cutoff.IsZero() {
		return false
	}
	return date.Format(dayFormat) > cutoff.Format(dayFormat)
}

// NonZero returns the IDs of accounts whose balance is not zero, sorted.
func NonZero(balances map[string]model.AccountBalance) []string {
	var ids []string
	for id, b := range balances {
		if !b.Balance.IsZero() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
