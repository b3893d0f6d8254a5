// Package statement runs the full restatement pipeline over one in-memory
// snapshot of accounts, journal, overrides, partidas and indices.
package statement

import (
	"errors"
	"fmt"
	"time"

	"github.com/ajustes-contables/rt6/internal/hierarchy"
	"github.com/ajustes-contables/rt6/internal/indices"
	"github.com/ajustes-contables/rt6/internal/journal"
	"github.com/ajustes-contables/rt6/internal/ledger"
	"github.com/ajustes-contables/rt6/internal/model"
	"github.com/ajustes-contables/rt6/internal/monetary"
	"github.com/ajustes-contables/rt6/internal/rt6"
)

// ErrNoClosingDate is returned when Inputs carries no closing date.
var ErrNoClosingDate = errors.New("closing date is required")

// Inputs is a complete snapshot. Nothing outside it is read.
type Inputs struct {
	Accounts    []model.Account
	Entries     []model.JournalEntry
	Overrides   monetary.Overrides
	Partidas    rt6.Partidas
	Indices     indices.Table
	ClosingDate time.Time

	Rules         monetary.RuleTable
	Detector      journal.ClosingDetector
	CapitalRubros []string
	Presentation  hierarchy.Predicate
	Indirect      rt6.IndirectMethod
}

// Statement is every output of one recompute.
type Statement struct {
	ClosingDate time.Time
	Closing     indices.Period

	Warnings        []journal.Warning
	HierarchyErrors []*hierarchy.MalformedHierarchyError

	Balances     map[string]model.AccountBalance
	Tree         *hierarchy.Tree
	Rollups      map[string]hierarchy.Totals
	Presentation map[string]string

	Monetary monetary.Report
	Analysis rt6.Analysis
	Partidas rt6.Partidas
	Computed []rt6.Partida
	Summary  rt6.Summary
}

// Compute runs journal checks, balances, hierarchy, rollups, presentation,
// classification, analyze-ledger, partida recompute and computation, the
// group/rubro summary, the monetary report and the indirect-method hook.
func Compute(in Inputs) (*Statement, error) {
	if in.ClosingDate.IsZero() {
		return nil, ErrNoClosingDate
	}

	rules := in.Rules
	if rules == nil {
		rules = monetary.DefaultRules()
	}
	detector := in.Detector
	if len(detector.Keywords) == 0 {
		detector = journal.NewClosingDetector(nil)
	}
	pred := in.Presentation
	if pred == nil {
		pred = hierarchy.DefaultPredicate
	}

	st := &Statement{
		ClosingDate: in.ClosingDate,
		Closing:     indices.PeriodOf(in.ClosingDate),
	}

	chart := make(map[string]model.Account, len(in.Accounts))
	for _, a := range in.Accounts {
		chart[a.ID] = a
	}
	st.Warnings = journal.Check(withinCutoff(in.Entries, in.ClosingDate), checker(chart))

	st.Balances = ledger.ComputeBalances(in.Entries, in.Accounts, ledger.Options{Cutoff: in.ClosingDate})

	st.Tree = hierarchy.Build(in.Accounts)
	st.HierarchyErrors = st.Tree.Errors()
	st.Rollups = hierarchy.RollupTotals(st.Tree, st.Balances)
	st.Presentation = hierarchy.PresentationMap(st.Tree, pred)

	st.Analysis = rt6.AnalyzeLedger(rt6.AnalyzeInput{
		Accounts:  in.Accounts,
		Entries:   in.Entries,
		Overrides: in.Overrides,
		Rules:     rules,
		Cutoff:    in.ClosingDate,
		Detector:  detector,
	})

	st.Partidas = in.Partidas.Recompute(st.Analysis.Sources)
	st.Partidas = dropExcluded(st.Partidas, in.Overrides)
	st.Computed = st.Partidas.Compute(in.Indices, st.Closing)
	st.Summary = rt6.Summarize(st.Computed, rt6.SummaryOptions{CapitalRubros: in.CapitalRubros})

	st.Monetary = monetary.BuildReport(monetary.Input{
		Accounts:        in.Accounts,
		Balances:        st.Balances,
		Overrides:       in.Overrides,
		Rules:           rules,
		PartidaAccounts: st.Partidas.AccountSet(),
	})

	summary, err := st.Summary.WithIndirect(in.Indirect, rt6.IndirectInput{
		NetMonetaryPosition: st.Monetary.NetPosition,
		Closing:             st.Closing,
		Table:               in.Indices,
	})
	if err != nil {
		return nil, fmt.Errorf("statement at %s: %w", st.Closing, err)
	}
	st.Summary = summary

	return st, nil
}

// dropExcluded removes partidas of excluded accounts, manual ones included.
func dropExcluded(p rt6.Partidas, ovs monetary.Overrides) rt6.Partidas {
	next := p
	for _, src := range p.Sources() {
		if ov, ok := ovs.Get(src.AccountID); ok && ov.Excluded {
			next, _ = next.Delete(src.ID)
		}
	}
	return next
}

type checker map[string]model.Account

func (c checker) Exists(id string) bool {
	_, ok := c[id]
	return ok
}

func (c checker) IsHeader(id string) bool { return c[id].IsHeader }

// withinCutoff drops entries dated after the closing date.
func withinCutoff(entries []model.JournalEntry, cutoff time.Time) []model.JournalEntry {
	kept := make([]model.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if !ledger.After(e.Date, cutoff) {
			kept = append(kept, e)
		}
	}
	return kept
}
