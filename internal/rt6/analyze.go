package rt6

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ajustes-contables/rt6/internal/id"
	"github.com/ajustes-contables/rt6/internal/indices"
	"github.com/ajustes-contables/rt6/internal/journal"
	"github.com/ajustes-contables/rt6/internal/ledger"
	"github.com/ajustes-contables/rt6/internal/model"
	"github.com/ajustes-contables/rt6/internal/monetary"
)

// AnalyzeInput is the snapshot AnalyzeLedger derives suggestions from.
type AnalyzeInput struct {
	Accounts  []model.Account
	Entries   []model.JournalEntry
	Overrides monetary.Overrides
	Rules     monetary.RuleTable
	Cutoff    time.Time
	Detector  journal.ClosingDetector
}

// Analysis is the result of AnalyzeLedger.
type Analysis struct {
	Sources         []Source
	Classifications map[string]monetary.Classification
	// ClosingEntries counts refundición entries left out of every lot.
	ClosingEntries int
}

// AnalyzeLedger re-derives partida sources from the journal. Every
// non-header, non-excluded account classified NON_MONETARY or presented in
// RESULTADOS gets one lot per origin month holding the signed movement of
// that month. Opening entries produce lots in the APERTURA period.
func AnalyzeLedger(in AnalyzeInput) Analysis {
	rules := in.Rules
	if rules == nil {
		rules = monetary.DefaultRules()
	}
	detector := in.Detector
	if len(detector.Keywords) == 0 {
		detector = journal.NewClosingDetector(nil)
	}

	var inRange []model.JournalEntry
	for _, e := range in.Entries {
		if !ledger.After(e.Date, in.Cutoff) {
			inRange = append(inRange, e)
		}
	}
	regular, closing := detector.Split(inRange)

	opening := make(map[string]bool)
	for _, e := range regular {
		if detector.IsOpening(e) {
			opening[e.ID] = true
		}
	}

	balances := ledger.ComputeBalances(regular, in.Accounts, ledger.Options{Cutoff: in.Cutoff})
	classes := monetary.ClassifyAll(in.Accounts, in.Overrides, rules)

	chart := make([]model.Account, len(in.Accounts))
	copy(chart, in.Accounts)
	sort.SliceStable(chart, func(i, j int) bool {
		if chart[i].Code != chart[j].Code {
			return chart[i].Code < chart[j].Code
		}
		return chart[i].ID < chart[j].ID
	})

	out := Analysis{Classifications: classes, ClosingEntries: len(closing)}
	for _, acc := range chart {
		c := classes[acc.ID]
		if acc.IsHeader || c.Excluded {
			continue
		}
		if c.Class != model.ClassNonMonetary && acc.Group != model.GroupResultados {
			continue
		}
		b, ok := balances[acc.ID]
		if !ok {
			continue
		}

		src := SourceFor(acc)
		src.ID = id.PartidaID(acc.ID)
		src.Lots = lotsFromMovements(src.ID, b.Movements, opening, acc.Side())
		if len(src.Lots) == 0 {
			continue
		}
		out.Sources = append(out.Sources, src)
	}
	return out
}

func lotsFromMovements(partidaID string, movements []model.Movement, opening map[string]bool, side model.NormalSide) []Lot {
	type bucket struct {
		first time.Time
		sum   decimal.Decimal
	}
	buckets := make(map[indices.Period]*bucket)
	var order []indices.Period

	for _, m := range movements {
		p := indices.PeriodOf(m.Date)
		if opening[m.EntryID] {
			p = indices.Opening
		}
		net := m.Debit.Sub(m.Credit)
		if side == model.SideCredit {
			net = net.Neg()
		}
		b, ok := buckets[p]
		if !ok {
			b = &bucket{first: m.Date, sum: decimal.Zero}
			buckets[p] = b
			order = append(order, p)
		}
		b.sum = b.sum.Add(net)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].IsOpening() != order[j].IsOpening() {
			return order[i].IsOpening()
		}
		return order[i] < order[j]
	})

	var lots []Lot
	for _, p := range order {
		b := buckets[p]
		if b.sum.IsZero() {
			continue
		}
		lots = append(lots, Lot{
			ID:           id.FormatLotID(partidaID, len(lots)+1),
			OriginDate:   b.first,
			OriginPeriod: p,
			Base:         b.sum,
		})
	}
	return lots
}
