package hierarchy

import (
	"github.com/shopspring/decimal"

	"github.com/ajustes-contables/rt6/internal/model"
)

// Rollup returns, for every node, its direct total plus the rolled-up totals
// of all its children. Nodes without a direct total count as zero. Each node
// is visited exactly once.
func Rollup(t *Tree, direct map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(t.accounts))

	var visit func(id string) decimal.Decimal
	visit = func(id string) decimal.Decimal {
		sum := decimal.Zero
		if d, ok := direct[id]; ok {
			sum = d
		}
		for _, c := range t.children[id] {
			sum = sum.Add(visit(c))
		}
		out[id] = sum
		return sum
	}

	for _, r := range t.roots {
		visit(r)
	}
	return out
}

// Totals is a rolled-up debit/credit pair with the balance it implies for
// the node's normal side.
type Totals struct {
	Debit   decimal.Decimal
	Credit  decimal.Decimal
	Balance decimal.Decimal
}

// RollupTotals rolls up debits and credits and derives each node's balance
// from its own normal side.
func RollupTotals(t *Tree, balances map[string]model.AccountBalance) map[string]Totals {
	debits := make(map[string]decimal.Decimal, len(balances))
	credits := make(map[string]decimal.Decimal, len(balances))
	for id, b := range balances {
		debits[id] = b.TotalDebit
		credits[id] = b.TotalCredit
	}

	rd := Rollup(t, debits)
	rc := Rollup(t, credits)

	out := make(map[string]Totals, len(rd))
	for id, d := range rd {
		c := rc[id]
		bal := d.Sub(c)
		if t.accounts[id].Side() == model.SideCredit {
			bal = bal.Neg()
		}
		out[id] = Totals{Debit: d, Credit: c, Balance: bal}
	}
	return out
}
