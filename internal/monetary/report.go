package monetary

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ajustes-contables/rt6/internal/model"
)

// Item is one account line of a monetary report bucket.
type Item struct {
	AccountID      string
	Code           string
	Name           string
	Balance        decimal.Decimal
	Classification Classification
}

// Input carries everything BuildReport needs. PartidaAccounts holds the
// accounts already covered by an RT6 partida.
type Input struct {
	Accounts        []model.Account
	Balances        map[string]model.AccountBalance
	Overrides       Overrides
	Rules           RuleTable
	PartidaAccounts map[string]bool
}

// Report is the monetary position at the closing date.
type Report struct {
	Activo       []Item
	Pasivo       []Item
	FX           []Item
	Unclassified []Item

	TotalActivo decimal.Decimal
	TotalPasivo decimal.Decimal
	TotalFX     decimal.Decimal

	// NetPosition is Σ|ACTIVO| − Σ|PASIVO|. FX-protected accounts are
	// reported separately and never enter it.
	NetPosition decimal.Decimal

	Classifications map[string]Classification
}

// BuildReport buckets every non-zero, non-excluded account. Accounts with
// no balance record are treated as zero and omitted.
func BuildReport(in Input) Report {
	rules := in.Rules
	if rules == nil {
		rules = DefaultRules()
	}

	chart := make(map[string]model.Account, len(in.Accounts))
	for _, a := range in.Accounts {
		chart[a.ID] = a
	}

	rep := Report{
		TotalActivo:     decimal.Zero,
		TotalPasivo:     decimal.Zero,
		TotalFX:         decimal.Zero,
		NetPosition:     decimal.Zero,
		Classifications: make(map[string]Classification, len(in.Balances)),
	}

	for accID, b := range in.Balances {
		acc, known := chart[accID]
		if !known {
			acc = model.Account{ID: accID}
		}
		if acc.IsHeader || b.Balance.IsZero() {
			continue
		}

		ov, _ := in.Overrides.Get(accID)
		c := Classify(acc, ov, rules)
		rep.Classifications[accID] = c
		if c.Excluded {
			continue
		}

		item := Item{AccountID: accID, Code: acc.Code, Name: acc.Name, Balance: b.Balance, Classification: c}
		switch {
		case c.Class == model.ClassFXProtected:
			rep.FX = append(rep.FX, item)
			rep.TotalFX = rep.TotalFX.Add(b.Balance.Abs())
		case c.Class == model.ClassMonetary && isAssetSide(acc):
			rep.Activo = append(rep.Activo, item)
			rep.TotalActivo = rep.TotalActivo.Add(b.Balance.Abs())
		case c.Class == model.ClassMonetary:
			rep.Pasivo = append(rep.Pasivo, item)
			rep.TotalPasivo = rep.TotalPasivo.Add(b.Balance.Abs())
		case in.PartidaAccounts[accID]:
			// restated through its partida
		default:
			rep.Unclassified = append(rep.Unclassified, item)
		}
	}

	rep.NetPosition = rep.TotalActivo.Sub(rep.TotalPasivo)
	for _, items := range [][]Item{rep.Activo, rep.Pasivo, rep.FX, rep.Unclassified} {
		sortItems(items)
	}
	return rep
}

func isAssetSide(acc model.Account) bool {
	switch acc.Kind {
	case model.KindAsset:
		return true
	case model.KindLiability, model.KindEquity:
		return false
	}
	return acc.Side() == model.SideDebit
}

func sortItems(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Code != items[j].Code {
			return items[i].Code < items[j].Code
		}
		return items[i].AccountID < items[j].AccountID
	})
}
