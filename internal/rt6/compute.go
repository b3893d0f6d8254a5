package rt6

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ajustes-contables/rt6/internal/indices"
	"github.com/ajustes-contables/rt6/internal/model"
)

// LotResult is a lot restated to the closing period.
type LotResult struct {
	Lot
	Coefficient  decimal.Decimal
	Homog        decimal.Decimal
	Delta        decimal.Decimal
	MissingIndex bool
}

// Partida is a computed reexpression line item. Totals only include lots
// whose coefficient could be computed.
type Partida struct {
	ID         string
	AccountID  string
	Code       string
	Name       string
	Group      model.StatementGroup
	Rubro      string
	Kind       model.AccountKind
	NormalSide model.NormalSide
	Manual     bool

	Lots        []LotResult
	TotalBase   decimal.Decimal
	TotalHomog  decimal.Decimal
	TotalRecpam decimal.Decimal

	MissingPeriods []indices.Period
}

// HasMissingIndex reports whether any lot was left out of the totals.
func (p Partida) HasMissingIndex() bool { return len(p.MissingPeriods) > 0 }

// ComputePartida restates every lot of src: coefficient =
// index(closing)/index(origin), homog = base × coefficient, delta = homog −
// base. Amounts are kept exact; rounding happens only when they are shown.
// A lot whose index is missing is flagged and left out of the totals; it is
// never restated with coefficient 1.
func ComputePartida(src Source, table indices.Table, closing indices.Period) Partida {
	p := Partida{
		ID:          src.ID,
		AccountID:   src.AccountID,
		Code:        src.Code,
		Name:        src.Name,
		Group:       src.Group,
		Rubro:       src.Rubro,
		Kind:        src.Kind,
		NormalSide:  src.NormalSide,
		Manual:      src.Manual,
		TotalBase:   decimal.Zero,
		TotalHomog:  decimal.Zero,
		TotalRecpam: decimal.Zero,
	}

	missing := make(map[indices.Period]bool)
	for _, lot := range src.Lots {
		r := LotResult{Lot: lot}
		coef, err := table.Coefficient(closing, lot.OriginPeriod)
		var mie *indices.MissingIndexError
		switch {
		case errors.As(err, &mie):
			r.MissingIndex = true
			r.Notes = appendNote(lot.Notes, fmt.Sprintf("sin índice para %s", mie.Period))
			if !missing[mie.Period] {
				missing[mie.Period] = true
				p.MissingPeriods = append(p.MissingPeriods, mie.Period)
			}
		case err != nil:
			r.MissingIndex = true
			r.Notes = appendNote(lot.Notes, err.Error())
		default:
			r.Coefficient = coef
			r.Homog = lot.Base.Mul(coef)
			r.Delta = r.Homog.Sub(lot.Base)
			p.TotalBase = p.TotalBase.Add(lot.Base)
			p.TotalHomog = p.TotalHomog.Add(r.Homog)
			p.TotalRecpam = p.TotalRecpam.Add(r.Delta)
		}
		p.Lots = append(p.Lots, r)
	}
	return p
}

func appendNote(notes, note string) string {
	if notes == "" {
		return note
	}
	return notes + "; " + note
}

// ResultSign is the sign a partida contributes to the adjusted result:
// expenses −1, income +1, otherwise −1 for DEBIT and +1 for CREDIT accounts.
func ResultSign(p Partida) int {
	switch p.Kind {
	case model.KindExpense:
		return -1
	case model.KindIncome:
		return 1
	}
	if p.NormalSide == model.SideCredit {
		return 1
	}
	return -1
}
