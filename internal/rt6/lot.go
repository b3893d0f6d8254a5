// Package rt6 restates non-monetary and result accounts with price index
// coefficients, producing homogeneous values and RECPAM per partida.
package rt6

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ajustes-contables/rt6/internal/indices"
	"github.com/ajustes-contables/rt6/internal/model"
)

// Lot is an amount that entered an account in one origin period.
type Lot struct {
	ID           string
	OriginDate   time.Time
	OriginPeriod indices.Period
	Base         decimal.Decimal
	Notes        string
}

// Source is the input of one partida: an account and its origin lots.
// Manual sources were entered or edited by hand and survive recomputes.
type Source struct {
	ID         string
	AccountID  string
	Code       string
	Name       string
	Group      model.StatementGroup
	Rubro      string
	Kind       model.AccountKind
	NormalSide model.NormalSide
	Manual     bool
	Lots       []Lot
}

// SourceFor returns an empty source carrying acc's presentation fields.
func SourceFor(acc model.Account) Source {
	group := acc.Group
	if group == "" {
		group = model.DefaultGroup(acc.Kind)
	}
	return Source{
		AccountID:  acc.ID,
		Code:       acc.Code,
		Name:       acc.Name,
		Group:      group,
		Rubro:      acc.Rubro,
		Kind:       acc.Kind,
		NormalSide: acc.Side(),
	}
}

func (s Source) clone() Source {
	lots := make([]Lot, len(s.Lots))
	copy(lots, s.Lots)
	s.Lots = lots
	return s
}
