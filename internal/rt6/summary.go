package rt6

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ajustes-contables/rt6/internal/indices"
	"github.com/ajustes-contables/rt6/internal/model"
	"github.com/ajustes-contables/rt6/internal/textnorm"
)

// DefaultCapitalRubros are the equity rubros whose restatement is reported
// as capital adjustment instead of RECPAM.
var DefaultCapitalRubros = []string{
	"Capital social",
	"Capital suscripto",
	"Ajuste de capital",
	"Aportes irrevocables",
}

// NoRubro labels partidas without a rubro.
const NoRubro = "Sin rubro"

// Amounts is a base/homogeneous/delta triple.
type Amounts struct {
	Base  decimal.Decimal
	Homog decimal.Decimal
	Delta decimal.Decimal
}

func zeroAmounts() Amounts {
	return Amounts{Base: decimal.Zero, Homog: decimal.Zero, Delta: decimal.Zero}
}

func (a Amounts) add(base, homog, delta decimal.Decimal) Amounts {
	return Amounts{Base: a.Base.Add(base), Homog: a.Homog.Add(homog), Delta: a.Delta.Add(delta)}
}

// RubroSummary totals the partidas of one rubro.
type RubroSummary struct {
	Rubro    string
	Capital  bool
	Partidas []string
	Amounts
}

// GroupSummary totals one statement group.
type GroupSummary struct {
	Group  model.StatementGroup
	Rubros []RubroSummary
	Amounts
}

// Summary aggregates computed partidas.
type Summary struct {
	Groups []GroupSummary

	// CapitalAdjustment is the delta of capital rubros. It never enters NetRecpam.
	CapitalAdjustment decimal.Decimal

	// ResultadoAjustado sums RESULTADOS partidas with ResultSign applied.
	ResultadoAjustado Amounts

	// NetRecpam is Σ −ResultSign × delta over non-capital partidas.
	NetRecpam decimal.Decimal

	// IndirectRecpam is set by WithIndirect; IndirectPending is true until then.
	IndirectRecpam  decimal.Decimal
	IndirectPending bool

	MissingPeriods []indices.Period
}

// SummaryOptions configures Summarize.
type SummaryOptions struct {
	CapitalRubros []string
}

// Summarize groups partidas by statement group and rubro. Groups follow
// ACTIVO, PASIVO, PN, RESULTADOS; rubros within a group are ordered by label.
func Summarize(partidas []Partida, opts SummaryOptions) Summary {
	capitalLabels := opts.CapitalRubros
	if len(capitalLabels) == 0 {
		capitalLabels = DefaultCapitalRubros
	}
	capital := textnorm.NewSet(capitalLabels)

	s := Summary{
		CapitalAdjustment: decimal.Zero,
		ResultadoAjustado: zeroAmounts(),
		NetRecpam:         decimal.Zero,
		IndirectRecpam:    decimal.Zero,
		IndirectPending:   true,
	}

	type rubroKey struct {
		group model.StatementGroup
		rubro string
	}
	rubros := make(map[rubroKey]*RubroSummary)
	byGroup := make(map[model.StatementGroup][]*RubroSummary)
	missing := make(map[indices.Period]bool)

	for _, p := range partidas {
		label := p.Rubro
		if label == "" {
			label = NoRubro
		}
		key := rubroKey{group: p.Group, rubro: textnorm.Fold(label)}
		r, ok := rubros[key]
		if !ok {
			r = &RubroSummary{Rubro: label, Capital: capital.Has(label), Amounts: zeroAmounts()}
			rubros[key] = r
			byGroup[p.Group] = append(byGroup[p.Group], r)
		}
		r.Partidas = append(r.Partidas, p.ID)
		r.Amounts = r.add(p.TotalBase, p.TotalHomog, p.TotalRecpam)

		sign := decimal.NewFromInt(int64(ResultSign(p)))
		if p.Group == model.GroupResultados {
			s.ResultadoAjustado = s.ResultadoAjustado.add(
				p.TotalBase.Mul(sign), p.TotalHomog.Mul(sign), p.TotalRecpam.Mul(sign))
		}
		if r.Capital {
			s.CapitalAdjustment = s.CapitalAdjustment.Add(p.TotalRecpam)
		} else {
			s.NetRecpam = s.NetRecpam.Sub(sign.Mul(p.TotalRecpam))
		}

		for _, mp := range p.MissingPeriods {
			if !missing[mp] {
				missing[mp] = true
				s.MissingPeriods = append(s.MissingPeriods, mp)
			}
		}
	}

	groups := append([]model.StatementGroup(nil), model.StatementGroups...)
	var extra []model.StatementGroup
	for g := range byGroup {
		if !isStandardGroup(g) {
			extra = append(extra, g)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	groups = append(groups, extra...)

	for _, g := range groups {
		rs := byGroup[g]
		if len(rs) == 0 {
			continue
		}
		sort.SliceStable(rs, func(i, j int) bool { return textnorm.Fold(rs[i].Rubro) < textnorm.Fold(rs[j].Rubro) })

		gs := GroupSummary{Group: g, Amounts: zeroAmounts()}
		for _, r := range rs {
			gs.Rubros = append(gs.Rubros, *r)
			gs.Amounts = gs.add(r.Base, r.Homog, r.Delta)
		}
		s.Groups = append(s.Groups, gs)
	}

	sort.Slice(s.MissingPeriods, func(i, j int) bool { return s.MissingPeriods[i] < s.MissingPeriods[j] })
	return s
}

func isStandardGroup(g model.StatementGroup) bool {
	for _, sg := range model.StatementGroups {
		if sg == g {
			return true
		}
	}
	return false
}
