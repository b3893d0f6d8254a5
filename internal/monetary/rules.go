// Package monetary classifies accounts as monetary, non-monetary or
// foreign-currency protected, merges manual overrides and builds the
// monetary position report.
package monetary

import (
	"strings"

	"github.com/ajustes-contables/rt6/internal/model"
	"github.com/ajustes-contables/rt6/internal/textnorm"
)

// Rule maps an account pattern to a classification. Every non-empty
// criterion must match; within a criterion any element matches.
type Rule struct {
	Name         string
	Kinds        []model.AccountKind
	Groups       []model.StatementGroup
	CodePrefixes []string
	Keywords     []string // matched at word starts of name and rubro, accent/case-insensitive
	Class        model.MonetaryClass
}

// Matches reports whether acc satisfies every criterion of r.
func (r Rule) Matches(acc model.Account) bool {
	if len(r.Kinds) > 0 && !containsKind(r.Kinds, acc.Kind) {
		return false
	}
	if len(r.Groups) > 0 && !containsGroup(r.Groups, acc.Group) {
		return false
	}
	if len(r.CodePrefixes) > 0 && !hasCodePrefix(acc.Code, r.CodePrefixes) {
		return false
	}
	if len(r.Keywords) > 0 && !textnorm.MatchAny(acc.Name+" "+acc.Rubro, r.Keywords) {
		return false
	}
	return true
}

// RuleTable is an ordered list of rules; the first match wins.
type RuleTable []Rule

// Match returns the first rule matching acc.
func (t RuleTable) Match(acc model.Account) (Rule, bool) {
	for _, r := range t {
		if r.Matches(acc) {
			return r, true
		}
	}
	return Rule{}, false
}

// Heuristic returns the class of the first matching rule, or ClassUnknown.
func (t RuleTable) Heuristic(acc model.Account) model.MonetaryClass {
	r, ok := t.Match(acc)
	if !ok {
		return model.ClassUnknown
	}
	return r.Class
}

// WithKeywords returns a copy of t with extra keywords appended to the named
// rule. Other rules are shared unchanged.
func (t RuleTable) WithKeywords(name string, extra []string) RuleTable {
	out := make(RuleTable, len(t))
	copy(out, t)
	for i := range out {
		if out[i].Name != name {
			continue
		}
		kw := make([]string, 0, len(out[i].Keywords)+len(extra))
		kw = append(kw, out[i].Keywords...)
		kw = append(kw, extra...)
		out[i].Keywords = kw
	}
	return out
}

// Rule names used by DefaultRules.
const (
	RuleForeignCurrency = "foreign-currency"
	RuleAdvances        = "advances"
	RuleMonetaryItems   = "monetary-items"
	RuleNonMonetary     = "non-monetary-items"
	RuleEquity          = "equity"
	RuleResults         = "results"
	RuleLiabilities     = "liabilities"
)

var balanceSheet = []model.AccountKind{model.KindAsset, model.KindLiability}

// DefaultRules returns the standard Argentine chart heuristics. Assets that
// match no keyword stay unknown so they surface for manual triage.
func DefaultRules() RuleTable {
	return RuleTable{
		{
			Name:     RuleForeignCurrency,
			Kinds:    balanceSheet,
			Keywords: []string{"moneda extranjera", "dolar", "dolares", "u$s", "usd", "euro", "divisa"},
			Class:    model.ClassFXProtected,
		},
		{
			Name:     RuleAdvances,
			Kinds:    balanceSheet,
			Keywords: []string{"anticipo"},
			Class:    model.ClassNonMonetary,
		},
		{
			Name:  RuleMonetaryItems,
			Kinds: balanceSheet,
			Keywords: []string{
				"caja", "banco", "valores a depositar", "plazo fijo", "fondo fijo",
				"deudores", "clientes", "creditos", "documentos a cobrar", "a cobrar",
				"proveedores", "acreedores", "documentos a pagar", "a pagar",
				"prestamos", "deudas", "iva", "remuneraciones", "cargas sociales",
			},
			Class: model.ClassMonetary,
		},
		{
			Name:  RuleNonMonetary,
			Kinds: balanceSheet,
			Keywords: []string{
				"bienes de uso", "inmueble", "terreno", "edificio", "muebles", "rodado",
				"maquinaria", "instalaciones", "herramientas", "amortizacion",
				"mercaderia", "bienes de cambio", "materias primas", "productos",
				"inversiones permanentes", "intangible", "marcas", "llave de negocio",
				"gastos de organizacion",
			},
			Class: model.ClassNonMonetary,
		},
		{Name: RuleEquity, Kinds: []model.AccountKind{model.KindEquity}, Class: model.ClassNonMonetary},
		{Name: RuleResults, Kinds: []model.AccountKind{model.KindIncome, model.KindExpense}, Class: model.ClassNonMonetary},
		{Name: RuleLiabilities, Kinds: []model.AccountKind{model.KindLiability}, Class: model.ClassMonetary},
	}
}

func containsKind(kinds []model.AccountKind, k model.AccountKind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}

func containsGroup(groups []model.StatementGroup, g model.StatementGroup) bool {
	for _, x := range groups {
		if x == g {
			return true
		}
	}
	return false
}

func hasCodePrefix(code string, prefixes []string) bool {
	for _, p := range prefixes {
		if code == p || strings.HasPrefix(code, p+".") {
			return true
		}
	}
	return false
}
