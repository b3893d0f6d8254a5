package monetary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajustes-contables/rt6/internal/accounts"
	"github.com/ajustes-contables/rt6/internal/model"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name string
		acc  model.Account
		want model.MonetaryClass
		rule string
	}{
		{"cash", model.Account{Name: "Caja", Kind: model.KindAsset}, model.ClassMonetary, RuleMonetaryItems},
		{"bank accented", model.Account{Name: "BANCO Nación cta. cte.", Kind: model.KindAsset}, model.ClassMonetary, RuleMonetaryItems},
		{"fx before cash", model.Account{Name: "Caja moneda extranjera", Kind: model.KindAsset}, model.ClassFXProtected, RuleForeignCurrency},
		{"dollars", model.Account{Name: "Banco Galicia Dólares", Kind: model.KindAsset}, model.ClassFXProtected, RuleForeignCurrency},
		{"ppe", model.Account{Name: "Rodados", Kind: model.KindAsset}, model.ClassNonMonetary, RuleNonMonetary},
		{"inventory", model.Account{Name: "Mercaderías", Kind: model.KindAsset}, model.ClassNonMonetary, RuleNonMonetary},
		{"rubro keyword", model.Account{Name: "Toyota Hilux", Rubro: "Bienes de uso", Kind: model.KindAsset}, model.ClassNonMonetary, RuleNonMonetary},
		{"customer advances", model.Account{Name: "Anticipos de clientes", Kind: model.KindLiability}, model.ClassNonMonetary, RuleAdvances},
		{"payables", model.Account{Name: "Proveedores", Kind: model.KindLiability}, model.ClassMonetary, RuleMonetaryItems},
		{"liability fallback", model.Account{Name: "Otras", Kind: model.KindLiability}, model.ClassMonetary, RuleLiabilities},
		{"equity", model.Account{Name: "Capital suscripto", Kind: model.KindEquity}, model.ClassNonMonetary, RuleEquity},
		{"income ignores keywords", model.Account{Name: "Intereses banco", Kind: model.KindIncome}, model.ClassNonMonetary, RuleResults},
		{"expense", model.Account{Name: "Sueldos", Kind: model.KindExpense}, model.ClassNonMonetary, RuleResults},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := rules.Match(tt.acc)
			assert.True(t, ok)
			assert.Equal(t, tt.want, r.Class)
			assert.Equal(t, tt.rule, r.Name)
		})
	}
}

func TestDefaultRules_KeywordsMatchWholeWords(t *testing.T) {
	rules := DefaultRules()
	for _, name := range []string{"Acciones en cooperativas", "Inversiones en sociedades colectivas"} {
		acc := model.Account{Name: name, Kind: model.KindAsset}
		assert.NotEqual(t, model.ClassMonetary, rules.Heuristic(acc), name)
	}
	assert.Equal(t, model.ClassMonetary, rules.Heuristic(model.Account{Name: "IVA crédito fiscal", Kind: model.KindAsset}))
}

func TestDefaultRules_UnknownAsset(t *testing.T) {
	got := DefaultRules().Heuristic(model.Account{Name: "Cuenta particular socio", Kind: model.KindAsset})
	assert.Equal(t, model.ClassUnknown, got)
}

func TestRule_CriteriaAreConjunctive(t *testing.T) {
	r := Rule{
		Kinds:        []model.AccountKind{model.KindAsset},
		Groups:       []model.StatementGroup{model.GroupActivo},
		CodePrefixes: []string{"1.1"},
		Class:        model.ClassMonetary,
	}
	assert.True(t, r.Matches(model.Account{Kind: model.KindAsset, Group: model.GroupActivo, Code: "1.1.01"}))
	assert.True(t, r.Matches(model.Account{Kind: model.KindAsset, Group: model.GroupActivo, Code: "1.1"}))
	assert.False(t, r.Matches(model.Account{Kind: model.KindAsset, Group: model.GroupActivo, Code: "1.10"}))
	assert.False(t, r.Matches(model.Account{Kind: model.KindAsset, Group: model.GroupPasivo, Code: "1.1.01"}))
	assert.False(t, r.Matches(model.Account{Kind: model.KindLiability, Group: model.GroupActivo, Code: "1.1.01"}))
}

func TestWithKeywords(t *testing.T) {
	base := DefaultRules()
	extended := base.WithKeywords(RuleForeignCurrency, []string{"reales"})

	acc := model.Account{Name: "Caja reales", Kind: model.KindAsset}
	assert.Equal(t, model.ClassMonetary, base.Heuristic(acc))
	assert.Equal(t, model.ClassFXProtected, extended.Heuristic(acc))
	assert.NotContains(t, base[0].Keywords, "reales")
}

func TestDefaultChartFullyClassified(t *testing.T) {
	rules := DefaultRules()
	for _, a := range accounts.DefaultChart("sociedad") {
		if a.IsHeader {
			continue
		}
		assert.NotEqual(t, model.ClassUnknown, rules.Heuristic(a), "%s %s", a.Code, a.Name)
	}
}
