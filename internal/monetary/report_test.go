package monetary

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajustes-contables/rt6/internal/model"
)

func dec(i int64) decimal.Decimal { return decimal.NewFromInt(i) }

func reportChart() []model.Account {
	return []model.Account{
		{ID: "activo", Code: "1", Name: "Activo", Kind: model.KindAsset, IsHeader: true},
		{ID: "caja", Code: "1.1", Name: "Caja", Kind: model.KindAsset},
		{ID: "deudores", Code: "1.2", Name: "Deudores por ventas", Kind: model.KindAsset},
		{ID: "usd", Code: "1.3", Name: "Caja moneda extranjera", Kind: model.KindAsset},
		{ID: "rodados", Code: "1.4", Name: "Rodados", Kind: model.KindAsset},
		{ID: "socio", Code: "1.5", Name: "Cuenta particular socio", Kind: model.KindAsset},
		{ID: "prov", Code: "2.1", Name: "Proveedores", Kind: model.KindLiability, NormalSide: model.SideCredit},
	}
}

func reportBalances() map[string]model.AccountBalance {
	return map[string]model.AccountBalance{
		"activo":   {AccountID: "activo", Balance: dec(999)},
		"caja":     {AccountID: "caja", Balance: dec(100)},
		"deudores": {AccountID: "deudores", Balance: dec(-20)},
		"usd":      {AccountID: "usd", Balance: dec(500)},
		"rodados":  {AccountID: "rodados", Balance: dec(1000)},
		"socio":    {AccountID: "socio", Balance: dec(30)},
		"prov":     {AccountID: "prov", Balance: dec(70)},
		"ghost":    {AccountID: "ghost", Balance: dec(5)},
		"empty":    {AccountID: "empty", Balance: dec(0)},
	}
}

func ids(items []Item) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.AccountID)
	}
	return out
}

func TestBuildReport(t *testing.T) {
	rep := BuildReport(Input{
		Accounts:        reportChart(),
		Balances:        reportBalances(),
		Overrides:       NewOverrides(nil),
		PartidaAccounts: map[string]bool{"rodados": true},
	})

	assert.Equal(t, []string{"caja", "deudores"}, ids(rep.Activo))
	assert.Equal(t, []string{"prov"}, ids(rep.Pasivo))
	assert.Equal(t, []string{"usd"}, ids(rep.FX))
	assert.Equal(t, []string{"ghost", "socio"}, ids(rep.Unclassified), "unknown accounts and unmatched assets surface")

	assert.True(t, rep.TotalActivo.Equal(dec(120)), "absolute values: %s", rep.TotalActivo)
	assert.True(t, rep.TotalPasivo.Equal(dec(70)))
	assert.True(t, rep.TotalFX.Equal(dec(500)))
	assert.True(t, rep.NetPosition.Equal(dec(50)), "FX excluded from net position: %s", rep.NetPosition)
}

func TestBuildReport_ExclusionRemovesEverywhere(t *testing.T) {
	ovs := NewOverrides(nil).Exclude("caja").Exclude("socio").Exclude("usd")
	rep := BuildReport(Input{Accounts: reportChart(), Balances: reportBalances(), Overrides: ovs})

	all := append(append(append(ids(rep.Activo), ids(rep.Pasivo)...), ids(rep.FX)...), ids(rep.Unclassified)...)
	assert.NotContains(t, all, "caja")
	assert.NotContains(t, all, "socio")
	assert.NotContains(t, all, "usd")
	assert.True(t, rep.TotalActivo.Equal(dec(20)))
	assert.True(t, rep.Classifications["caja"].Excluded)
}

func TestBuildReport_ManualOverrideMovesBucket(t *testing.T) {
	ovs := NewOverrides(nil).AddManualMonetary("socio")
	ovs = ovs.ToggleClassification("caja", model.ClassMonetary)

	rep := BuildReport(Input{Accounts: reportChart(), Balances: reportBalances(), Overrides: ovs})
	assert.Equal(t, []string{"deudores", "socio"}, ids(rep.Activo))
	assert.Contains(t, ids(rep.Unclassified), "caja", "non-monetary without partida stays visible")

	c := rep.Classifications["socio"]
	require.False(t, c.IsAuto)
	assert.Equal(t, model.ClassUnknown, c.Heuristic)
}

func TestBuildReport_BucketBySideWhenKindMissing(t *testing.T) {
	chart := []model.Account{
		{ID: "x", Code: "9.1", NormalSide: model.SideCredit},
		{ID: "y", Code: "9.2"},
	}
	ovs := NewOverrides(nil).AddManualMonetary("x").AddManualMonetary("y")
	rep := BuildReport(Input{
		Accounts:  chart,
		Balances:  map[string]model.AccountBalance{"x": {Balance: dec(10)}, "y": {Balance: dec(4)}},
		Overrides: ovs,
	})
	assert.Equal(t, []string{"y"}, ids(rep.Activo))
	assert.Equal(t, []string{"x"}, ids(rep.Pasivo))
	assert.True(t, rep.NetPosition.Equal(dec(-6)))
}
