package hierarchy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajustes-contables/rt6/internal/model"
)

func dec(i int64) decimal.Decimal { return decimal.NewFromInt(i) }

func explicitChart() []model.Account {
	return []model.Account{
		{ID: "toyota", Code: "1.2.01.04.01", ParentID: "vehicles", Kind: model.KindAsset},
		{ID: "vehicles", Code: "1.2.01.04", ParentID: "ppe", Kind: model.KindAsset},
		{ID: "ppe", Code: "1.2.01", ParentID: "root", Kind: model.KindAsset},
		{ID: "root", Code: "1", Kind: model.KindAsset, IsHeader: true},
	}
}

func TestBuild_ExplicitParent(t *testing.T) {
	tree := Build(explicitChart())

	assert.Equal(t, "vehicles", tree.Parent("toyota"))
	assert.Equal(t, "ppe", tree.Parent("vehicles"))
	assert.Equal(t, "root", tree.Parent("ppe"))
	assert.Equal(t, []string{"root"}, tree.Roots())
	assert.Equal(t, []string{"vehicles", "ppe", "root"}, tree.Ancestors("toyota"))
	assert.Empty(t, tree.Errors())
}

func TestRollup_ExplicitParentScenario(t *testing.T) {
	tree := Build(explicitChart())
	got := Rollup(tree, map[string]decimal.Decimal{"toyota": dec(100)})

	for _, id := range []string{"toyota", "vehicles", "ppe", "root"} {
		assert.True(t, got[id].Equal(dec(100)), "%s = %s", id, got[id])
	}
	assert.Equal(t, "vehicles", Presentation(tree, "toyota", DefaultPredicate))
}

func TestBuild_CodeDerivedFallback(t *testing.T) {
	tree := Build([]model.Account{
		{ID: "root", Code: "1"},
		{ID: "vehicles", Code: "1.2.01.04"},
		{ID: "toyota", Code: "1.2.01.04.01"},
	})

	assert.Equal(t, "vehicles", tree.Parent("toyota"))
	assert.Equal(t, "root", tree.Parent("vehicles"), "missing intermediate codes are skipped")

	got := Rollup(tree, map[string]decimal.Decimal{"toyota": dec(50)})
	assert.True(t, got["vehicles"].Equal(dec(50)))
	assert.True(t, got["root"].Equal(dec(50)))
}

func TestBuild_InvalidExplicitParentFallsBack(t *testing.T) {
	tree := Build([]model.Account{
		{ID: "root", Code: "1"},
		{ID: "self", Code: "1.1", ParentID: "self"},
		{ID: "ghost", Code: "1.2", ParentID: "does-not-exist"},
		{ID: "orphan", Code: "9.9"},
	})

	assert.Equal(t, "root", tree.Parent("self"))
	assert.Equal(t, "root", tree.Parent("ghost"))
	assert.Equal(t, "", tree.Parent("orphan"))
	assert.Equal(t, []string{"root", "orphan"}, tree.Roots())
}

func TestBuild_OrderIndependent(t *testing.T) {
	a := explicitChart()
	b := []model.Account{a[3], a[1], a[0], a[2]}
	a = append(a, model.Account{ID: "camion", Code: "1.2.01.04.02", ParentID: "vehicles"})
	b = append([]model.Account{{ID: "camion", Code: "1.2.01.04.02", ParentID: "vehicles"}}, b...)

	ta, tb := Build(a), Build(b)
	assert.Equal(t, []string{"toyota", "camion"}, ta.Children("vehicles"))
	assert.Equal(t, ta.Children("vehicles"), tb.Children("vehicles"))
	assert.Equal(t, ta.Roots(), tb.Roots())
}

func TestBuild_CycleDetached(t *testing.T) {
	tree := Build([]model.Account{
		{ID: "root", Code: "1"},
		{ID: "a", Code: "8.1", ParentID: "b"},
		{ID: "b", Code: "8.2", ParentID: "c"},
		{ID: "c", Code: "8.3", ParentID: "a"},
		{ID: "leaf", Code: "8.1.1", ParentID: "a"},
		{ID: "ok", Code: "1.1"},
	})

	errs := tree.Errors()
	require.Len(t, errs, 3)
	var ids []string
	for _, e := range errs {
		ids = append(ids, e.AccountID)
		assert.Len(t, e.Cycle, 3)
		assert.Contains(t, e.Error(), "cycle")
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	for _, id := range []string{"a", "b", "c"} {
		assert.True(t, tree.IsRoot(id), id)
	}
	// The rest of the tree stays intact.
	assert.Equal(t, "a", tree.Parent("leaf"))
	assert.Equal(t, "root", tree.Parent("ok"))

	got := Rollup(tree, map[string]decimal.Decimal{"leaf": dec(7), "ok": dec(3)})
	assert.True(t, got["a"].Equal(dec(7)))
	assert.True(t, got["root"].Equal(dec(3)))
	assert.True(t, got["b"].IsZero())
}

func TestRollup_HeaderDirectPlusChildren(t *testing.T) {
	tree := Build(explicitChart())
	direct := map[string]decimal.Decimal{"toyota": dec(100), "vehicles": dec(5), "root": dec(1)}

	first := Rollup(tree, direct)
	second := Rollup(tree, direct)
	assert.Equal(t, first, second, "rollup is idempotent")

	assert.True(t, first["vehicles"].Equal(dec(105)))
	assert.True(t, first["ppe"].Equal(dec(105)))
	assert.True(t, first["root"].Equal(dec(106)))
	assert.Len(t, first, 4, "every node present")
}

func TestRollupTotals(t *testing.T) {
	tree := Build([]model.Account{
		{ID: "pasivo", Code: "2", NormalSide: model.SideCredit, IsHeader: true},
		{ID: "proveedores", Code: "2.1", NormalSide: model.SideCredit},
		{ID: "anticipos", Code: "2.2", NormalSide: model.SideCredit},
	})
	got := RollupTotals(tree, map[string]model.AccountBalance{
		"proveedores": {TotalDebit: dec(40), TotalCredit: dec(100)},
		"anticipos":   {TotalDebit: dec(0), TotalCredit: dec(10)},
	})

	assert.True(t, got["pasivo"].Debit.Equal(dec(40)))
	assert.True(t, got["pasivo"].Credit.Equal(dec(110)))
	assert.True(t, got["pasivo"].Balance.Equal(dec(70)))
	assert.True(t, got["proveedores"].Balance.Equal(dec(60)))
}

func TestPresentation(t *testing.T) {
	tree := Build([]model.Account{
		{ID: "root", Code: "1", IsHeader: true},
		{ID: "caja", Code: "1.1"},
		{ID: "rubro", Code: "1.2", IsHeader: true},
		{ID: "banco", Code: "1.2.1"},
	})

	assert.Equal(t, "caja", Presentation(tree, "caja", DefaultPredicate), "root ancestor is never chosen")
	assert.Equal(t, "rubro", Presentation(tree, "banco", nil))
	assert.Equal(t, "root", Presentation(tree, "banco", func(_ *Tree, id string) bool { return id == "root" }))

	m := PresentationMap(tree, DefaultPredicate)
	assert.Equal(t, map[string]string{"caja": "caja", "banco": "rubro"}, m)
}

func TestWalk(t *testing.T) {
	tree := Build(explicitChart())
	var seen []string
	var depths []int
	tree.Walk(func(id string, depth int) {
		seen = append(seen, id)
		depths = append(depths, depth)
	})
	assert.Equal(t, []string{"root", "ppe", "vehicles", "toyota"}, seen)
	assert.Equal(t, []int{0, 1, 2, 3}, depths)
}
