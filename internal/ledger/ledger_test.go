package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajustes-contables/rt6/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(i int64) decimal.Decimal { return decimal.NewFromInt(i) }

var chart = []model.Account{
	{ID: "caja", Code: "1.1.01.01", Kind: model.KindAsset, NormalSide: model.SideDebit},
	{ID: "ventas", Code: "4.1.01", Kind: model.KindIncome, NormalSide: model.SideCredit},
	{ID: "proveedores", Code: "2.1.01.01", Kind: model.KindLiability, NormalSide: model.SideCredit},
}

func entries() []model.JournalEntry {
	return []model.JournalEntry{
		{ID: "e3", Date: date(2025, 3, 1), Memo: "Pago proveedor", Lines: []model.Line{
			{AccountID: "proveedores", Debit: dec(40)},
			{AccountID: "caja", Credit: dec(40)},
		}},
		{ID: "e1", Date: date(2025, 1, 10), Memo: "Venta contado", Lines: []model.Line{
			{AccountID: "caja", Debit: dec(100), Description: "Factura A-0001"},
			{AccountID: "ventas", Credit: dec(100)},
		}},
		{ID: "e2", Date: date(2025, 2, 5), Memo: "Compra a crédito", Lines: []model.Line{
			{AccountID: "caja", Debit: dec(0)},
			{AccountID: "proveedores", Credit: dec(60)},
			{AccountID: "", Debit: dec(60)},
		}},
	}
}

func TestComputeBalances_NormalSide(t *testing.T) {
	got := ComputeBalances(entries(), chart, Options{})

	assert.True(t, got["caja"].Balance.Equal(dec(60)), "caja %s", got["caja"].Balance)
	assert.True(t, got["ventas"].Balance.Equal(dec(100)), "ventas %s", got["ventas"].Balance)
	assert.True(t, got["proveedores"].Balance.Equal(dec(20)), "proveedores %s", got["proveedores"].Balance)
	_, hasEmpty := got[""]
	assert.False(t, hasEmpty)
}

func TestComputeBalances_BalanceProperty(t *testing.T) {
	got := ComputeBalances(entries(), chart, Options{})
	for _, a := range chart {
		b := got[a.ID]
		want := b.TotalDebit.Sub(b.TotalCredit)
		if a.NormalSide == model.SideCredit {
			want = want.Neg()
		}
		assert.True(t, b.Balance.Equal(want), "%s: balance %s want %s", a.ID, b.Balance, want)
	}
}

func TestComputeBalances_MovementsInDateOrder(t *testing.T) {
	got := ComputeBalances(entries(), chart, Options{})

	caja := got["caja"]
	require.Len(t, caja.Movements, 3)
	assert.Equal(t, []string{"e1", "e2", "e3"}, []string{
		caja.Movements[0].EntryID, caja.Movements[1].EntryID, caja.Movements[2].EntryID,
	})
	assert.Equal(t, "Factura A-0001", caja.Movements[0].Memo)
	assert.Equal(t, "Compra a crédito", caja.Movements[1].Memo)

	// Running balance is the snapshot after each posting.
	assert.True(t, caja.Movements[0].Balance.Equal(dec(100)))
	assert.True(t, caja.Movements[1].Balance.Equal(dec(100)))
	assert.True(t, caja.Movements[2].Balance.Equal(dec(60)))
	assert.Equal(t, date(2025, 3, 1), caja.LastMovement)
}

func TestComputeBalances_Cutoff(t *testing.T) {
	// Cutoff is inclusive at day granularity.
	cutoff := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)
	got := ComputeBalances(entries(), chart, Options{Cutoff: cutoff})

	assert.True(t, got["caja"].Balance.Equal(dec(100)))
	assert.True(t, got["proveedores"].Balance.Equal(dec(60)))
	assert.Len(t, got["proveedores"].Movements, 1)
}

func TestComputeBalances_UnreferencedAndUnknown(t *testing.T) {
	accts := append([]model.Account{{ID: "rodados", Kind: model.KindAsset}}, chart...)
	es := []model.JournalEntry{{ID: "x", Date: date(2025, 1, 1), Lines: []model.Line{
		{AccountID: "misteriosa", Credit: dec(10)},
		{AccountID: "caja", Debit: dec(10)},
	}}}

	got := ComputeBalances(es, accts, Options{})
	_, ok := got["rodados"]
	assert.False(t, ok, "unreferenced accounts produce no record")
	assert.True(t, got["misteriosa"].Balance.Equal(dec(-10)), "unknown accounts use DEBIT convention")
}

func TestComputeBalances_DoesNotMutateInput(t *testing.T) {
	es := entries()
	ComputeBalances(es, chart, Options{})
	assert.Equal(t, "e3", es[0].ID)
}

func TestNonZero(t *testing.T) {
	got := ComputeBalances(entries(), chart, Options{})
	assert.Equal(t, []string{"caja", "proveedores", "ventas"}, NonZero(got))
}

func TestAfter(t *testing.T) {
	cutoff := date(2025, 12, 31)
	assert.False(t, After(time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC), cutoff))
	assert.True(t, After(date(2026, 1, 1), cutoff))
	assert.False(t, After(date(2030, 1, 1), time.Time{}))
}
