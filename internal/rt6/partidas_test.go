package rt6

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajustes-contables/rt6/internal/id"
	"github.com/ajustes-contables/rt6/internal/model"
	"github.com/ajustes-contables/rt6/internal/monetary"
)

func autoSources(t *testing.T) []Source {
	t.Helper()
	a := AnalyzeLedger(AnalyzeInput{
		Accounts:  analyzeChart(),
		Entries:   analyzeEntries(),
		Overrides: monetary.NewOverrides(nil),
		Cutoff:    date(2025, 12, 31),
	})
	require.NotEmpty(t, a.Sources)
	return a.Sources
}

func TestPartidas_RecomputeIsIdempotent(t *testing.T) {
	auto := autoSources(t)
	once := NewPartidas(nil).Recompute(auto)
	twice := once.Recompute(auto)

	assert.Equal(t, once.Sources(), twice.Sources())
	assert.Equal(t, len(auto), twice.Len())
}

func TestPartidas_RecomputeKeepsManual(t *testing.T) {
	auto := autoSources(t)
	p := NewPartidas(nil).Recompute(auto)

	p, added := p.Add(Source{AccountID: "terreno", Code: "1.2.03", Name: "Terreno", Group: model.GroupActivo,
		Lots: []Lot{{OriginPeriod: "2025-02", Base: dec("10")}}})
	assert.True(t, id.IsManual(added.ID))
	assert.True(t, added.Manual)
	assert.Equal(t, id.FormatLotID(added.ID, 1), added.Lots[0].ID)

	edited, ok := p.Get("rt6-rodados")
	require.True(t, ok)
	edited.Lots[0].Base = dec("650")
	p, err := p.Edit(edited)
	require.NoError(t, err)

	p = p.Recompute(auto)
	_, ok = p.Get(added.ID)
	assert.True(t, ok, "manual partida survives")

	rodados, ok := p.Get("rt6-rodados")
	require.True(t, ok)
	assert.True(t, rodados.Manual)
	assert.True(t, rodados.Lots[0].Base.Equal(dec("650")), "manual source shadows the auto one")
	assert.Equal(t, len(auto)+1, p.Len())
}

func TestPartidas_RecomputeDropsStaleAuto(t *testing.T) {
	p := NewPartidas([]Source{{ID: "rt6-old", AccountID: "old"}})
	p = p.Recompute(autoSources(t))
	_, ok := p.Get("rt6-old")
	assert.False(t, ok)
}

func TestPartidas_CommandsAreImmutable(t *testing.T) {
	base := NewPartidas(autoSources(t))
	next, err := base.Delete("rt6-ventas")
	require.NoError(t, err)

	_, ok := base.Get("rt6-ventas")
	assert.True(t, ok)
	_, ok = next.Get("rt6-ventas")
	assert.False(t, ok)

	_, err = next.Delete("rt6-ventas")
	assert.ErrorIs(t, err, ErrPartidaNotFound)
	_, err = next.Edit(Source{ID: "missing"})
	assert.ErrorIs(t, err, ErrPartidaNotFound)
}

func TestPartidas_LotCommands(t *testing.T) {
	p := NewPartidas(autoSources(t))

	p, err := p.EditLot("rt6-rodados#01", Lot{OriginPeriod: "2025-02", Base: dec("1")})
	require.NoError(t, err)
	src, _ := p.Get("rt6-rodados")
	assert.Equal(t, "rt6-rodados#01", src.Lots[0].ID)
	assert.True(t, src.Lots[0].Base.Equal(dec("1")))
	assert.True(t, src.Manual)

	p, err = p.DeleteLot("rt6-rodados#01")
	require.NoError(t, err)
	src, _ = p.Get("rt6-rodados")
	assert.Empty(t, src.Lots)

	_, err = p.DeleteLot("rt6-rodados#09")
	assert.ErrorIs(t, err, ErrLotNotFound)
	_, err = p.DeleteLot("rt6-nada#01")
	assert.ErrorIs(t, err, ErrPartidaNotFound)
	_, err = p.DeleteLot("garbage")
	assert.Error(t, err)
}

func TestPartidas_AccountSet(t *testing.T) {
	p := NewPartidas(autoSources(t))
	assert.Equal(t, map[string]bool{"capital": true, "rodados": true, "ventas": true}, p.AccountSet())
}

func TestSourcesCSVRoundTrip(t *testing.T) {
	p := NewPartidas(autoSources(t))
	p, _ = p.Add(Source{Name: "Sin lotes", Code: "9"})

	var buf bytes.Buffer
	require.NoError(t, WriteSources(&buf, p.Sources()))
	assert.True(t, strings.HasPrefix(buf.String(), Header))

	got, err := ReadSources(&buf)
	require.NoError(t, err)
	require.Len(t, got, p.Len())

	want := p.Sources()
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Manual, got[i].Manual)
		assert.Equal(t, want[i].Group, got[i].Group)
		require.Len(t, got[i].Lots, len(want[i].Lots))
		for j := range want[i].Lots {
			assert.Equal(t, want[i].Lots[j].ID, got[i].Lots[j].ID)
			assert.Equal(t, want[i].Lots[j].OriginPeriod, got[i].Lots[j].OriginPeriod)
			assert.True(t, want[i].Lots[j].Base.Equal(got[i].Lots[j].Base))
			assert.True(t, want[i].Lots[j].OriginDate.Equal(got[i].Lots[j].OriginDate))
		}
	}
}

func TestLoadSavePartidas(t *testing.T) {
	dir := t.TempDir()

	empty, err := LoadPartidas(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	p := NewPartidas(autoSources(t))
	require.NoError(t, SavePartidas(dir, p))

	got, err := LoadPartidas(dir)
	require.NoError(t, err)
	assert.Equal(t, p.Len(), got.Len())
}
