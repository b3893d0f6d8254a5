package accounts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajustes-contables/rt6/internal/model"
)

func TestNewService(t *testing.T) {
	chart := DefaultChart("sociedad_anonima")
	svc := NewService(chart)

	assert.Len(t, svc.All(), len(chart))
}

func TestGetExists(t *testing.T) {
	svc := NewService(DefaultChart("sociedad_anonima"))

	acct, ok := svc.Get("1.2.01.04")
	assert.True(t, ok)
	assert.Equal(t, "Rodados", acct.Name)

	_, ok = svc.Get("9.9")
	assert.False(t, ok)

	assert.True(t, svc.Exists("1.1.01.01"))
	assert.True(t, svc.IsHeader("1.1.01"))
	assert.False(t, svc.IsHeader("1.1.01.01"))
	assert.False(t, svc.IsHeader("9.9"))
}

func TestResolveByIDThenCode(t *testing.T) {
	svc := NewService([]model.Account{
		{ID: "rodados", Code: "1.2.01.04", Kind: model.KindAsset},
		{ID: "1.2.01.04", Code: "9.9", Kind: model.KindAsset},
	})

	acct, ok := svc.Resolve("1.2.01.04")
	require.True(t, ok)
	assert.Equal(t, "1.2.01.04", acct.ID, "ID match wins over code match")

	acct, ok = svc.Resolve("9.9")
	require.True(t, ok)
	assert.Equal(t, "1.2.01.04", acct.ID)

	byCode, ok := svc.ByCode("1.2.01.04")
	require.True(t, ok)
	assert.Equal(t, "rodados", byCode.ID)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	chart := DefaultChart("sociedad_anonima")
	svc := NewService(chart)

	dir := t.TempDir()
	require.NoError(t, svc.Save(dir))

	_, err := os.Stat(filepath.Join(dir, "accounts", "chart-of-accounts.csv"))
	require.NoError(t, err)

	svc2, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, svc2.All(), len(chart))

	for _, orig := range chart {
		got, ok := svc2.Get(orig.ID)
		require.True(t, ok, "account %s should exist", orig.ID)
		assert.Equal(t, orig, got)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
