package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajustes-contables/rt6/internal/model"
)

func TestRoundTrip(t *testing.T) {
	accounts := []model.Account{
		{ID: "caja", Code: "1.1.01.01", Name: "Caja", Kind: model.KindAsset, Group: model.GroupActivo, Rubro: "Caja y bancos", Level: 4, NormalSide: model.SideDebit},
		{ID: "amort", Code: "1.2.01.91", Name: "Amortización acumulada", Kind: model.KindAsset, Group: model.GroupActivo, ParentID: "bu", Level: 4, NormalSide: model.SideCredit, IsContra: true},
		{ID: "bu", Code: "1.2.01", Name: "Bienes de uso", Kind: model.KindAsset, Group: model.GroupActivo, Level: 3, NormalSide: model.SideDebit, IsHeader: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, accounts))
	assert.True(t, strings.HasPrefix(buf.String(), "account_id,code,"))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, accounts, got)
}

func TestUnmarshalAccount_Defaults(t *testing.T) {
	acct, err := UnmarshalAccount([]string{"prov", "2.1.01.01", "Proveedores", "liability", "", "Deudas comerciales", "", "", "", "", ""})
	require.NoError(t, err)

	assert.Equal(t, model.KindLiability, acct.Kind)
	assert.Equal(t, model.GroupPasivo, acct.Group)
	assert.Equal(t, model.SideCredit, acct.NormalSide)
	assert.Equal(t, 4, acct.Level)
	assert.False(t, acct.IsHeader)
}

func TestUnmarshalAccount_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record []string
	}{
		{"short row", []string{"a", "1"}},
		{"empty id", []string{"", "1", "x", "ASSET", "", "", "", "", "", "", ""}},
		{"bad kind", []string{"a", "1", "x", "ASSETS", "", "", "", "", "", "", ""}},
		{"bad level", []string{"a", "1", "x", "ASSET", "", "", "", "one", "", "", ""}},
		{"bad side", []string{"a", "1", "x", "ASSET", "", "", "", "", "LEFT", "", ""}},
		{"bad header flag", []string{"a", "1", "x", "ASSET", "", "", "", "", "", "maybe", ""}},
	}
	for _, tt := range tests {
		_, err := UnmarshalAccount(tt.record)
		assert.Error(t, err, tt.name)
	}
}

func TestDefaultChartRoundTrip(t *testing.T) {
	chart := DefaultChart("sociedad_anonima")

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, chart))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(chart))
	assert.Equal(t, chart, got)
}
