package indices

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func testTable(t *testing.T) Table {
	t.Helper()
	tbl, err := NewTable([]Row{
		{Period: Opening, Value: dec("100")},
		{Period: "2025-01", Value: dec("110")},
		{Period: "2025-06", Value: dec("150")},
		{Period: "2025-12", Value: dec("200")},
	})
	require.NoError(t, err)
	return tbl
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in   string
		want Period
	}{
		{"2025-03", "2025-03"},
		{"2025-3", "2025-03"},
		{" 2024-12 ", "2024-12"},
		{"apertura", Opening},
	}
	for _, tt := range tests {
		got, err := ParsePeriod(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "2025", "2025-13", "25-01", "2025-xx", "2025-01-01"} {
		_, err := ParsePeriod(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestPeriodHelpers(t *testing.T) {
	assert.Equal(t, Period("2025-02"), PeriodOf(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)))

	start, ok := Period("2025-01").Start()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
	_, ok = Opening.Start()
	assert.False(t, ok)
}

func TestNewTable_RejectsDuplicates(t *testing.T) {
	_, err := NewTable([]Row{
		{Period: "2025-01", Value: dec("1")},
		{Period: "2025-1", Value: dec("2")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate period 2025-01")
}

func TestNewTable_RejectsNonPositive(t *testing.T) {
	_, err := NewTable([]Row{{Period: "2025-01", Value: decimal.Zero}})
	assert.Error(t, err)
}

func TestLookup_Missing(t *testing.T) {
	tbl := testTable(t)

	_, err := tbl.Lookup("2025-03")
	require.Error(t, err)

	var missing *MissingIndexError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, Period("2025-03"), missing.Period)
}

func TestCoefficient(t *testing.T) {
	tbl := testTable(t)

	c, err := tbl.Coefficient("2025-12", "2025-12")
	require.NoError(t, err)
	assert.True(t, c.Equal(decimal.NewFromInt(1)))

	c, err = tbl.Coefficient("2025-12", Opening)
	require.NoError(t, err)
	assert.True(t, c.Equal(decimal.NewFromInt(2)))

	_, err = tbl.Coefficient("2025-12", "2025-02")
	var missing *MissingIndexError
	assert.ErrorAs(t, err, &missing)

	_, err = tbl.Coefficient("2026-01", "2025-01")
	assert.ErrorAs(t, err, &missing)
}

func TestRowsSortedOpeningFirst(t *testing.T) {
	rows := testTable(t).Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, Opening, rows[0].Period)
	assert.Equal(t, Period("2025-01"), rows[1].Period)
	assert.Equal(t, Period("2025-12"), rows[3].Period)
}

func TestMerge(t *testing.T) {
	base := testTable(t)
	merged, err := base.Merge([]Row{
		{Period: "2025-12", Value: dec("210")},
		{Period: "2025-02", Value: dec("120")},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, merged.Len())

	v, err := merged.Lookup("2025-12")
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("210")))

	// The original table is unchanged.
	v, err = base.Lookup("2025-12")
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("200")))
	assert.False(t, base.Has("2025-02"))
}

func TestCSVRoundTrip(t *testing.T) {
	tbl := testTable(t)

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, tbl.Rows()))

	rows, err := ReadRows(&buf)
	require.NoError(t, err)
	got, err := NewTable(rows)
	require.NoError(t, err)
	assert.Equal(t, tbl.Rows(), got.Rows())
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()

	empty, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	require.NoError(t, Save(dir, testTable(t)))
	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Len())
}
