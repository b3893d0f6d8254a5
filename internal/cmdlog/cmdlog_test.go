package cmdlog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshal(t *testing.T) {
	e := Entry{
		Timestamp:  time.Date(2025, 12, 31, 18, 30, 0, 0, time.UTC),
		Command:    "override exclude",
		Target:     "1.2.01.04",
		Details:    "excluded from RT6",
		CommitHash: "abc1234",
	}
	got, err := UnmarshalEntry(MarshalEntry(e))
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	_, err := UnmarshalEntry([]string{"a"})
	assert.Error(t, err)

	_, err = UnmarshalEntry([]string{"yesterday", "c", "t", "d", ""})
	assert.ErrorContains(t, err, "parsing timestamp")
}

func TestAppendRead(t *testing.T) {
	dir := t.TempDir()

	none, err := Read(dir)
	require.NoError(t, err)
	assert.Empty(t, none)

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, Append(dir, Entry{Timestamp: ts, Command: "partidas recompute"}))
	require.NoError(t, Append(dir,
		Entry{Timestamp: ts, Command: "override toggle", Target: "caja", Details: "MONETARY -> NON_MONETARY"},
		Entry{Timestamp: ts, Command: "indices import", Details: "ipc.csv, 12 rows"},
	))

	got, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "partidas recompute", got[0].Command)
	assert.Equal(t, "ipc.csv, 12 rows", got[2].Details)
}

func TestReadEntries_HeaderOnly(t *testing.T) {
	got, err := ReadEntries(strings.NewReader(Header + "\n"))
	require.NoError(t, err)
	assert.Nil(t, got)
}
