package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	partidaPrefix = "rt6-"
	manualPrefix  = "man-"
	lotSeparator  = "#"
)

// ParseEntryID parses "2025-01-001" (or a line ID "2025-01-001a") into year, month, seq.
func ParseEntryID(id string) (year, month, seq int, err error) {
	base := EntryGroup(id)

	parts := strings.SplitN(base, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid entry ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in entry ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in entry ID %q: %w", id, err)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in entry ID %q: %w", id, err)
	}

	return year, month, seq, nil
}

// EntryGroup strips a line suffix from a journal line ID.
// "2025-01-001a" -> "2025-01-001"
func EntryGroup(lineID string) string {
	if len(lineID) == 0 {
		return ""
	}
	i := len(lineID)
	for i > 0 && lineID[i-1] >= 'a' && lineID[i-1] <= 'z' {
		i--
	}
	return lineID[:i]
}

// PartidaID returns the ID of the ledger-derived partida for an account.
// "1.2.01.04" -> "rt6-1.2.01.04"
func PartidaID(accountID string) string {
	return partidaPrefix + accountID
}

// ManualPartidaID returns a fresh ID for a hand-entered partida.
func ManualPartidaID() string {
	return manualPrefix + uuid.NewString()
}

// IsManual reports whether a partida ID was issued by ManualPartidaID.
func IsManual(partidaID string) bool {
	return strings.HasPrefix(partidaID, manualPrefix)
}

// FormatLotID returns a lot ID like "rt6-caja#03" (1-based sequence).
func FormatLotID(partidaID string, seq int) string {
	return fmt.Sprintf("%s%s%02d", partidaID, lotSeparator, seq)
}

// ParseLotID splits a lot ID into its partida ID and sequence.
func ParseLotID(lotID string) (partidaID string, seq int, err error) {
	i := strings.LastIndex(lotID, lotSeparator)
	if i <= 0 {
		return "", 0, fmt.Errorf("invalid lot ID format: %q", lotID)
	}
	seq, err = strconv.Atoi(lotID[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid sequence in lot ID %q: %w", lotID, err)
	}
	return lotID[:i], seq, nil
}
