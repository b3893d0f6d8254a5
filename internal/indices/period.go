package indices

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is a price-index period key: "YYYY-MM", or the Opening sentinel.
type Period string

// Opening is the sentinel period for balances carried from the prior year.
const Opening Period = "APERTURA"

const periodLayout = "2006-01"

// ParsePeriod validates and normalizes a period key.
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(Opening)) {
		return Opening, nil
	}
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid period %q: want YYYY-MM", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return "", fmt.Errorf("invalid year in period %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return "", fmt.Errorf("invalid month in period %q", s)
	}
	return Period(fmt.Sprintf("%04d-%02d", year, month)), nil
}

// PeriodOf returns the month containing t.
func PeriodOf(t time.Time) Period {
	return Period(t.Format(periodLayout))
}

// IsOpening reports whether p is the opening sentinel.
func (p Period) IsOpening() bool { return p == Opening }

// Start returns the first day of the period. The opening sentinel has no date.
func (p Period) Start() (time.Time, bool) {
	if p.IsOpening() {
		return time.Time{}, false
	}
	t, err := time.Parse(periodLayout, string(p))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (p Period) String() string { return string(p) }
