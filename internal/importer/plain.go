package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ajustes-contables/rt6/internal/indices"
)

// FormatPlain is the comma-separated "period,value" format.
const FormatPlain = "plain"

// PlainParser parses "period,value" files. The header row is optional and
// periods may be written "2025-01", "2025-1" or "01/2025".
type PlainParser struct{}

// Format returns the parser name.
func (p *PlainParser) Format() string { return FormatPlain }

// Parse reads a plain series.
func (p *PlainParser) Parse(r io.Reader) ([]indices.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading plain CSV: %w", err)
	}

	var rows []indices.Row
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "period") {
			continue
		}
		period, err := parseLoosePeriod(rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		value, err := decimal.NewFromString(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing value %q: %w", i+1, rec[1], err)
		}
		rows = append(rows, indices.Row{Period: period, Value: value})
	}
	return rows, nil
}

// parseLoosePeriod accepts "MM/YYYY" in addition to indices.ParsePeriod forms.
func parseLoosePeriod(s string) (indices.Period, error) {
	s = strings.TrimSpace(s)
	if month, year, ok := strings.Cut(s, "/"); ok {
		s = year + "-" + month
	}
	return indices.ParsePeriod(s)
}
