package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ajustes-contables/rt6/internal/indices"
)

// FormatFACPCE is the semicolon-separated series published by FACPCE.
const FormatFACPCE = "facpce"

const (
	facpceColYear  = 0
	facpceColMonth = 1
	facpceColValue = 2
)

// FACPCEParser parses "Año;Mes;Índice" series with decimal commas and
// dotted thousands ("7.694,0115"). Extra trailing columns are ignored.
type FACPCEParser struct{}

// Format returns the parser name.
func (p *FACPCEParser) Format() string { return FormatFACPCE }

// Parse reads a FACPCE series. The first row is a header.
func (p *FACPCEParser) Parse(r io.Reader) ([]indices.Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading FACPCE CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var rows []indices.Row
	for i, rec := range records[1:] {
		row := i + 2
		if len(rec) < 3 {
			if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
				continue
			}
			return nil, fmt.Errorf("row %d: expected at least 3 fields, got %d", row, len(rec))
		}

		year, err := strconv.Atoi(strings.TrimSpace(rec[facpceColYear]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing year %q: %w", row, rec[facpceColYear], err)
		}
		month, err := strconv.Atoi(strings.TrimSpace(rec[facpceColMonth]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing month %q: %w", row, rec[facpceColMonth], err)
		}
		period, err := indices.ParsePeriod(fmt.Sprintf("%04d-%02d", year, month))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		value, err := parseDecimalComma(rec[facpceColValue])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		rows = append(rows, indices.Row{Period: period, Value: value})
	}
	return rows, nil
}

// parseDecimalComma parses "7.694,0115" style numbers.
func parseDecimalComma(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	clean = strings.Replace(clean, ",", ".", 1)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing value %q: %w", s, err)
	}
	return d, nil
}
