package indices

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Row is one index value for a period.
type Row struct {
	Period Period
	Value  decimal.Decimal
}

// MissingIndexError is returned when the table has no value for a required period.
type MissingIndexError struct {
	Period Period
}

func (e *MissingIndexError) Error() string {
	return fmt.Sprintf("no price index for period %s", e.Period)
}

// Table is an immutable period -> index lookup.
type Table struct {
	values map[Period]decimal.Decimal
}

// NewTable builds a Table. Duplicate periods and non-positive values are rejected.
func NewTable(rows []Row) (Table, error) {
	values := make(map[Period]decimal.Decimal, len(rows))
	for i, r := range rows {
		p, err := ParsePeriod(string(r.Period))
		if err != nil {
			return Table{}, fmt.Errorf("row %d: %w", i+1, err)
		}
		if _, dup := values[p]; dup {
			return Table{}, fmt.Errorf("row %d: duplicate period %s", i+1, p)
		}
		if !r.Value.IsPositive() {
			return Table{}, fmt.Errorf("row %d: index for %s must be positive, got %s", i+1, p, r.Value)
		}
		values[p] = r.Value
	}
	return Table{values: values}, nil
}

// Lookup returns the index value for p.
func (t Table) Lookup(p Period) (decimal.Decimal, error) {
	v, ok := t.values[p]
	if !ok {
		return decimal.Zero, &MissingIndexError{Period: p}
	}
	return v, nil
}

// Has reports whether the table holds a value for p.
func (t Table) Has(p Period) bool {
	_, ok := t.values[p]
	return ok
}

// Len returns the number of periods in the table.
func (t Table) Len() int { return len(t.values) }

// Coefficient returns index(closing) / index(origin).
func (t Table) Coefficient(closing, origin Period) (decimal.Decimal, error) {
	c, err := t.Lookup(closing)
	if err != nil {
		return decimal.Zero, err
	}
	o, err := t.Lookup(origin)
	if err != nil {
		return decimal.Zero, err
	}
	return c.Div(o), nil
}

// Rows returns the table sorted by period, with the opening sentinel first.
func (t Table) Rows() []Row {
	rows := make([]Row, 0, len(t.values))
	for p, v := range t.values {
		rows = append(rows, Row{Period: p, Value: v})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Period.IsOpening() != rows[j].Period.IsOpening() {
			return rows[i].Period.IsOpening()
		}
		return rows[i].Period < rows[j].Period
	})
	return rows
}

// Merge returns a new table with rows applied on top of t. Later rows
// replace existing periods; the receiver is left untouched.
func (t Table) Merge(rows []Row) (Table, error) {
	incoming, err := NewTable(rows)
	if err != nil {
		return Table{}, err
	}
	values := make(map[Period]decimal.Decimal, len(t.values)+len(incoming.values))
	for p, v := range t.values {
		values[p] = v
	}
	for p, v := range incoming.values {
		values[p] = v
	}
	return Table{values: values}, nil
}
