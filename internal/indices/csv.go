package indices

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

const (
	numFields = 2
	colPeriod = 0
	colValue  = 1
)

// ReadRows reads indices.csv ("period,value" with a header row).
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading indices CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var rows []Row
	for i, rec := range records[1:] {
		p, err := ParsePeriod(rec[colPeriod])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		v, err := decimal.NewFromString(rec[colValue])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing value %q: %w", i+2, rec[colValue], err)
		}
		rows = append(rows, Row{Period: p, Value: v})
	}
	return rows, nil
}

// WriteRows writes indices.csv.
func WriteRows(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"period", "value"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rows {
		if err := cw.Write([]string{string(r.Period), r.Value.String()}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func path(repoRoot string) string {
	return filepath.Join(repoRoot, "indices", "indices.csv")
}

// Load reads indices/indices.csv from a repo root. A missing file yields an empty table.
func Load(repoRoot string) (Table, error) {
	f, err := os.Open(path(repoRoot))
	if errors.Is(err, fs.ErrNotExist) {
		return Table{}, nil
	}
	if err != nil {
		return Table{}, fmt.Errorf("opening index table: %w", err)
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return Table{}, fmt.Errorf("reading index table: %w", err)
	}
	return NewTable(rows)
}

// Save writes the table to indices/indices.csv.
func Save(repoRoot string, t Table) error {
	dir := filepath.Dir(path(repoRoot))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating indices dir: %w", err)
	}
	f, err := os.Create(path(repoRoot))
	if err != nil {
		return fmt.Errorf("creating index table file: %w", err)
	}
	defer f.Close()

	if err := WriteRows(f, t.Rows()); err != nil {
		return fmt.Errorf("writing index table: %w", err)
	}
	return nil
}
