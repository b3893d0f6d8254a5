package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ajustes-contables/rt6/internal/id"
	"github.com/ajustes-contables/rt6/internal/model"
)

// Header is the CSV header for journal.csv.
const Header = "entry_id,date,kind,memo,account_id,description,debit,credit"

const (
	numFields  = 8
	dateFormat = "2006-01-02"
	colEntryID = 0
	colDate    = 1
	colKind    = 2
	colMemo    = 3
	colAcctID  = 4
	colDesc    = 5
	colDebit   = 6
	colCredit  = 7
)

// ReadEntries reads journal.csv. Consecutive or scattered rows sharing an
// entry ID (line suffixes "a", "b"... ignored) form one entry; entries keep
// the order in which they first appear. Date, kind and memo come from the
// entry's first row.
func ReadEntries(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var entries []model.JournalEntry
	index := make(map[string]int)
	for i, rec := range records[1:] {
		entryID := id.EntryGroup(rec[colEntryID])
		if entryID == "" {
			return nil, fmt.Errorf("row %d: empty entry_id", i+2)
		}

		pos, seen := index[entryID]
		if !seen {
			date, err := time.Parse(dateFormat, rec[colDate])
			if err != nil {
				return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[colDate], err)
			}
			entries = append(entries, model.JournalEntry{
				ID:   entryID,
				Date: date,
				Kind: model.EntryKind(strings.ToLower(rec[colKind])),
				Memo: rec[colMemo],
			})
			pos = len(entries) - 1
			index[entryID] = pos
		}

		line, err := unmarshalLine(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if line.AccountID == "" && line.Debit.IsZero() && line.Credit.IsZero() {
			continue
		}
		entries[pos].Lines = append(entries[pos].Lines, line)
	}
	return entries, nil
}

// WriteEntries writes entries to a journal.csv writer (including header).
// An entry without lines is written as a single placeholder row.
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 1
	for _, e := range entries {
		lines := e.Lines
		if len(lines) == 0 {
			lines = []model.Line{{}}
		}
		for _, l := range lines {
			row++
			if err := cw.Write(MarshalLine(e, l)); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
		}
	}
	return cw.Error()
}

// MarshalLine converts one line of an entry to a CSV row.
func MarshalLine(e model.JournalEntry, l model.Line) []string {
	row := make([]string, numFields)
	row[colEntryID] = e.ID
	row[colDate] = e.Date.Format(dateFormat)
	row[colKind] = string(e.Kind)
	row[colMemo] = e.Memo
	row[colAcctID] = l.AccountID
	row[colDesc] = l.Description
	if !l.Debit.IsZero() {
		row[colDebit] = l.Debit.StringFixed(2)
	}
	if !l.Credit.IsZero() {
		row[colCredit] = l.Credit.StringFixed(2)
	}
	return row
}

func unmarshalLine(record []string) (model.Line, error) {
	var debit, credit decimal.Decimal
	var err error

	if record[colDebit] != "" {
		debit, err = decimal.NewFromString(record[colDebit])
		if err != nil {
			return model.Line{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
		}
	}

	if record[colCredit] != "" {
		credit, err = decimal.NewFromString(record[colCredit])
		if err != nil {
			return model.Line{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
		}
	}

	return model.Line{
		AccountID:   record[colAcctID],
		Description: record[colDesc],
		Debit:       debit,
		Credit:      credit,
	}, nil
}
