package rt6

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ajustes-contables/rt6/internal/indices"
	"github.com/ajustes-contables/rt6/internal/model"
)

// Header is the CSV header for partidas.csv. One row per lot; a partida
// without lots is written as a single row with an empty lot_id.
const Header = "partida_id,account_id,code,name,group,rubro,kind,normal_side,manual,lot_id,origin_date,origin_period,base,notes"

const (
	numFields     = 14
	dateFormat    = "2006-01-02"
	colPartidaID  = 0
	colAccountID  = 1
	colCode       = 2
	colName       = 3
	colGroup      = 4
	colRubro      = 5
	colKind       = 6
	colNormalSide = 7
	colManual     = 8
	colLotID      = 9
	colOriginDate = 10
	colOriginPer  = 11
	colBase       = 12
	colNotes      = 13
)

// ReadSources reads partidas.csv into sources, in file order.
func ReadSources(r io.Reader) ([]Source, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading partidas CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var sources []Source
	index := make(map[string]int)
	for i, rec := range records[1:] {
		row := i + 2
		pid := rec[colPartidaID]
		if pid == "" {
			return nil, fmt.Errorf("row %d: empty partida_id", row)
		}

		pos, seen := index[pid]
		if !seen {
			manual, err := strconv.ParseBool(rec[colManual])
			if err != nil {
				return nil, fmt.Errorf("row %d: parsing manual %q: %w", row, rec[colManual], err)
			}
			sources = append(sources, Source{
				ID:         pid,
				AccountID:  rec[colAccountID],
				Code:       rec[colCode],
				Name:       rec[colName],
				Group:      model.StatementGroup(rec[colGroup]),
				Rubro:      rec[colRubro],
				Kind:       model.AccountKind(rec[colKind]),
				NormalSide: model.NormalSide(rec[colNormalSide]),
				Manual:     manual,
			})
			pos = len(sources) - 1
			index[pid] = pos
		}

		if rec[colLotID] == "" {
			continue
		}
		lot, err := unmarshalLot(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		sources[pos].Lots = append(sources[pos].Lots, lot)
	}
	return sources, nil
}

func unmarshalLot(rec []string) (Lot, error) {
	lot := Lot{ID: rec[colLotID], Notes: rec[colNotes]}

	if rec[colOriginDate] != "" {
		d, err := time.Parse(dateFormat, rec[colOriginDate])
		if err != nil {
			return Lot{}, fmt.Errorf("parsing origin_date %q: %w", rec[colOriginDate], err)
		}
		lot.OriginDate = d
	}

	p, err := indices.ParsePeriod(rec[colOriginPer])
	if err != nil {
		return Lot{}, err
	}
	lot.OriginPeriod = p

	lot.Base, err = decimal.NewFromString(rec[colBase])
	if err != nil {
		return Lot{}, fmt.Errorf("parsing base %q: %w", rec[colBase], err)
	}
	return lot, nil
}

// WriteSources writes sources to w (including header).
func WriteSources(w io.Writer, sources []Source) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, s := range sources {
		lots := s.Lots
		if len(lots) == 0 {
			lots = []Lot{{}}
		}
		for _, l := range lots {
			if err := cw.Write(marshalLot(s, l)); err != nil {
				return fmt.Errorf("writing partida %s: %w", s.ID, err)
			}
		}
	}
	return cw.Error()
}

func marshalLot(s Source, l Lot) []string {
	row := make([]string, numFields)
	row[colPartidaID] = s.ID
	row[colAccountID] = s.AccountID
	row[colCode] = s.Code
	row[colName] = s.Name
	row[colGroup] = string(s.Group)
	row[colRubro] = s.Rubro
	row[colKind] = string(s.Kind)
	row[colNormalSide] = string(s.NormalSide)
	row[colManual] = strconv.FormatBool(s.Manual)
	if l.ID == "" {
		return row
	}
	row[colLotID] = l.ID
	if !l.OriginDate.IsZero() {
		row[colOriginDate] = l.OriginDate.Format(dateFormat)
	}
	row[colOriginPer] = string(l.OriginPeriod)
	row[colBase] = l.Base.String()
	row[colNotes] = l.Notes
	return row
}

// PartidasPath is where partida sources live inside a workspace.
func PartidasPath(repoRoot string) string {
	return filepath.Join(repoRoot, "rt6", "partidas.csv")
}

// LoadPartidas reads the workspace snapshot. A missing file is an empty snapshot.
func LoadPartidas(repoRoot string) (Partidas, error) {
	f, err := os.Open(PartidasPath(repoRoot))
	if errors.Is(err, fs.ErrNotExist) {
		return NewPartidas(nil), nil
	}
	if err != nil {
		return Partidas{}, fmt.Errorf("opening partidas: %w", err)
	}
	defer f.Close()

	sources, err := ReadSources(f)
	if err != nil {
		return Partidas{}, err
	}
	return NewPartidas(sources), nil
}

// SavePartidas replaces the workspace snapshot.
func SavePartidas(repoRoot string, p Partidas) error {
	path := PartidasPath(repoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating rt6 dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating partidas: %w", err)
	}
	defer f.Close()

	if err := WriteSources(f, p.sources); err != nil {
		return fmt.Errorf("writing partidas: %w", err)
	}
	return nil
}
