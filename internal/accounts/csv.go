package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ajustes-contables/rt6/internal/model"
)

const (
	numFields   = 11
	colID       = 0
	colCode     = 1
	colName     = 2
	colKind     = 3
	colGroup    = 4
	colRubro    = 5
	colParent   = 6
	colLevel    = 7
	colSide     = 8
	colIsHeader = 9
	colIsContra = 10
)

var header = []string{"account_id", "code", "name", "kind", "group", "rubro", "parent_id", "level", "normal_side", "is_header", "is_contra"}

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colKind] = string(acct.Kind)
	row[colGroup] = string(acct.Group)
	row[colRubro] = acct.Rubro
	row[colParent] = acct.ParentID
	if acct.Level != 0 {
		row[colLevel] = strconv.Itoa(acct.Level)
	}
	row[colSide] = string(acct.NormalSide)
	row[colIsHeader] = formatBool(acct.IsHeader)
	row[colIsContra] = formatBool(acct.IsContra)
	return row
}

// UnmarshalAccount converts a CSV row to an Account. Missing group, normal
// side and level are derived from kind and code.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colID] == "" {
		return model.Account{}, fmt.Errorf("empty account_id")
	}

	kind := model.AccountKind(strings.ToUpper(record[colKind]))
	switch kind {
	case model.KindAsset, model.KindLiability, model.KindEquity, model.KindIncome, model.KindExpense:
	default:
		return model.Account{}, fmt.Errorf("unknown kind %q", record[colKind])
	}

	var level int
	if record[colLevel] != "" {
		var err error
		level, err = strconv.Atoi(record[colLevel])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing level %q: %w", record[colLevel], err)
		}
	} else if record[colCode] != "" {
		level = strings.Count(record[colCode], ".") + 1
	}

	group := model.StatementGroup(strings.ToUpper(record[colGroup]))
	if group == "" {
		group = model.DefaultGroup(kind)
	}
	side := model.NormalSide(strings.ToUpper(record[colSide]))
	switch side {
	case model.SideDebit, model.SideCredit:
	case "":
		side = model.DefaultSide(kind)
	default:
		return model.Account{}, fmt.Errorf("unknown normal_side %q", record[colSide])
	}

	isHeader, err := parseBool(record[colIsHeader])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing is_header: %w", err)
	}
	isContra, err := parseBool(record[colIsContra])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing is_contra: %w", err)
	}

	return model.Account{
		ID:         record[colID],
		Code:       record[colCode],
		Name:       record[colName],
		Kind:       kind,
		Group:      group,
		Rubro:      record[colRubro],
		ParentID:   record[colParent],
		Level:      level,
		NormalSide: side,
		IsHeader:   isHeader,
		IsContra:   isContra,
	}, nil
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return ""
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
