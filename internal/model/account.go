package model

// AccountKind classifies accounts in the chart of accounts.
type AccountKind string

const (
	KindAsset     AccountKind = "ASSET"
	KindLiability AccountKind = "LIABILITY"
	KindEquity    AccountKind = "EQUITY"
	KindIncome    AccountKind = "INCOME"
	KindExpense   AccountKind = "EXPENSE"
)

// StatementGroup is the top-level statement section an account is presented in.
type StatementGroup string

const (
	GroupActivo     StatementGroup = "ACTIVO"
	GroupPasivo     StatementGroup = "PASIVO"
	GroupPN         StatementGroup = "PN"
	GroupResultados StatementGroup = "RESULTADOS"
)

// StatementGroups lists the groups in presentation order.
var StatementGroups = []StatementGroup{GroupActivo, GroupPasivo, GroupPN, GroupResultados}

// NormalSide is the side on which an account's balance increases.
type NormalSide string

const (
	SideDebit  NormalSide = "DEBIT"
	SideCredit NormalSide = "CREDIT"
)

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	ID         string
	Code       string // dot-delimited, e.g. "1.2.01.04"
	Name       string
	Kind       AccountKind
	Group      StatementGroup
	Rubro      string
	ParentID   string // "" = not set
	Level      int
	NormalSide NormalSide
	IsHeader   bool
	IsContra   bool
}

// IsResult reports whether the account belongs to the income statement.
func (a Account) IsResult() bool {
	return a.Group == GroupResultados || a.Kind == KindIncome || a.Kind == KindExpense
}

// Side returns the account's normal side, defaulting to DEBIT when unset.
func (a Account) Side() NormalSide {
	if a.NormalSide == SideCredit {
		return SideCredit
	}
	return SideDebit
}

// DefaultSide returns the conventional normal side for an account kind.
func DefaultSide(kind AccountKind) NormalSide {
	switch kind {
	case KindLiability, KindEquity, KindIncome:
		return SideCredit
	default:
		return SideDebit
	}
}

// DefaultGroup returns the statement group an account kind is usually presented in.
func DefaultGroup(kind AccountKind) StatementGroup {
	switch kind {
	case KindAsset:
		return GroupActivo
	case KindLiability:
		return GroupPasivo
	case KindEquity:
		return GroupPN
	case KindIncome, KindExpense:
		return GroupResultados
	default:
		return ""
	}
}
