package output

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the presentation currency of every report.
const Currency = money.ARS

// Money formats d as an ARS amount with the currency's separators,
// rounding half away from zero to cents.
func Money(d decimal.Decimal) string {
	cur := money.GetCurrency(Currency)
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, Currency).Display()
}

// Coefficient formats a restatement coefficient with four decimals.
func Coefficient(d decimal.Decimal) string {
	return d.StringFixed(4)
}

// Signed reports whether d should be rendered as negative.
func Signed(d decimal.Decimal) (string, bool) {
	return Money(d), d.IsNegative()
}
