package rt6

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ajustes-contables/rt6/internal/indices"
)

// IndirectInput is what an indirect-method calculation receives.
type IndirectInput struct {
	NetMonetaryPosition decimal.Decimal
	Closing             indices.Period
	Table               indices.Table
}

// IndirectMethod turns the net monetary position into RECPAM. No
// implementation ships with the engine.
type IndirectMethod func(in IndirectInput) (decimal.Decimal, error)

// WithIndirect returns s with the indirect-method RECPAM filled in. With a
// nil method the summary is returned unchanged and stays pending.
func (s Summary) WithIndirect(m IndirectMethod, in IndirectInput) (Summary, error) {
	if m == nil {
		return s, nil
	}
	v, err := m(in)
	if err != nil {
		return s, fmt.Errorf("computing indirect RECPAM: %w", err)
	}
	s.IndirectRecpam = v
	s.IndirectPending = false
	return s, nil
}
