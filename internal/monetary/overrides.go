package monetary

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ajustes-contables/rt6/internal/model"
)

// ErrExcluded is returned when validating an excluded account.
var ErrExcluded = errors.New("account is excluded")

// Overrides is an immutable snapshot of manual overrides keyed by account
// ID. Commands return a new snapshot and never modify the receiver.
type Overrides struct {
	m map[string]model.AccountOverride
}

// NewOverrides builds a snapshot from a map. The map is copied.
func NewOverrides(m map[string]model.AccountOverride) Overrides {
	cp := make(map[string]model.AccountOverride, len(m))
	for k, v := range m {
		if v == (model.AccountOverride{}) {
			continue
		}
		cp[k] = v
	}
	return Overrides{m: cp}
}

// Get returns the override for id.
func (o Overrides) Get(id string) (model.AccountOverride, bool) {
	ov, ok := o.m[id]
	return ov, ok
}

// Len returns the number of accounts with an override.
func (o Overrides) Len() int { return len(o.m) }

// IDs returns the overridden account IDs, sorted.
func (o Overrides) IDs() []string {
	ids := make([]string, 0, len(o.m))
	for id := range o.m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Map returns a copy of the snapshot contents.
func (o Overrides) Map() map[string]model.AccountOverride {
	cp := make(map[string]model.AccountOverride, len(o.m))
	for k, v := range o.m {
		cp[k] = v
	}
	return cp
}

// State reports where id is in the override lifecycle.
func (o Overrides) State(id string) model.OverrideState {
	ov, ok := o.m[id]
	switch {
	case !ok:
		return model.StateUnset
	case ov.Excluded:
		return model.StateExcluded
	case ov.Classification != model.ClassUnknown:
		return model.StateManual
	default:
		return model.StateAuto
	}
}

func (o Overrides) with(id string, fn func(*model.AccountOverride)) Overrides {
	next := o.Map()
	ov := next[id]
	fn(&ov)
	if ov == (model.AccountOverride{}) {
		delete(next, id)
	} else {
		next[id] = ov
	}
	return Overrides{m: next}
}

// ToggleClassification flips id between MONETARY and NON_MONETARY starting
// from its current final class. FX_PROTECTED toggles to NON_MONETARY.
// The account is re-included and must be validated again.
func (o Overrides) ToggleClassification(id string, current model.MonetaryClass) Overrides {
	next := model.ClassMonetary
	if current == model.ClassMonetary || current == model.ClassFXProtected {
		next = model.ClassNonMonetary
	}
	return o.with(id, func(ov *model.AccountOverride) {
		ov.Classification = next
		ov.Excluded = false
		ov.Validated = false
	})
}

// Exclude removes id from every bucket, partida and the unclassified list.
func (o Overrides) Exclude(id string) Overrides {
	return o.with(id, func(ov *model.AccountOverride) {
		ov.Excluded = true
		ov.Validated = false
	})
}

// Include reverses Exclude.
func (o Overrides) Include(id string) Overrides {
	return o.with(id, func(ov *model.AccountOverride) {
		ov.Excluded = false
	})
}

// MarkValidated records that the classification of id was reviewed.
func (o Overrides) MarkValidated(id string) (Overrides, error) {
	if o.m[id].Excluded {
		return o, fmt.Errorf("validating %s: %w", id, ErrExcluded)
	}
	return o.with(id, func(ov *model.AccountOverride) {
		ov.Validated = true
	}), nil
}

// MarkAllValidated validates every id that is not excluded.
func (o Overrides) MarkAllValidated(ids []string) Overrides {
	next := o
	for _, id := range ids {
		if v, err := next.MarkValidated(id); err == nil {
			next = v
		}
	}
	return next
}

// AddManualMonetary forces id into the monetary bucket.
func (o Overrides) AddManualMonetary(id string) Overrides {
	return o.with(id, func(ov *model.AccountOverride) {
		ov.Classification = model.ClassMonetary
		ov.Excluded = false
	})
}

// SetClassification assigns an explicit class to id.
func (o Overrides) SetClassification(id string, class model.MonetaryClass) (Overrides, error) {
	if !class.Valid() {
		return o, fmt.Errorf("invalid classification %q", class)
	}
	return o.with(id, func(ov *model.AccountOverride) {
		ov.Classification = class
	}), nil
}

// ResetClassification drops the manual classification of id so the
// heuristic applies again.
func (o Overrides) ResetClassification(id string) Overrides {
	return o.with(id, func(ov *model.AccountOverride) {
		ov.Classification = model.ClassUnknown
		ov.Validated = false
	})
}
