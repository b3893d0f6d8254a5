package model

// MonetaryClass is the RT6 classification of an account.
type MonetaryClass string

const (
	ClassUnknown     MonetaryClass = ""
	ClassMonetary    MonetaryClass = "MONETARY"
	ClassNonMonetary MonetaryClass = "NON_MONETARY"
	ClassFXProtected MonetaryClass = "FX_PROTECTED"
)

// Valid reports whether c is one of the assignable classes.
func (c MonetaryClass) Valid() bool {
	switch c {
	case ClassMonetary, ClassNonMonetary, ClassFXProtected:
		return true
	default:
		return false
	}
}

// AccountOverride is the manual triage state of one account.
type AccountOverride struct {
	Classification MonetaryClass // ClassUnknown = no manual classification
	Excluded       bool
	Validated      bool
}

// OverrideState is the lifecycle stage of an account override.
type OverrideState string

const (
	StateUnset    OverrideState = "UNSET"
	StateAuto     OverrideState = "AUTO"
	StateManual   OverrideState = "MANUAL"
	StateExcluded OverrideState = "EXCLUDED"
)
