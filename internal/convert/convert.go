// Package convert holds the unit-conversion rules shared by every surface
// that shows an amount: the automatic base/secondary display threshold and
// the cost-input pair synchronization.
package convert

import (
	"github.com/shopspring/decimal"

	"github.com/twiq13/kt-poe2-tool/internal/catalog"
)

// Unit selects which currency an amount is displayed in.
type Unit int

const (
	UnitBase Unit = iota
	UnitSecondary
)

// Label returns the display label for the unit.
func (u Unit) Label() string {
	if u == UnitSecondary {
		return catalog.SecondaryUnitLabel
	}
	return catalog.DefaultBaseUnit
}

// Rate is the secondary unit's exchange rate in base units. OK is false when
// the catalog has no usable secondary-unit row.
type Rate struct {
	Value float64
	OK    bool
}

// Round rounds half away from zero to the nearest integer. Amounts are
// real-valued internally but every displayed value is an integer.
func Round(v float64) int64 {
	return decimal.NewFromFloat(v).Round(0).IntPart()
}

// Display is an amount resolved to the unit it should be shown in.
type Display struct {
	Value int64
	Unit  Unit
}

// DisplayAmount applies the threshold rule: amounts of at least rate+1 base
// units are shown in the secondary unit, everything else in the base unit.
// A base amount exactly equal to the rate therefore stays in base units.
func DisplayAmount(baseAmount float64, rate Rate) Display {
	if rate.OK && baseAmount >= rate.Value+1 {
		return Display{Value: Round(baseAmount / rate.Value), Unit: UnitSecondary}
	}
	return Display{Value: Round(baseAmount), Unit: UnitBase}
}

// CostField names one side of the cost-input pair.
type CostField int

const (
	FieldBase CostField = iota
	FieldSecondary
)

// CostPair is the cost-per-map input in both units. The field named by
// LastEdited is authoritative; the other is derived from it. Updates are
// pure transitions producing a consistent pair in one step, so a write to
// the derived field can never be mistaken for a fresh user edit.
type CostPair struct {
	Base       float64
	Secondary  float64
	LastEdited CostField
}

// ApplyEdit records a user edit to one field and returns the synchronized
// pair.
func ApplyEdit(p CostPair, field CostField, value float64, rate Rate) CostPair {
	switch field {
	case FieldSecondary:
		p.Secondary = value
	default:
		p.Base = value
	}
	p.LastEdited = field
	return Synced(p, rate)
}

// Synced recomputes the derived field from the authoritative one. Without a
// rate the pair is left untouched (the secondary field is inert). Idempotent.
func Synced(p CostPair, rate Rate) CostPair {
	if !rate.OK {
		return p
	}
	if p.LastEdited == FieldSecondary {
		p.Base = p.Secondary * rate.Value
	} else {
		p.Secondary = p.Base / rate.Value
	}
	return p
}

// ToBase resolves the pair to a single base-unit amount from whichever field
// was edited last.
func ToBase(p CostPair, rate Rate) float64 {
	if p.LastEdited == FieldSecondary && rate.OK {
		return p.Secondary * rate.Value
	}
	return p.Base
}
