package units

import (
	"errors"
	"fmt"

	"souschef/domain"
)

var (
	ErrIncompatibleUnits = errors.New("units measure different things")
	ErrUnknownUnit       = errors.New("unit has no conversion")
)

// factors to the base unit of each type: grams for weight, millilitres for volume
var toBase = map[domain.Unit]float64{
	domain.UnitGrams:  1,
	domain.UnitKilos:  1000,
	domain.UnitPounds: 453.59237,
	domain.UnitOunces: 28.349523125,

	domain.UnitMilliliter: 1,
	domain.UnitLiter:      1000,
	domain.UnitGallons:    3785.411784,
	domain.UnitFluidOunce: 29.5735295625,
	domain.UnitCup:        236.5882365,
	domain.UnitTablespoon: 14.78676478125,
	domain.UnitTeaspoon:   4.92892159375,

	domain.UnitKcal: 1,
}

// Convert expresses value, measured in from, in to. Counts (UnitNone) convert
// only to themselves.
func Convert(value float64, from, to domain.Unit) (float64, error) {
	if from == to {
		return value, nil
	}
	if from.Type() != to.Type() {
		return 0, fmt.Errorf("%w: %s to %s", ErrIncompatibleUnits, from, to)
	}
	f, ok := toBase[from]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUnit, from)
	}
	t, ok := toBase[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUnit, to)
	}
	return value * f / t, nil
}

func ConvertQuantity(q domain.Quantity, to domain.Unit) (domain.Quantity, error) {
	v, err := Convert(q.Value, q.Unit, to)
	if err != nil {
		return domain.Quantity{}, err
	}
	return domain.Quantity{Value: v, Unit: to}, nil
}

// Compatible reports whether a and b can be converted into each other.
func Compatible(a, b domain.Unit) bool {
	if a == b {
		return true
	}
	if a.Type() != b.Type() {
		return false
	}
	_, okA := toBase[a]
	_, okB := toBase[b]
	return okA && okB
}
