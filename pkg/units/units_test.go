package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souschef/domain"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		from  domain.Unit
		to    domain.Unit
		want  float64
	}{
		{"grams to kilos", 1500, domain.UnitGrams, domain.UnitKilos, 1.5},
		{"kilos to grams", 2, domain.UnitKilos, domain.UnitGrams, 2000},
		{"kilos to pounds", 1, domain.UnitKilos, domain.UnitPounds, 2.20462},
		{"pounds to kilos", 1, domain.UnitPounds, domain.UnitKilos, 0.453592},
		{"ounces to pounds", 16, domain.UnitOunces, domain.UnitPounds, 1},
		{"liters to ml", 0.25, domain.UnitLiter, domain.UnitMilliliter, 250},
		{"tbsp to tsp", 1, domain.UnitTablespoon, domain.UnitTeaspoon, 3},
		{"cup to fl oz", 1, domain.UnitCup, domain.UnitFluidOunce, 8},
		{"gallon to cups", 1, domain.UnitGallons, domain.UnitCup, 16},
		{"same unit", 3, domain.UnitNone, domain.UnitNone, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-4)
		})
	}
}

func TestConvert_Incompatible(t *testing.T) {
	_, err := Convert(1, domain.UnitGrams, domain.UnitLiter)
	assert.ErrorIs(t, err, ErrIncompatibleUnits)

	_, err = Convert(1, domain.UnitNone, domain.UnitGrams)
	assert.ErrorIs(t, err, ErrIncompatibleUnits)

	assert.False(t, Compatible(domain.UnitCup, domain.UnitKcal))
	assert.True(t, Compatible(domain.UnitCup, domain.UnitTeaspoon))
	assert.True(t, Compatible(domain.UnitNone, domain.UnitNone))
}

func TestConvertQuantity(t *testing.T) {
	q, err := ConvertQuantity(domain.Quantity{Value: 500, Unit: domain.UnitMilliliter}, domain.UnitLiter)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitLiter, q.Unit)
	assert.InDelta(t, 0.5, q.Value, 1e-9)
}

func TestParseUnitAliases(t *testing.T) {
	assert.Equal(t, domain.UnitGrams, domain.ParseUnit(" Grams "))
	assert.Equal(t, domain.UnitLiter, domain.ParseUnit("L"))
	assert.Equal(t, domain.UnitFluidOunce, domain.ParseUnit("fl oz"))
	assert.Equal(t, domain.UnitNone, domain.ParseUnit("each"))
	assert.Equal(t, domain.UnitNone, domain.ParseUnit("handful"))
	assert.Equal(t, domain.UnitTypeVolume, domain.UnitTablespoon.Type())
	assert.Equal(t, domain.UnitTypeEnergy, domain.UnitKcal.Type())
}
