package domain

import (
	"strings"
)

type (
	Unit        string
	UnitType    string
	StorageType string
)

const (
	UnitPounds     Unit = "lb"
	UnitKilos      Unit = "kg"
	UnitGrams      Unit = "g"
	UnitKcal       Unit = "kcal"
	UnitGallons    Unit = "gal"
	UnitLiter      Unit = "L"
	UnitMilliliter Unit = "ml"
	UnitOunces     Unit = "oz"
	UnitFluidOunce Unit = "fl oz"
	UnitCup        Unit = "cup"
	UnitTeaspoon   Unit = "tsp"
	UnitTablespoon Unit = "tbsp"
	UnitNone       Unit = "none"
)

const (
	UnitTypeWeight UnitType = "weight"
	UnitTypeVolume UnitType = "volume"
	UnitTypeEnergy UnitType = "energy"
	UnitTypeNone   UnitType = "none"
)

const (
	StoragePantry       StorageType = "PANTRY"
	StorageRefrigerator StorageType = "REFRIGERATOR"
	StorageFreezer      StorageType = "FREEZER"
)

var unitAliases = map[string]Unit{
	"g":            UnitGrams,
	"gram":         UnitGrams,
	"grams":        UnitGrams,
	"kg":           UnitKilos,
	"kilo":         UnitKilos,
	"kilos":        UnitKilos,
	"kilogram":     UnitKilos,
	"kilograms":    UnitKilos,
	"lb":           UnitPounds,
	"lbs":          UnitPounds,
	"pound":        UnitPounds,
	"pounds":       UnitPounds,
	"oz":           UnitOunces,
	"ounce":        UnitOunces,
	"ounces":       UnitOunces,
	"gal":          UnitGallons,
	"gallon":       UnitGallons,
	"gallons":      UnitGallons,
	"l":            UnitLiter,
	"liter":        UnitLiter,
	"liters":       UnitLiter,
	"ml":           UnitMilliliter,
	"mls":          UnitMilliliter,
	"milliliter":   UnitMilliliter,
	"milliliters":  UnitMilliliter,
	"fl oz":        UnitFluidOunce,
	"fluid ounce":  UnitFluidOunce,
	"fluid ounces": UnitFluidOunce,
	"kcal":         UnitKcal,
	"calorie":      UnitKcal,
	"calories":     UnitKcal,
	"cup":          UnitCup,
	"cups":         UnitCup,
	"tsp":          UnitTeaspoon,
	"teaspoon":     UnitTeaspoon,
	"teaspoons":    UnitTeaspoon,
	"tbsp":         UnitTablespoon,
	"tablespoon":   UnitTablespoon,
	"tablespoons":  UnitTablespoon,
	"none":         UnitNone,
	"count":        UnitNone,
	"each":         UnitNone,
	"piece":        UnitNone,
	"pieces":       UnitNone,
	"whole":        UnitNone,
	"cloves":       UnitNone,
	"pinch":        UnitNone,
	"pinches":      UnitNone,
	"dash":         UnitNone,
	"dashes":       UnitNone,
}

var unitTypes = map[Unit]UnitType{
	UnitGrams:      UnitTypeWeight,
	UnitKilos:      UnitTypeWeight,
	UnitPounds:     UnitTypeWeight,
	UnitOunces:     UnitTypeWeight,
	UnitGallons:    UnitTypeVolume,
	UnitLiter:      UnitTypeVolume,
	UnitMilliliter: UnitTypeVolume,
	UnitFluidOunce: UnitTypeVolume,
	UnitCup:        UnitTypeVolume,
	UnitTeaspoon:   UnitTypeVolume,
	UnitTablespoon: UnitTypeVolume,
	UnitKcal:       UnitTypeEnergy,
	UnitNone:       UnitTypeNone,
}

// ParseUnit maps a unit symbol or common spelling to a Unit. Anything unknown,
// including the empty string, is UnitNone.
func ParseUnit(s string) Unit {
	if u, ok := unitAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return u
	}
	return UnitNone
}

func (u Unit) Type() UnitType {
	if t, ok := unitTypes[u]; ok {
		return t
	}
	return UnitTypeNone
}

// ParseStorageType accepts the stored upper-case value as well as the spellings
// used elsewhere ("fridge"). Empty input defaults to the pantry.
func ParseStorageType(s string) (StorageType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pantry":
		return StoragePantry, true
	case "refrigerator", "fridge":
		return StorageRefrigerator, true
	case "freezer":
		return StorageFreezer, true
	default:
		return "", false
	}
}
