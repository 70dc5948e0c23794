package validation

import (
	"testing"
	"time"
	_ "time/tzdata"

	"souschef/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.November, 13, 10, 30, 0, 0, time.UTC)

func newTestValidator() *Validator {
	return NewValidator(func() time.Time { return fixedNow })
}

func validItemFields() ItemFields {
	return ItemFields{
		Name:           "Whole milk",
		Quantity:       "1.5",
		Unit:           "gal",
		Price:          "4.29",
		ServingSize:    "240",
		ServingUnit:    "ml",
		Calories:       "150",
		Protein:        "8",
		Carbs:          "12",
		Fat:            "8",
		Storage:        "REFRIGERATOR",
		ExpirationDate: fixedNow.AddDate(0, 0, 7),
	}
}

func TestValidateItem_Success(t *testing.T) {
	v := newTestValidator()

	rec, err := v.ValidateItem(validItemFields())
	require.NoError(t, err)

	assert.Empty(t, rec.ID)
	assert.Equal(t, "Whole milk", rec.Name)
	assert.Equal(t, domain.Quantity{Value: 1.5, Unit: domain.UnitGallons}, rec.Quantity)
	assert.Equal(t, 4.29, rec.Price)
	assert.Equal(t, domain.Quantity{Value: 240, Unit: domain.UnitMilliliter}, rec.ServingSize)
	assert.Equal(t, domain.StorageRefrigerator, rec.Storage)
	assert.Equal(t, 7, rec.ShelfLifeDays)
	assert.Equal(t, fixedNow, rec.CreatedAt)
	assert.Equal(t, map[string]domain.Quantity{
		domain.MacroCalories: {Value: 150, Unit: domain.UnitKcal},
		domain.MacroProtein:  {Value: 8, Unit: domain.UnitGrams},
		domain.MacroCarbs:    {Value: 12, Unit: domain.UnitGrams},
		domain.MacroFat:      {Value: 8, Unit: domain.UnitGrams},
	}, rec.PerServingMacros)
}

func TestValidateItem_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *ItemFields)
		want   error
		field  string
	}{
		{"empty name", func(f *ItemFields) { f.Name = "" }, domain.ErrMissingField, "name"},
		{"zero quantity", func(f *ItemFields) { f.Quantity = "0" }, domain.ErrInvalidQuantity, "quantity"},
		{"negative quantity", func(f *ItemFields) { f.Quantity = "-2" }, domain.ErrInvalidQuantity, "quantity"},
		{"unparsable quantity", func(f *ItemFields) { f.Quantity = "abc" }, domain.ErrInvalidQuantity, "quantity"},
		{"NaN quantity", func(f *ItemFields) { f.Quantity = "NaN" }, domain.ErrInvalidQuantity, "quantity"},
		{"none unit", func(f *ItemFields) { f.Unit = "none" }, domain.ErrInvalidQuantity, "unit"},
		{"unknown unit", func(f *ItemFields) { f.Unit = "parsecs" }, domain.ErrInvalidQuantity, "unit"},
		{"negative price", func(f *ItemFields) { f.Price = "-0.01" }, domain.ErrInvalidPrice, "price"},
		{"zero serving size", func(f *ItemFields) { f.ServingSize = "0" }, domain.ErrInvalidServingSize, "serving_size"},
		{"unparsable serving size", func(f *ItemFields) { f.ServingSize = "a lot" }, domain.ErrInvalidServingSize, "serving_size"},
		{"unknown storage", func(f *ItemFields) { f.Storage = "garage" }, domain.ErrInvalidStorage, "storage"},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validItemFields()
			tt.mutate(&f)

			_, err := v.ValidateItem(f)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestValidateItem_ReportsFirstFailingRuleInOrder(t *testing.T) {
	f := validItemFields()
	f.Name = ""
	f.Quantity = "0"
	f.Price = "-1"

	_, err := newTestValidator().ValidateItem(f)
	assert.ErrorIs(t, err, domain.ErrMissingField)

	f.Name = "eggs"
	_, err = newTestValidator().ValidateItem(f)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// Unparsable numeric text is coerced to zero before the range checks. For
// price, zero is allowed, so malformed price text is accepted as free.
func TestValidateItem_UnparsablePriceDefaultsToZero(t *testing.T) {
	f := validItemFields()
	f.Price = "four dollars"
	f.Calories = "lots"

	rec, err := newTestValidator().ValidateItem(f)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rec.Price)
	assert.Equal(t, 0.0, rec.PerServingMacros[domain.MacroCalories].Value)
}

func TestValidateItem_UnitAliasesAndDefaultStorage(t *testing.T) {
	f := validItemFields()
	f.Unit = " Kilograms "
	f.ServingUnit = ""
	f.Storage = ""

	rec, err := newTestValidator().ValidateItem(f)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitKilos, rec.Quantity.Unit)
	assert.Equal(t, domain.UnitNone, rec.ServingSize.Unit)
	assert.Equal(t, domain.StoragePantry, rec.Storage)
}

func TestValidateItem_PastExpirationGivesNegativeShelfLife(t *testing.T) {
	f := validItemFields()
	f.ExpirationDate = fixedNow.AddDate(0, 0, -3)

	rec, err := newTestValidator().ValidateItem(f)
	require.NoError(t, err)
	assert.Equal(t, -3, rec.ShelfLifeDays)
}

func TestValidateItem_Deterministic(t *testing.T) {
	v := newTestValidator()

	first, err := v.ValidateItem(validItemFields())
	require.NoError(t, err)
	second, err := v.ValidateItem(validItemFields())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestShelfLifeDays_TruncatesPartialDays(t *testing.T) {
	assert.Equal(t, 0, ShelfLifeDays(fixedNow, fixedNow.Add(23*time.Hour)))
	assert.Equal(t, 1, ShelfLifeDays(fixedNow, fixedNow.Add(47*time.Hour)))
	assert.Equal(t, 0, ShelfLifeDays(fixedNow, fixedNow.Add(-23*time.Hour)))
	assert.Equal(t, -1, ShelfLifeDays(fixedNow, fixedNow.Add(-25*time.Hour)))
}

func TestShelfLifeDays_CalendarDays(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-03-10 has 23 hours in New York.
	now := time.Date(2024, time.March, 9, 12, 0, 0, 0, ny)
	assert.Equal(t, 2, ShelfLifeDays(now, time.Date(2024, time.March, 11, 12, 0, 0, 0, ny)))
	assert.Equal(t, 1, ShelfLifeDays(now, time.Date(2024, time.March, 11, 11, 59, 0, 0, ny)))
}

func TestShelfLifeDays_FarFuture(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	exp := time.Date(2524, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 182621, ShelfLifeDays(now, exp))
	assert.Equal(t, -182621, ShelfLifeDays(exp, now))
}

func validProfileFields() ProfileFields {
	return ProfileFields{
		UserID:      "uid-1",
		Email:       "cook@example.com",
		FullName:    "  Ada Lovelace ",
		Location:    " London\t",
		DateOfBirth: time.Date(1990, time.May, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidateProfile_TrimsAndStampsCreation(t *testing.T) {
	p, err := newTestValidator().ValidateProfile(validProfileFields())
	require.NoError(t, err)

	assert.Equal(t, "uid-1", p.UserID)
	assert.Equal(t, "cook@example.com", p.Email)
	assert.Equal(t, "Ada Lovelace", p.FullName)
	assert.Equal(t, "London", p.Location)
	assert.Equal(t, fixedNow, p.CreatedAt)
}

func TestValidateProfile_MissingFields(t *testing.T) {
	v := newTestValidator()

	f := validProfileFields()
	f.FullName = "   "
	_, err := v.ValidateProfile(f)
	assert.ErrorIs(t, err, domain.ErrMissingField)

	f = validProfileFields()
	f.Location = ""
	_, err = v.ValidateProfile(f)
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestValidateProfile_MinimumAgeBoundary(t *testing.T) {
	v := newTestValidator()
	thirteenYearsAgo := fixedNow.AddDate(-13, 0, 0)

	f := validProfileFields()
	f.DateOfBirth = thirteenYearsAgo
	_, err := v.ValidateProfile(f)
	assert.NoError(t, err)

	f.DateOfBirth = thirteenYearsAgo.AddDate(0, 0, 1)
	_, err = v.ValidateProfile(f)
	assert.ErrorIs(t, err, domain.ErrAgeTooLow)
}
