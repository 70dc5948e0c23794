// Package validation turns raw form input into records that are safe to store.
package validation

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"souschef/domain"

	"github.com/go-playground/validator/v10"
)

// minimumAgeYears is the youngest age allowed to create a profile.
const minimumAgeYears = 13

type (
	// ItemFields is the item form as typed by the user. Numeric fields are text.
	ItemFields struct {
		Name           string
		Quantity       string
		Unit           string
		Price          string
		ServingSize    string
		ServingUnit    string
		Calories       string
		Protein        string
		Carbs          string
		Fat            string
		Storage        string
		ExpirationDate time.Time
	}

	ProfileFields struct {
		UserID      string
		Email       string
		FullName    string
		Location    string
		DateOfBirth time.Time
	}

	Validator struct {
		validate *validator.Validate
		now      func() time.Time
	}

	itemRules struct {
		Name        string      `validate:"required"`
		Quantity    float64     `validate:"gt=0"`
		Unit        domain.Unit `validate:"ne=none"`
		Price       float64     `validate:"gte=0"`
		ServingSize float64     `validate:"gt=0"`
	}

	profileRules struct {
		FullName string `validate:"required"`
		Location string `validate:"required"`
	}
)

var ruleErrors = map[string]error{
	"Name":        domain.ErrMissingField,
	"Quantity":    domain.ErrInvalidQuantity,
	"Unit":        domain.ErrInvalidQuantity,
	"Price":       domain.ErrInvalidPrice,
	"ServingSize": domain.ErrInvalidServingSize,
	"FullName":    domain.ErrMissingField,
	"Location":    domain.ErrMissingField,
}

var fieldNames = map[string]string{
	"Name":        "name",
	"Quantity":    "quantity",
	"Unit":        "unit",
	"Price":       "price",
	"ServingSize": "serving_size",
	"FullName":    "full_name",
	"Location":    "location",
}

// NewValidator builds a Validator reading the current time from clock. A nil
// clock means time.Now.
func NewValidator(clock func() time.Time) *Validator {
	if clock == nil {
		clock = time.Now
	}
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      clock,
	}
}

// ValidateItem checks the item form and returns the normalized record. The
// record has no ID; assigning one is the caller's job.
func (v *Validator) ValidateItem(fields ItemFields) (domain.ItemRecord, error) {
	rules := itemRules{
		Name:        fields.Name,
		Quantity:    parseNumber(fields.Quantity),
		Unit:        domain.ParseUnit(fields.Unit),
		Price:       parseNumber(fields.Price),
		ServingSize: parseNumber(fields.ServingSize),
	}
	if err := v.check(rules); err != nil {
		return domain.ItemRecord{}, err
	}

	storage, ok := domain.ParseStorageType(fields.Storage)
	if !ok {
		return domain.ItemRecord{}, domain.NewValidationError("storage", domain.ErrInvalidStorage)
	}

	now := v.now()
	return domain.ItemRecord{
		Name:     rules.Name,
		Quantity: domain.Quantity{Value: rules.Quantity, Unit: rules.Unit},
		Price:    rules.Price,
		PerServingMacros: map[string]domain.Quantity{
			domain.MacroCalories: {Value: parseNumber(fields.Calories), Unit: domain.MacroUnits[domain.MacroCalories]},
			domain.MacroProtein:  {Value: parseNumber(fields.Protein), Unit: domain.MacroUnits[domain.MacroProtein]},
			domain.MacroCarbs:    {Value: parseNumber(fields.Carbs), Unit: domain.MacroUnits[domain.MacroCarbs]},
			domain.MacroFat:      {Value: parseNumber(fields.Fat), Unit: domain.MacroUnits[domain.MacroFat]},
		},
		ServingSize:    domain.Quantity{Value: rules.ServingSize, Unit: domain.ParseUnit(fields.ServingUnit)},
		ShelfLifeDays:  ShelfLifeDays(now, fields.ExpirationDate),
		Storage:        storage,
		ExpirationDate: fields.ExpirationDate,
		CreatedAt:      now,
	}, nil
}

// ValidateProfile trims the free-text fields and enforces the minimum age.
func (v *Validator) ValidateProfile(fields ProfileFields) (domain.UserProfile, error) {
	rules := profileRules{
		FullName: strings.TrimSpace(fields.FullName),
		Location: strings.TrimSpace(fields.Location),
	}
	if err := v.check(rules); err != nil {
		return domain.UserProfile{}, err
	}

	now := v.now()
	if fields.DateOfBirth.After(now.AddDate(-minimumAgeYears, 0, 0)) {
		return domain.UserProfile{}, domain.NewValidationError("date_of_birth", domain.ErrAgeTooLow)
	}

	return domain.UserProfile{
		UserID:      fields.UserID,
		Email:       fields.Email,
		FullName:    rules.FullName,
		DateOfBirth: fields.DateOfBirth,
		Location:    rules.Location,
		CreatedAt:   now,
	}, nil
}

// ShelfLifeDays counts whole calendar days from now until expiration in now's
// location, truncating toward zero. Past dates give zero or a negative count.
func ShelfLifeDays(now, expiration time.Time) int {
	expiration = expiration.In(now.Location())
	days := civilDay(expiration) - civilDay(now)

	// drop the last day when it is not complete yet
	base := now.AddDate(0, 0, int(days))
	switch {
	case days > 0 && base.After(expiration):
		days--
	case days < 0 && base.Before(expiration):
		days++
	}
	return int(days)
}

// civilDay numbers calendar dates without going through time.Duration, which
// saturates beyond about 292 years.
func civilDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

func (v *Validator) check(rules any) error {
	err := v.validate.Struct(rules)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	// Struct fields are declared in reporting order, so the first failure wins.
	first := fieldErrs[0]
	return domain.NewValidationError(fieldNames[first.StructField()], ruleErrors[first.StructField()])
}

// parseNumber reads numeric form text. Text that is not a finite number counts
// as zero and is left to the range checks.
func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
