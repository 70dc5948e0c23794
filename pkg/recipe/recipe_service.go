package recipe

import (
	"context"
	"strings"
	"time"

	"souschef/domain"
	"souschef/pkg/item"
	"souschef/pkg/units"
)

type (
	RecipeService interface {
		GetTodaysRecipes(ctx context.Context) ([]domain.Recipe, error)
		GetRecipeDetail(ctx context.Context, recipeID string) (domain.Recipe, error)
		CheckFeasibility(ctx context.Context, userID, recipeID string) (domain.FeasibilityResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		itemRepository   item.ItemRepository
		now              func() time.Time
	}
)

func NewRecipeService(recipeRepository RecipeRepository, itemRepository item.ItemRepository) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		itemRepository:   itemRepository,
		now:              time.Now,
	}
}

func (s *recipeService) GetTodaysRecipes(ctx context.Context) ([]domain.Recipe, error) {
	return s.recipeRepository.GetRecipes(ctx, domain.TodaysRecipeLimit)
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string) (domain.Recipe, error) {
	return s.recipeRepository.GetRecipeByID(ctx, recipeID)
}

// CheckFeasibility compares every ingredient against the user's unexpired
// items. An ingredient is covered when the matching items, converted to the
// ingredient's unit, add up to at least the required amount.
func (s *recipeService) CheckFeasibility(ctx context.Context, userID, recipeID string) (domain.FeasibilityResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return domain.FeasibilityResponse{}, err
	}

	records, err := s.itemRepository.GetItems(ctx, userID, 0)
	if err != nil {
		return domain.FeasibilityResponse{}, err
	}

	now := s.now()
	pantry := make([]domain.ItemRecord, 0, len(records))
	for _, r := range records {
		if !r.ExpirationDate.Before(now) {
			pantry = append(pantry, r)
		}
	}

	res := domain.FeasibilityResponse{
		RecipeID:        recipe.ID,
		Feasible:        true,
		Ingredients:     make([]domain.IngredientCheck, 0, len(recipe.Ingredients)),
		EstimatedMacros: make(map[string]domain.Quantity, len(domain.MacroUnits)),
	}
	for macro, unit := range domain.MacroUnits {
		res.EstimatedMacros[macro] = domain.Quantity{Unit: unit}
	}

	for _, ingredient := range recipe.Ingredients {
		check, used := checkIngredient(ingredient, pantry)
		if !check.Enough {
			res.Feasible = false
		}
		res.Ingredients = append(res.Ingredients, check)

		if used != nil {
			addMacros(res.EstimatedMacros, *used, ingredient.Quantity)
		}
	}
	return res, nil
}

// checkIngredient also returns the first item whose macros describe the
// ingredient, if any.
func checkIngredient(ingredient domain.RecipeIngredient, pantry []domain.ItemRecord) (domain.IngredientCheck, *domain.ItemRecord) {
	required := ingredient.Quantity
	check := domain.IngredientCheck{
		Name:      ingredient.Name,
		Required:  required,
		Available: domain.Quantity{Unit: required.Unit},
	}

	var used *domain.ItemRecord
	matched, convertible := false, false
	for i := range pantry {
		it := &pantry[i]
		if !namesMatch(ingredient.Name, it.Name) {
			continue
		}
		matched = true

		v, err := units.Convert(it.Quantity.Value, it.Quantity.Unit, required.Unit)
		if err != nil {
			continue
		}
		convertible = true
		check.Available.Value += v
		if used == nil {
			used = it
		}
	}

	switch {
	case !matched:
		check.Reason = domain.ReasonMissing
	case !convertible:
		check.Reason = domain.ReasonIncompatibleUnits
	case check.Available.Value >= required.Value:
		check.Enough = true
	default:
		check.Reason = domain.ReasonNotEnough
	}
	return check, used
}

func namesMatch(ingredient, item string) bool {
	a := strings.ToLower(strings.TrimSpace(ingredient))
	b := strings.ToLower(strings.TrimSpace(item))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func addMacros(total map[string]domain.Quantity, it domain.ItemRecord, required domain.Quantity) {
	if it.ServingSize.Value <= 0 {
		return
	}
	amount, err := units.Convert(required.Value, required.Unit, it.ServingSize.Unit)
	if err != nil {
		return
	}
	servings := amount / it.ServingSize.Value
	for macro, q := range it.PerServingMacros {
		t, ok := total[macro]
		if !ok {
			continue
		}
		t.Value += q.Value * servings
		total[macro] = t
	}
}
