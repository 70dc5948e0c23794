package domain

import (
	"errors"
)

var (
	MessageSuccessGetRecipes       = "success get recipes"
	MessageSuccessGetRecipeDetail  = "success get recipe detail"
	MessageSuccessCheckFeasibility = "success check recipe feasibility"
	MessageFailedGetRecipes        = "failed to get recipes"
	MessageFailedGetRecipeDetail   = "failed to get recipe detail"
	MessageFailedCheckFeasibility  = "failed to check recipe feasibility"

	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrMalformedRecipe = errors.New("recipe document is malformed")
)

const (
	ReasonMissing           = "missing"
	ReasonNotEnough         = "not enough"
	ReasonIncompatibleUnits = "incompatible units"
)

const TodaysRecipeLimit = 5

type (
	Recipe struct {
		ID               string             `json:"id"`
		Name             string             `json:"name"`
		Description      string             `json:"description"`
		Instructions     []RecipeStep       `json:"instructions"`
		NutritionalFacts NutritionalFacts   `json:"nutritional_facts"`
		Ingredients      []RecipeIngredient `json:"ingredients,omitempty"`
		ImageURL         string             `json:"image_url,omitempty"`
	}

	RecipeStep struct {
		Number      int    `json:"number"`
		Instruction string `json:"instruction"`
	}

	NutritionalFacts struct {
		Calories float64 `json:"calories"`
		Protein  float64 `json:"protein"`
		Carbs    float64 `json:"carbs"`
		Sugars   float64 `json:"sugars"`
	}

	RecipeIngredient struct {
		Name     string   `json:"name"`
		Quantity Quantity `json:"quantity"`
	}

	// RecipeDocument is the stored shape of a recipe.
	RecipeDocument struct {
		Name             *string            `json:"recipe_name"`
		Description      *string            `json:"recipe_description"`
		Instructions     map[string]string  `json:"recipe_instructions"`
		NutritionalFacts map[string]float64 `json:"nutritional_facts"`
		ImageURL         string             `json:"image_url,omitempty"`
		Ingredients      []RecipeIngredient `json:"recipe_ingredients,omitempty"`
	}

	IngredientCheck struct {
		Name      string   `json:"name"`
		Required  Quantity `json:"required"`
		Available Quantity `json:"available"`
		Enough    bool     `json:"enough"`
		Reason    string   `json:"reason,omitempty"`
	}

	FeasibilityResponse struct {
		RecipeID    string            `json:"recipe_id"`
		Feasible    bool              `json:"feasible"`
		Ingredients []IngredientCheck `json:"ingredients"`
		// EstimatedMacros sums the per-serving macros of the pantry items that
		// cover each ingredient, scaled to the amount the recipe uses.
		EstimatedMacros map[string]Quantity `json:"estimated_macros"`
	}
)
