package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"souschef/domain"
	"souschef/internal/utils/logger"
)

type (
	RecipeRepository interface {
		GetRecipes(ctx context.Context, limit int) ([]domain.Recipe, error)
		GetRecipeByID(ctx context.Context, id string) (domain.Recipe, error)
		SaveRecipe(ctx context.Context, id string, doc domain.RecipeDocument) error
	}

	recipeRepository struct {
		store domain.DocumentStore
	}
)

func NewRecipeRepository(store domain.DocumentStore) RecipeRepository {
	return &recipeRepository{store: store}
}

// GetRecipes returns up to limit recipes. Documents missing a required field
// are skipped, so fewer than limit may come back.
func (r *recipeRepository) GetRecipes(ctx context.Context, limit int) ([]domain.Recipe, error) {
	docs, err := r.store.List(ctx, domain.CollectionRecipes, limit)
	if err != nil {
		return nil, err
	}

	recipes := make([]domain.Recipe, 0, len(docs))
	for _, doc := range docs {
		recipe, err := decodeRecipe(doc.ID, doc.Data)
		if err != nil {
			logger.FromContext(ctx).Warn("recipe.skipped_malformed", zap.String("recipe_id", doc.ID), zap.Error(err))
			continue
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (domain.Recipe, error) {
	var raw json.RawMessage
	if err := r.store.Get(ctx, domain.CollectionRecipes, id, &raw); err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return domain.Recipe{}, domain.ErrRecipeNotFound
		}
		return domain.Recipe{}, err
	}
	return decodeRecipe(id, raw)
}

func (r *recipeRepository) SaveRecipe(ctx context.Context, id string, doc domain.RecipeDocument) error {
	return r.store.Put(ctx, domain.CollectionRecipes, id, doc)
}

// decodeRecipe turns a stored document into a Recipe. Name, description,
// instructions and nutritional facts must all be present. Instruction keys
// that are not step numbers are dropped and missing nutrients count as zero.
func decodeRecipe(id string, data []byte) (domain.Recipe, error) {
	var doc domain.RecipeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Recipe{}, fmt.Errorf("%w: %v", domain.ErrMalformedRecipe, err)
	}
	if doc.Name == nil || doc.Description == nil || doc.Instructions == nil || doc.NutritionalFacts == nil {
		return domain.Recipe{}, domain.ErrMalformedRecipe
	}

	steps := make([]domain.RecipeStep, 0, len(doc.Instructions))
	for key, text := range doc.Instructions {
		n, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		steps = append(steps, domain.RecipeStep{Number: n, Instruction: text})
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].Number < steps[j].Number })

	return domain.Recipe{
		ID:           id,
		Name:         *doc.Name,
		Description:  *doc.Description,
		Instructions: steps,
		NutritionalFacts: domain.NutritionalFacts{
			Calories: doc.NutritionalFacts["calories"],
			Protein:  doc.NutritionalFacts["protein"],
			Carbs:    doc.NutritionalFacts["carbs"],
			Sugars:   doc.NutritionalFacts["sugars"],
		},
		Ingredients: doc.Ingredients,
		ImageURL:    doc.ImageURL,
	}, nil
}
