package migration

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"souschef/domain"
	"souschef/entities"
	"souschef/pkg/recipe"
)

//go:embed seed/recipes.json
var recipeSeed []byte

func Migrate(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	if err := db.AutoMigrate(&entities.Document{}); err != nil {
		return fmt.Errorf("migrate documents: %w", err)
	}

	log.Info("database migration complete")
	return nil
}

// SeedRecipes writes the bundled recipes. Existing documents with the same id
// are replaced.
func SeedRecipes(ctx context.Context, recipeRepository recipe.RecipeRepository, log *zap.Logger) (int, error) {
	docs := map[string]domain.RecipeDocument{}
	if err := json.Unmarshal(recipeSeed, &docs); err != nil {
		return 0, fmt.Errorf("decode recipe seed: %w", err)
	}

	for id, doc := range docs {
		if err := recipeRepository.SaveRecipe(ctx, id, doc); err != nil {
			return 0, fmt.Errorf("seed recipe %s: %w", id, err)
		}
	}

	log.Info("recipes seeded", zap.Int("count", len(docs)))
	return len(docs), nil
}
