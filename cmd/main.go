package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"souschef/cmd/config"
	migration "souschef/cmd/database/migrate"
	"souschef/internal/utils"
	"souschef/internal/utils/logger"
	"souschef/pkg/docstore"
	"souschef/pkg/recipe"
)

func main() {
	utils.LoadConfig()

	log, err := logger.New(logger.Config{
		ServiceName: "souschef",
		Level:       utils.GetConfig("LOG_LEVEL"),
		Format:      utils.GetConfig("LOG_FORMAT"),
	})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := migration.Migrate(db, log); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}

	recipeRepository := recipe.NewRecipeRepository(docstore.NewDocumentRepository(db))
	if existing, err := recipeRepository.GetRecipes(ctx, 1); err == nil && len(existing) == 0 {
		if _, err := migration.SeedRecipes(ctx, recipeRepository, log); err != nil {
			log.Warn("recipe seed failed", zap.Error(err))
		}
	}

	app, err := config.NewApp(ctx, db, log)
	if err != nil {
		log.Fatal("app setup failed", zap.Error(err))
	}

	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
