package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"souschef/internal/api/handlers"
	"souschef/internal/api/routes"
	"souschef/internal/middleware"
	"souschef/internal/utils"
	"souschef/internal/utils/mailing"
	"souschef/internal/utils/metrics"
	"souschef/internal/utils/storage"
	"souschef/pkg/docstore"
	"souschef/pkg/identity"
	"souschef/pkg/item"
	"souschef/pkg/jwt"
	"souschef/pkg/profile"
	"souschef/pkg/recipe"
	"souschef/pkg/scan"
	"souschef/pkg/validation"
)

const (
	reaperInterval = time.Minute
	sweepInterval  = 5 * time.Minute
)

// NewApp wires every service onto a fiber app. Background jobs (idle scan
// reaping, pending identity cleanup) run until ctx is cancelled.
func NewApp(ctx context.Context, db *gorm.DB, log *zap.Logger) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	appMetrics := metrics.New()
	middlewares := middleware.NewMiddleware(log, appMetrics)
	validate := validator.New()

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening access log: %w", err)
	}
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	var s3 storage.AwsS3
	if s3Config := storage.LoadS3Config(); s3Config.Bucket != "" {
		s3, err = storage.NewAwsS3(ctx, s3Config)
		if err != nil {
			return nil, err
		}
	} else {
		log.Warn("AWS_S3_BUCKET not set, scan images will not be archived")
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig())
	recordValidator := validation.NewValidator(time.Now)

	// Repository
	documentStore := docstore.NewDocumentRepository(db)
	identityRepository := identity.NewIdentityRepository(db)
	profileRepository := profile.NewProfileRepository(documentStore)
	itemRepository := item.NewItemRepository(documentStore)
	recipeRepository := recipe.NewRecipeRepository(documentStore)

	// Service
	jwtService := jwt.NewJWTService(
		utils.GetConfig("JWT_SECRET"),
		time.Duration(utils.GetConfigInt("JWT_TTL_MINUTES", 120))*time.Minute,
	)
	identityService := identity.NewIdentityService(identityRepository, jwtService)
	profileService := profile.NewProfileService(profileRepository, identityService, recordValidator, mailer, utils.GetConfig("APP_URL"))
	itemService := item.NewItemService(itemRepository, recordValidator)
	recipeService := recipe.NewRecipeService(recipeRepository, itemRepository)
	scanService := scan.NewScanService(
		scan.NewArchiver(s3, documentStore),
		time.Duration(utils.GetConfigInt("SCAN_IDLE_MINUTES", 15))*time.Minute,
		log,
	)
	appMetrics.TrackActiveScanSessions(scanService.ActiveSessions)

	// Handler
	authHandler := handlers.NewAuthHandler(identityService, validate)
	profileHandler := handlers.NewProfileHandler(profileService, validate)
	itemHandler := handlers.NewItemHandler(itemService, validate)
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	scanHandler := handlers.NewScanHandler(scanService, validate)

	// routes
	routesConfig := routes.Config{
		App:            app,
		AuthHandler:    authHandler,
		ProfileHandler: profileHandler,
		ItemHandler:    itemHandler,
		RecipeHandler:  recipeHandler,
		ScanHandler:    scanHandler,
		Middleware:     middlewares,
		Authenticator:  identityService,
		MetricsHandler: appMetrics.Handler(),
	}
	routesConfig.Setup()

	// background jobs
	go scanService.RunReaper(ctx, reaperInterval)
	go runSweeper(ctx, profileService, log)

	return app, nil
}

func runSweeper(ctx context.Context, profileService profile.ProfileService, log *zap.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := profileService.SweepPendingDeletions(ctx)
			if err != nil {
				log.Warn("pending identity sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("pending identity deletions cleared", zap.Int("count", n))
			}
		}
	}
}
