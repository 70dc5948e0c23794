package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"souschef/internal/utils"
	"souschef/internal/utils/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// ConnectDB opens postgres by default; DB_DRIVER=sqlite uses DB_PATH instead.
func ConnectDB() (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.NewGormLogger(logger.ParseGormLevel(utils.GetConfig("LOG_LEVEL")), slowQueryThreshold),
	}

	var dialector gorm.Dialector
	switch strings.ToLower(utils.GetConfig("DB_DRIVER")) {
	case "sqlite":
		path := utils.GetConfig("DB_PATH")
		if path == "" {
			path = "souschef.db"
		}
		dialector = sqlite.Open(path)
	case "", "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			utils.GetConfig("DB_HOST"),
			utils.GetConfig("DB_USER"),
			utils.GetConfig("DB_PASSWORD"),
			utils.GetConfig("DB_NAME"),
			utils.GetConfig("DB_PORT"),
		)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", utils.GetConfig("DB_DRIVER"))
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}
