package database

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/anjiri1684/tutor_cards/configs"
	"github.com/anjiri1684/tutor_cards/logger"
	"github.com/anjiri1684/tutor_cards/models"
)

var (
	errDuplicateSession     = errors.New("checkout session already exists")
	errDuplicatePublication = errors.New("publication already recorded")
)

// Open connects the store selected by STORE_DRIVER.
func Open(ctx context.Context, cfg *config.AppConfig) (Store, error) {
	switch cfg.StoreDriver {
	case "postgres", "":
		db, err := ConnectDB(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := Migrate(db); err != nil {
			return nil, err
		}
		return NewPostgresStore(db), nil
	case "mongo":
		return ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case "memory":
		logger.Log.Warn("Using in-memory store, data will not survive a restart")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func ConnectDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	logger.Log.Info("✅ Database connected successfully")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&teacherRecord{},
		&models.Publication{},
		&models.Notification{},
		&models.Student{},
		&models.Enrollment{},
	)
	if err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}
	logger.Log.Info("✅ Database migration successful")
	return nil
}
