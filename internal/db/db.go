package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/config"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const defaultDelayBetweenTry = 2 * time.Second

// Connect opens the configured database. Postgres connections are retried
// up to cfg.DBMaxAttempts times while the server is not accepting them yet.
func Connect(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	gcfg := &gorm.Config{TranslateError: true}

	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		return db, nil
	case config.DriverPostgres:
		return connectWithRetry(ctx, postgres.Open(cfg.DSN()), gcfg, cfg.DBMaxAttempts, defaultDelayBetweenTry, log)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}

func connectWithRetry(
	ctx context.Context,
	dialector gorm.Dialector,
	gcfg *gorm.Config,
	maxAttempts int,
	delay time.Duration,
	log zerolog.Logger,
) (*gorm.DB, error) {
	var err error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var db *gorm.DB
		db, err = gorm.Open(dialector, gcfg)
		if err == nil {
			err = Ping(ctx, db)
			if err == nil {
				return db, nil
			}
		}

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", maxAttempts).
			Msg("db not ready")

		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", maxAttempts, err)
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Author{}, &model.Book{})
}
