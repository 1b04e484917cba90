package initializers

import (
	"context"
	"fmt"

	"github.com/avast/retry-go/v5"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the Postgres pool, retrying with backoff while the
// database comes up.
func ConnectDB(ctx context.Context, cfg DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database.url (DATABASE_URL) is empty")
	}
	attempts := cfg.ConnectAttempts
	if attempts == 0 {
		attempts = 1
	}

	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.Debug {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	var db *gorm.DB
	r := retry.New(
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.DelayType(retry.BackOffDelay),
	)
	err := r.Do(func() error {
		pgConfig := postgres.Config{
			PreferSimpleProtocol: true,
			DriverName:           "postgres",
			DSN:                  cfg.URL,
		}
		conn, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
			TranslateError: true,
			Logger:         gormLogger,
		})
		if err != nil {
			log.Warn("database not reachable yet", zap.Error(err))
			return err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			log.Warn("database ping failed", zap.Error(err))
			_ = sqlDB.Close()
			return err
		}
		if cfg.MaxConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxConns)
		}
		db = conn
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	log.Info("database connection successful")
	return db, nil
}
