package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	maxOpenConns    = 20
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Connect opens a PostgreSQL connection via GORM, tunes the pool, and
// verifies connectivity with a bounded ping.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	// TranslateError surfaces unique-constraint violations as
	// gorm.ErrDuplicatedKey, which the adapters map to conflict errors.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectFromEnv dials PostgreSQL using POSTGRES_DSN and returns the DB plus
// a cleanup function. A missing DSN or failed connection is not fatal: the
// caller falls back to in-memory repositories, which keeps local runs and
// demos working without a database.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*gorm.DB, func()) {
	noop := func() {}
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		warn(logger, "POSTGRES_DSN not set, using in-memory repositories", nil)
		return nil, noop
	}
	db, err := Connect(ctx, dsn)
	if err != nil {
		warn(logger, "postgres connection failed, using in-memory repositories", err)
		return nil, noop
	}
	sqlDB, err := db.DB()
	if err != nil {
		warn(logger, "could not unwrap postgres connection, using in-memory repositories", err)
		return nil, noop
	}
	if logger != nil {
		logger.Info("postgres connection established")
	}
	return db, func() { _ = sqlDB.Close() }
}

func warn(logger *slog.Logger, msg string, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Warn(msg, slog.String("error", err.Error()))
		return
	}
	logger.Warn(msg)
}
