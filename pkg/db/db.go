package db

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds database connection configuration
type Config struct {
	// URL is the database connection URL (defaults to AUDIT_DATABASE_URL env var)
	URL string
	// LogLevel is the application log level; "debug" turns on SQL logging
	LogLevel string
}

// Connect opens the audit database. The connection is made with lib/pq and
// handed to GORM so the same *sql.DB can be shared with migrations.
func Connect(cfg Config) (*gorm.DB, error) {
	dbURL := cfg.URL
	if dbURL == "" {
		dbURL = AuditURL()
	}
	if dbURL == "" {
		return nil, fmt.Errorf("AUDIT_DATABASE_URL environment variable is required")
	}

	sqlDB, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return Open(sqlDB, cfg.LogLevel)
}

// Open wraps an existing connection, such as a sqlmock one, in GORM.
func Open(sqlDB *sql.DB, logLevel string) (*gorm.DB, error) {
	db, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 sqlDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(LogMode(logLevel)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// LogMode maps an application log level onto GORM's. SQL statements are
// only logged at debug.
func LogMode(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "warn":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}

// AuditURL returns the audit database URL from environment.
// Returns empty string if AUDIT_DATABASE_URL is not set.
func AuditURL() string {
	return os.Getenv("AUDIT_DATABASE_URL")
}
