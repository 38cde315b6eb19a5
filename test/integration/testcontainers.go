package integration

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/secrets-api/pkg/audit"
	"github.com/doodlesbykumbi/secrets-api/pkg/config"
	"github.com/doodlesbykumbi/secrets-api/pkg/db"
	"github.com/doodlesbykumbi/secrets-api/pkg/server"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/endpoints"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/store/memory"
)

// TestContext holds the resources shared by every scenario
type TestContext struct {
	DB          *gorm.DB
	Container   testcontainers.Container
	DatabaseURL string
	AuditStore  *audit.Store
	HTTPClient  *http.Client
}

// NewTestContext starts PostgreSQL in a container and migrates the audit
// schema into it.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}
	migrationsDir := filepath.Join(projectRoot, "db", "migrations")

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("secrets_audit"),
		tcpostgres.WithUsername("secrets"),
		tcpostgres.WithPassword("secrets"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	if err := runMigrations(migrationsDir, connStr); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := db.Connect(db.Config{URL: connStr})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &TestContext{
		DB:          conn,
		Container:   pgContainer,
		DatabaseURL: connStr,
		AuditStore:  audit.NewStoreWithDB(conn),
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// StartServer runs a fresh in-process server whose audit events land in
// the container database. Stores start empty.
func (tc *TestContext) StartServer() *httptest.Server {
	logger := audit.NewLogger()
	logger.SetWriter(io.Discard)

	secrets := memory.NewSecretsStore()
	s := server.NewServer(config.Default(), secrets, memory.NewProjectsStore(secrets), audit.New(logger, tc.AuditStore))
	endpoints.RegisterAll(s)

	return httptest.NewServer(s.Router)
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.AuditStore != nil {
		_ = tc.AuditStore.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}

// findProjectRoot locates the project root directory
func findProjectRoot() (string, error) {
	for _, p := range []string{"../..", "..", "."} {
		if _, err := os.Stat(filepath.Join(p, "go.mod")); err == nil {
			return filepath.Abs(p)
		}
	}
	return "", fmt.Errorf("project root not found (looking for go.mod)")
}

func runMigrations(migrationsDir, connStr string) error {
	m, err := migrate.New("file://"+migrationsDir, connStr+"&x-migrations-table=secrets_schema_migrations")
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	version, _, _ := m.Version()
	log.Printf("Audit schema at version %d", version)
	return nil
}
