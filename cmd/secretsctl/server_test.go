package main

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/secrets-api/pkg/audit"
	"github.com/doodlesbykumbi/secrets-api/pkg/config"
	"github.com/doodlesbykumbi/secrets-api/pkg/db"
	"github.com/doodlesbykumbi/secrets-api/pkg/server"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/store/memory"
)

func newServeFixture(t *testing.T, port int) (*server.Server, *audit.Auditor, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := db.Open(sqlDB, "")
	require.NoError(t, err)
	mock.ExpectClose()

	logger := audit.NewLogger()
	logger.SetWriter(&bytes.Buffer{})
	auditor := audit.New(logger, audit.NewStoreWithDB(gormDB))

	cfg := config.Default()
	cfg.BindAddress = "127.0.0.1"
	cfg.Port = port

	secrets := memory.NewSecretsStore()
	return server.NewServer(cfg, secrets, memory.NewProjectsStore(secrets), auditor), auditor, mock
}

func TestServe(t *testing.T) {
	t.Run("listen failure closes the auditor", func(t *testing.T) {
		busy, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer busy.Close()

		s, auditor, mock := newServeFixture(t, busy.Addr().(*net.TCPAddr).Port)

		err = serve(context.Background(), s, auditor, time.Second)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cancelled context shuts down and closes the auditor", func(t *testing.T) {
		s, auditor, mock := newServeFixture(t, 0)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.NoError(t, serve(ctx, s, auditor, time.Second))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
