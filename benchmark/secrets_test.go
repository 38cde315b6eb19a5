package benchmark

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doodlesbykumbi/secrets-api/pkg/audit"
	"github.com/doodlesbykumbi/secrets-api/pkg/config"
	"github.com/doodlesbykumbi/secrets-api/pkg/model"
	"github.com/doodlesbykumbi/secrets-api/pkg/server"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/endpoints"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/store/memory"
)

func newRouter(b *testing.B, secretCount int) (http.Handler, []string) {
	b.Helper()

	logger := audit.NewLogger()
	logger.SetWriter(io.Discard)

	secrets := memory.NewSecretsStore()
	projects := memory.NewProjectsStore(secrets)
	s := server.NewServer(config.Default(), secrets, projects, audit.New(logger, nil))
	endpoints.RegisterAll(s)

	ids := make([]string, 0, secretCount)
	for i := 0; i < secretCount; i++ {
		secret, err := secrets.Create(model.Secret{Name: fmt.Sprintf("secret-%d", i), Value: "value", Source: model.SourceOther})
		if err != nil {
			b.Fatal(err)
		}
		ids = append(ids, secret.Identifier)
	}
	return s.Router, ids
}

func BenchmarkSecretsHandler(b *testing.B) {
	b.Run("GET /secrets/{id}", func(b *testing.B) {
		router, ids := newRouter(b, 1000)

		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			r := httptest.NewRequest("GET", "/secrets/"+ids[i%len(ids)], nil)
			router.ServeHTTP(httptest.NewRecorder(), r)
		}
	})

	b.Run("GET /secrets", func(b *testing.B) {
		router, _ := newRouter(b, 1000)

		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			r := httptest.NewRequest("GET", "/secrets", nil)
			router.ServeHTTP(httptest.NewRecorder(), r)
		}
	})

	b.Run("POST /secrets", func(b *testing.B) {
		router, _ := newRouter(b, 0)
		body := []byte(`{"name":"bench","value":"v","source":"OTHER"}`)

		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			r := httptest.NewRequest("POST", "/secrets", bytes.NewReader(body))
			router.ServeHTTP(httptest.NewRecorder(), r)
		}
	})
}

func BenchmarkSecretsHandlerParallel(b *testing.B) {
	router, ids := newRouter(b, 1000)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			r := httptest.NewRequest("GET", "/secrets/"+ids[i%len(ids)], nil)
			router.ServeHTTP(httptest.NewRecorder(), r)
			i++
		}
	})
}
