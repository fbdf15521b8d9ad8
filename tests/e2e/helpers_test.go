//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/waitlist-backend/internal/adapter/notify"
	"github.com/heartmarshall/waitlist-backend/internal/adapter/postgres"
	"github.com/heartmarshall/waitlist-backend/internal/adapter/postgres/testhelper"
	pgwaitlist "github.com/heartmarshall/waitlist-backend/internal/adapter/postgres/waitlist"
	"github.com/heartmarshall/waitlist-backend/internal/config"
	"github.com/heartmarshall/waitlist-backend/internal/service/waitlist"
	"github.com/heartmarshall/waitlist-backend/internal/transport/middleware"
	"github.com/heartmarshall/waitlist-backend/internal/transport/rest"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// newTestServer assembles the whole application against a fresh database:
// real repositories, real transactions, log-based notification, the REST
// router, and the production middleware chain.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := waitlist.NewService(
		logger,
		pgwaitlist.New(pool),
		postgres.NewTxManager(pool),
		notify.NewLogNotifier(logger),
		config.WaitlistConfig{AdvanceDelta: 2, TopSize: 50, CodeLength: 8, CodeMaxAttempts: 5},
	)

	mux := rest.NewRouter(
		rest.NewWaitlistHandler(svc, logger),
		rest.NewHealthHandler(pool, "e2e"),
	)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,OPTIONS", AllowedHeaders: "Content-Type"}),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client(), Pool: pool}
}

// postJSON POSTs a JSON body and decodes the JSON response.
func (s *testServer) postJSON(t *testing.T, path string, body any) (int, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := s.Client.Post(s.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// getJSON GETs a path and decodes the JSON response into out.
func (s *testServer) getJSON(t *testing.T, path string, out any) int {
	t.Helper()

	resp, err := s.Client.Get(s.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

// signup signs an email up and returns the decoded response.
func (s *testServer) signup(t *testing.T, email, referral string) map[string]any {
	t.Helper()

	status, resp := s.postJSON(t, "/api/signup", map[string]string{
		"email":    email,
		"referral": referral,
	})
	require.Equal(t, http.StatusOK, status, "signup %s: %v", email, resp)
	return resp
}
