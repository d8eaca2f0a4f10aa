//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vocabook/internal/adapter/gateway"
	"github.com/heartmarshall/vocabook/internal/adapter/postgres/testhelper"
	vocabrepo "github.com/heartmarshall/vocabook/internal/adapter/postgres/vocabulary"
	"github.com/heartmarshall/vocabook/internal/adapter/provider/merriam"
	"github.com/heartmarshall/vocabook/internal/app"
	authpkg "github.com/heartmarshall/vocabook/internal/auth"
	"github.com/heartmarshall/vocabook/internal/config"
	"github.com/heartmarshall/vocabook/internal/metrics"
	vocabsvc "github.com/heartmarshall/vocabook/internal/service/vocabulary"
	"github.com/heartmarshall/vocabook/internal/transport/middleware"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
	logger *slog.Logger
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// dictionaryResponse is what the fake dictionary API serves for "apple".
const dictionaryResponse = `[{
	"fl": "noun",
	"shortdef": ["the fleshy fruit of a rosaceous tree", "an apple tree"],
	"def": [{"sseq": [[["sense", {"dt": [["text", "{bc}the fruit"], ["vis", [{"t": "an {it}apple{/it} a day"}]]]}]]]}]
}]`

// setupTestServer bootstraps the gateway stack backed by a real PostgreSQL
// container (shared via testhelper) and a fake dictionary API.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	dict := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/apple" {
			_, _ = w.Write([]byte(dictionaryResponse))
			return
		}
		_, _ = w.Write([]byte(`["applesauce", "appeal"]`))
	}))
	t.Cleanup(dict.Close)

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)
	m := metrics.New()

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	cfg := &config.Config{
		CORS: config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		},
		RateLimit: config.RateLimitConfig{RequestsPerMinute: 10000, CleanupInterval: time.Minute},
	}

	handler := app.NewHandler(cfg, logger, app.ServerDeps{
		DB:         pool,
		Vocabulary: vocabsvc.NewService(logger, vocabrepo.New(pool), m),
		Resolver: merriam.NewResolver("test-key", logger,
			merriam.WithBaseURL(dict.URL),
			merriam.WithTimeout(5*time.Second),
			merriam.WithRetryDelay(0),
			merriam.WithMetrics(m),
		),
		Tokens:  jwtMgr,
		Metrics: m,
		Limiter: limiter,
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    jwtMgr,
		logger: logger,
	}
}

// newOwner returns a fresh owner ID and a valid access token for it.
func newOwner(t *testing.T, ts *testServer) (string, uuid.UUID) {
	t.Helper()

	ownerID := uuid.New()
	tok, err := ts.jwt.GenerateAccessToken(ownerID)
	require.NoError(t, err)
	return tok, ownerID
}

// gatewayFor returns a gateway client authenticated as the token's owner.
func gatewayFor(ts *testServer, token string) *gateway.Client {
	return gateway.NewClient(ts.URL, token, ts.logger, gateway.WithTimeout(10*time.Second))
}

// doJSON sends a JSON request and returns status + decoded body.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result any
	if resp.ContentLength != 0 {
		_ = json.NewDecoder(resp.Body).Decode(&result)
	}
	return resp.StatusCode, result
}
