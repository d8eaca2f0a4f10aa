package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vocabook/internal/adapter/gateway"
	"github.com/heartmarshall/vocabook/internal/auth"
	"github.com/heartmarshall/vocabook/internal/config"
	"github.com/heartmarshall/vocabook/internal/domain"
	"github.com/heartmarshall/vocabook/internal/metrics"
	"github.com/heartmarshall/vocabook/internal/provider"
	vocabsvc "github.com/heartmarshall/vocabook/internal/service/vocabulary"
	"github.com/heartmarshall/vocabook/internal/transport/middleware"
	"github.com/heartmarshall/vocabook/internal/vocabulary"
)

const testSecret = "test-secret-that-is-at-least-32-chars!!"

// memRepo is an owner-scoped in-memory stand-in for the Postgres repository.
type memRepo struct {
	mu      sync.Mutex
	nextID  int64
	entries []domain.VocabularyEntry
}

func (r *memRepo) List(_ context.Context, owner uuid.UUID) ([]domain.VocabularyEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.VocabularyEntry
	for _, e := range r.entries {
		if e.OwnerID == owner {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memRepo) Create(_ context.Context, owner uuid.UUID, d domain.Draft) (domain.VocabularyEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	e := domain.VocabularyEntry{
		ID: r.nextID, Word: d.Word, Definition: d.Definition,
		PartOfSpeech: d.PartOfSpeech, Example: d.Example, Note: d.Note,
		CreatedAt: time.Now().UTC(), OwnerID: owner,
	}
	r.entries = append(r.entries, e)
	return e, nil
}

func (r *memRepo) Delete(_ context.Context, owner uuid.UUID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.ID == id && e.OwnerID == owner {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type pingOK struct{}

func (pingOK) Ping(context.Context) error { return nil }

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, word string) provider.DefinitionResult {
	if word == "apple" {
		pos := "noun"
		return provider.DefinitionResult{Definition: "a fruit", PartOfSpeech: &pos}
	}
	return provider.Fallback()
}

type testStack struct {
	srv     *httptest.Server
	tokens  *auth.JWTManager
	metrics *metrics.Metrics
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	cfg := &config.Config{
		CORS:      config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,DELETE,OPTIONS", AllowedHeaders: "Authorization,Content-Type", MaxAge: 60},
		RateLimit: config.RateLimitConfig{RequestsPerMinute: 1000, CleanupInterval: time.Minute},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	tokens := auth.NewJWTManager(testSecret, "vocabook", time.Hour)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	t.Cleanup(limiter.Stop)

	h := NewHandler(cfg, logger, ServerDeps{
		DB:         pingOK{},
		Vocabulary: vocabsvc.NewService(logger, &memRepo{}, m),
		Resolver:   stubResolver{},
		Tokens:     tokens,
		Metrics:    m,
		Limiter:    limiter,
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &testStack{srv: srv, tokens: tokens, metrics: m}
}

func (s *testStack) client(t *testing.T, owner uuid.UUID) *gateway.Client {
	t.Helper()
	token, err := s.tokens.GenerateAccessToken(owner)
	require.NoError(t, err)
	return gateway.NewClient(s.srv.URL, token, slog.New(slog.NewTextHandler(io.Discard, nil)), gateway.WithTimeout(5*time.Second))
}

func TestServer_StoreRoundTrip(t *testing.T) {
	t.Parallel()

	stack := newTestStack(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	alice := vocabulary.NewStore(stack.client(t, uuid.New()), logger)
	bob := vocabulary.NewStore(stack.client(t, uuid.New()), logger)

	apple, err := alice.Add(ctx, domain.Draft{Word: "apple", Definition: "a fruit", Note: domain.OptionalString("red")})
	require.NoError(t, err)
	_, err = alice.Add(ctx, domain.Draft{Word: "banana", Definition: "another fruit"})
	require.NoError(t, err)

	_, err = bob.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, bob.Len(), "owners never see each other's entries")

	err = bob.Remove(ctx, apple.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "cross-owner delete is rejected")

	loaded, err := alice.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "apple", loaded[0].Word, "gateway lists in insertion order")
	require.NotNil(t, loaded[0].Note)
	assert.Equal(t, "red", *loaded[0].Note)

	require.NoError(t, alice.Remove(ctx, apple.ID))
	assert.Equal(t, 1, alice.Len())

	_, err = alice.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "banana", alice.Entries()[0].Word)
}

func TestServer_RejectsInvalidToken(t *testing.T) {
	t.Parallel()

	stack := newTestStack(t)
	client := gateway.NewClient(stack.srv.URL, "not-a-jwt", slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := client.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestServer_AnonymousIsUnauthorized(t *testing.T) {
	t.Parallel()

	stack := newTestStack(t)
	client := gateway.NewClient(stack.srv.URL, "", slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := client.Create(context.Background(), domain.Draft{Word: "a", Definition: "b"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestServer_HealthAndRequestID(t *testing.T) {
	t.Parallel()

	stack := newTestStack(t)

	resp, err := http.Get(stack.srv.URL + "/health/live")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}

func TestServer_DefinitionAndMetrics(t *testing.T) {
	t.Parallel()

	stack := newTestStack(t)
	token, err := stack.tokens.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, stack.srv.URL+"/definitions/apple", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"definition":"a fruit"`)

	mresp, err := http.Get(stack.srv.URL + "/metrics")
	require.NoError(t, err)
	mbody, _ := io.ReadAll(mresp.Body)
	mresp.Body.Close()

	assert.True(t, strings.Contains(string(mbody), `route="GET /definitions/{word}"`),
		"metrics should be labelled by route pattern")
}
