package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/vocabook/internal/config"
	"github.com/heartmarshall/vocabook/internal/domain"
	"github.com/heartmarshall/vocabook/internal/metrics"
	"github.com/heartmarshall/vocabook/internal/provider"
	"github.com/heartmarshall/vocabook/internal/transport/middleware"
	"github.com/heartmarshall/vocabook/internal/transport/rest"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

type vocabularyService interface {
	List(ctx context.Context) ([]domain.VocabularyEntry, error)
	Create(ctx context.Context, d domain.Draft) (domain.VocabularyEntry, error)
	Delete(ctx context.Context, id int64) error
}

type definitionResolver interface {
	Resolve(ctx context.Context, word string) provider.DefinitionResult
}

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// ServerDeps are the collaborators of the gateway HTTP stack.
type ServerDeps struct {
	DB         dbPinger
	Vocabulary vocabularyService
	Resolver   definitionResolver
	Tokens     tokenValidator
	Metrics    *metrics.Metrics
	Limiter    *middleware.RateLimiter
}

// NewHandler assembles the gateway's HTTP stack. Auth runs per route inside
// the mux, ahead of the rate limiter so that buckets are keyed by owner.
func NewHandler(cfg *config.Config, logger *slog.Logger, d ServerDeps) http.Handler {
	protect := middleware.Chain(
		middleware.Auth(d.Tokens),
		d.Limiter.Limit(cfg.RateLimit.RequestsPerMinute),
	)

	health := rest.NewHealthHandler(BuildVersion(),
		rest.HealthCheck{Name: "database", Probe: d.DB.Ping, Critical: true},
	)

	mux := rest.NewRouter(rest.Routes{
		Vocabulary: rest.NewVocabularyHandler(d.Vocabulary, logger),
		Definition: rest.NewDefinitionHandler(d.Resolver),
		Health:     health,
		Metrics:    d.Metrics.Handler(),
		Protect:    protect,
	})

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Metrics(d.Metrics),
		middleware.CORS(cfg.CORS),
	)(mux)
}
