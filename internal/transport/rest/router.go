package rest

import (
	"net/http"

	"github.com/heartmarshall/vocabook/internal/transport/middleware"
)

// Routes bundles everything the gateway mux serves.
type Routes struct {
	Vocabulary *VocabularyHandler
	Definition *DefinitionHandler
	Health     *HealthHandler
	Metrics    http.Handler

	// Protect wraps every owner-scoped route (authentication, rate limiting).
	Protect middleware.Middleware
}

// NewRouter registers all routes on a fresh ServeMux. Cross-cutting
// middleware (recovery, request id, logging, metrics, CORS) is applied by
// the caller around the returned mux.
func NewRouter(rt Routes) *http.ServeMux {
	protect := rt.Protect
	if protect == nil {
		protect = middleware.Chain()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health/live", rt.Health.Live)
	mux.HandleFunc("GET /health/ready", rt.Health.Ready)
	mux.HandleFunc("GET /health", rt.Health.Health)
	if rt.Metrics != nil {
		mux.Handle("GET /metrics", rt.Metrics)
	}

	mux.Handle("GET /vocabulary", protect(http.HandlerFunc(rt.Vocabulary.List)))
	mux.Handle("POST /vocabulary", protect(http.HandlerFunc(rt.Vocabulary.Create)))
	mux.Handle("DELETE /vocabulary", protect(http.HandlerFunc(rt.Vocabulary.Delete)))
	mux.Handle("GET /definitions/{word}", protect(http.HandlerFunc(rt.Definition.Get)))

	return mux
}
