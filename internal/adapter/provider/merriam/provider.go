package merriam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"

	"github.com/heartmarshall/vocabook/internal/metrics"
	"github.com/heartmarshall/vocabook/internal/provider"
)

const (
	defaultBaseURL    = "https://www.dictionaryapi.com/api/v3/references/collegiate/json"
	defaultTimeout    = 10 * time.Second
	defaultRetryDelay = 500 * time.Millisecond
	maxBodyBytes      = 1 << 20
)

var (
	errEmptyWord    = errors.New("empty word")
	errNoEntries    = errors.New("no entries")
	errNoDefinition = errors.New("first entry has no short definitions")
)

type lookupRecorder interface {
	ObserveLookup(outcome string, d time.Duration)
}

// Resolver turns a word into a canonical definition using the Merriam-Webster
// collegiate dictionary API. Resolve never fails; see provider.Fallback.
type Resolver struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	retryDelay time.Duration
	log        *slog.Logger
	metrics    lookupRecorder
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(u string) Option {
	return func(r *Resolver) { r.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout bounds a single Resolve call, retries included.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithRetryDelay sets the pause before the single retry.
func WithRetryDelay(d time.Duration) Option {
	return func(r *Resolver) { r.retryDelay = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) { r.httpClient = c }
}

// WithMetrics records every lookup outcome.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		if m != nil {
			r.metrics = m
		}
	}
}

// NewResolver creates a Resolver with the given API key.
func NewResolver(apiKey string, logger *slog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		retryDelay: defaultRetryDelay,
		log:        logger.With("adapter", "merriam"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve looks up word and returns its canonical definition. Any failure
// (network, timeout, bad status, unexpected payload) is logged and counted,
// and the fallback result is returned instead.
func (r *Resolver) Resolve(ctx context.Context, word string) provider.DefinitionResult {
	start := time.Now()

	result, err := r.lookup(ctx, word)

	outcome := metrics.OutcomeFound
	switch {
	case errors.Is(err, errEmptyWord), errors.Is(err, errNoEntries), errors.Is(err, errNoDefinition):
		outcome = metrics.OutcomeNotFound
	case err != nil:
		outcome = metrics.OutcomeError
	}
	if r.metrics != nil {
		r.metrics.ObserveLookup(outcome, time.Since(start))
	}

	if err != nil {
		r.log.WarnContext(ctx, "definition lookup failed, using fallback",
			slog.String("word", word),
			slog.String("outcome", outcome),
			slog.String("error", err.Error()),
		)
		return provider.Fallback()
	}

	r.log.DebugContext(ctx, "definition resolved",
		slog.String("word", word),
		slog.Bool("has_example", result.Example != nil),
	)
	return result
}

func (r *Resolver) lookup(ctx context.Context, word string) (provider.DefinitionResult, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return provider.DefinitionResult{}, errEmptyWord
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	reqURL := r.baseURL + "/" + url.PathEscape(word) + "?key=" + url.QueryEscape(r.apiKey)

	body, err := r.fetch(ctx, reqURL, word)
	if err != nil {
		return provider.DefinitionResult{}, err
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(body, &entries); err != nil {
		return provider.DefinitionResult{}, fmt.Errorf("merriam: decode json: %w", err)
	}
	if len(entries) == 0 {
		return provider.DefinitionResult{}, errNoEntries
	}

	result, ok := mapEntry(entries[0])
	if !ok {
		return provider.DefinitionResult{}, errNoDefinition
	}
	return result, nil
}

// fetch performs the GET with a single retry on network errors and 5xx.
func (r *Resolver) fetch(ctx context.Context, reqURL, word string) ([]byte, error) {
	var body []byte

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("merriam: create request: %w", err))
			}
			req.Header.Set("Accept", "application/json")

			resp, err := r.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("merriam: request failed: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("merriam: unexpected status %d", resp.StatusCode)
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return retry.Unrecoverable(fmt.Errorf("merriam: unexpected status %d", resp.StatusCode))
			}

			b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			if err != nil {
				return fmt.Errorf("merriam: read body: %w", err)
			}
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(r.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			r.log.WarnContext(ctx, "merriam retry",
				slog.String("word", word),
				slog.String("reason", err.Error()),
			)
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}
