// Package gateway is the client side of the persistence gateway contract.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/heartmarshall/vocabook/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Client talks to the persistence gateway on behalf of one bearer token.
// The gateway derives the owner from the token; the client never sends it.
type Client struct {
	http *resty.Client
	log  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// WithUserAgent sets the User-Agent header of every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.http.SetHeader("User-Agent", ua)
		}
	}
}

// NewClient creates a gateway client for baseURL authenticating with token.
func NewClient(baseURL, token string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(defaultTimeout).
			SetHeader("Accept", "application/json"),
		log: logger.With("adapter", "gateway"),
	}
	if token != "" {
		c.http.SetAuthToken(token)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type entryDTO struct {
	ID           int64     `json:"id"`
	Word         string    `json:"word"`
	Definition   string    `json:"definition"`
	PartOfSpeech *string   `json:"partOfSpeech,omitempty"`
	Example      *string   `json:"example,omitempty"`
	Note         *string   `json:"note,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	OwnerID      uuid.UUID `json:"ownerId"`
}

type createRequest struct {
	Word         string  `json:"word"`
	Definition   string  `json:"definition"`
	PartOfSpeech *string `json:"partOfSpeech,omitempty"`
	Example      *string `json:"example,omitempty"`
	Note         *string `json:"note,omitempty"`
}

type deleteRequest struct {
	ID int64 `json:"id"`
}

type errorBody struct {
	Error string `json:"error"`
}

// List fetches every entry of the token's owner.
func (c *Client) List(ctx context.Context) ([]domain.VocabularyEntry, error) {
	var dtos []entryDTO
	var eb errorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&dtos).
		SetError(&eb).
		Get("/vocabulary")
	if err != nil {
		c.log.WarnContext(ctx, "list request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", domain.ErrFetch, err)
	}
	if err := statusError(resp, eb, domain.ErrFetch); err != nil {
		return nil, fmt.Errorf("list vocabulary: %w", err)
	}

	entries := make([]domain.VocabularyEntry, 0, len(dtos))
	for _, d := range dtos {
		entries = append(entries, d.toDomain())
	}
	return entries, nil
}

// Create submits a draft and returns the entry as stored by the gateway.
func (c *Client) Create(ctx context.Context, d domain.Draft) (domain.VocabularyEntry, error) {
	var dto entryDTO
	var eb errorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(createRequest{
			Word:         d.Word,
			Definition:   d.Definition,
			PartOfSpeech: d.PartOfSpeech,
			Example:      d.Example,
			Note:         d.Note,
		}).
		SetResult(&dto).
		SetError(&eb).
		Post("/vocabulary")
	if err != nil {
		c.log.WarnContext(ctx, "create request failed", slog.String("word", d.Word), slog.String("error", err.Error()))
		return domain.VocabularyEntry{}, fmt.Errorf("%w: %w", domain.ErrPersist, err)
	}
	if err := statusError(resp, eb, domain.ErrPersist); err != nil {
		return domain.VocabularyEntry{}, fmt.Errorf("create vocabulary entry: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK {
		return domain.VocabularyEntry{}, fmt.Errorf("create vocabulary entry: %w: unexpected status %d", domain.ErrPersist, resp.StatusCode())
	}

	return dto.toDomain(), nil
}

// Delete removes entry id. A missing entry and another owner's entry are
// both reported as domain.ErrNotFound.
func (c *Client) Delete(ctx context.Context, id int64) error {
	var eb errorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(deleteRequest{ID: id}).
		SetError(&eb).
		Delete("/vocabulary")
	if err != nil {
		c.log.WarnContext(ctx, "delete request failed", slog.Int64("entry_id", id), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", domain.ErrPersist, err)
	}
	if err := statusError(resp, eb, domain.ErrPersist); err != nil {
		return fmt.Errorf("delete vocabulary entry %d: %w", id, err)
	}
	return nil
}

// statusError maps a non-2xx response to a domain sentinel. Statuses without
// a dedicated sentinel wrap fallback.
func statusError(resp *resty.Response, eb errorBody, fallback error) error {
	if resp.IsSuccess() {
		return nil
	}

	msg := eb.Error
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}

	var sentinel error
	switch resp.StatusCode() {
	case http.StatusBadRequest:
		sentinel = domain.ErrValidation
	case http.StatusUnauthorized:
		sentinel = domain.ErrUnauthorized
	case http.StatusForbidden:
		sentinel = domain.ErrForbidden
	case http.StatusNotFound:
		sentinel = domain.ErrNotFound
	case http.StatusConflict:
		sentinel = domain.ErrConflict
	default:
		sentinel = fallback
	}
	return fmt.Errorf("%w: status %d: %s", sentinel, resp.StatusCode(), msg)
}

func (d entryDTO) toDomain() domain.VocabularyEntry {
	return domain.VocabularyEntry{
		ID:           d.ID,
		Word:         d.Word,
		Definition:   d.Definition,
		PartOfSpeech: d.PartOfSpeech,
		Example:      d.Example,
		Note:         d.Note,
		CreatedAt:    d.CreatedAt,
		OwnerID:      d.OwnerID,
	}
}
