// Package vocabulary implements the owner-scoped vocabulary use cases served
// by the persistence gateway.
package vocabulary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/vocabook/internal/domain"
	"github.com/heartmarshall/vocabook/pkg/ctxutil"
)

const (
	maxWordLength       = 200
	maxDefinitionLength = 4000
	maxNoteLength       = 2000
)

type vocabularyRepo interface {
	List(ctx context.Context, owner uuid.UUID) ([]domain.VocabularyEntry, error)
	Create(ctx context.Context, owner uuid.UUID, d domain.Draft) (domain.VocabularyEntry, error)
	Delete(ctx context.Context, owner uuid.UUID, id int64) error
}

type mutationRecorder interface {
	ObserveMutation(op string, err error)
}

// Service provides vocabulary operations for the authenticated owner.
type Service struct {
	repo    vocabularyRepo
	metrics mutationRecorder
	log     *slog.Logger
}

// NewService creates a new vocabulary service. metrics may be nil.
func NewService(log *slog.Logger, repo vocabularyRepo, metrics mutationRecorder) *Service {
	return &Service{
		repo:    repo,
		metrics: metrics,
		log:     log.With("service", "vocabulary"),
	}
}

// List returns every entry of the caller in insertion order.
func (s *Service) List(ctx context.Context) ([]domain.VocabularyEntry, error) {
	owner, ok := ctxutil.OwnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	entries, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list vocabulary: %w", err)
	}

	return entries, nil
}

// Create stores a new entry for the caller.
func (s *Service) Create(ctx context.Context, d domain.Draft) (domain.VocabularyEntry, error) {
	owner, ok := ctxutil.OwnerIDFromCtx(ctx)
	if !ok {
		return domain.VocabularyEntry{}, domain.ErrUnauthorized
	}

	d = normalizeDraft(d)
	if err := validateDraft(d); err != nil {
		return domain.VocabularyEntry{}, err
	}

	entry, err := s.repo.Create(ctx, owner, d)
	s.observe("create", err)
	if err != nil {
		return domain.VocabularyEntry{}, fmt.Errorf("create vocabulary entry: %w", err)
	}

	s.log.InfoContext(ctx, "vocabulary entry created",
		slog.String("owner_id", owner.String()),
		slog.Int64("entry_id", entry.ID),
		slog.String("word", entry.Word),
	)

	return entry, nil
}

// Delete removes entry id if it belongs to the caller.
func (s *Service) Delete(ctx context.Context, id int64) error {
	owner, ok := ctxutil.OwnerIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if id <= 0 {
		return domain.NewValidationError("id", "must be positive")
	}

	err := s.repo.Delete(ctx, owner, id)
	s.observe("delete", err)
	if err != nil {
		return fmt.Errorf("delete vocabulary entry: %w", err)
	}

	s.log.InfoContext(ctx, "vocabulary entry deleted",
		slog.String("owner_id", owner.String()),
		slog.Int64("entry_id", id),
	)

	return nil
}

func (s *Service) observe(op string, err error) {
	if s.metrics != nil {
		s.metrics.ObserveMutation(op, err)
	}
}

// normalizeDraft trims surrounding whitespace; blank optionals become nil.
func normalizeDraft(d domain.Draft) domain.Draft {
	return domain.Draft{
		Word:         strings.TrimSpace(d.Word),
		Definition:   strings.TrimSpace(d.Definition),
		PartOfSpeech: trimOrNil(d.PartOfSpeech),
		Example:      trimOrNil(d.Example),
		Note:         trimOrNil(d.Note),
	}
}

func validateDraft(d domain.Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}

	var errs []domain.FieldError
	if utf8.RuneCountInString(d.Word) > maxWordLength {
		errs = append(errs, domain.FieldError{Field: "word", Message: fmt.Sprintf("max %d characters", maxWordLength)})
	}
	if utf8.RuneCountInString(d.Definition) > maxDefinitionLength {
		errs = append(errs, domain.FieldError{Field: "definition", Message: fmt.Sprintf("max %d characters", maxDefinitionLength)})
	}
	if d.Note != nil && utf8.RuneCountInString(*d.Note) > maxNoteLength {
		errs = append(errs, domain.FieldError{Field: "note", Message: fmt.Sprintf("max %d characters", maxNoteLength)})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
