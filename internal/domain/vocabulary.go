package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// VocabularyEntry is a word saved by one user together with its definition.
// ID, CreatedAt and OwnerID are assigned by the persistence gateway and never change.
type VocabularyEntry struct {
	ID           int64
	Word         string
	Definition   string
	PartOfSpeech *string
	Example      *string
	Note         *string
	CreatedAt    time.Time
	OwnerID      uuid.UUID
}

// Draft is the client-supplied part of a VocabularyEntry.
type Draft struct {
	Word         string
	Definition   string
	PartOfSpeech *string
	Example      *string
	Note         *string
}

// Validate checks required fields. It performs no I/O.
func (d Draft) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(d.Word) == "" {
		errs = append(errs, FieldError{Field: "word", Message: "required"})
	}
	if strings.TrimSpace(d.Definition) == "" {
		errs = append(errs, FieldError{Field: "definition", Message: "required"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// SortCriteria selects the ordering of a vocabulary view.
type SortCriteria string

const (
	// SortByDate orders by CreatedAt, most recent first.
	SortByDate SortCriteria = "date"
	// SortByWord orders by locale-aware comparison of Word, ascending.
	SortByWord SortCriteria = "word"
)

// IsValid reports whether s is a known criteria.
func (s SortCriteria) IsValid() bool {
	return s == SortByDate || s == SortByWord
}

func (s SortCriteria) String() string { return string(s) }

// ParseSortCriteria parses a user-supplied sort name.
func ParseSortCriteria(raw string) (SortCriteria, error) {
	s := SortCriteria(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", NewValidationError("sort", "must be one of: date, word")
	}
	return s, nil
}

// OptionalString returns nil for an empty (after trimming) string.
func OptionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// ValueOrEmpty dereferences s, returning "" for nil.
func ValueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
