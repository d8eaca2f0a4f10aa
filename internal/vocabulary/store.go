// Package vocabulary holds the client-side projection of one owner's
// vocabulary: an in-memory store kept in step with the persistence gateway,
// pure filter/sort views over it and the plain-text export format.
package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/text/language"

	"github.com/heartmarshall/vocabook/internal/domain"
)

type gateway interface {
	List(ctx context.Context) ([]domain.VocabularyEntry, error)
	Create(ctx context.Context, d domain.Draft) (domain.VocabularyEntry, error)
	Delete(ctx context.Context, id int64) error
}

// Store is the authoritative in-memory copy of the caller's entries.
// Mutations are applied only after the gateway confirms them.
type Store struct {
	gw     gateway
	locale language.Tag
	log    *slog.Logger

	// commitMu orders mutations with their notifications.
	commitMu sync.Mutex
	mu       sync.RWMutex
	entries  []domain.VocabularyEntry

	inflightMu sync.Mutex
	inflight   map[string]struct{}

	subsMu  sync.Mutex
	subs    map[int]func([]domain.VocabularyEntry)
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithLocale sets the collation used by SortByWord.
func WithLocale(tag language.Tag) Option {
	return func(s *Store) { s.locale = tag }
}

// NewStore creates an empty store backed by gw. Call Load to hydrate it.
func NewStore(gw gateway, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		gw:       gw,
		locale:   language.English,
		log:      logger.With("store", "vocabulary"),
		inflight: make(map[string]struct{}),
		subs:     make(map[int]func([]domain.VocabularyEntry)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the collection with the gateway's current list. On failure
// the collection is left untouched.
func (s *Store) Load(ctx context.Context) ([]domain.VocabularyEntry, error) {
	entries, err := s.gw.List(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "load failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("load vocabulary: %w", classify(err, domain.ErrFetch))
	}

	loaded := s.commit(func([]domain.VocabularyEntry) []domain.VocabularyEntry {
		return slices.Clone(entries)
	})

	s.log.DebugContext(ctx, "vocabulary loaded", slog.Int("count", len(loaded)))
	return loaded, nil
}

// Add validates d, submits it and appends the stored entry. A second Add
// for the same word while the first is still in flight fails with
// domain.ErrInFlight.
func (s *Store) Add(ctx context.Context, d domain.Draft) (domain.VocabularyEntry, error) {
	if err := d.Validate(); err != nil {
		return domain.VocabularyEntry{}, err
	}

	key := domain.WordKey(d.Word)
	if !s.acquire(key) {
		return domain.VocabularyEntry{}, fmt.Errorf("add %q: %w", d.Word, domain.ErrInFlight)
	}
	defer s.release(key)

	entry, err := s.gw.Create(ctx, d)
	if err != nil {
		s.log.WarnContext(ctx, "add failed", slog.String("word", d.Word), slog.String("error", err.Error()))
		return domain.VocabularyEntry{}, fmt.Errorf("add %q: %w", d.Word, classify(err, domain.ErrPersist))
	}

	s.commit(func(cur []domain.VocabularyEntry) []domain.VocabularyEntry {
		return append(cur, entry)
	})

	s.log.InfoContext(ctx, "entry added", slog.Int64("entry_id", entry.ID), slog.String("word", entry.Word))
	return entry, nil
}

// Remove deletes entry id through the gateway and then drops it locally.
func (s *Store) Remove(ctx context.Context, id int64) error {
	if err := s.gw.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "remove failed", slog.Int64("entry_id", id), slog.String("error", err.Error()))
		return fmt.Errorf("remove %d: %w", id, classify(err, domain.ErrPersist))
	}

	s.commit(func(cur []domain.VocabularyEntry) []domain.VocabularyEntry {
		return slices.DeleteFunc(cur, func(e domain.VocabularyEntry) bool { return e.ID == id })
	})

	s.log.InfoContext(ctx, "entry removed", slog.Int64("entry_id", id))
	return nil
}

// View returns a fresh filtered and sorted copy of the collection.
func (s *Store) View(filter string, sort domain.SortCriteria) []domain.VocabularyEntry {
	return View(s.Entries(), filter, sort, s.locale)
}

// Entries returns a snapshot in insertion order.
func (s *Store) Entries() []domain.VocabularyEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Subscribe registers fn to receive a snapshot after every successful
// Load, Add and Remove, in the order the mutations were applied. fn runs
// on the mutating goroutine and must not call Load, Add, Remove or
// Subscribe.
func (s *Store) Subscribe(fn func([]domain.VocabularyEntry)) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
		})
	}
}

// commit applies mutate and delivers the resulting state to subscribers
// before the next commit may start. It returns a copy of that state.
func (s *Store) commit(mutate func([]domain.VocabularyEntry) []domain.VocabularyEntry) []domain.VocabularyEntry {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.mu.Lock()
	s.entries = mutate(s.entries)
	snapshot := slices.Clone(s.entries)
	s.mu.Unlock()

	s.notify(snapshot)
	return snapshot
}

func (s *Store) notify(snapshot []domain.VocabularyEntry) {
	s.subsMu.Lock()
	fns := make([]func([]domain.VocabularyEntry), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(slices.Clone(snapshot))
	}
}

func (s *Store) acquire(key string) bool {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *Store) release(key string) {
	s.inflightMu.Lock()
	delete(s.inflight, key)
	s.inflightMu.Unlock()
}

// classify keeps errors that already carry a known sentinel and wraps the
// rest in fallback.
func classify(err, fallback error) error {
	for _, known := range []error{
		domain.ErrValidation,
		domain.ErrUnauthorized,
		domain.ErrForbidden,
		domain.ErrNotFound,
		domain.ErrConflict,
		fallback,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", fallback, err)
}
