// Package vocabulary implements owner-scoped vocabulary persistence on PostgreSQL.
package vocabulary

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/vocabook/internal/adapter/postgres"
	"github.com/heartmarshall/vocabook/internal/domain"
)

const (
	tableName = "vocabulary"
	entity    = "vocabulary"
)

var returnColumns = []string{
	"id", "word", "definition", "part_of_speech", "example", "note", "created_at", "user_id",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides vocabulary persistence. Every statement is scoped by owner.
type Repo struct {
	q postgres.Querier
}

// New creates a repository on top of a pool, transaction or mock.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// List returns all entries of owner in insertion order.
func (r *Repo) List(ctx context.Context, owner uuid.UUID) ([]domain.VocabularyEntry, error) {
	query, args, err := psql.
		Select(returnColumns...).
		From(tableName).
		Where(sq.Eq{"user_id": owner.String()}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, owner)
	}

	entries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, postgres.MapError(err, entity, owner)
	}

	return entries, nil
}

// Create inserts a draft for owner and returns the stored row with its
// server-assigned id and created_at.
func (r *Repo) Create(ctx context.Context, owner uuid.UUID, d domain.Draft) (domain.VocabularyEntry, error) {
	query, args, err := psql.
		Insert(tableName).
		Columns("user_id", "word", "definition", "part_of_speech", "example", "note").
		Values(owner.String(), d.Word, d.Definition, d.PartOfSpeech, d.Example, d.Note).
		Suffix("RETURNING " + strings.Join(returnColumns, ", ")).
		ToSql()
	if err != nil {
		return domain.VocabularyEntry{}, fmt.Errorf("build insert query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return domain.VocabularyEntry{}, postgres.MapError(err, entity, owner)
	}

	entry, err := pgx.CollectExactlyOneRow(rows, scanEntry)
	if err != nil {
		return domain.VocabularyEntry{}, postgres.MapError(err, entity, owner)
	}

	return entry, nil
}

// Delete removes entry id only if it belongs to owner. Both conditions are
// AND-ed in a single WHERE clause; a row of another owner is never touched.
// Returns domain.ErrNotFound when nothing matched.
func (r *Repo) Delete(ctx context.Context, owner uuid.UUID, id int64) error {
	query, args, err := psql.
		Delete(tableName).
		Where(sq.Eq{"id": id, "user_id": owner.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}

	return nil
}

func scanEntry(row pgx.CollectableRow) (domain.VocabularyEntry, error) {
	var e domain.VocabularyEntry
	err := row.Scan(
		&e.ID,
		&e.Word,
		&e.Definition,
		&e.PartOfSpeech,
		&e.Example,
		&e.Note,
		&e.CreatedAt,
		&e.OwnerID,
	)
	return e, err
}
