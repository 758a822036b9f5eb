// Package entries provides the PostgreSQL-backed repository for diary
// entry persistence and the paged search/sort listing query.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/asorokin/decat/internal/common"
	"github.com/asorokin/decat/internal/dbx"
	"github.com/asorokin/decat/internal/server/models"
)

// PostgresRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const entryColumns = `id, created_at, created_by, worst_case, worst_consequences, what_can_i_do, how_will_i_cope`

// searchClause matches any of the four text columns against one ILIKE pattern.
const searchClause = `(worst_case ILIKE $2 OR worst_consequences ILIKE $2 OR what_can_i_do ILIKE $2 OR how_will_i_cope ILIKE $2)`

// List returns one page of entries plus the exact total count for the same
// filter. The count is taken in a separate statement, matching the
// select-with-count shape the client expects. Ordering is by creation
// timestamp with id as a tiebreak for entries created in the same instant.
func (r *PostgresRepository) List(ctx context.Context, userID string, q ListQuery) ([]models.Entry, int64, error) {

	where := `WHERE created_by = $1`
	args := []any{userID}
	if q.Pattern != "" {
		where += ` AND ` + searchClause
		args = append(args, q.Pattern)
	}

	var total int64
	countQuery := `SELECT count(*) FROM catostrafization_entries ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count entries: %w", err)
	}

	dir := "DESC"
	if q.Ascending {
		dir = "ASC"
	}
	pageQuery := fmt.Sprintf(`SELECT %s FROM catostrafization_entries %s ORDER BY created_at %s, id %s LIMIT $%d OFFSET $%d`,
		entryColumns, where, dir, dir, len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result, err := scanEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// SelectAll returns every entry for userID, newest first.
func (r *PostgresRepository) SelectAll(ctx context.Context, userID string) ([]models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM catostrafization_entries WHERE created_by = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Insert stores a new entry, returning it with id and created_at assigned by
// the database.
func (r *PostgresRepository) Insert(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	query := `
		INSERT INTO catostrafization_entries (created_by, worst_case, worst_consequences, what_can_i_do, how_will_i_cope)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		entry.CreatedBy, entry.WorstCase, entry.WorstConsequences, entry.WhatCanIDo, entry.HowWillICope).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

// Update replaces the four text fields of an entry owned by entry.CreatedBy.
// id, created_at and created_by are immutable.
func (r *PostgresRepository) Update(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	query := `
		UPDATE catostrafization_entries
		SET worst_case = $3, worst_consequences = $4, what_can_i_do = $5, how_will_i_cope = $6
		WHERE id = $1 AND created_by = $2
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.CreatedBy, entry.WorstCase, entry.WorstConsequences, entry.WhatCanIDo, entry.HowWillICope).
		Scan(&entry.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

// Delete removes an entry by id for a specific user.
func (r *PostgresRepository) Delete(ctx context.Context, userID string, id int64) error {
	query := `DELETE FROM catostrafization_entries WHERE id = $1 AND created_by = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]models.Entry, error) {
	var result []models.Entry
	for rows.Next() {
		var item models.Entry
		if err := rows.Scan(
			&item.ID, &item.CreatedAt, &item.CreatedBy,
			&item.WorstCase, &item.WorstConsequences, &item.WhatCanIDo, &item.HowWillICope,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
