// Package logintokens provides a PostgreSQL-backed repository for single-use
// passwordless login tokens.
package logintokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/asorokin/decat/internal/common"
	"github.com/asorokin/decat/internal/dbx"
	"github.com/asorokin/decat/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, id, userID string, secretHash []byte, validity time.Duration) error {
	query := `
		INSERT INTO login_tokens (id, user_id, secret_hash, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, id, userID, secretHash, time.Now().Add(validity)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, id string) (*models.LoginToken, error) {
	query := `
		SELECT id, user_id, secret_hash, expires_at, consumed
		FROM login_tokens
		WHERE id = $1
	`
	token := &models.LoginToken{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&token.ID, &token.UserID, &token.SecretHash, &token.Expires, &token.Consumed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return token, nil
}

// Consume flips the consumed flag exactly once.
func (r *PostgresRepository) Consume(ctx context.Context, id string) error {
	query := `UPDATE login_tokens SET consumed = true WHERE id = $1 AND consumed = false`
	res, err := r.db.ExecContext(ctx, query, id)
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
