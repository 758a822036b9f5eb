package logintokens

import (
	"context"
	"time"

	"github.com/asorokin/decat/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, id, userID string, secretHash []byte, validity time.Duration) error

	// Find returns the login token row by id, consumed or not.
	Find(ctx context.Context, id string) (*models.LoginToken, error)

	// Consume marks the token used. Returns common.ErrorNotFound when the
	// token does not exist or was already consumed.
	Consume(ctx context.Context, id string) error
}
