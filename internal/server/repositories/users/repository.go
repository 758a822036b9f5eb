package users

import (
	"context"

	"github.com/asorokin/decat/internal/server/models"
)

type Repository interface {
	// FindOrCreateByEmail returns the user with the given email, creating
	// the row first when no such user exists.
	FindOrCreateByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns a user by id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
