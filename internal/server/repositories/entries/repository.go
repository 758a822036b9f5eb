package entries

import (
	"context"

	"github.com/asorokin/decat/internal/server/models"
)

// ListQuery describes one page of a filtered, ordered entry listing.
// Pattern is a SQL ILIKE pattern matched against all four text columns;
// an empty Pattern disables filtering. The pattern is applied verbatim, so
// ILIKE metacharacters in user input are not escaped.
type ListQuery struct {
	Pattern   string
	Ascending bool
	Offset    int
	Limit     int
}

type Repository interface {
	// List returns one page of the user's entries together with the total
	// number of entries matching the filter.
	List(ctx context.Context, userID string, q ListQuery) ([]models.Entry, int64, error)

	// SelectAll returns every entry belonging to the user, newest first.
	SelectAll(ctx context.Context, userID string) ([]models.Entry, error)

	// Insert stores a new entry and returns it with the server-assigned
	// id and creation timestamp filled in.
	Insert(ctx context.Context, entry *models.Entry) (*models.Entry, error)

	// Update replaces the four text fields of the user's entry and returns
	// the updated row. Returns common.ErrorNotFound when no row matches.
	Update(ctx context.Context, entry *models.Entry) (*models.Entry, error)

	// Delete removes the user's entry by id. Returns common.ErrorNotFound
	// when no row matches.
	Delete(ctx context.Context, userID string, id int64) error
}
