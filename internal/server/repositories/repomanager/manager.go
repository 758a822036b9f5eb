package repomanager

import (
	"context"
	"database/sql"

	"github.com/asorokin/decat/internal/dbx"
	"github.com/asorokin/decat/internal/server/repositories/entries"
	"github.com/asorokin/decat/internal/server/repositories/logintokens"
	"github.com/asorokin/decat/internal/server/repositories/refreshtokens"
	"github.com/asorokin/decat/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so a
// service can run several repositories inside one transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	LoginTokens(db dbx.DBTX) logintokens.Repository
	Entries(db dbx.DBTX) entries.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
