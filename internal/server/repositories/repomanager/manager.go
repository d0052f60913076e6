package repomanager

import (
	"context"
	"database/sql"

	"github.com/mlevshin/authgate/internal/dbx"
	"github.com/mlevshin/authgate/internal/server/repositories/refreshtokens"
	"github.com/mlevshin/authgate/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so a service can use
// the same repository code inside and outside a transaction, and exposes a
// schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
