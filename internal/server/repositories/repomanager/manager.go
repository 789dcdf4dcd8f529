package repomanager

import (
	"context"
	"database/sql"

	"github.com/taskify-app/taskify/internal/dbx"
	"github.com/taskify-app/taskify/internal/server/repositories/tasks"
	"github.com/taskify-app/taskify/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX (*sql.DB or *sql.Tx)
// and exposes a schema migration hook. Services hold one manager and request
// repositories per call, so the same code path works inside and outside
// transactions.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
