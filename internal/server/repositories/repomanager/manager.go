package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/myjar/internal/dbx"
	"github.com/dmitrijs2005/myjar/internal/server/repositories/attributes"
	"github.com/dmitrijs2005/myjar/internal/server/repositories/clients"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Clients(db dbx.DBTX) clients.Repository
	Attributes(db dbx.DBTX) attributes.Repository
}
