package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/ledback/ledback_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		LedgerRepo: newPgxLedgerRepository(dbPool),
		EntryRepo:  newPgxEntryRepository(dbPool),
		SyncRepo:   newPgxSyncRepository(dbPool),
	}
}
