package services

import (
	portsrepo "github.com/ledback/ledback_backend/internal/core/ports/repositories"
	portssvc "github.com/ledback/ledback_backend/internal/core/ports/services"
)

// NewServiceContainer wires the concrete services onto the repository
// provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		LedgerSvc: NewLedgerService(repos.LedgerRepo),
		EntrySvc:  NewEntryService(repos.EntryRepo, repos.LedgerRepo),
		SyncSvc:   NewSyncService(repos.SyncRepo),
	}
}
