package services

// ServiceContainer bundles the services handed to the HTTP layer at startup.
type ServiceContainer struct {
	LedgerSvc LedgerSvcFacade
	EntrySvc  EntrySvcFacade
	SyncSvc   SyncSvcFacade
}
