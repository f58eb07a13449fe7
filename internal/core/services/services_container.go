package services

import (
	portsrepo "github.com/SscSPs/class_fund_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/class_fund_app/internal/core/ports/services"
	"github.com/SscSPs/class_fund_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The ledger is returned unloaded; the application root decides when to call Initialize.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, ledgerOptions ...LedgerOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Ledger = NewBoxLedgerService(repos.BoxRepo, ledgerOptions...)
	container.Selection = NewSelectionService(container.Ledger, cfg.CurrencyCode)

	return container
}
