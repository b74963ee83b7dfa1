package services

import (
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
	"github.com/SscSPs/vetpos_backend/internal/platform/config"
)

// Dependencies are the infrastructure collaborators the services use.
type Dependencies struct {
	Locker    portssvc.BranchLocker
	Publisher portssvc.DeliveryPublisher
	Phones    portssvc.PhoneNormalizer
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deps Dependencies) *portssvc.ServiceContainer {
	retry := DefaultRetryPolicy
	if cfg != nil {
		retry = RetryPolicy{MaxRetries: cfg.ConflictMaxRetries, Backoff: cfg.ConflictRetryBackoff}
	}
	base := BaseService{
		TxManager: repos.TxManager,
		Locker:    deps.Locker,
		Retry:     retry,
	}

	container := &portssvc.ServiceContainer{}
	container.Stock = NewStockService(base, repos.StockRepo, repos.ProductRepo)
	container.Sale = NewSaleService(base, repos.SaleRepo, repos.CashSessionRepo, repos.ProductRepo,
		WithDeliveryPublisher(deps.Publisher),
		WithPhoneNormalizer(deps.Phones),
	)
	container.CashSession = NewCashSessionService(base, repos.CashSessionRepo, repos.SaleRepo)
	container.Activity = NewActivityService(repos.ActivityRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.StockSvcFacade       = (*stockService)(nil)
	_ portssvc.SaleSvcFacade        = (*saleService)(nil)
	_ portssvc.CashSessionSvcFacade = (*cashSessionService)(nil)
)
