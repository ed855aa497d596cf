package services

import (
	portsrepo "github.com/SscSPs/expense_admin_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_admin_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// rateCache may be nil, in which case rates are always read from the database.
func NewServiceContainer(repos portsrepo.RepositoryProvider, rateCache portssvc.RateCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(
		repos.TxManager,
		repos.CompanyRepo,
		repos.CurrencyRepo,
		repos.ExchangeRateRepo,
		rateCache,
	)
	container.ExchangeRate = NewExchangeRateService(
		repos.TxManager,
		repos.CurrencyRepo,
		repos.ExchangeRateRepo,
		rateCache,
	)
	container.CurrencyPolicy = NewCurrencyPolicyService(repos.PolicyRepo, repos.CurrencyRepo)

	// Conversion reads rates through the exchange rate service so it shares the cache.
	container.Conversion = NewConversionService(repos.CurrencyRepo, container.ExchangeRate, container.CurrencyPolicy)

	container.MasterData = NewMasterDataService(repos.MasterRecordRepo)
	container.Company = NewCompanyService(repos.CompanyRepo)
	container.ExpenseCategory = NewExpenseCategoryService(
		repos.TxManager,
		repos.CategoryRepo,
		repos.CurrencyRepo,
		repos.MasterRecordRepo,
	)
	container.LocationGroup = NewLocationGroupService(repos.TxManager, repos.LocationGroupRepo, repos.SequenceRepo)

	return container
}
