package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager         TransactionManager
	CompanyRepo       CompanyRepository
	CurrencyRepo      CurrencyRepositoryFacade
	ExchangeRateRepo  ExchangeRateRepositoryFacade
	PolicyRepo        CurrencyPolicyRepository
	MasterRecordRepo  MasterRecordRepositoryFacade
	CategoryRepo      ExpenseCategoryRepositoryFacade
	LocationGroupRepo LocationGroupRepositoryFacade
	SequenceRepo      CodeSequenceRepository
}
