package pgsql

import (
	portsrepo "github.com/SscSPs/expense_admin_app/internal/core/ports/repositories"
)

// PgxTxManager hands out transactions over the shared pool.
type PgxTxManager struct {
	BaseRepository
}

var _ portsrepo.TransactionManager = (*PgxTxManager)(nil)

func NewRepositoryProvider(dbPool DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:         &PgxTxManager{BaseRepository: BaseRepository{Pool: dbPool}},
		CompanyRepo:       newPgxCompanyRepository(dbPool),
		CurrencyRepo:      newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo:  newPgxExchangeRateRepository(dbPool),
		PolicyRepo:        newPgxCurrencyPolicyRepository(dbPool),
		MasterRecordRepo:  newPgxMasterRecordRepository(dbPool),
		CategoryRepo:      newPgxExpenseCategoryRepository(dbPool),
		LocationGroupRepo: newPgxLocationGroupRepository(dbPool),
		SequenceRepo:      newPgxCodeSequenceRepository(dbPool),
	}
}
