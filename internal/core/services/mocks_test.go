package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Transactions ---

// FakeTxManager runs fn directly; tests assert on the repository calls made inside it.
type FakeTxManager struct {
	Calls int
}

func (m *FakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

// --- Company ---

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID int64) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company *domain.Company) error {
	return m.Called(ctx, company).Error(0)
}

func (m *MockCompanyRepository) LockCompany(ctx context.Context, companyID int64) error {
	return m.Called(ctx, companyID).Error(0)
}

// --- Currency ---

type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) currency(args mock.Arguments) (*domain.Currency, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindCurrencyByID(ctx context.Context, companyID, currencyID int64) (*domain.Currency, error) {
	return m.currency(m.Called(ctx, companyID, currencyID))
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, companyID int64, code string) (*domain.Currency, error) {
	return m.currency(m.Called(ctx, companyID, code))
}

func (m *MockCurrencyRepository) FindDeletedCurrencyByCode(ctx context.Context, companyID int64, code string) (*domain.Currency, error) {
	return m.currency(m.Called(ctx, companyID, code))
}

func (m *MockCurrencyRepository) FindBaseCurrency(ctx context.Context, companyID int64) (*domain.Currency, error) {
	return m.currency(m.Called(ctx, companyID))
}

func (m *MockCurrencyRepository) FindDefaultExpenseCurrency(ctx context.Context, companyID int64) (*domain.Currency, error) {
	return m.currency(m.Called(ctx, companyID))
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, companyID int64, filter domain.ListFilter) ([]domain.Currency, int, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Currency), args.Int(1), args.Error(2)
}

func (m *MockCurrencyRepository) CreateCurrency(ctx context.Context, currency *domain.Currency) error {
	return m.Called(ctx, currency).Error(0)
}

func (m *MockCurrencyRepository) RestoreCurrency(ctx context.Context, currency *domain.Currency) error {
	return m.Called(ctx, currency).Error(0)
}

func (m *MockCurrencyRepository) UpdateCurrency(ctx context.Context, currency *domain.Currency) error {
	return m.Called(ctx, currency).Error(0)
}

func (m *MockCurrencyRepository) SoftDeleteCurrency(ctx context.Context, companyID, currencyID, userID int64, now time.Time) error {
	return m.Called(ctx, companyID, currencyID, userID, now).Error(0)
}

func (m *MockCurrencyRepository) ClearBaseFlag(ctx context.Context, companyID, exceptID, userID int64, now time.Time) error {
	return m.Called(ctx, companyID, exceptID, userID, now).Error(0)
}

func (m *MockCurrencyRepository) ClearDefaultFlag(ctx context.Context, companyID, exceptID, userID int64, now time.Time) error {
	return m.Called(ctx, companyID, exceptID, userID, now).Error(0)
}

// --- Exchange rates ---

type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) rate(args mock.Arguments) (*domain.ExchangeRate, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) rates(args mock.Arguments) ([]domain.ExchangeRate, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindExchangeRateByID(ctx context.Context, companyID, rateID int64) (*domain.ExchangeRate, error) {
	return m.rate(m.Called(ctx, companyID, rateID))
}

func (m *MockExchangeRateRepository) FindOpenRateForUpdate(ctx context.Context, companyID, fromID, toID int64) (*domain.ExchangeRate, error) {
	return m.rate(m.Called(ctx, companyID, fromID, toID))
}

func (m *MockExchangeRateRepository) FindRateAt(ctx context.Context, companyID, fromID, toID int64, date time.Time) (*domain.ExchangeRate, error) {
	return m.rate(m.Called(ctx, companyID, fromID, toID, date))
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context, companyID int64, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, int, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Int(1), args.Error(2)
}

func (m *MockExchangeRateRepository) ListRatesForPair(ctx context.Context, companyID, fromID, toID int64) ([]domain.ExchangeRate, error) {
	return m.rates(m.Called(ctx, companyID, fromID, toID))
}

func (m *MockExchangeRateRepository) ListRecentRatesForCurrency(ctx context.Context, companyID, currencyID int64, limit int) ([]domain.ExchangeRate, error) {
	return m.rates(m.Called(ctx, companyID, currencyID, limit))
}

func (m *MockExchangeRateRepository) CountActiveRatesForCurrency(ctx context.Context, companyID, currencyID int64) (int, error) {
	args := m.Called(ctx, companyID, currencyID)
	return args.Int(0), args.Error(1)
}

func (m *MockExchangeRateRepository) CreateExchangeRate(ctx context.Context, rate *domain.ExchangeRate) error {
	return m.Called(ctx, rate).Error(0)
}

func (m *MockExchangeRateRepository) CloseExchangeRate(ctx context.Context, rateID int64, effectiveTo time.Time, userID int64, now time.Time) error {
	return m.Called(ctx, rateID, effectiveTo, userID, now).Error(0)
}

func (m *MockExchangeRateRepository) DeactivateExchangeRate(ctx context.Context, companyID, rateID, userID int64, now time.Time) error {
	return m.Called(ctx, companyID, rateID, userID, now).Error(0)
}

func (m *MockExchangeRateRepository) DeactivateRatesForCurrency(ctx context.Context, companyID, currencyID, userID int64, now time.Time) ([]domain.ExchangeRate, error) {
	return m.rates(m.Called(ctx, companyID, currencyID, userID, now))
}

func (m *MockExchangeRateRepository) InsertHistory(ctx context.Context, entry *domain.ExchangeRateHistory) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockExchangeRateRepository) ListHistoryForPair(ctx context.Context, companyID, fromID, toID int64) ([]domain.ExchangeRateHistory, error) {
	args := m.Called(ctx, companyID, fromID, toID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRateHistory), args.Error(1)
}

// --- Currency policy ---

type MockCurrencyPolicyRepository struct {
	mock.Mock
}

func (m *MockCurrencyPolicyRepository) FindPolicy(ctx context.Context, companyID int64) (*domain.CurrencyPolicy, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyPolicy), args.Error(1)
}

func (m *MockCurrencyPolicyRepository) UpsertPolicy(ctx context.Context, policy *domain.CurrencyPolicy) error {
	return m.Called(ctx, policy).Error(0)
}

// --- Master data ---

type MockMasterRecordRepository struct {
	mock.Mock
}

func (m *MockMasterRecordRepository) record(args mock.Arguments) (*domain.MasterRecord, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MasterRecord), args.Error(1)
}

func (m *MockMasterRecordRepository) FindMasterRecordByID(ctx context.Context, companyID int64, kind domain.MasterKind, id int64) (*domain.MasterRecord, error) {
	return m.record(m.Called(ctx, companyID, kind, id))
}

func (m *MockMasterRecordRepository) FindMasterRecordByCode(ctx context.Context, companyID int64, kind domain.MasterKind, code string) (*domain.MasterRecord, error) {
	return m.record(m.Called(ctx, companyID, kind, code))
}

func (m *MockMasterRecordRepository) ListMasterRecords(ctx context.Context, companyID int64, kind domain.MasterKind, filter domain.MasterRecordFilter) ([]domain.MasterRecord, int, error) {
	args := m.Called(ctx, companyID, kind, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.MasterRecord), args.Int(1), args.Error(2)
}

func (m *MockMasterRecordRepository) CountActiveChildren(ctx context.Context, companyID, parentID int64) (int, error) {
	args := m.Called(ctx, companyID, parentID)
	return args.Int(0), args.Error(1)
}

func (m *MockMasterRecordRepository) CreateMasterRecord(ctx context.Context, record *domain.MasterRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockMasterRecordRepository) UpdateMasterRecord(ctx context.Context, record *domain.MasterRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockMasterRecordRepository) SoftDeleteMasterRecord(ctx context.Context, companyID int64, kind domain.MasterKind, id, userID int64, now time.Time) error {
	return m.Called(ctx, companyID, kind, id, userID, now).Error(0)
}

// --- Expense categories ---

type MockExpenseCategoryRepository struct {
	mock.Mock
}

func (m *MockExpenseCategoryRepository) category(args mock.Arguments) (*domain.ExpenseCategory, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseCategory), args.Error(1)
}

func (m *MockExpenseCategoryRepository) FindCategoryByID(ctx context.Context, companyID, categoryID int64) (*domain.ExpenseCategory, error) {
	return m.category(m.Called(ctx, companyID, categoryID))
}

func (m *MockExpenseCategoryRepository) FindCategoryByCode(ctx context.Context, companyID int64, code string) (*domain.ExpenseCategory, error) {
	return m.category(m.Called(ctx, companyID, code))
}

func (m *MockExpenseCategoryRepository) ListCategories(ctx context.Context, companyID int64, filter domain.ExpenseCategoryFilter) ([]domain.ExpenseCategory, int, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExpenseCategory), args.Int(1), args.Error(2)
}

func (m *MockExpenseCategoryRepository) ListAllCategories(ctx context.Context, companyID int64) ([]domain.ExpenseCategory, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseCategory), args.Error(1)
}

func (m *MockExpenseCategoryRepository) CountActiveSubcategories(ctx context.Context, companyID, categoryID int64) (int, error) {
	args := m.Called(ctx, companyID, categoryID)
	return args.Int(0), args.Error(1)
}

func (m *MockExpenseCategoryRepository) CreateCategory(ctx context.Context, category *domain.ExpenseCategory) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockExpenseCategoryRepository) UpdateCategory(ctx context.Context, category *domain.ExpenseCategory) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockExpenseCategoryRepository) SoftDeleteCategory(ctx context.Context, companyID, categoryID, userID int64, now time.Time) error {
	return m.Called(ctx, companyID, categoryID, userID, now).Error(0)
}

func (m *MockExpenseCategoryRepository) ListLimits(ctx context.Context, categoryID int64) ([]domain.CategoryLimit, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryLimit), args.Error(1)
}

func (m *MockExpenseCategoryRepository) InsertLimit(ctx context.Context, limit *domain.CategoryLimit) error {
	return m.Called(ctx, limit).Error(0)
}

func (m *MockExpenseCategoryRepository) UpdateLimit(ctx context.Context, limit *domain.CategoryLimit) error {
	return m.Called(ctx, limit).Error(0)
}

func (m *MockExpenseCategoryRepository) DeleteLimits(ctx context.Context, categoryID int64, ids []int64) error {
	return m.Called(ctx, categoryID, ids).Error(0)
}

func (m *MockExpenseCategoryRepository) ListCustomFields(ctx context.Context, categoryID int64) ([]domain.CategoryCustomField, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryCustomField), args.Error(1)
}

func (m *MockExpenseCategoryRepository) InsertCustomField(ctx context.Context, field *domain.CategoryCustomField) error {
	return m.Called(ctx, field).Error(0)
}

func (m *MockExpenseCategoryRepository) UpdateCustomField(ctx context.Context, field *domain.CategoryCustomField) error {
	return m.Called(ctx, field).Error(0)
}

func (m *MockExpenseCategoryRepository) DeleteCustomFields(ctx context.Context, categoryID int64, ids []int64) error {
	return m.Called(ctx, categoryID, ids).Error(0)
}

func (m *MockExpenseCategoryRepository) ListFilingRules(ctx context.Context, categoryID int64) ([]domain.CategoryFilingRule, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryFilingRule), args.Error(1)
}

func (m *MockExpenseCategoryRepository) InsertFilingRule(ctx context.Context, rule *domain.CategoryFilingRule) error {
	return m.Called(ctx, rule).Error(0)
}

func (m *MockExpenseCategoryRepository) UpdateFilingRule(ctx context.Context, rule *domain.CategoryFilingRule) error {
	return m.Called(ctx, rule).Error(0)
}

func (m *MockExpenseCategoryRepository) DeleteFilingRules(ctx context.Context, categoryID int64, ids []int64) error {
	return m.Called(ctx, categoryID, ids).Error(0)
}

// --- Location groups ---

type MockLocationGroupRepository struct {
	mock.Mock
}

func (m *MockLocationGroupRepository) group(args mock.Arguments) (*domain.LocationGroup, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LocationGroup), args.Error(1)
}

func (m *MockLocationGroupRepository) FindLocationGroupByID(ctx context.Context, companyID, groupID int64) (*domain.LocationGroup, error) {
	return m.group(m.Called(ctx, companyID, groupID))
}

func (m *MockLocationGroupRepository) FindLocationGroupByName(ctx context.Context, companyID int64, name string) (*domain.LocationGroup, error) {
	return m.group(m.Called(ctx, companyID, name))
}

func (m *MockLocationGroupRepository) ListLocationGroups(ctx context.Context, companyID int64, filter domain.ListFilter) ([]domain.LocationGroup, int, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.LocationGroup), args.Int(1), args.Error(2)
}

func (m *MockLocationGroupRepository) ListMappings(ctx context.Context, groupID int64) ([]domain.LocationMapping, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LocationMapping), args.Error(1)
}

func (m *MockLocationGroupRepository) CreateLocationGroup(ctx context.Context, group *domain.LocationGroup) error {
	return m.Called(ctx, group).Error(0)
}

func (m *MockLocationGroupRepository) UpdateLocationGroup(ctx context.Context, group *domain.LocationGroup) error {
	return m.Called(ctx, group).Error(0)
}

func (m *MockLocationGroupRepository) SoftDeleteLocationGroup(ctx context.Context, companyID, groupID, userID int64, now time.Time) error {
	return m.Called(ctx, companyID, groupID, userID, now).Error(0)
}

func (m *MockLocationGroupRepository) InsertMapping(ctx context.Context, mapping *domain.LocationMapping) error {
	return m.Called(ctx, mapping).Error(0)
}

func (m *MockLocationGroupRepository) UpdateMapping(ctx context.Context, mapping *domain.LocationMapping) error {
	return m.Called(ctx, mapping).Error(0)
}

func (m *MockLocationGroupRepository) DeleteMappings(ctx context.Context, groupID int64, ids []int64) error {
	return m.Called(ctx, groupID, ids).Error(0)
}

type MockCodeSequenceRepository struct {
	mock.Mock
}

func (m *MockCodeSequenceRepository) NextValue(ctx context.Context, companyID int64, name string) (int64, error) {
	args := m.Called(ctx, companyID, name)
	return args.Get(0).(int64), args.Error(1)
}

// --- Rate cache ---

// MockRateCache records invalidations; GetRate always calls through to load.
type MockRateCache struct {
	mock.Mock
}

func (m *MockRateCache) GetRate(ctx context.Context, companyID, fromID, toID int64, date time.Time, load func(context.Context) (*domain.ExchangeRate, error)) (*domain.ExchangeRate, error) {
	return load(ctx)
}

func (m *MockRateCache) Invalidate(ctx context.Context, companyID int64) error {
	return m.Called(ctx, companyID).Error(0)
}
