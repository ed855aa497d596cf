package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_admin_app/internal/core/ports/services"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByID(ctx context.Context, actor domain.Actor, currencyID int64) (*domain.Currency, error) {
	args := m.Called(ctx, actor, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) GetCurrencyDetails(ctx context.Context, actor domain.Actor, currencyID int64) (*dto.CurrencyDetailsResponse, error) {
	args := m.Called(ctx, actor, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CurrencyDetailsResponse), args.Error(1)
}
func (m *MockCurrencyService) ListCurrencies(ctx context.Context, actor domain.Actor, req dto.ListCurrenciesRequest) ([]domain.Currency, int, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Currency), args.Int(1), args.Error(2)
}
func (m *MockCurrencyService) CheckUsage(ctx context.Context, actor domain.Actor, currencyID int64) (*domain.CurrencyUsage, error) {
	args := m.Called(ctx, actor, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyUsage), args.Error(1)
}
func (m *MockCurrencyService) CreateCurrency(ctx context.Context, actor domain.Actor, req dto.CreateCurrencyRequest) (*domain.Currency, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) UpdateCurrency(ctx context.Context, actor domain.Actor, req dto.UpdateCurrencyRequest) (*domain.Currency, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) DeleteCurrency(ctx context.Context, actor domain.Actor, currencyID int64) error {
	args := m.Called(ctx, actor, currencyID)
	return args.Error(0)
}
func (m *MockCurrencyService) SetBaseCurrency(ctx context.Context, actor domain.Actor, currencyID int64) (*domain.Currency, error) {
	args := m.Called(ctx, actor, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) ListExchangeRates(ctx context.Context, actor domain.Actor, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, int, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Int(1), args.Error(2)
}
func (m *MockExchangeRateService) GetCurrentRate(ctx context.Context, actor domain.Actor, fromID, toID int64, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, actor, fromID, toID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
func (m *MockExchangeRateService) GetRateTimeline(ctx context.Context, actor domain.Actor, fromID, toID int64) (*dto.ExchangeRateTimelineResponse, error) {
	args := m.Called(ctx, actor, fromID, toID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExchangeRateTimelineResponse), args.Error(1)
}
func (m *MockExchangeRateService) UpsertExchangeRate(ctx context.Context, actor domain.Actor, req dto.UpsertExchangeRateRequest) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
func (m *MockExchangeRateService) BulkUpdateExchangeRates(ctx context.Context, actor domain.Actor, req dto.BulkUpdateExchangeRatesRequest) ([]domain.BulkRateResult, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BulkRateResult), args.Error(1)
}
func (m *MockExchangeRateService) DeleteExchangeRate(ctx context.Context, actor domain.Actor, rateID int64) error {
	args := m.Called(ctx, actor, rateID)
	return args.Error(0)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock ConversionService ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) ConvertAmount(ctx context.Context, actor domain.Actor, req dto.ConvertAmountRequest) (*domain.Conversion, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}

var _ portssvc.ConversionSvc = (*MockConversionService)(nil)

// --- Mock CurrencyPolicyService ---
type MockCurrencyPolicyService struct {
	mock.Mock
}

func (m *MockCurrencyPolicyService) GetPolicy(ctx context.Context, actor domain.Actor) (*domain.CurrencyPolicy, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyPolicy), args.Error(1)
}
func (m *MockCurrencyPolicyService) UpdatePolicy(ctx context.Context, actor domain.Actor, req dto.UpdateCurrencyPolicyRequest) (*domain.CurrencyPolicy, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyPolicy), args.Error(1)
}

var _ portssvc.CurrencyPolicySvc = (*MockCurrencyPolicyService)(nil)

// --- Mock MasterDataService ---
type MockMasterDataService struct {
	mock.Mock
}

func (m *MockMasterDataService) CreateRecord(ctx context.Context, actor domain.Actor, kind domain.MasterKind, req dto.CreateMasterRecordRequest) (*domain.MasterRecord, error) {
	args := m.Called(ctx, actor, kind, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MasterRecord), args.Error(1)
}
func (m *MockMasterDataService) GetRecord(ctx context.Context, actor domain.Actor, kind domain.MasterKind, id int64) (*domain.MasterRecord, error) {
	args := m.Called(ctx, actor, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MasterRecord), args.Error(1)
}
func (m *MockMasterDataService) ListRecords(ctx context.Context, actor domain.Actor, kind domain.MasterKind, req dto.ListMasterRecordsRequest) ([]domain.MasterRecord, int, error) {
	args := m.Called(ctx, actor, kind, req)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.MasterRecord), args.Int(1), args.Error(2)
}
func (m *MockMasterDataService) UpdateRecord(ctx context.Context, actor domain.Actor, kind domain.MasterKind, req dto.UpdateMasterRecordRequest) (*domain.MasterRecord, error) {
	args := m.Called(ctx, actor, kind, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MasterRecord), args.Error(1)
}
func (m *MockMasterDataService) DeleteRecord(ctx context.Context, actor domain.Actor, kind domain.MasterKind, id int64) error {
	args := m.Called(ctx, actor, kind, id)
	return args.Error(0)
}

var _ portssvc.MasterDataSvc = (*MockMasterDataService)(nil)

// --- Mock CompanyService ---
type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) GetCompany(ctx context.Context, actor domain.Actor) (*domain.Company, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}
func (m *MockCompanyService) UpdateCompany(ctx context.Context, actor domain.Actor, req dto.UpdateCompanyRequest) (*domain.Company, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

var _ portssvc.CompanySvc = (*MockCompanyService)(nil)

// --- Mock ExpenseCategoryService ---
type MockExpenseCategoryService struct {
	mock.Mock
}

func (m *MockExpenseCategoryService) GetCategory(ctx context.Context, actor domain.Actor, categoryID int64) (*domain.ExpenseCategory, error) {
	args := m.Called(ctx, actor, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseCategory), args.Error(1)
}
func (m *MockExpenseCategoryService) ListCategories(ctx context.Context, actor domain.Actor, req dto.ListExpenseCategoriesRequest) ([]domain.ExpenseCategory, int, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExpenseCategory), args.Int(1), args.Error(2)
}
func (m *MockExpenseCategoryService) GetCategoryTree(ctx context.Context, actor domain.Actor) ([]domain.ExpenseCategory, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseCategory), args.Error(1)
}
func (m *MockExpenseCategoryService) CreateCategory(ctx context.Context, actor domain.Actor, req dto.CreateExpenseCategoryRequest) (*domain.ExpenseCategory, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseCategory), args.Error(1)
}
func (m *MockExpenseCategoryService) UpdateCategory(ctx context.Context, actor domain.Actor, req dto.UpdateExpenseCategoryRequest) (*domain.ExpenseCategory, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseCategory), args.Error(1)
}
func (m *MockExpenseCategoryService) DeleteCategory(ctx context.Context, actor domain.Actor, categoryID int64) error {
	args := m.Called(ctx, actor, categoryID)
	return args.Error(0)
}

var _ portssvc.ExpenseCategorySvcFacade = (*MockExpenseCategoryService)(nil)

// --- Mock LocationGroupService ---
type MockLocationGroupService struct {
	mock.Mock
}

func (m *MockLocationGroupService) CreateLocationGroup(ctx context.Context, actor domain.Actor, req dto.CreateLocationGroupRequest) (*domain.LocationGroup, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LocationGroup), args.Error(1)
}
func (m *MockLocationGroupService) GetLocationGroup(ctx context.Context, actor domain.Actor, groupID int64) (*domain.LocationGroup, error) {
	args := m.Called(ctx, actor, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LocationGroup), args.Error(1)
}
func (m *MockLocationGroupService) ListLocationGroups(ctx context.Context, actor domain.Actor, req dto.ListLocationGroupsRequest) ([]domain.LocationGroup, int, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.LocationGroup), args.Int(1), args.Error(2)
}
func (m *MockLocationGroupService) UpdateLocationGroup(ctx context.Context, actor domain.Actor, req dto.UpdateLocationGroupRequest) (*domain.LocationGroup, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LocationGroup), args.Error(1)
}
func (m *MockLocationGroupService) DeleteLocationGroup(ctx context.Context, actor domain.Actor, groupID int64) error {
	args := m.Called(ctx, actor, groupID)
	return args.Error(0)
}

var _ portssvc.LocationGroupSvc = (*MockLocationGroupService)(nil)
