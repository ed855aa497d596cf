package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func int64Ptr(v int64) *int64 { return &v }

func (suite *HandlerTestSuite) TestUpsertExchangeRate_Created() {
	rate := &domain.ExchangeRate{
		ID:             11,
		FromCurrencyID: 1,
		ToCurrencyID:   2,
		Rate:           decimal.RequireFromString("0.0125"),
		EffectiveFrom:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
	}
	suite.rateService.On("UpsertExchangeRate", mock.Anything, testActor, mock.MatchedBy(func(req dto.UpsertExchangeRateRequest) bool {
		return req.FromCurrencyID == 1 && req.ToCurrencyID == 2 && req.Rate.Equal(decimal.RequireFromString("0.0125"))
	})).Return(rate, nil).Once()

	w, resp := suite.post("/currencies/exchange-rates/upsert", map[string]any{
		"from_currency_id": 1,
		"to_currency_id":   2,
		"rate":             "0.0125",
		"effective_from":   "2024-06-01",
	})

	suite.Equal(http.StatusCreated, w.Code)
	suite.Equal("Exchange rate saved successfully", resp.Message)
	var got domain.ExchangeRate
	suite.decode(resp.Data, &got)
	suite.Equal(int64(11), got.ID)
}

func (suite *HandlerTestSuite) TestUpsertExchangeRate_MissingEffectiveFrom() {
	w, _ := suite.post("/currencies/exchange-rates/upsert", map[string]any{
		"from_currency_id": 1,
		"to_currency_id":   2,
		"rate":             "0.0125",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpsertExchangeRate_BackdatedRejected() {
	suite.rateService.On("UpsertExchangeRate", mock.Anything, testActor, mock.Anything).
		Return(nil, apperrors.NewValidationError("effective_from must be after the current rate's effective_from (2024-06-01)")).Once()

	w, resp := suite.post("/currencies/exchange-rates/upsert", map[string]any{
		"from_currency_id": 1,
		"to_currency_id":   2,
		"rate":             "0.012",
		"effective_from":   "2024-05-01",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(resp.Message, "effective_from")
}

func (suite *HandlerTestSuite) TestListExchangeRates_FilterAndPaging() {
	suite.rateService.On("ListExchangeRates", mock.Anything, testActor, mock.MatchedBy(func(f domain.ExchangeRateFilter) bool {
		return f.CurrencyID != nil && *f.CurrencyID == 2 &&
			f.DateFrom != nil && f.DateFrom.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			f.Page == 2 && f.Limit == 5
	})).Return([]domain.ExchangeRate{{ID: 6}}, 6, nil).Once()

	w, resp := suite.post("/currencies/exchange-rates/list", map[string]any{
		"currency_id": 2,
		"date_from":   "2024-01-01",
		"page":        2,
		"limit":       5,
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.Require().NotNil(resp.Pagination)
	suite.Equal(2, resp.Pagination.Page)
	suite.Equal(2, resp.Pagination.TotalPages)
	var got dto.ExchangeRateQueryResponse
	suite.decode(resp.Data, &got)
	suite.Len(got.Rates, 1)
	suite.Nil(got.CurrentRate)
	suite.Nil(got.History)
}

func (suite *HandlerTestSuite) TestListExchangeRates_CurrentRateAlongsideList() {
	date := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	suite.rateService.On("GetCurrentRate", mock.Anything, testActor, int64(1), int64(2), date).
		Return(&domain.ExchangeRate{ID: 12, Rate: decimal.RequireFromString("0.0125")}, nil).Once()
	suite.rateService.On("ListExchangeRates", mock.Anything, testActor, mock.MatchedBy(func(f domain.ExchangeRateFilter) bool {
		return *f.FromCurrencyID == 1 && *f.ToCurrencyID == 2
	})).Return([]domain.ExchangeRate{{ID: 11}, {ID: 12}}, 2, nil).Once()

	w, resp := suite.post("/currencies/exchange-rates/list", map[string]any{
		"from_currency_id": 1,
		"to_currency_id":   2,
		"current_rate":     true,
		"date":             "2024-07-01",
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.Require().NotNil(resp.Pagination)
	suite.Equal(2, resp.Pagination.Total)
	var got dto.ExchangeRateQueryResponse
	suite.decode(resp.Data, &got)
	suite.Require().NotNil(got.CurrentRate)
	suite.Equal(int64(12), got.CurrentRate.ID)
	suite.Len(got.Rates, 2)
	suite.Nil(got.History)
}

func (suite *HandlerTestSuite) TestListExchangeRates_CurrentRateAbsentStillLists() {
	suite.rateService.On("GetCurrentRate", mock.Anything, testActor, int64(1), int64(2), time.Time{}).
		Return(nil, apperrors.NewNotFoundError("No exchange rate found")).Once()
	suite.rateService.On("ListExchangeRates", mock.Anything, testActor, mock.Anything).Return([]domain.ExchangeRate{}, 0, nil).Once()

	w, resp := suite.post("/currencies/exchange-rates/list", map[string]any{
		"from_currency_id": 1,
		"to_currency_id":   2,
		"current_rate":     true,
	})

	suite.Equal(http.StatusOK, w.Code)
	var got dto.ExchangeRateQueryResponse
	suite.decode(resp.Data, &got)
	suite.Nil(got.CurrentRate)
	suite.NotNil(got.Rates)
}

func (suite *HandlerTestSuite) TestListExchangeRates_CurrentRateMissingPair() {
	w, resp := suite.post("/currencies/exchange-rates/list", map[string]any{"current_rate": true})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("from_currency_id and to_currency_id are required for current_rate and include_history", resp.Message)
	suite.rateService.AssertNotCalled(suite.T(), "ListExchangeRates", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListExchangeRates_CurrentRateHistoryAndListTogether() {
	date := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	timeline := &dto.ExchangeRateTimelineResponse{
		Rates: []domain.ExchangeRate{
			{ID: 1},
			{ID: 2},
		},
		History: []domain.ExchangeRateHistory{
			{ID: 1, ExchangeRateID: 1, Action: domain.HistoryCreate},
			{ID: 2, ExchangeRateID: 1, Action: domain.HistoryUpdate},
			{ID: 3, ExchangeRateID: 2, Action: domain.HistoryCreate},
		},
	}
	suite.rateService.On("GetCurrentRate", mock.Anything, testActor, int64(1), int64(2), date).
		Return(&domain.ExchangeRate{ID: 2, Rate: decimal.RequireFromString("0.0125")}, nil).Once()
	suite.rateService.On("GetRateTimeline", mock.Anything, testActor, int64(1), int64(2)).Return(timeline, nil).Once()
	suite.rateService.On("ListExchangeRates", mock.Anything, testActor, mock.MatchedBy(func(f domain.ExchangeRateFilter) bool {
		return f.Limit == 1
	})).Return([]domain.ExchangeRate{{ID: 2}}, 2, nil).Once()

	w, resp := suite.post("/currencies/exchange-rates/list", map[string]any{
		"from_currency_id": 1,
		"to_currency_id":   2,
		"current_rate":     true,
		"date":             "2024-07-01",
		"include_history":  true,
		"limit":            1,
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.Require().NotNil(resp.Pagination)
	suite.Equal(2, resp.Pagination.TotalPages)
	var got dto.ExchangeRateQueryResponse
	suite.decode(resp.Data, &got)
	suite.Require().NotNil(got.CurrentRate)
	suite.Equal(int64(2), got.CurrentRate.ID)
	suite.Require().NotNil(got.History)
	suite.Len(got.History.Rates, 2)
	suite.Len(got.History.History, 3)
	suite.Len(got.Rates, 1)
}

func (suite *HandlerTestSuite) TestDeleteExchangeRate_AlreadyInactive() {
	suite.rateService.On("DeleteExchangeRate", mock.Anything, testActor, int64(4)).
		Return(apperrors.NewValidationError("Exchange rate is already inactive")).Once()

	w, resp := suite.post("/currencies/exchange-rates/delete", map[string]any{"id": 4})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Exchange rate is already inactive", resp.Message)
}

func (suite *HandlerTestSuite) TestBulkUpdateExchangeRates_ReportsEveryItem() {
	results := []domain.BulkRateResult{
		{
			Index:          0,
			FromCurrencyID: 1,
			ToCurrencyID:   2,
			Status:         domain.BulkRateApplied,
			RateID:         int64Ptr(20),
		},
		{
			Index:          1,
			FromCurrencyID: 9,
			ToCurrencyID:   2,
			Status:         domain.BulkRateSkipped,
			Reason:         "From currency not found",
		},
	}
	suite.rateService.On("BulkUpdateExchangeRates", mock.Anything, testActor, mock.MatchedBy(func(req dto.BulkUpdateExchangeRatesRequest) bool {
		return len(req.Rates) == 2
	})).Return(results, nil).Once()

	w, resp := suite.post("/currencies/exchange-rates/bulk-update", map[string]any{
		"rates": []map[string]any{
			{
				"from_currency_id": 1,
				"to_currency_id":   2,
				"rate":             "0.012",
				"effective_from":   "2024-08-01",
			},
			{
				"from_currency_id": 9,
				"to_currency_id":   2,
				"rate":             "1.5",
				"effective_from":   "2024-08-01",
			},
		},
	})

	suite.Equal(http.StatusOK, w.Code)
	var got dto.BulkUpdateExchangeRatesResponse
	suite.decode(resp.Data, &got)
	suite.Equal(1, got.Applied)
	suite.Equal(1, got.Skipped)
	suite.Equal("From currency not found", got.Results[1].Reason)
}

func (suite *HandlerTestSuite) TestBulkUpdateExchangeRates_EmptyBatch() {
	w, _ := suite.post("/currencies/exchange-rates/bulk-update", map[string]any{"rates": []any{}})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetPolicy_Defaults() {
	policy := domain.DefaultCurrencyPolicy(testActor.CompanyID)
	suite.policyService.On("GetPolicy", mock.Anything, testActor).Return(&policy, nil).Once()

	w, resp := suite.post("/currencies/policy/get", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got domain.CurrencyPolicy
	suite.decode(resp.Data, &got)
	suite.Equal(domain.RoundingRound, got.RoundingMethod)
	suite.Equal(2, got.RoundingPrecision)
}

func (suite *HandlerTestSuite) TestUpdatePolicy_RejectsUnknownRoundingMethod() {
	w, _ := suite.post("/currencies/policy/update", map[string]any{"rounding_method": "Banker"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdatePolicy_Success() {
	suite.policyService.On("UpdatePolicy", mock.Anything, testActor, mock.MatchedBy(func(req dto.UpdateCurrencyPolicyRequest) bool {
		return req.RoundingMethod != nil && *req.RoundingMethod == "Floor" && req.UseFallbackRate == nil
	})).Return(&domain.CurrencyPolicy{CompanyID: 1, RoundingMethod: domain.RoundingFloor}, nil).Once()

	w, resp := suite.post("/currencies/policy/update", map[string]any{"rounding_method": "Floor"})

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Currency policy updated successfully", resp.Message)
}
