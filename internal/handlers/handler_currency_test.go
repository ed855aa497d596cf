package handlers_test

import (
	"errors"
	"net/http"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestCreateCurrency_Success() {
	created := &domain.Currency{ID: 7, CompanyID: 1, Code: "EUR", Name: "Euro", Symbol: "€", DecimalPlaces: 2, IsActive: true}
	suite.currencyService.On("CreateCurrency", mock.Anything, testActor, mock.MatchedBy(func(req dto.CreateCurrencyRequest) bool {
		return req.Code == "EUR" && req.Name == "Euro"
	})).Return(created, nil).Once()

	w, resp := suite.post("/currencies/create", map[string]any{
		"code":   "EUR",
		"name":   "Euro",
		"symbol": "€",
	})

	suite.Equal(http.StatusCreated, w.Code)
	suite.True(resp.Success)
	suite.Equal("Currency created successfully", resp.Message)
	var got domain.Currency
	suite.decode(resp.Data, &got)
	suite.Equal(int64(7), got.ID)
	suite.Equal("EUR", got.Code)
}

func (suite *HandlerTestSuite) TestCreateCurrency_InvalidCodeRejectedByBinding() {
	w, resp := suite.post("/currencies/create", map[string]any{
		"code":   "EURO",
		"name":   "Euro",
		"symbol": "€",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.False(resp.Success)
	suite.Contains(resp.Message, "Invalid request format")
	suite.currencyService.AssertNotCalled(suite.T(), "CreateCurrency", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateCurrency_MalformedJSON() {
	w, resp := suite.post("/currencies/create", `{"code": "EUR",`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.False(resp.Success)
}

func (suite *HandlerTestSuite) TestCreateCurrency_Conflict() {
	suite.currencyService.On("CreateCurrency", mock.Anything, testActor, mock.Anything).
		Return(nil, apperrors.NewConflictError("Currency code already exists")).Once()

	w, resp := suite.post("/currencies/create", map[string]any{
		"code":   "USD",
		"name":   "US Dollar",
		"symbol": "$",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("Currency code already exists", resp.Message)
}

func (suite *HandlerTestSuite) TestListCurrencies_EmptyBodyUsesDefaults() {
	currencies := []domain.Currency{
		{ID: 1, Code: "INR"},
		{ID: 2, Code: "USD"},
	}
	suite.currencyService.On("ListCurrencies", mock.Anything, testActor, dto.ListCurrenciesRequest{}).
		Return(currencies, 2, nil).Once()

	w, resp := suite.post("/currencies/list", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Require().NotNil(resp.Pagination)
	suite.Equal(1, resp.Pagination.Page)
	suite.Equal(20, resp.Pagination.Limit)
	suite.Equal(2, resp.Pagination.Total)
	suite.Equal(1, resp.Pagination.TotalPages)
	var got []domain.Currency
	suite.decode(resp.Data, &got)
	suite.Len(got, 2)
}

func (suite *HandlerTestSuite) TestListCurrencies_RejectsOversizedLimit() {
	w, _ := suite.post("/currencies/list", map[string]any{"limit": 1000})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetCurrencyDetails_NotFound() {
	suite.currencyService.On("GetCurrencyDetails", mock.Anything, testActor, int64(99)).
		Return(nil, apperrors.NewNotFoundError("Currency not found")).Once()

	w, resp := suite.post("/currencies/details", map[string]any{"id": 99})

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Currency not found", resp.Message)
}

func (suite *HandlerTestSuite) TestGetCurrencyDetails_MissingID() {
	w, _ := suite.post("/currencies/details", map[string]any{})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateCurrency_Success() {
	name := "Indian Rupee"
	updated := &domain.Currency{ID: 3, Code: "INR", Name: name}
	suite.currencyService.On("UpdateCurrency", mock.Anything, testActor, mock.MatchedBy(func(req dto.UpdateCurrencyRequest) bool {
		return req.ID == 3 && req.Name != nil && *req.Name == name && req.Code == nil
	})).Return(updated, nil).Once()

	w, resp := suite.post("/currencies/update", map[string]any{
		"id":   3,
		"name": name,
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Currency updated successfully", resp.Message)
}

func (suite *HandlerTestSuite) TestDeleteCurrency_BaseCurrency() {
	suite.currencyService.On("DeleteCurrency", mock.Anything, testActor, int64(1)).
		Return(apperrors.NewValidationError("Cannot delete base currency")).Once()

	w, resp := suite.post("/currencies/delete", map[string]any{"id": 1})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.False(resp.Success)
	suite.Equal("Cannot delete base currency", resp.Message)
}

func (suite *HandlerTestSuite) TestDeleteCurrency_InternalErrorIsHidden() {
	suite.currencyService.On("DeleteCurrency", mock.Anything, testActor, int64(5)).
		Return(apperrors.NewAppError(http.StatusInternalServerError, "Failed to delete currency", errors.New("connection reset"))).Once()

	w, resp := suite.post("/currencies/delete", map[string]any{"id": 5})

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Internal server error", resp.Message)
	suite.NotContains(w.Body.String(), "connection reset")
}

func (suite *HandlerTestSuite) TestSetBaseCurrency_Success() {
	suite.currencyService.On("SetBaseCurrency", mock.Anything, testActor, int64(2)).
		Return(&domain.Currency{ID: 2, Code: "USD", IsBaseCurrency: true}, nil).Once()

	w, resp := suite.post("/currencies/set-base", map[string]any{"id": 2})

	suite.Equal(http.StatusOK, w.Code)
	var got domain.Currency
	suite.decode(resp.Data, &got)
	suite.True(got.IsBaseCurrency)
}

func (suite *HandlerTestSuite) TestCheckUsage_ReportsTotals() {
	suite.currencyService.On("CheckUsage", mock.Anything, testActor, int64(1)).
		Return(&domain.CurrencyUsage{
			CurrencyID:        1,
			IsBaseCurrency:    true,
			ExchangeRateCount: 3,
			TotalUsageCount:   4,
			CanDelete:         false,
		}, nil).Once()

	w, resp := suite.post("/currencies/check-usage", map[string]any{"id": 1})

	suite.Equal(http.StatusOK, w.Code)
	var got domain.CurrencyUsage
	suite.decode(resp.Data, &got)
	suite.Equal(4, got.TotalUsageCount)
	suite.False(got.CanDelete)
}

func (suite *HandlerTestSuite) TestConvertAmount_Success() {
	conversion := &domain.Conversion{
		Amount:          decimal.NewFromInt(1000),
		ConvertedAmount: decimal.RequireFromString("12.50"),
		FormattedAmount: "$12.50",
		ExchangeRate:    decimal.RequireFromString("0.0125"),
		FromCurrencyID:  1,
		ToCurrencyID:    2,
		ConversionDate:  time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		RateSource:      "Manual",
		RoundingMethod:  domain.RoundingRound,
		Precision:       2,
	}
	suite.conversionService.On("ConvertAmount", mock.Anything, testActor, mock.MatchedBy(func(req dto.ConvertAmountRequest) bool {
		return req.Amount.Equal(decimal.NewFromInt(1000)) && req.ConversionDate == "2024-07-01"
	})).Return(conversion, nil).Once()

	w, resp := suite.post("/currencies/convert", map[string]any{
		"amount":           "1000",
		"from_currency_id": 1,
		"to_currency_id":   2,
		"conversion_date":  "2024-07-01",
	})

	suite.Equal(http.StatusOK, w.Code)
	var got domain.Conversion
	suite.decode(resp.Data, &got)
	suite.Equal("12.5", got.ConvertedAmount.String())
	suite.Equal("$12.50", got.FormattedAmount)
}

func (suite *HandlerTestSuite) TestConvertAmount_NoRate() {
	suite.conversionService.On("ConvertAmount", mock.Anything, testActor, mock.Anything).
		Return(nil, apperrors.NewNotFoundError("No exchange rate found")).Once()

	w, resp := suite.post("/currencies/convert", map[string]any{
		"amount":           "10",
		"from_currency_id": 1,
		"to_currency_id":   3,
	})

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("No exchange rate found", resp.Message)
}

func (suite *HandlerTestSuite) TestConvertAmount_BadDate() {
	w, _ := suite.post("/currencies/convert", map[string]any{
		"amount":           "10",
		"from_currency_id": 1,
		"to_currency_id":   2,
		"conversion_date":  "01/07/2024",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}
