package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_admin_app/internal/core/ports/services"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/SscSPs/expense_admin_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService   portssvc.CurrencySvcFacade
	conversionService portssvc.ConversionSvc
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade, conv portssvc.ConversionSvc) *currencyHandler {
	return &currencyHandler{
		currencyService:   cs,
		conversionService: conv,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade, conversionService portssvc.ConversionSvc) {
	h := newCurrencyHandler(currencyService, conversionService)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("/create", h.createCurrency)
		currencies.POST("/list", h.listCurrencies)
		currencies.POST("/details", h.getCurrencyDetails)
		currencies.POST("/update", h.updateCurrency)
		currencies.POST("/delete", h.deleteCurrency)
		currencies.POST("/set-base", h.setBaseCurrency)
		currencies.POST("/check-usage", h.checkUsage)
		currencies.POST("/convert", h.convertAmount)
	}
}

// createCurrency godoc
// @Summary Create a currency
// @Description Adds a currency to the caller's company. A soft-deleted currency with the same code is restored instead.
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.Response{data=domain.Currency}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Currency code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /currencies/create [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCurrencyRequest
	if !bindRequest(c, &req, "CreateCurrency") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	logger.Info("Received request to create currency", slog.String("currency_code", req.Code))
	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "create currency")
		return
	}

	logger.Info("Currency created successfully", slog.Int64("currency_id", currency.ID))
	respondOK(c, http.StatusCreated, "Currency created successfully", currency)
}

// listCurrencies godoc
// @Summary List currencies
// @Description Lists the company's currencies with search, sort and pagination
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   filter body dto.ListCurrenciesRequest false "Filter and pagination"
// @Success 200 {object} dto.Response{data=[]domain.Currency}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /currencies/list [post]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	var req dto.ListCurrenciesRequest
	if !bindRequest(c, &req, "ListCurrencies") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	currencies, total, err := h.currencyService.ListCurrencies(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "list currencies")
		return
	}
	respondPage(c, currencies, req.ToFilter(), total)
}

// getCurrencyDetails godoc
// @Summary Get currency details
// @Description Returns a currency with its 10 most recent exchange rates
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   request body dto.IDRequest true "Currency ID"
// @Success 200 {object} dto.Response{data=dto.CurrencyDetailsResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Currency not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /currencies/details [post]
func (h *currencyHandler) getCurrencyDetails(c *gin.Context) {
	var req dto.IDRequest
	if !bindRequest(c, &req, "GetCurrencyDetails") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	details, err := h.currencyService.GetCurrencyDetails(c.Request.Context(), actor, req.ID)
	if err != nil {
		respondError(c, err, "get currency details")
		return
	}
	respondOK(c, http.StatusOK, "", details)
}

// updateCurrency godoc
// @Summary Update a currency
// @Description Applies a partial update. Setting is_base_currency moves the base flag; it cannot be unset directly.
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currency body dto.UpdateCurrencyRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=domain.Currency}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Currency not found"
// @Failure 409 {object} dto.ErrorResponse "Currency code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /currencies/update [post]
func (h *currencyHandler) updateCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateCurrencyRequest
	if !bindRequest(c, &req, "UpdateCurrency") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	currency, err := h.currencyService.UpdateCurrency(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "update currency")
		return
	}

	logger.Info("Currency updated successfully", slog.Int64("currency_id", currency.ID))
	respondOK(c, http.StatusOK, "Currency updated successfully", currency)
}

// deleteCurrency godoc
// @Summary Delete a currency
// @Description Soft-deletes a currency and deactivates its exchange rates. The base currency cannot be deleted.
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   request body dto.IDRequest true "Currency ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse "Cannot delete base currency"
// @Failure 404 {object} dto.ErrorResponse "Currency not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /currencies/delete [post]
func (h *currencyHandler) deleteCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IDRequest
	if !bindRequest(c, &req, "DeleteCurrency") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.currencyService.DeleteCurrency(c.Request.Context(), actor, req.ID); err != nil {
		respondError(c, err, "delete currency")
		return
	}

	logger.Info("Currency deleted successfully", slog.Int64("currency_id", req.ID))
	respondOK(c, http.StatusOK, "Currency deleted successfully", nil)
}

// setBaseCurrency godoc
// @Summary Set the base currency
// @Description Moves the company's base flag to an active currency
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   request body dto.IDRequest true "Currency ID"
// @Success 200 {object} dto.Response{data=domain.Currency}
// @Failure 400 {object} dto.ErrorResponse "Currency is inactive"
// @Failure 404 {object} dto.ErrorResponse "Currency not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /currencies/set-base [post]
func (h *currencyHandler) setBaseCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IDRequest
	if !bindRequest(c, &req, "SetBaseCurrency") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	currency, err := h.currencyService.SetBaseCurrency(c.Request.Context(), actor, req.ID)
	if err != nil {
		respondError(c, err, "set base currency")
		return
	}

	logger.Info("Base currency changed", slog.Int64("currency_id", currency.ID))
	respondOK(c, http.StatusOK, "Base currency updated successfully", currency)
}

// checkUsage godoc
// @Summary Check currency usage
// @Description Reports what still references the currency and whether it can be deleted
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   request body dto.IDRequest true "Currency ID"
// @Success 200 {object} dto.Response{data=domain.CurrencyUsage}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Currency not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /currencies/check-usage [post]
func (h *currencyHandler) checkUsage(c *gin.Context) {
	var req dto.IDRequest
	if !bindRequest(c, &req, "CheckCurrencyUsage") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	usage, err := h.currencyService.CheckUsage(c.Request.Context(), actor, req.ID)
	if err != nil {
		respondError(c, err, "check currency usage")
		return
	}
	respondOK(c, http.StatusOK, "", usage)
}

// convertAmount godoc
// @Summary Convert an amount
// @Description Converts an amount between two currencies using the rate effective on the conversion date and the company's rounding policy
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   request body dto.ConvertAmountRequest true "Conversion request"
// @Success 200 {object} dto.Response{data=domain.Conversion}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "No exchange rate found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /currencies/convert [post]
func (h *currencyHandler) convertAmount(c *gin.Context) {
	var req dto.ConvertAmountRequest
	if !bindRequest(c, &req, "ConvertAmount") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	conversion, err := h.conversionService.ConvertAmount(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "convert amount")
		return
	}
	respondOK(c, http.StatusOK, "", conversion)
}
