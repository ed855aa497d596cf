package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	portssvc "github.com/SscSPs/expense_admin_app/internal/core/ports/services"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/SscSPs/expense_admin_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	rates := rg.Group("/currencies/exchange-rates")
	{
		rates.POST("/upsert", h.upsertExchangeRate)
		rates.POST("/list", h.listExchangeRates)
		rates.POST("/delete", h.deleteExchangeRate)
		rates.POST("/bulk-update", h.bulkUpdateExchangeRates)
	}
}

// upsertExchangeRate godoc
// @Summary Create or supersede an exchange rate
// @Description Closes the open rate window of the pair the day before effective_from and opens a new one
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.UpsertExchangeRateRequest true "Exchange rate"
// @Success 201 {object} dto.Response{data=domain.ExchangeRate}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Currency not found"
// @Failure 409 {object} dto.ErrorResponse "Rate window conflict"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /currencies/exchange-rates/upsert [post]
func (h *exchangeRateHandler) upsertExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertExchangeRateRequest
	if !bindRequest(c, &req, "UpsertExchangeRate") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	logger.Info("Received request to upsert exchange rate",
		slog.Int64("from_currency_id", req.FromCurrencyID),
		slog.Int64("to_currency_id", req.ToCurrencyID),
		slog.String("effective_from", req.EffectiveFrom))

	rate, err := h.exchangeRateService.UpsertExchangeRate(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "upsert exchange rate")
		return
	}

	logger.Info("Exchange rate saved successfully", slog.Int64("rate_id", rate.ID))
	respondOK(c, http.StatusCreated, "Exchange rate saved successfully", rate)
}

// listExchangeRates godoc
// @Summary List exchange rates
// @Description Returns a filtered page of rates. With a currency pair, current_rate=true also returns the rate of the pair effective on date (default today) and include_history=true also returns the pair's full timeline and change log.
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   filter body dto.ListExchangeRatesRequest false "Filter and pagination"
// @Success 200 {object} dto.Response{data=dto.ExchangeRateQueryResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /currencies/exchange-rates/list [post]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	var req dto.ListExchangeRatesRequest
	if !bindRequest(c, &req, "ListExchangeRates") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	filter, err := req.ToFilter()
	if err != nil {
		respondBadRequest(c, "Dates must be YYYY-MM-DD")
		return
	}
	if (req.CurrentRate || req.IncludeHistory) && (req.FromCurrencyID == nil || req.ToCurrencyID == nil) {
		respondBadRequest(c, "from_currency_id and to_currency_id are required for current_rate and include_history")
		return
	}

	ctx := c.Request.Context()
	var resp dto.ExchangeRateQueryResponse
	if req.CurrentRate {
		date, err := dto.ParseDate(req.Date)
		if err != nil {
			respondBadRequest(c, "date must be YYYY-MM-DD")
			return
		}
		var at time.Time
		if date != nil {
			at = *date
		}
		rate, err := h.exchangeRateService.GetCurrentRate(ctx, actor, *req.FromCurrencyID, *req.ToCurrencyID, at)
		switch {
		case err == nil:
			resp.CurrentRate = rate
		case !errors.Is(err, apperrors.ErrNotFound):
			respondError(c, err, "get current exchange rate")
			return
		}
	}
	if req.IncludeHistory {
		timeline, err := h.exchangeRateService.GetRateTimeline(ctx, actor, *req.FromCurrencyID, *req.ToCurrencyID)
		if err != nil {
			respondError(c, err, "get exchange rate timeline")
			return
		}
		resp.History = timeline
	}

	rates, total, err := h.exchangeRateService.ListExchangeRates(ctx, actor, filter)
	if err != nil {
		respondError(c, err, "list exchange rates")
		return
	}
	resp.Rates = rates
	respondPage(c, resp, filter.ListFilter, total)
}

// deleteExchangeRate godoc
// @Summary Delete an exchange rate
// @Description Deactivates an exchange rate and records the change in the history log
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   request body dto.IDRequest true "Exchange rate ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse "Exchange rate is already inactive"
// @Failure 404 {object} dto.ErrorResponse "Exchange rate not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /currencies/exchange-rates/delete [post]
func (h *exchangeRateHandler) deleteExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IDRequest
	if !bindRequest(c, &req, "DeleteExchangeRate") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.exchangeRateService.DeleteExchangeRate(c.Request.Context(), actor, req.ID); err != nil {
		respondError(c, err, "delete exchange rate")
		return
	}

	logger.Info("Exchange rate deleted successfully", slog.Int64("rate_id", req.ID))
	respondOK(c, http.StatusOK, "Exchange rate deleted successfully", nil)
}

// bulkUpdateExchangeRates godoc
// @Summary Bulk update exchange rates
// @Description Upserts many pairs in one transaction. Items that fail validation are skipped and reported with a reason.
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkUpdateExchangeRatesRequest true "Rates to apply"
// @Success 200 {object} dto.Response{data=dto.BulkUpdateExchangeRatesResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /currencies/exchange-rates/bulk-update [post]
func (h *exchangeRateHandler) bulkUpdateExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkUpdateExchangeRatesRequest
	if !bindRequest(c, &req, "BulkUpdateExchangeRates") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	results, err := h.exchangeRateService.BulkUpdateExchangeRates(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "bulk update exchange rates")
		return
	}

	resp := dto.NewBulkUpdateResponse(results)
	logger.Info("Bulk exchange rate update finished", slog.Int("applied", resp.Applied), slog.Int("skipped", resp.Skipped))
	respondOK(c, http.StatusOK, "Bulk update completed", resp)
}
