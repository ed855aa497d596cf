package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/expense_admin_app/internal/core/ports/services"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/SscSPs/expense_admin_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type currencyPolicyHandler struct {
	policyService portssvc.CurrencyPolicySvc
}

func newCurrencyPolicyHandler(ps portssvc.CurrencyPolicySvc) *currencyPolicyHandler {
	return &currencyPolicyHandler{
		policyService: ps,
	}
}

func registerCurrencyPolicyRoutes(rg *gin.RouterGroup, policyService portssvc.CurrencyPolicySvc) {
	h := newCurrencyPolicyHandler(policyService)

	policy := rg.Group("/currencies/policy")
	{
		policy.POST("/get", h.getPolicy)
		policy.POST("/update", h.updatePolicy)
	}
}

// getPolicy godoc
// @Summary Get the currency policy
// @Description Returns the company's currency policy, or the defaults when none has been saved
// @Tags currency-policy
// @Produce  json
// @Success 200 {object} dto.Response{data=domain.CurrencyPolicy}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /currencies/policy/get [post]
func (h *currencyPolicyHandler) getPolicy(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	policy, err := h.policyService.GetPolicy(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "get currency policy")
		return
	}
	respondOK(c, http.StatusOK, "", policy)
}

// updatePolicy godoc
// @Summary Update the currency policy
// @Description Merges the given fields into the stored policy, creating it from the defaults when absent
// @Tags currency-policy
// @Accept  json
// @Produce  json
// @Param   policy body dto.UpdateCurrencyPolicyRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=domain.CurrencyPolicy}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /currencies/policy/update [post]
func (h *currencyPolicyHandler) updatePolicy(c *gin.Context) {
	var req dto.UpdateCurrencyPolicyRequest
	if !bindRequest(c, &req, "UpdateCurrencyPolicy") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	policy, err := h.policyService.UpdatePolicy(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "update currency policy")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Currency policy updated")
	respondOK(c, http.StatusOK, "Currency policy updated successfully", policy)
}
