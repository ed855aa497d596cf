package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/SscSPs/expense_admin_app/internal/middleware"
	"github.com/SscSPs/expense_admin_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, dto.Response{Success: true, Message: message, Data: data})
}

func respondPage(c *gin.Context, data any, filter domain.ListFilter, total int) {
	c.JSON(http.StatusOK, dto.Response{
		Success:    true,
		Data:       data,
		Pagination: pagination.NewMeta(filter.Page, filter.Limit, total),
	})
}

// respondError maps err to its HTTP status. Internal details are logged, never returned.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
	} else {
		logger.Warn("Rejected request to "+action, slog.String("error", err.Error()))
	}
	c.JSON(status, dto.ErrorResponse{Success: false, Message: apperrors.PublicMessage(err)})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Message: message})
}

// bindRequest decodes the JSON body into req and answers 400 when it does not validate.
// An empty body is validated as the zero request so list filters stay optional.
func bindRequest(c *gin.Context, req any, action string) bool {
	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for "+action, slog.String("error", err.Error()))
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return false
	}
	return true
}

// requireActor returns the authenticated company and user or answers 401.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Success: false, Message: "Unauthorized"})
		return domain.Actor{}, false
	}
	return actor, true
}
