package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_admin_app/internal/core/ports/services"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/SscSPs/expense_admin_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseCategoryHandler handles HTTP requests related to expense categories.
type expenseCategoryHandler struct {
	categoryService portssvc.ExpenseCategorySvcFacade
}

func newExpenseCategoryHandler(cs portssvc.ExpenseCategorySvcFacade) *expenseCategoryHandler {
	return &expenseCategoryHandler{
		categoryService: cs,
	}
}

func registerExpenseCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.ExpenseCategorySvcFacade) {
	h := newExpenseCategoryHandler(categoryService)

	categories := rg.Group("/expense-categories")
	{
		categories.POST("/create", h.createCategory)
		categories.POST("/list", h.listCategories)
		categories.POST("/tree", h.getCategoryTree)
		categories.POST("/details", h.getCategory)
		categories.POST("/update", h.updateCategory)
		categories.POST("/delete", h.deleteCategory)
	}
}

// createCategory godoc
// @Summary Create an expense category
// @Description Creates a category together with its limits, custom fields and filing rules
// @Tags expense-categories
// @Accept  json
// @Produce  json
// @Param   category body dto.CreateExpenseCategoryRequest true "Category details"
// @Success 201 {object} dto.Response{data=domain.ExpenseCategory}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Category code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /expense-categories/create [post]
func (h *expenseCategoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseCategoryRequest
	if !bindRequest(c, &req, "CreateExpenseCategory") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "create expense category")
		return
	}

	logger.Info("Expense category created", slog.Int64("category_id", category.ID), slog.String("code", category.Code))
	respondOK(c, http.StatusCreated, "Expense category created successfully", category)
}

// listCategories godoc
// @Summary List expense categories
// @Tags expense-categories
// @Accept  json
// @Produce  json
// @Param   filter body dto.ListExpenseCategoriesRequest false "Filter and pagination"
// @Success 200 {object} dto.Response{data=[]domain.ExpenseCategory}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /expense-categories/list [post]
func (h *expenseCategoryHandler) listCategories(c *gin.Context) {
	var req dto.ListExpenseCategoriesRequest
	if !bindRequest(c, &req, "ListExpenseCategories") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	categories, total, err := h.categoryService.ListCategories(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "list expense categories")
		return
	}
	respondPage(c, categories, req.ToFilter().ListFilter, total)
}

// getCategoryTree godoc
// @Summary Get the category tree
// @Description Returns every category nested under its parent
// @Tags expense-categories
// @Produce  json
// @Success 200 {object} dto.Response{data=[]domain.ExpenseCategory}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /expense-categories/tree [post]
func (h *expenseCategoryHandler) getCategoryTree(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	tree, err := h.categoryService.GetCategoryTree(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "build expense category tree")
		return
	}
	respondOK(c, http.StatusOK, "", tree)
}

// getCategory godoc
// @Summary Get an expense category
// @Description Returns the category with its limits, custom fields and filing rules
// @Tags expense-categories
// @Accept  json
// @Produce  json
// @Param   request body dto.IDRequest true "Category ID"
// @Success 200 {object} dto.Response{data=domain.ExpenseCategory}
// @Failure 404 {object} dto.ErrorResponse "Expense category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /expense-categories/details [post]
func (h *expenseCategoryHandler) getCategory(c *gin.Context) {
	var req dto.IDRequest
	if !bindRequest(c, &req, "GetExpenseCategory") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), actor, req.ID)
	if err != nil {
		respondError(c, err, "get expense category")
		return
	}
	respondOK(c, http.StatusOK, "", category)
}

// updateCategory godoc
// @Summary Update an expense category
// @Description Applies a partial update. Child collections that are present are reconciled by id; absent ones are left untouched.
// @Tags expense-categories
// @Accept  json
// @Produce  json
// @Param   category body dto.UpdateExpenseCategoryRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=domain.ExpenseCategory}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Expense category not found"
// @Failure 409 {object} dto.ErrorResponse "Category code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /expense-categories/update [post]
func (h *expenseCategoryHandler) updateCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateExpenseCategoryRequest
	if !bindRequest(c, &req, "UpdateExpenseCategory") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "update expense category")
		return
	}

	logger.Info("Expense category updated", slog.Int64("category_id", category.ID))
	respondOK(c, http.StatusOK, "Expense category updated successfully", category)
}

// deleteCategory godoc
// @Summary Delete an expense category
// @Description Soft-deletes a category. Categories with active sub-categories cannot be deleted.
// @Tags expense-categories
// @Accept  json
// @Produce  json
// @Param   request body dto.IDRequest true "Category ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse "Category has active sub-categories"
// @Failure 404 {object} dto.ErrorResponse "Expense category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /expense-categories/delete [post]
func (h *expenseCategoryHandler) deleteCategory(c *gin.Context) {
	var req dto.IDRequest
	if !bindRequest(c, &req, "DeleteExpenseCategory") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), actor, req.ID); err != nil {
		respondError(c, err, "delete expense category")
		return
	}
	respondOK(c, http.StatusOK, "Expense category deleted successfully", nil)
}
