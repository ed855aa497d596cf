package handlers_test

import (
	"net/http"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestCreateCategory_WithChildren() {
	created := &domain.ExpenseCategory{ID: 1, Code: "TRV", Name: "Travel", IsActive: true}
	suite.categoryService.On("CreateCategory", mock.Anything, testActor, mock.MatchedBy(func(req dto.CreateExpenseCategoryRequest) bool {
		return req.Code == "TRV" && len(req.Limits) == 1 && len(req.CustomFields) == 1 && req.CustomFields[0].FieldType == "Select"
	})).Return(created, nil).Once()

	w, resp := suite.post("/expense-categories/create", map[string]any{
		"code": "TRV",
		"name": "Travel",
		"limits": []map[string]any{
			{
				"limit_type":  "PerClaim",
				"amount":      "5000",
				"currency_id": 1,
			},
		},
		"custom_fields": []map[string]any{
			{
				"field_key":  "mode",
				"label":      "Mode",
				"field_type": "Select",
				"options":    []string{"Air", "Rail"},
			},
		},
	})

	suite.Equal(http.StatusCreated, w.Code)
	suite.Equal("Expense category created successfully", resp.Message)
}

func (suite *HandlerTestSuite) TestCreateCategory_MissingName() {
	w, _ := suite.post("/expense-categories/create", map[string]any{"code": "TRV"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateCategory_UnknownChildID() {
	suite.categoryService.On("UpdateCategory", mock.Anything, testActor, mock.MatchedBy(func(req dto.UpdateExpenseCategoryRequest) bool {
		return req.ID == 1 && req.Limits != nil && req.FilingRules == nil
	})).Return(nil, apperrors.NewValidationError("Unknown limit id 77")).Once()

	w, resp := suite.post("/expense-categories/update", map[string]any{
		"id":     1,
		"limits": []map[string]any{
			{
				"id":          77,
				"limit_type":  "PerClaim",
				"amount":      "100",
				"currency_id": 1,
			},
		},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Unknown limit id 77", resp.Message)
}

func (suite *HandlerTestSuite) TestUpdateCategory_EmptyChildListIsKept() {
	suite.categoryService.On("UpdateCategory", mock.Anything, testActor, mock.MatchedBy(func(req dto.UpdateExpenseCategoryRequest) bool {
		return req.Limits != nil && len(req.Limits) == 0 && req.CustomFields == nil
	})).Return(&domain.ExpenseCategory{ID: 1}, nil).Once()

	w, _ := suite.post("/expense-categories/update", `{"id": 1, "limits": []}`)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestGetCategoryTree() {
	tree := []domain.ExpenseCategory{
		{
			ID:   1,
			Code: "TRV",
			Children: []domain.ExpenseCategory{
				{ID: 2, Code: "AIR", ParentID: int64Ptr(1)},
			},
		},
	}
	suite.categoryService.On("GetCategoryTree", mock.Anything, testActor).Return(tree, nil).Once()

	w, resp := suite.post("/expense-categories/tree", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got []domain.ExpenseCategory
	suite.decode(resp.Data, &got)
	suite.Require().Len(got, 1)
	suite.Len(got[0].Children, 1)
}

func (suite *HandlerTestSuite) TestDeleteCategory_BlockedBySubCategories() {
	suite.categoryService.On("DeleteCategory", mock.Anything, testActor, int64(1)).
		Return(apperrors.NewValidationError("Cannot delete category with 2 active sub-categories")).Once()

	w, resp := suite.post("/expense-categories/delete", map[string]any{"id": 1})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Cannot delete category with 2 active sub-categories", resp.Message)
}

func (suite *HandlerTestSuite) TestListCategories_RootsOnly() {
	suite.categoryService.On("ListCategories", mock.Anything, testActor, mock.MatchedBy(func(req dto.ListExpenseCategoriesRequest) bool {
		return req.RootsOnly
	})).Return([]domain.ExpenseCategory{}, 0, nil).Once()

	w, resp := suite.post("/expense-categories/list", map[string]any{"roots_only": true})

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(0, resp.Pagination.TotalPages)
}

func (suite *HandlerTestSuite) TestCreateLocationGroup_AssignsCode() {
	group := &domain.LocationGroup{
		ID:   7,
		Code: "LG-0007",
		Name: "Metro",
		Mappings: []domain.LocationMapping{
			{ID: 1, LocationGroupID: 7, Country: "IN", City: "Mumbai"},
		},
	}
	suite.groupService.On("CreateLocationGroup", mock.Anything, testActor, mock.MatchedBy(func(req dto.CreateLocationGroupRequest) bool {
		return req.Name == "Metro" && len(req.Mappings) == 1
	})).Return(group, nil).Once()

	w, resp := suite.post("/location-groups/create", map[string]any{
		"name":     "Metro",
		"mappings": []map[string]any{
			{
				"country": "IN",
				"city":    "Mumbai",
			},
		},
	})

	suite.Equal(http.StatusCreated, w.Code)
	var got domain.LocationGroup
	suite.decode(resp.Data, &got)
	suite.Equal("LG-0007", got.Code)
}

func (suite *HandlerTestSuite) TestCreateLocationGroup_RequiresMappings() {
	w, _ := suite.post("/location-groups/create", map[string]any{"name": "Metro"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateLocationGroup_NameTaken() {
	suite.groupService.On("UpdateLocationGroup", mock.Anything, testActor, mock.Anything).
		Return(nil, apperrors.NewConflictError("Location group name already exists")).Once()

	w, resp := suite.post("/location-groups/update", map[string]any{
		"id":   2,
		"name": "Metro",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("Location group name already exists", resp.Message)
}

func (suite *HandlerTestSuite) TestDeleteLocationGroup_NotFound() {
	suite.groupService.On("DeleteLocationGroup", mock.Anything, testActor, int64(3)).
		Return(apperrors.NewNotFoundError("Location group not found")).Once()

	w, _ := suite.post("/location-groups/delete", map[string]any{"id": 3})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListLocationGroups() {
	suite.groupService.On("ListLocationGroups", mock.Anything, testActor, dto.ListLocationGroupsRequest{}).
		Return([]domain.LocationGroup{{ID: 1}}, 1, nil).Once()

	w, resp := suite.post("/location-groups/list", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(1, resp.Pagination.Total)
}
