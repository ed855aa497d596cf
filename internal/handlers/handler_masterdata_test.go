package handlers_test

import (
	"net/http"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestMasterData_EveryKindIsRouted() {
	for _, def := range domain.MasterKindDefs() {
		suite.masterService.On("GetRecord", mock.Anything, testActor, def.Kind, int64(1)).
			Return(&domain.MasterRecord{ID: 1, Kind: def.Kind, Code: "C1"}, nil).Once()

		w, resp := suite.post("/"+def.RoutePath+"/details", map[string]any{"id": 1})

		suite.Equal(http.StatusOK, w.Code, def.RoutePath)
		var got domain.MasterRecord
		suite.decode(resp.Data, &got)
		suite.Equal(def.Kind, got.Kind, def.RoutePath)
	}
}

func (suite *HandlerTestSuite) TestMasterData_CreateZoneUnderRegion() {
	zone := &domain.MasterRecord{ID: 5, Kind: domain.KindZone, Code: "Z-N", Name: "North", ParentID: int64Ptr(2)}
	suite.masterService.On("CreateRecord", mock.Anything, testActor, domain.KindZone, mock.MatchedBy(func(req dto.CreateMasterRecordRequest) bool {
		return req.Code == "Z-N" && req.ParentID != nil && *req.ParentID == 2
	})).Return(zone, nil).Once()

	w, resp := suite.post("/zones/create", map[string]any{
		"code":      "Z-N",
		"name":      "North",
		"parent_id": 2,
	})

	suite.Equal(http.StatusCreated, w.Code)
	suite.Equal("Zone created successfully", resp.Message)
}

func (suite *HandlerTestSuite) TestMasterData_DeleteBlockedByChildren() {
	suite.masterService.On("DeleteRecord", mock.Anything, testActor, domain.KindRegion, int64(2)).
		Return(apperrors.NewValidationError("Cannot delete region with 2 active child records")).Once()

	w, resp := suite.post("/regions/delete", map[string]any{"id": 2})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Cannot delete region with 2 active child records", resp.Message)
}

func (suite *HandlerTestSuite) TestMasterData_ListWithParentFilter() {
	suite.masterService.On("ListRecords", mock.Anything, testActor, domain.KindLocation, mock.MatchedBy(func(req dto.ListMasterRecordsRequest) bool {
		return req.ParentID != nil && *req.ParentID == 5 && req.Search == "mum"
	})).Return([]domain.MasterRecord{{ID: 9, Kind: domain.KindLocation}}, 1, nil).Once()

	w, resp := suite.post("/locations/list", map[string]any{
		"parent_id": 5,
		"search":    "mum",
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.Require().NotNil(resp.Pagination)
	suite.Equal(1, resp.Pagination.Total)
}

func (suite *HandlerTestSuite) TestMasterData_UnknownKindIsNotRouted() {
	w, _ := suite.post("/planets/create", map[string]any{"code": "P", "name": "Pluto"})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestMasterData_UpdateConflict() {
	suite.masterService.On("UpdateRecord", mock.Anything, testActor, domain.KindBranch, mock.Anything).
		Return(nil, apperrors.NewConflictError("Branch code already exists")).Once()

	w, resp := suite.post("/branches/update", map[string]any{
		"id":   3,
		"code": "BR-1",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("Branch code already exists", resp.Message)
}

func (suite *HandlerTestSuite) TestCompany_Details() {
	suite.companyService.On("GetCompany", mock.Anything, testActor).
		Return(&domain.Company{ID: 1, Code: "ACME", Name: "Acme"}, nil).Once()

	w, resp := suite.post("/company/details", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got domain.Company
	suite.decode(resp.Data, &got)
	suite.Equal("Acme", got.Name)
}

func (suite *HandlerTestSuite) TestCompany_UpdateRejectsBadEmail() {
	w, _ := suite.post("/company/update", map[string]any{"email": "not-an-email"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCompany_Update() {
	suite.companyService.On("UpdateCompany", mock.Anything, testActor, mock.MatchedBy(func(req dto.UpdateCompanyRequest) bool {
		return req.Phone != nil && *req.Phone == "+91 22 1234" && req.Name == nil
	})).Return(&domain.Company{ID: 1, Phone: "+91 22 1234"}, nil).Once()

	w, resp := suite.post("/company/update", map[string]any{"phone": "+91 22 1234"})

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Company updated successfully", resp.Message)
}
