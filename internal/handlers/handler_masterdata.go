package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_admin_app/internal/core/ports/services"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/SscSPs/expense_admin_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// masterDataHandler serves the CRUD surface of one master-data kind.
type masterDataHandler struct {
	def           domain.MasterKindDef
	masterService portssvc.MasterDataSvc
}

func newMasterDataHandler(def domain.MasterKindDef, ms portssvc.MasterDataSvc) *masterDataHandler {
	return &masterDataHandler{
		def:           def,
		masterService: ms,
	}
}

// registerMasterDataRoutes mounts /{kind}/create|list|details|update|delete for every kind.
func registerMasterDataRoutes(rg *gin.RouterGroup, masterService portssvc.MasterDataSvc) {
	for _, def := range domain.MasterKindDefs() {
		h := newMasterDataHandler(def, masterService)

		records := rg.Group("/" + def.RoutePath)
		{
			records.POST("/create", h.createRecord)
			records.POST("/list", h.listRecords)
			records.POST("/details", h.getRecord)
			records.POST("/update", h.updateRecord)
			records.POST("/delete", h.deleteRecord)
		}
	}
}

func (h *masterDataHandler) action(verb string) string {
	return verb + " " + string(h.def.Kind)
}

// createRecord godoc
// @Summary Create a master-data record
// @Description Creates a record of the kind in the path (branches, divisions, regions, zones, cost-centers, grades, business-units, channels, locations). Zones need a region parent and locations a zone parent.
// @Tags master-data
// @Accept  json
// @Produce  json
// @Param   kind path string true "Record kind"
// @Param   record body dto.CreateMasterRecordRequest true "Record details"
// @Success 201 {object} dto.Response{data=domain.MasterRecord}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /{kind}/create [post]
func (h *masterDataHandler) createRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMasterRecordRequest
	if !bindRequest(c, &req, h.action("create")) {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	record, err := h.masterService.CreateRecord(c.Request.Context(), actor, h.def.Kind, req)
	if err != nil {
		respondError(c, err, h.action("create"))
		return
	}

	logger.Info("Master record created", slog.String("kind", string(h.def.Kind)), slog.Int64("record_id", record.ID))
	respondOK(c, http.StatusCreated, h.def.Label+" created successfully", record)
}

// listRecords godoc
// @Summary List master-data records
// @Description Lists records of the kind in the path with search, parent filter and pagination
// @Tags master-data
// @Accept  json
// @Produce  json
// @Param   kind path string true "Record kind"
// @Param   filter body dto.ListMasterRecordsRequest false "Filter and pagination"
// @Success 200 {object} dto.Response{data=[]domain.MasterRecord}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /{kind}/list [post]
func (h *masterDataHandler) listRecords(c *gin.Context) {
	var req dto.ListMasterRecordsRequest
	if !bindRequest(c, &req, h.action("list")) {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	records, total, err := h.masterService.ListRecords(c.Request.Context(), actor, h.def.Kind, req)
	if err != nil {
		respondError(c, err, h.action("list"))
		return
	}
	respondPage(c, records, req.ToFilter().ListFilter, total)
}

// getRecord godoc
// @Summary Get a master-data record
// @Tags master-data
// @Accept  json
// @Produce  json
// @Param   kind path string true "Record kind"
// @Param   request body dto.IDRequest true "Record ID"
// @Success 200 {object} dto.Response{data=domain.MasterRecord}
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /{kind}/details [post]
func (h *masterDataHandler) getRecord(c *gin.Context) {
	var req dto.IDRequest
	if !bindRequest(c, &req, h.action("get")) {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	record, err := h.masterService.GetRecord(c.Request.Context(), actor, h.def.Kind, req.ID)
	if err != nil {
		respondError(c, err, h.action("get"))
		return
	}
	respondOK(c, http.StatusOK, "", record)
}

// updateRecord godoc
// @Summary Update a master-data record
// @Tags master-data
// @Accept  json
// @Produce  json
// @Param   kind path string true "Record kind"
// @Param   record body dto.UpdateMasterRecordRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=domain.MasterRecord}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 409 {object} dto.ErrorResponse "Code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /{kind}/update [post]
func (h *masterDataHandler) updateRecord(c *gin.Context) {
	var req dto.UpdateMasterRecordRequest
	if !bindRequest(c, &req, h.action("update")) {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	record, err := h.masterService.UpdateRecord(c.Request.Context(), actor, h.def.Kind, req)
	if err != nil {
		respondError(c, err, h.action("update"))
		return
	}
	respondOK(c, http.StatusOK, h.def.Label+" updated successfully", record)
}

// deleteRecord godoc
// @Summary Delete a master-data record
// @Description Soft-deletes a record. Records with active children cannot be deleted.
// @Tags master-data
// @Accept  json
// @Produce  json
// @Param   kind path string true "Record kind"
// @Param   request body dto.IDRequest true "Record ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse "Record has active children"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /{kind}/delete [post]
func (h *masterDataHandler) deleteRecord(c *gin.Context) {
	var req dto.IDRequest
	if !bindRequest(c, &req, h.action("delete")) {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.masterService.DeleteRecord(c.Request.Context(), actor, h.def.Kind, req.ID); err != nil {
		respondError(c, err, h.action("delete"))
		return
	}
	respondOK(c, http.StatusOK, h.def.Label+" deleted successfully", nil)
}

// companyHandler serves the caller's own company record.
type companyHandler struct {
	companyService portssvc.CompanySvc
}

func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvc) {
	h := &companyHandler{companyService: companyService}

	company := rg.Group("/company")
	{
		company.POST("/details", h.getCompany)
		company.POST("/update", h.updateCompany)
	}
}

// getCompany godoc
// @Summary Get company details
// @Tags company
// @Produce  json
// @Success 200 {object} dto.Response{data=domain.Company}
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /company/details [post]
func (h *companyHandler) getCompany(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "get company")
		return
	}
	respondOK(c, http.StatusOK, "", company)
}

// updateCompany godoc
// @Summary Update company details
// @Tags company
// @Accept  json
// @Produce  json
// @Param   company body dto.UpdateCompanyRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=domain.Company}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /company/update [post]
func (h *companyHandler) updateCompany(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if !bindRequest(c, &req, "UpdateCompany") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "update company")
		return
	}
	respondOK(c, http.StatusOK, "Company updated successfully", company)
}
