package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_admin_app/internal/core/ports/services"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/SscSPs/expense_admin_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type locationGroupHandler struct {
	groupService portssvc.LocationGroupSvc
}

func newLocationGroupHandler(gs portssvc.LocationGroupSvc) *locationGroupHandler {
	return &locationGroupHandler{
		groupService: gs,
	}
}

func registerLocationGroupRoutes(rg *gin.RouterGroup, groupService portssvc.LocationGroupSvc) {
	h := newLocationGroupHandler(groupService)

	groups := rg.Group("/location-groups")
	{
		groups.POST("/create", h.createLocationGroup)
		groups.POST("/list", h.listLocationGroups)
		groups.POST("/details", h.getLocationGroup)
		groups.POST("/update", h.updateLocationGroup)
		groups.POST("/delete", h.deleteLocationGroup)
	}
}

// createLocationGroup godoc
// @Summary Create a location group
// @Description Creates a group with its country/state/city mappings. The code (LG-0001, LG-0002, ...) is assigned by the server.
// @Tags location-groups
// @Accept  json
// @Produce  json
// @Param   group body dto.CreateLocationGroupRequest true "Location group"
// @Success 201 {object} dto.Response{data=domain.LocationGroup}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Location group name already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /location-groups/create [post]
func (h *locationGroupHandler) createLocationGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLocationGroupRequest
	if !bindRequest(c, &req, "CreateLocationGroup") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	group, err := h.groupService.CreateLocationGroup(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "create location group")
		return
	}

	logger.Info("Location group created", slog.Int64("group_id", group.ID), slog.String("code", group.Code))
	respondOK(c, http.StatusCreated, "Location group created successfully", group)
}

// listLocationGroups godoc
// @Summary List location groups
// @Tags location-groups
// @Accept  json
// @Produce  json
// @Param   filter body dto.ListLocationGroupsRequest false "Filter and pagination"
// @Success 200 {object} dto.Response{data=[]domain.LocationGroup}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /location-groups/list [post]
func (h *locationGroupHandler) listLocationGroups(c *gin.Context) {
	var req dto.ListLocationGroupsRequest
	if !bindRequest(c, &req, "ListLocationGroups") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	groups, total, err := h.groupService.ListLocationGroups(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "list location groups")
		return
	}
	respondPage(c, groups, req.ToFilter(), total)
}

// getLocationGroup godoc
// @Summary Get a location group
// @Tags location-groups
// @Accept  json
// @Produce  json
// @Param   request body dto.IDRequest true "Location group ID"
// @Success 200 {object} dto.Response{data=domain.LocationGroup}
// @Failure 404 {object} dto.ErrorResponse "Location group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /location-groups/details [post]
func (h *locationGroupHandler) getLocationGroup(c *gin.Context) {
	var req dto.IDRequest
	if !bindRequest(c, &req, "GetLocationGroup") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	group, err := h.groupService.GetLocationGroup(c.Request.Context(), actor, req.ID)
	if err != nil {
		respondError(c, err, "get location group")
		return
	}
	respondOK(c, http.StatusOK, "", group)
}

// updateLocationGroup godoc
// @Summary Update a location group
// @Description Applies a partial update. When mappings are present they are reconciled by id.
// @Tags location-groups
// @Accept  json
// @Produce  json
// @Param   group body dto.UpdateLocationGroupRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=domain.LocationGroup}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Location group not found"
// @Failure 409 {object} dto.ErrorResponse "Location group name already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /location-groups/update [post]
func (h *locationGroupHandler) updateLocationGroup(c *gin.Context) {
	var req dto.UpdateLocationGroupRequest
	if !bindRequest(c, &req, "UpdateLocationGroup") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	group, err := h.groupService.UpdateLocationGroup(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "update location group")
		return
	}
	respondOK(c, http.StatusOK, "Location group updated successfully", group)
}

// deleteLocationGroup godoc
// @Summary Delete a location group
// @Tags location-groups
// @Accept  json
// @Produce  json
// @Param   request body dto.IDRequest true "Location group ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorResponse "Location group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /location-groups/delete [post]
func (h *locationGroupHandler) deleteLocationGroup(c *gin.Context) {
	var req dto.IDRequest
	if !bindRequest(c, &req, "DeleteLocationGroup") {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.groupService.DeleteLocationGroup(c.Request.Context(), actor, req.ID); err != nil {
		respondError(c, err, "delete location group")
		return
	}
	respondOK(c, http.StatusOK, "Location group deleted successfully", nil)
}
