package handlers

import (
	"net/http"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"

	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	organizationService ports.OrganizationService
}

func NewOrganizationHandler(organizationService ports.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{organizationService: organizationService}
}

func (h *OrganizationHandler) GetMyOrganization(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	org, err := h.organizationService.GetMyOrganization(c.Request.Context(), caller)
	if err != nil {
		writeServiceError(c, err, apierrors.MsgFailGetOrganization, apierrors.MsgInvalidOrganizationInput)
		return
	}

	c.JSON(http.StatusOK, mapper.ToOrganizationItem(org))
}

func (h *OrganizationHandler) CreateSubOrganization(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req dto.CreateSubOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidOrganizationInput)
		return
	}

	org, err := h.organizationService.CreateSubOrganization(c.Request.Context(), caller, req.Name)
	if err != nil {
		writeServiceError(c, err, apierrors.MsgFailCreateOrganization, apierrors.MsgInvalidOrganizationInput)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToOrganizationItem(org))
}
