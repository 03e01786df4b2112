package handlers

import (
	"net/http"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService ports.AuditService
}

func NewAuditHandler(auditService ports.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) ListAuditLog(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var query dto.AuditLogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidAuditQuery)
		return
	}

	filter := domain.AuditFilter{
		UserID:     query.UserID,
		Resource:   query.Resource,
		ResourceID: query.ResourceID,
	}
	if query.Limit != nil {
		filter.Limit = *query.Limit
	}

	entries, err := h.auditService.ListAuditLog(c.Request.Context(), caller, filter)
	if err != nil {
		writeServiceError(c, err, apierrors.MsgFailListAudit, apierrors.MsgInvalidAuditQuery)
		return
	}

	c.JSON(http.StatusOK, mapper.ToAuditEntryItems(entries))
}
