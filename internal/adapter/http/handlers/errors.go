package handlers

import (
	"errors"
	"net/http"

	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/domain"
	"taskboard/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeServiceError maps domain errors onto status codes. Invalid input is
// answered with invalidMsg; anything unknown is logged and answered with
// failMsg as a 500.
func writeServiceError(c *gin.Context, err error, failMsg, invalidMsg string) {
	status, msg := http.StatusInternalServerError, failMsg
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		status, msg = http.StatusNotFound, apierrors.MsgTaskNotFound
	case errors.Is(err, domain.ErrUserNotFound):
		status, msg = http.StatusNotFound, apierrors.MsgUserNotFound
	case errors.Is(err, domain.ErrOrganizationNotFound):
		status, msg = http.StatusNotFound, apierrors.MsgOrganizationNotFound
	case errors.Is(err, domain.ErrAccessDenied):
		status, msg = http.StatusForbidden, apierrors.MsgAccessDenied
	case errors.Is(err, domain.ErrForbidden):
		status, msg = http.StatusForbidden, apierrors.MsgForbidden
	case errors.Is(err, domain.ErrConflict):
		status, msg = http.StatusConflict, apierrors.MsgConflict
	case errors.Is(err, domain.ErrInvalidInput):
		status, msg = http.StatusBadRequest, invalidMsg
	case errors.Is(err, domain.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, apierrors.MsgUnauthorized
	default:
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
	}
	writeError(c, status, msg)
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, apierrors.CreateError(status, msg, middleware.GetLang(c)))
}

// callerOrAbort is only reached behind Authenticate; a missing caller is a wiring bug.
func callerOrAbort(c *gin.Context) (domain.Caller, bool) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, apierrors.MsgUnauthorized)
		return domain.Caller{}, false
	}
	return caller, true
}
