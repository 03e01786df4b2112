package handlers

import (
	"net/http"

	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), caller)
	if err != nil {
		writeServiceError(c, err, apierrors.MsgFailListUsers, apierrors.MsgFailListUsers)
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItems(users))
}

func (h *UserHandler) Profile(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	user, err := h.userService.Profile(c.Request.Context(), caller)
	if err != nil {
		writeServiceError(c, err, apierrors.MsgFailProfile, apierrors.MsgFailProfile)
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItem(user))
}
