package handlers

import (
	"errors"
	"net/http"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidAuthPayload)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), domain.RegisterInput{
		Email:            req.Email,
		Password:         req.Password,
		Name:             req.Name,
		OrganizationName: req.OrganizationName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			writeError(c, http.StatusConflict, apierrors.MsgEmailTaken)
			return
		}
		writeServiceError(c, err, apierrors.MsgFailRegister, apierrors.MsgInvalidAuthPayload)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToAuthResponse(result))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, apierrors.MsgInvalidAuthPayload)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), domain.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		writeServiceError(c, err, apierrors.MsgFailLogin, apierrors.MsgInvalidAuthPayload)
		return
	}

	c.JSON(http.StatusOK, mapper.ToAuthResponse(result))
}
