package middleware

import (
	"net/http"
	"strings"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/policy"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
	callerKey    = "caller"
)

// Authenticate verifies the bearer token and stores the caller on the context.
// The client address travels with the request context for audit records.
func Authenticate(tokens ports.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeader)
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c)
			return
		}

		caller, err := tokens.Verify(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
		if err != nil {
			zap.L().Debug("rejected bearer token", zap.String("ip", c.ClientIP()), zap.Error(err))
			abortUnauthorized(c)
			return
		}

		c.Set(callerKey, caller)
		c.Request = c.Request.WithContext(domain.ContextWithOrigin(c.Request.Context(), c.ClientIP()))
		c.Next()
	}
}

// Authorize runs the role and permission check for op before the handler.
func Authorize(op policy.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetCaller(c)
		if !ok {
			abortUnauthorized(c)
			return
		}
		if err := policy.Authorize(op, caller); err != nil {
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				apierrors.CreateError(http.StatusForbidden, apierrors.MsgForbidden, GetLang(c)),
			)
			return
		}
		c.Next()
	}
}

func GetCaller(c *gin.Context) (domain.Caller, bool) {
	value, exists := c.Get(callerKey)
	if !exists {
		return domain.Caller{}, false
	}
	caller, ok := value.(domain.Caller)
	return caller, ok
}

// SetCaller is used by tests that bypass token verification.
func SetCaller(caller domain.Caller) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(callerKey, caller)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(
		http.StatusUnauthorized,
		apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, GetLang(c)),
	)
}
