package http

import (
	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/config"
	"taskboard/internal/core/policy"
	"taskboard/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Task         *handlers.TaskHandler
	Audit        *handlers.AuditHandler
	Organization *handlers.OrganizationHandler
	User         *handlers.UserHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers, tokens ports.TokenService, authLimit config.RateLimitConfig) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)
	}

	auth := api.Group("/auth", middleware.RateLimit(authLimit.PerSecond, authLimit.Burst))
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	secured := api.Group("")
	secured.Use(middleware.Authenticate(tokens))
	{
		secured.GET("/tasks", middleware.Authorize(policy.OpListTasks), h.Task.ListTasks)
		secured.POST("/tasks", middleware.Authorize(policy.OpCreateTask), h.Task.CreateTask)
		secured.GET("/tasks/:id", middleware.Authorize(policy.OpGetTask), h.Task.GetTask)
		secured.PUT("/tasks/:id", middleware.Authorize(policy.OpUpdateTask), h.Task.UpdateTask)
		secured.PATCH("/tasks/:id", middleware.Authorize(policy.OpUpdateTask), h.Task.UpdateTask)
		secured.DELETE("/tasks/:id", middleware.Authorize(policy.OpDeleteTask), h.Task.DeleteTask)
		secured.PUT("/tasks/:id/reorder", middleware.Authorize(policy.OpReorderTask), h.Task.ReorderTask)

		secured.GET("/audit-log", middleware.Authorize(policy.OpListAuditLog), h.Audit.ListAuditLog)

		secured.GET("/organizations/me", middleware.Authorize(policy.OpGetOrganization), h.Organization.GetMyOrganization)
		secured.POST("/organizations/sub", middleware.Authorize(policy.OpCreateSubOrganization), h.Organization.CreateSubOrganization)

		secured.GET("/users", middleware.Authorize(policy.OpListUsers), h.User.ListUsers)
		secured.GET("/users/me", middleware.Authorize(policy.OpGetProfile), h.User.Profile)
	}
}
