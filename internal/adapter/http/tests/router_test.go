package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/adapter/security"
	appservice "taskboard/internal/app/service"
	"taskboard/internal/config"
	"taskboard/internal/core/ports"
	"taskboard/internal/core/reorder"
	"taskboard/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const translationFolder = "../../../../pkg/translator/translation"

type repositories struct {
	db            *sqlx.DB
	driver        string
	tasks         ports.TaskRepository
	organizations ports.OrganizationRepository
	users         ports.UserRepository
	audit         ports.AuditRepository
}

// newRouter wires the full HTTP stack the way cmd/api does, on top of repos.
func newRouter(t *testing.T, repos repositories, bootstrap config.BootstrapConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		TranslationFolder:  translationFolder,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	tokens, err := security.NewJWTService("integration-secret", "taskboard", time.Hour)
	require.NoError(t, err)
	require.NoError(t, appservice.Provision(context.Background(), repos.organizations, repos.users, hasher, bootstrap))

	auditService := appservice.NewAuditService(repos.audit)
	taskService := appservice.NewTaskService(repos.tasks, reorder.NewEngine(zap.NewNop()), auditService)

	router := gin.New()
	httpadapter.RegisterRoutes(router, httpadapter.Handlers{
		Health:       handlers.NewHealthHandler(repos.db, repos.driver),
		Auth:         handlers.NewAuthHandler(appservice.NewAuthService(repos.users, repos.organizations, hasher, tokens)),
		Task:         handlers.NewTaskHandler(taskService),
		Audit:        handlers.NewAuditHandler(auditService),
		Organization: handlers.NewOrganizationHandler(appservice.NewOrganizationService(repos.organizations, auditService)),
		User:         handlers.NewUserHandler(appservice.NewUserService(repos.users)),
	}, tokens, config.RateLimitConfig{})
	return router
}

type client struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (c client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	return rec
}

func (c client) login(email, password string) client {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password})
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	var auth dto.AuthResponse
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &auth))
	return client{t: c.t, router: c.router, token: auth.AccessToken}
}

func (c client) register(req dto.RegisterRequest) (client, dto.UserItem) {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/api/auth/register", req)
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	var auth dto.AuthResponse
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &auth))
	return client{t: c.t, router: c.router, token: auth.AccessToken}, auth.User
}

func (c client) createTask(title string, extra map[string]any) dto.TaskItem {
	c.t.Helper()
	body := map[string]any{"title": title}
	for k, v := range extra {
		body[k] = v
	}
	rec := c.do(http.MethodPost, "/api/tasks", body)
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	var task dto.TaskItem
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &task))
	return task
}

func (c client) listTasks() []dto.TaskItem {
	c.t.Helper()
	rec := c.do(http.MethodGet, "/api/tasks", nil)
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	var tasks []dto.TaskItem
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	return tasks
}

// bucket returns the ids of one status column in order.
func bucket(tasks []dto.TaskItem, status string) []string {
	ids := []string{}
	for _, task := range tasks {
		if task.Status == status {
			ids = append(ids, task.ID)
		}
	}
	return ids
}
