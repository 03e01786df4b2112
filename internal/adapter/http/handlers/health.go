package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

const (
	StatusOk        = "ok"
	StatusDown      = "down"
	healthDBTimeout = 2 * time.Second
)

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	Storage string `json:"storage"`
	Driver  string `json:"driver"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	Status            HealthServices `json:"status"`
}

// HealthHandler reports liveness. db is nil when the memory driver is in use.
type HealthHandler struct {
	db     *sqlx.DB
	driver string
}

func NewHealthHandler(db *sqlx.DB, driver string) *HealthHandler {
	return &HealthHandler{db: db, driver: driver}
}

func (h *HealthHandler) CheckHealth(c *gin.Context) {
	statusCode := http.StatusOK
	message := StatusOk

	if !h.checkStorage(c.Request.Context()) {
		statusCode = http.StatusInternalServerError
		message = StatusDown
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format(time.DateTime),
		Message:           message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	storageStatus := StatusDown
	if h.checkStorage(c.Request.Context()) {
		storageStatus = StatusOk
	}

	c.JSON(http.StatusOK, HealthAdvanced{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format(time.DateTime),
		Language:          middleware.GetLang(c),
		Status: HealthServices{
			Storage: storageStatus,
			Driver:  h.driver,
		},
	})
}

func (h *HealthHandler) checkStorage(ctx context.Context) bool {
	if h.driver == config.StorageMemory {
		return true
	}
	if h.db == nil {
		return false
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, healthDBTimeout)
	defer cancel()
	return h.db.PingContext(timeoutCtx) == nil
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
