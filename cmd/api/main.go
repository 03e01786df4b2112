package main

import (
	"context"

	dbadapter "taskboard/internal/adapter/db"
	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/handlers"
	httpmiddleware "taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/memory"
	"taskboard/internal/adapter/security"
	appservice "taskboard/internal/app/service"
	"taskboard/internal/config"
	"taskboard/internal/core/ports"
	"taskboard/internal/core/reorder"
	"taskboard/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type storage struct {
	db            *sqlx.DB
	tasks         ports.TaskRepository
	organizations ports.OrganizationRepository
	users         ports.UserRepository
	audit         ports.AuditRepository
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	cfg := config.LoadConfig()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	store := openStorage(cfg, logger)
	if store.db != nil {
		defer func() {
			if err := store.db.Close(); err != nil {
				logger.Warn("failed to close mysql connection", zap.Error(err))
			}
		}()
	}

	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	tokens, err := security.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		logger.Fatal("invalid token configuration", zap.Error(err))
	}

	if err := appservice.Provision(context.Background(), store.organizations, store.users, hasher, cfg.Bootstrap); err != nil {
		logger.Fatal("failed to provision bootstrap organization", zap.Error(err))
	}

	auditService := appservice.NewAuditService(store.audit)
	taskService := appservice.NewTaskService(store.tasks, reorder.NewEngine(logger.Named("reorder")), auditService)
	authService := appservice.NewAuthService(store.users, store.organizations, hasher, tokens)
	organizationService := appservice.NewOrganizationService(store.organizations, auditService)
	userService := appservice.NewUserService(store.users)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Strings("trusted_proxies", cfg.TrustedProxies), zap.Error(err))
	}
	r.Use(gin.Recovery(), httpmiddleware.MetricsMiddleware(), httpmiddleware.GinZapMiddleware(logger))
	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health:       handlers.NewHealthHandler(store.db, cfg.StorageDriver),
		Auth:         handlers.NewAuthHandler(authService),
		Task:         handlers.NewTaskHandler(taskService),
		Audit:        handlers.NewAuditHandler(auditService),
		Organization: handlers.NewOrganizationHandler(organizationService),
		User:         handlers.NewUserHandler(userService),
	}, tokens, cfg.AuthRateLimit)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("starting server", zap.String("addr", addr), zap.String("storage", cfg.StorageDriver))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}

func openStorage(cfg *config.Config, logger *zap.Logger) storage {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		return storage{
			tasks:         memory.NewTaskRepository(),
			organizations: memory.NewOrganizationRepository(),
			users:         memory.NewUserRepository(),
			audit:         memory.NewAuditRepository(),
		}
	case config.StorageMySQL:
		db, err := dbadapter.ConnectDB(cfg)
		if err != nil {
			logger.Fatal("failed to connect to mysql", zap.Error(err))
		}
		if cfg.MigrateOnStart {
			if err := dbadapter.Migrate(db, cfg.MigrationsDir); err != nil {
				logger.Fatal("failed to migrate mysql schema", zap.Error(err))
			}
		}
		return storage{
			db:            db,
			tasks:         dbadapter.NewTaskRepository(db),
			organizations: dbadapter.NewOrganizationRepository(db),
			users:         dbadapter.NewUserRepository(db),
			audit:         dbadapter.NewAuditRepository(db),
		}
	default:
		logger.Fatal("unknown storage driver", zap.String("driver", cfg.StorageDriver))
		return storage{}
	}
}
