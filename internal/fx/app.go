package fx

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"groupassign/internal/api"
	"groupassign/internal/audit"
	"groupassign/internal/cache"
	"groupassign/internal/config"
	"groupassign/internal/database"
	"groupassign/internal/driver"
)

// AppModule wires the assignment service on top of CoreModule and starts
// the HTTP server.
var AppModule = fx.Module("app",
	fx.Provide(
		NewDriver,
		NewAuditStore,
		NewAPIService,
		NewAPIHandler,
	),
	fx.Invoke(
		RunMigrations,
		RegisterRoutes,
		StartServer,
	),
)

// NewDriver returns a Driver using the default solver backend, with its
// population ceiling and nondeterminism default sourced from config.
func NewDriver(log *zap.Logger, cfg *config.Config) *driver.Driver {
	return driver.New(log, nil, cfg.Solver.PopulationCeiling, cfg.Solver.Nondeterministic)
}

// NewAuditStore returns the invocation-record store.
func NewAuditStore(db *gorm.DB, log *zap.Logger) *audit.Store {
	return audit.NewStore(db, log)
}

// NewAPIService wires the driver, cache and audit store behind one service.
func NewAPIService(d *driver.Driver, c cache.ResultCache, a *audit.Store, log *zap.Logger, cfg *config.Config) *api.Service {
	ttl := time.Duration(cfg.Solver.CacheTTLSeconds) * time.Second
	return api.NewService(d, c, a, log, ttl)
}

// NewAPIHandler binds the service to its gin routes.
func NewAPIHandler(service *api.Service) *api.Handler {
	return api.NewHandler(service)
}

// RunMigrations runs the audit store's schema migration before the server
// starts accepting requests.
func RunMigrations(db *gorm.DB, log *zap.Logger) {
	if err := database.AutoMigrate(db, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
}

// RegisterRoutes mounts the assignment API on the router.
func RegisterRoutes(router *gin.Engine, handler *api.Handler, log *zap.Logger) {
	handler.Register(router)
	log.Info("routes registered")
}

// StartServer starts the HTTP server with graceful shutdown on fx stop.
func StartServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Config, log *zap.Logger) {
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting HTTP server", zap.String("addr", server.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
