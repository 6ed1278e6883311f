package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"storefront/api"
	"storefront/config"
	"storefront/infrastructure/persistence/mysql"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the assembled application.
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
	worker *mysql.OutboxWorker
}

// Run starts the HTTP server and, when configured, the outbox worker, then
// blocks until SIGINT or SIGTERM and shuts both down gracefully.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.worker != nil {
		go func() {
			if err := a.worker.Run(ctx); err != nil && err != context.Canceled {
				logger.Error("Outbox worker exited with error", zap.Error(err))
			}
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	logger.Info("Server stopped")
	_ = logger.Sync()
	return nil
}

// GetEngine exposes the gin engine for tests.
func (a *App) GetEngine() *gin.Engine {
	return a.router.GetEngine()
}
