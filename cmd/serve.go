package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/issuetrack-api/api/v1"
	"github.com/issuetrack-api/database"
	"github.com/issuetrack-api/logger"
	"github.com/issuetrack-api/metrics"
	"github.com/issuetrack-api/routes"
	"github.com/issuetrack-api/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()
		log.Info("Starting issue tracker API...", zap.String("environment", cfg.Server.Env))

		db, err := openMigrated()
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()

		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		router := routes.NewRouter(v1.Dependencies{
			Services:     services.NewContainer(db, cfg.JWT),
			Metrics:      metrics.New(cfg.MetricsPrefix),
			SecureCookie: cfg.IsProduction(),
		}, routes.Options{CORSOrigins: cfg.Server.CORSOrigins})

		srv := &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
