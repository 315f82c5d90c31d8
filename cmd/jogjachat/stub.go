package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/jogjachat/internal/api"
	"github.com/liliang-cn/jogjachat/internal/repository"
	"github.com/liliang-cn/jogjachat/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newStubCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stub",
		Short: "Run a local stand-in for the shop assistant API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cfg.Log.Level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			db, err := repository.NewDB(cfg.Stub.DBPath)
			if err != nil {
				logger.Error("Failed to initialize database", zap.Error(err))
				return err
			}
			defer db.Close()

			catalog := service.DefaultCatalog()
			sessionRepo := repository.NewSessionRepository(db)

			npcService := service.NewNPCService(catalog, sessionRepo, logger)
			adminService := service.NewAdminService(catalog, sessionRepo)

			router := api.SetupRouter(npcService, adminService, api.RouterConfig{
				APIKey:       cfg.Stub.APIKey,
				AllowOrigins: cfg.Stub.AllowOrigins,
			})

			srv := &http.Server{
				Addr:         cfg.StubAddress(),
				Handler:      router,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  120 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, ctx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				logger.Info("Starting stub assistant",
					zap.String("address", cfg.StubAddress()),
					zap.String("db_path", cfg.Stub.DBPath),
				)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			eg.Go(func() error {
				<-ctx.Done()
				logger.Info("Shutting down stub assistant...")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			if err := eg.Wait(); err != nil {
				logger.Error("Stub assistant stopped with error", zap.Error(err))
				return err
			}
			logger.Info("Stub assistant exited")
			return nil
		},
	}
}
