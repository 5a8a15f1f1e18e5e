package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/go-chi/chi/v5"
	"github.com/linkfold/linkfold/internal/container"
	"github.com/linkfold/linkfold/internal/messaging"
	"github.com/linkfold/linkfold/internal/reaper"
	"github.com/samber/do"
	"go.uber.org/zap"
)

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *container.Options) {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}

		injector, err := container.New(options, logger)
		if err != nil {
			logger.Fatal("failed to build application", zap.Error(err))
		}

		var server *http.Server

		hooks.OnStart(func() {
			ctx := context.Background()

			consumers := do.MustInvoke[*messaging.ConsumerGroup](injector)
			if err := consumers.Start(ctx); err != nil {
				logger.Fatal("failed to start invalidation consumers", zap.Error(err))
			}

			mappingReaper := do.MustInvoke[*reaper.Reaper](injector)
			if err := mappingReaper.Start(ctx); err != nil {
				logger.Fatal("failed to start reaper", zap.Error(err))
			}

			router := do.MustInvoke[*chi.Mux](injector)

			server = &http.Server{
				Addr:              fmt.Sprintf(":%d", options.Port),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			logger.Info("server starting",
				zap.Int("port", options.Port),
				zap.String("strategy", options.CodeStrategy),
			)

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("server failed", zap.Error(err))
			}
		})

		hooks.OnStop(func() {
			logger.Info("shutting down")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if server != nil {
				if err := server.Shutdown(ctx); err != nil {
					logger.Error("server shutdown error", zap.Error(err))
				}
			}

			if err := injector.Shutdown(); err != nil {
				logger.Error("service shutdown error", zap.Error(err))
			}

			logger.Info("shutdown complete")
		})
	})

	cli.Run()
}
