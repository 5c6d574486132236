package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ibeloyar/oilcheckout/internal/cache"
	"github.com/ibeloyar/oilcheckout/internal/config"
	"github.com/ibeloyar/oilcheckout/internal/repository/memory"
	"github.com/ibeloyar/oilcheckout/internal/repository/orderapi"
	"github.com/ibeloyar/oilcheckout/internal/repository/pg"
	"github.com/ibeloyar/oilcheckout/internal/service"
	"github.com/ibeloyar/oilcheckout/pgk/logger"
	"github.com/ibeloyar/oilcheckout/pgk/retryablehttp"
	"go.uber.org/zap"

	httpController "github.com/ibeloyar/oilcheckout/internal/controller/http"
)

type storage interface {
	service.ConfirmationRepo
	Ping() error
	Shutdown() error
}

func Run(cfg config.Config, lg *zap.SugaredLogger) error {
	confirmations, err := newStorage(cfg, lg)
	if err != nil {
		return err
	}

	retryClient := retryablehttp.NewRetryableClient(retryablehttp.RetryConfig{
		MaxRetries: cfg.RetryMax,
		BaseDelay:  cfg.RetryBaseDelay,
		Timeout:    cfg.RequestTimeout,
	})
	api := orderapi.New(cfg.OrderAPIAddress, retryClient)

	s := service.New(api, confirmations, cache.New(), lg, cfg.SessionLifetime, cfg.SecretKey)

	router := chi.NewRouter()

	router.Use(logger.LoggingMiddleware(lg))
	router.Use(middleware.Recoverer)

	handlers := httpController.New(s, confirmations, lg)
	router = httpController.InitRoutes(router, handlers, handlers, cfg.SecretKey)

	srv := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: router,
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(cfg.WarmupShopIDs) > 0 {
		go s.Warmup(signalCtx, cfg.WarmupShopIDs)
	}

	lg.Infof("starting server on %s, order api %s", cfg.RunAddress, cfg.OrderAPIAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatalf("server ListenAndServe error: %v", err)
		}
	}()

	<-signalCtx.Done()
	lg.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown (server) error: %v", err)
	}

	if err := confirmations.Shutdown(); err != nil {
		return fmt.Errorf("shutdown (repo) error: %v", err)
	}

	lg.Info("server shutdown success")
	return nil
}

// newStorage - без DATABASE_URI подтверждения живут в памяти процесса.
func newStorage(cfg config.Config, lg *zap.SugaredLogger) (storage, error) {
	if cfg.DatabaseURI == "" {
		lg.Warn("DATABASE_URI is empty, order confirmations are kept in memory")
		return memory.New(), nil
	}

	return pg.New(cfg.DatabaseURI)
}
