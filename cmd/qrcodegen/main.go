package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rawen554/qrcodegen/internal/app"
	"github.com/rawen554/qrcodegen/internal/config"
	"github.com/rawen554/qrcodegen/internal/logger"
	"github.com/rawen554/qrcodegen/internal/logic"
	"github.com/rawen554/qrcodegen/internal/qr"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg, err := config.ParseFlags()
	if err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}

	appLogger, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	coreLogic := logic.NewCoreLogic(cfg, qr.NewEncoder(), appLogger.Named("logic"))
	a := app.NewApp(cfg, coreLogic, appLogger.Named("app"))
	r, err := a.SetupRouter()
	if err != nil {
		return fmt.Errorf("error setting up router: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.RunAddr,
		Handler:           r,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		if cfg.EnableHTTPS {
			if err := app.EnsureCertificates(cfg.TLSCertPath, cfg.TLSKeyPath); err != nil {
				serveErr <- fmt.Errorf("error preparing certificates: %w", err)
				return
			}
			appLogger.Infof("listening on %s (https)", cfg.RunAddr)
			serveErr <- srv.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
			return
		}
		appLogger.Infof("listening on %s", cfg.RunAddr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
		appLogger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	return nil
}
