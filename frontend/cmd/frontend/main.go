package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studentcollab/collabhub/frontend/internal/router"
	"github.com/studentcollab/collabhub/frontend/internal/setup"
	"github.com/studentcollab/collabhub/shared/config"
	"github.com/studentcollab/collabhub/shared/logger"
)

const (
	readTimeout     = 5 * time.Second
	renderAllowance = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.Log.Level, cfg.Public.Log.JSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("setup failed", "error", err)
		os.Exit(1)
	}
	defer deps.Close()

	server := configureServer(router.SetupRouter(deps), cfg.Public.Port, cfg.Public.ApiTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Log.Info("starting frontend", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("graceful shutdown failed", "error", err)
	}
}

// configureServer bounds writes only when backend calls are bounded: a page
// may wait on the backend for as long as api_timeout allows (forever at 0).
func configureServer(handler http.Handler, port int, apiTimeout time.Duration) *http.Server {
	var writeTimeout time.Duration
	if apiTimeout > 0 {
		writeTimeout = apiTimeout + renderAllowance
	}
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}
