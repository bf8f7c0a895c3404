package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"items-crud/backend/internal/config"
	dbpkg "items-crud/backend/internal/db"
	httpx "items-crud/backend/internal/http"
	"items-crud/backend/internal/obs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		obs.InitLogger("info")
		obs.Logger.Error("config_error", "error", err)
		os.Exit(1)
	}
	obs.InitLogger(cfg.LogLevel)

	store, err := dbpkg.Connect(context.Background(), cfg)
	if err != nil {
		obs.Logger.Error("bootstrap_failed", "driver", cfg.Driver, "db", cfg.DBAddr(), "error", err)
		os.Exit(1)
	}
	defer store.Close()

	srv := httpx.NewServer(store, httpx.PageInfo{DBName: cfg.DBName, DBAddr: cfg.DBAddr()})
	hs := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.R,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		obs.Logger.Info("http_listen", "addr", hs.Addr, "driver", cfg.Driver)
		errc <- hs.ListenAndServe()
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			obs.Logger.Error("http_server_error", "error", err)
			store.Close()
			os.Exit(1)
		}
	case s := <-sigc:
		obs.Logger.Info("shutdown_signal", "signal", s.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(ctx); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	obs.Logger.Info("service_stopped")
}
