// poolwatch polls the Braiins Pool API on a schedule, records the
// history in SQLite and pushes live snapshots to websocket clients.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shadowylab/braiinspool/internal/infra"
	"github.com/shadowylab/braiinspool/internal/monitor"
	"github.com/shadowylab/braiinspool/internal/storage"
	"github.com/shadowylab/braiinspool/pkg/braiins"
)

func main() {
	configPath := flag.String("config", "poolwatch.yaml", "path to config file")
	flag.Parse()

	cfg, err := infra.LoadConfig(*configPath)
	if err != nil {
		slog.Error("❌ Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	slog.SetDefault(infra.NewLogger(cfg))

	client, err := buildClient(cfg)
	if err != nil {
		slog.Error("❌ Failed to build API client", slog.Any("error", err))
		os.Exit(1)
	}

	store, err := storage.NewStore(cfg.Storage.DBPath)
	if err != nil {
		slog.Error("❌ Failed to open history store", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	hub := monitor.NewHub()
	defer hub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller := monitor.NewPoller(client, store, hub, cfg.PollInterval())
	poller.Start(ctx)
	defer poller.Stop()

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)

	server := &http.Server{
		Addr:              cfg.Monitor.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("🚀 poolwatch listening", slog.String("addr", cfg.Monitor.ListenAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown incomplete", slog.Any("error", err))
	}
}

func buildClient(cfg *infra.Config) (*braiins.Client, error) {
	opts := []braiins.Option{}
	if cfg.API.BaseURL != "" {
		opts = append(opts, braiins.WithBaseURL(cfg.API.BaseURL))
	}
	if cfg.API.AuthHeader != "" {
		opts = append(opts, braiins.WithAuthHeader(cfg.API.AuthHeader))
	}
	if cfg.API.TimeoutSec > 0 {
		opts = append(opts, braiins.WithTimeout(cfg.Timeout()))
	}
	if cfg.API.SocksProxy != "" {
		opts = append(opts, braiins.WithSOCKS5Proxy(cfg.API.SocksProxy))
	}
	return braiins.New(cfg.API.APIKey, opts...)
}
