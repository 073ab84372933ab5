package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/netutil"

	httpadapter "github.com/ymatsuda/docfiler/internal/adapters/http"
	"github.com/ymatsuda/docfiler/internal/bootstrap"
	"github.com/ymatsuda/docfiler/internal/config"
	"github.com/ymatsuda/docfiler/internal/observability/logging"
	"github.com/ymatsuda/docfiler/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("api", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	serverMetrics := metrics.NewHTTPServerMetrics("api")
	router := httpadapter.NewRouter(
		app.IngestUC,
		app.SearchUC,
		app.ExportUC,
		app.Repo,
		serverMetrics,
		httpadapter.Options{
			MaxUploadBytes:  cfg.MaxUploadBytes,
			RateLimitPerSec: cfg.RateLimitPerSec,
			RateLimitBurst:  cfg.RateLimitBurst,
			MaxConcurrent:   cfg.MaxConcurrent,
		},
	).Handler()

	server := &http.Server{
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", ":"+cfg.APIPort)
	if err != nil {
		log.Fatalf("listen error: %v", err)
	}
	if cfg.MaxOpenConns > 0 {
		listener = netutil.LimitListener(listener, cfg.MaxOpenConns)
	}

	go func() {
		slog.Info("api listening", "port", cfg.APIPort)
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api shutdown error", "error", err)
	}
}
