package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mvellek/eventdash/internal/xslog"
	"github.com/mvellek/eventdash/server"
)

func main() {
	cfgPath := flag.String("config", "config.toml", "path to the config file")
	flag.Parse()

	cfg, err := server.LoadConfig(*cfgPath)
	if err != nil {
		slog.Error("Failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	setupLogger(cfg.Log)
	slog.Info("Starting eventdash server", slog.String("config", cfg.String()))

	srv, err := server.New(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	srv.Start()
	defer srv.Stop()

	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGTERM, syscall.SIGINT)
	<-s
}

func setupLogger(cfg server.LogConfig) {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch cfg.Format {
	case server.LogFormatJSON:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	// Health checks fire every few seconds and would drown the access log.
	handler = xslog.NewFilterHandler(handler, func(_ context.Context, record slog.Record) bool {
		keep := true
		record.Attrs(func(attr slog.Attr) bool {
			if attr.Key == "path" && attr.Value.String() == "/healthz" {
				keep = false
				return false
			}
			return true
		})
		return keep
	})

	slog.SetDefault(slog.New(handler))
}
