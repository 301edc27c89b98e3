package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hartlco/masto-rss/app/api"
	"github.com/hartlco/masto-rss/app/bluesky"
	"github.com/hartlco/masto-rss/app/cfg"
	"github.com/hartlco/masto-rss/app/mastodon"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting masto-rss server", "version", appCfg.Version)

	mastodonClient := mastodon.NewClient(appCfg.UserAgent)
	blueskyClient := bluesky.NewClient(bluesky.DefaultServiceURL, appCfg.UserAgent,
		appCfg.BlueskyIdentifier, appCfg.BlueskyPassword)

	handler := api.NewHandler(mastodonClient, blueskyClient,
		appCfg.HasBlueskyCredentials(), appCfg.Version)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		slog.Info("Endpoints available",
			"mastodon", "/<instance>/<access_token>",
			"bluesky", "/bluesky or /bluesky/<access_token>",
			"health", "/health")
		if appCfg.HasBlueskyCredentials() {
			slog.Info("Bluesky credentials mode enabled", "identifier", appCfg.BlueskyIdentifier)
		}

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}
