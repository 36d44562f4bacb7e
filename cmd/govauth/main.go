package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"

	"github.com/somnia-network/govauth/adapters/eth"
	"github.com/somnia-network/govauth/adapters/events"
	"github.com/somnia-network/govauth/adapters/store"
	"github.com/somnia-network/govauth/config"
	"github.com/somnia-network/govauth/service"
	transporthttp "github.com/somnia-network/govauth/transport/http"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logger.Level)
	wmLogger := watermill.NewSlogLogger(logger)

	// Publish auth events to a redis stream when a broker is configured,
	// to an in-process channel otherwise.
	var publisher message.Publisher
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Error("failed to parse redis URL", "err", err)
			os.Exit(1)
		}

		publisher, err = redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: redis.NewClient(opts)},
			wmLogger,
		)
		if err != nil {
			logger.Error("failed to create redis publisher", "err", err)
			os.Exit(1)
		}
	} else {
		publisher = gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
	}

	authService := service.NewAuthService(
		eth.NewVerifier(),
		store.NewMemoryChallengeStore(),
		store.NewMemoryTokenStore(),
		events.NewWatermillPublisher(publisher),
		logger,
		service.Config{
			MessageTemplate: cfg.Auth.MessageTemplate,
			ChallengeTTL:    cfg.Auth.ChallengeTTL,
			SessionTTL:      cfg.Auth.SessionTTL,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go authService.RunSweeper(ctx, cfg.Sweep.Interval)

	router := transporthttp.SetupRouter(authService, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("server started", "addr", addr)

	select {
	case err := <-errCh:
		logger.Error("server failed", "err", err)
		os.Exit(1)
	case <-ctx.Done():
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "err", err)
		}
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
