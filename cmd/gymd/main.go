package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gym-admin-backend/config"
	"gym-admin-backend/internal/api"
	"gym-admin-backend/internal/db"
	"gym-admin-backend/internal/notification"
	"gym-admin-backend/internal/store"
)

func main() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load configuration")
	}
	log.Info().Str("path", configPath).Int("branches", len(cfg.Branches)).Msg("configuration loaded")

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	log.Info().Msg("data store initialized")

	if cfg.Notifier.Enabled {
		if cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "" {
			log.Fatal().Msg("VAPID keys must be configured when the notifier is enabled")
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, &webpushOptions)
		pool.Start(ctx)

		notifier := notification.NewNotifier(cfg, appStore, pool)
		go notifier.Run(ctx)
		log.Info().Dur("interval", cfg.Notifier.Interval).Msg("expiry notifier started")
	}

	router := api.NewRouter(cfg, appStore, &webpushOptions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server ListenAndServe")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	log.Info().Msg("shutdown signal received, stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown")
	}

	log.Info().Msg("server gracefully stopped")
}
