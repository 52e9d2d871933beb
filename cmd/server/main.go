package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/email-do-dev/prodata/internal/config"
	"github.com/email-do-dev/prodata/internal/infra"
	"github.com/email-do-dev/prodata/internal/router"
	"github.com/email-do-dev/prodata/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// SAP gateway: sidecar client atrás do circuit breaker, catálogo em cache TTL
	sapCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	catalogoCache := infra.NewCatalogoCache(time.Duration(cfg.CatalogoTTLMin) * time.Minute)
	catalogo := infra.NewCatalogoGateway(infra.NewSAPClient(cfg.SAPSidecarURL), sapCB, catalogoCache)

	// Worker pool: notificações de ordem fechada e refresh do catálogo
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb, cfg.NotifyEmail)
	handlers := &worker.Handlers{
		Email:    worker.NewEmailWorker(mailer),
		Catalogo: worker.NewCatalogoWorker(catalogo),
	}
	worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb, catalogo, sapCB, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("prodata backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
