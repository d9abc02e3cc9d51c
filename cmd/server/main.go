// Command server runs the food-ordering HTTP API.
//
// Startup sequence: load .env and config, configure logging, open storage
// (embedded SQLite or networked PostgreSQL depending on DATABASE_URL),
// initialize the schema, seed the starter catalog, start the notification
// dispatcher, and serve until SIGINT/SIGTERM triggers a graceful shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-food-backend/internal/config"
	httpapi "github.com/tbourn/go-food-backend/internal/http"
	"github.com/tbourn/go-food-backend/internal/notify"
	"github.com/tbourn/go-food-backend/internal/observability"
	"github.com/tbourn/go-food-backend/internal/seed"
	"github.com/tbourn/go-food-backend/internal/storage"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// Best effort; the environment wins over .env values.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	st, err := storage.Open(ctx, storage.Options{
		DatabaseURL: cfg.DatabaseURL,
		SQLitePath:  cfg.DBPath,
		LogQueries:  cfg.LogLevel == "debug",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer func() { _ = st.Close() }()
	log.Info().Str("engine", string(st.Engine)).Msg("storage ready")

	if err := st.InitSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("init schema")
	}
	if err := seed.Ensure(ctx, st); err != nil {
		// A failed seed leaves an empty but functional catalog.
		log.Error().Err(err).Msg("seed starter catalog")
	}

	// Tracing
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("setup tracing")
	}

	// Notifications
	var sender notify.Sender
	if cfg.Telegram.BotToken != "" {
		ts, err := notify.NewTelegramSender(cfg.Telegram.BotToken)
		if err != nil {
			log.Error().Err(err).Msg("telegram bot unavailable, notifications disabled")
		} else {
			sender = ts
			log.Info().Int("admins", len(cfg.Telegram.AdminIDs)).Msg("telegram notifications enabled")
		}
	} else {
		log.Warn().Msg("BOT_TOKEN not set, notifications disabled")
	}
	dispatcher := notify.NewDispatcher(sender, cfg.Telegram.AdminIDs, notify.Options{
		QueueSize:   cfg.Notify.QueueSize,
		Workers:     cfg.Notify.Workers,
		SendTimeout: cfg.Notify.SendTimeout,
	})

	// HTTP
	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, st, dispatcher, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("notification drain")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
	log.Info().Msg("server stopped")
}

// setupLogging configures the global zerolog logger from config.
func setupLogging(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
