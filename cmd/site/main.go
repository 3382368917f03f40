package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/albinolog/contracts/internal/config"
	"github.com/albinolog/contracts/internal/excel"
	"github.com/albinolog/contracts/internal/generator"
	"github.com/albinolog/contracts/internal/handoff"
	httphandler "github.com/albinolog/contracts/internal/http"
	"github.com/albinolog/contracts/internal/http/middleware"
	"github.com/albinolog/contracts/internal/logger"
	"github.com/albinolog/contracts/internal/pdf"
	"github.com/albinolog/contracts/internal/service"
	"github.com/albinolog/contracts/internal/session"
	"github.com/albinolog/contracts/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)
	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("site stopped")
		os.Exit(1)
	}
}

// run owns every resource it opens; they are released before it returns.
func run(cfg *config.Config, log zerolog.Logger) error {
	ctx := context.Background()

	backend, closeBackend, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	defer closeBackend()

	model, err := generator.NewGeminiModel(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return fmt.Errorf("init gemini model: %w", err)
	}
	contracts, err := generator.New(model, log)
	if err != nil {
		return fmt.Errorf("init contract generator: %w", err)
	}

	quotes := service.NewQuoteService(contracts, store.NewFactory(backend), log)
	documents := service.NewDocumentService(quotes, pdf.NewGenerator(), excel.NewGenerator())
	handoffs := service.NewHandoffService(
		quotes,
		handoff.NewBuilder(cfg.Handoff.Contact),
		handoff.ReturnLink{},
		cfg.Handoff.ClearOnDispatch,
		log,
	)

	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL)
	handler := httphandler.NewHandler(quotes, documents, handoffs, log)
	sessionMiddleware := middleware.Session(sessions, cfg.Environment == "production")
	router := httphandler.NewRouter(handler, sessionMiddleware, log, httphandler.RouterOptions{
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
	})

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Str("store", cfg.Store.Driver).Str("model", model.Name()).Msg("starting site")
	return router.Run(addr)
}

// openStore is swapped in tests.
var openStore = openBackend

func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreRedis:
		backend, err := store.NewRedisBackend(ctx, store.RedisConfig{
			Addr:        cfg.Store.RedisAddr,
			Password:    cfg.Store.RedisPassword,
			DB:          cfg.Store.RedisDB,
			DialTimeout: 5 * time.Second,
			ReadTimeout: 3 * time.Second,
			TTL:         cfg.Session.TTL,
		})
		if err != nil {
			return nil, nil, err
		}
		return backend, func() { _ = backend.Close() }, nil
	case config.StoreSQLite:
		backend, err := store.NewSQLiteBackend(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return backend, func() { _ = backend.Close() }, nil
	default:
		return store.NewMemoryBackend(), func() {}, nil
	}
}

