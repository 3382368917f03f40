package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/albinolog/contracts/internal/browser"
	"github.com/albinolog/contracts/internal/config"
	"github.com/albinolog/contracts/internal/excel"
	"github.com/albinolog/contracts/internal/generator"
	"github.com/albinolog/contracts/internal/handoff"
	"github.com/albinolog/contracts/internal/logger"
	"github.com/albinolog/contracts/internal/pdf"
	"github.com/albinolog/contracts/internal/service"
	"github.com/albinolog/contracts/internal/store"
)

// app holds the global flags and the collaborators the commands build
// their services from. Tests swap the function fields.
type app struct {
	profile  string
	dataPath string
	verbose  bool

	loadConfig   func() (*config.Config, error)
	openBackend  func(path string) (store.Backend, func(), error)
	newGenerator func(ctx context.Context, cfg *config.Config, log zerolog.Logger) (service.ContractGenerator, error)
	dispatcher   handoff.Dispatcher
	printer      service.HTMLPrinter
}

type services struct {
	cfg       *config.Config
	quotes    *service.QuoteService
	documents *service.DocumentService
	handoffs  *service.HandoffService
	close     func()
}

func newApp() *app {
	return &app{
		loadConfig: config.Load,
		openBackend: func(path string) (store.Backend, func(), error) {
			backend, err := store.NewSQLiteBackend(path)
			if err != nil {
				return nil, nil, err
			}
			return backend, func() { _ = backend.Close() }, nil
		},
		newGenerator: func(ctx context.Context, cfg *config.Config, log zerolog.Logger) (service.ContractGenerator, error) {
			model, err := generator.NewGeminiModel(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
			if err != nil {
				return nil, err
			}
			client, err := generator.New(model, log)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
		dispatcher: browser.Opener{},
		printer:    browser.Printer{},
	}
}

func defaultDataPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "albino", "profile.db")
}

func (a *app) logger(cfg *config.Config) zerolog.Logger {
	log := logger.NewWithWriter(cfg.Environment, zerolog.ConsoleWriter{Out: os.Stderr})
	if !a.verbose {
		log = log.Level(zerolog.WarnLevel)
	}
	return log
}

// services wires the pipeline over the local profile. The generator is only
// built for commands that submit quotes, so the rest work offline.
func (a *app) services(cmd *cobra.Command, withGenerator bool) (*services, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	log := a.logger(cfg)

	var gen service.ContractGenerator
	if withGenerator {
		gen, err = a.newGenerator(cmd.Context(), cfg, log)
		if err != nil {
			return nil, err
		}
	}

	backend, closeBackend, err := a.openBackend(a.dataPath)
	if err != nil {
		return nil, err
	}

	quotes := service.NewQuoteService(gen, store.NewFactory(backend), log)
	documents := service.NewDocumentService(quotes, pdf.NewGenerator(), excel.NewGenerator())
	if a.printer != nil {
		documents.WithPrinter(a.printer)
	}
	handoffs := service.NewHandoffService(
		quotes,
		handoff.NewBuilder(cfg.Handoff.Contact),
		a.dispatcher,
		cfg.Handoff.ClearOnDispatch,
		log,
	)
	return &services{
		cfg:       cfg,
		quotes:    quotes,
		documents: documents,
		handoffs:  handoffs,
		close:     closeBackend,
	}, nil
}
