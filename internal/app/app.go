package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"AspectScanner/internal/config"
	"AspectScanner/internal/corpus"
	"AspectScanner/internal/engine"
	"AspectScanner/internal/export"
	"AspectScanner/internal/infrastructure/chrome"
	"AspectScanner/internal/infrastructure/static"
	"AspectScanner/internal/infrastructure/storage"
	"AspectScanner/internal/logging"
	"AspectScanner/internal/ports"
	"AspectScanner/internal/usecase"
	"AspectScanner/internal/wiktionary"
)

// Application wires configuration to engines and workflow pipelines.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *engine.Registry
}

// New builds a runnable application instance with both engines registered.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := engine.NewRegistry()
	registry.Register(config.EngineChrome, func(opts engine.Options) (ports.Browser, error) {
		return chrome.New(chrome.Config{Headless: opts.Headless}, opts.Logger)
	})
	registry.Register(config.EngineStatic, func(opts engine.Options) (ports.Browser, error) {
		return static.New(opts.Timeout, opts.Logger), nil
	})

	return &Application{cfg: cfg, logger: baseLogger, registry: registry}
}

// RunScan executes the corpus workflow over the word list file. The
// browser session is opened once and released exactly once, even when the
// batch fails partway.
func (a *Application) RunScan(ctx context.Context, wordListPath string) error {
	words, err := readWordList(wordListPath)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		a.logger.Warn("word list is empty", "path", wordListPath)
		return nil
	}

	browser, err := a.openBrowser(a.cfg.WaitTimeout())
	if err != nil {
		return err
	}
	defer func() {
		if err := browser.Quit(); err != nil {
			a.logger.Warn("browser quit failed", "error", err)
		}
	}()

	sink, err := export.NewDir(a.cfg.Output.Dir)
	if err != nil {
		return err
	}

	var journal ports.WordJournal
	if !a.cfg.Journal.Disabled {
		sqliteJournal, err := storage.Open(a.cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer sqliteJournal.Close()
		journal = sqliteJournal
	}

	session := corpus.NewSession(browser, corpus.SessionConfig{
		SeedURL:          a.cfg.SeedURL,
		SearchInputXPath: a.cfg.XPaths.SearchInput,
		Timeout:          a.cfg.WaitTimeout(),
		Delays:           a.cfg.Delays,
	}, a.cfg.Selectors, a.logger.With("component", "session"))

	batch := usecase.NewBatch(usecase.BatchDeps{
		Processor: session,
		Journal:   journal,
		Sink:      sink,
		Logger:    a.logger.With("component", "batch"),
	})

	return batch.Run(ctx, words)
}

// RunWiktionary executes the dictionary category workflow.
func (a *Application) RunWiktionary(ctx context.Context) error {
	if a.cfg.Wiktionary.CategoryURL == "" {
		return fmt.Errorf("wiktionary.category_url is required for this workflow")
	}

	browser, err := a.openNamedBrowser(a.cfg.WiktionaryEngine(), a.cfg.WiktionaryWaitTimeout())
	if err != nil {
		return err
	}
	defer func() {
		if err := browser.Quit(); err != nil {
			a.logger.Warn("browser quit failed", "error", err)
		}
	}()

	sink, err := export.NewDir(a.cfg.Output.Dir)
	if err != nil {
		return err
	}

	pipeline := usecase.NewDictionary(usecase.DictionaryDeps{
		Crawler:   wiktionary.NewCrawler(browser, a.cfg.WiktionaryWaitTimeout(), a.logger.With("component", "crawler")),
		Harvester: wiktionary.NewHarvester(browser, a.logger.With("component", "harvester")),
		Sink:      sink,
		Logger:    a.logger.With("component", "dictionary"),
	})

	return pipeline.Run(ctx, a.cfg.Wiktionary.CategoryURL)
}

func (a *Application) openBrowser(timeout time.Duration) (ports.Browser, error) {
	return a.openNamedBrowser(a.cfg.Engine, timeout)
}

func (a *Application) openNamedBrowser(name string, timeout time.Duration) (ports.Browser, error) {
	return a.registry.Open(name, engine.Options{
		Headless: a.cfg.Headless,
		Timeout:  timeout,
		Logger:   a.logger.With("component", "engine."+name),
	})
}

// readWordList loads a whitespace-separated word list file.
func readWordList(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	return strings.Fields(string(raw)), nil
}
