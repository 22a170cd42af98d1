package bootstrap

import (
	"fmt"
	"strings"

	cms "github.com/goliatone/go-bilingual-cms"
	markdowncmd "github.com/goliatone/go-bilingual-cms/internal/commands/markdown"
	"github.com/goliatone/go-bilingual-cms/internal/di"
	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
	pkgstorage "github.com/goliatone/go-bilingual-cms/pkg/storage"
)

// Options captures configuration for markdown CLI bootstraps.
type Options struct {
	ContentDir     string
	Pattern        string
	Recursive      bool
	StorageDriver  string
	StorageDSN     string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the cms module and the configured import handler/logger.
type Module struct {
	Module  *cms.Module
	Handler *markdowncmd.ImportMarkdownHandler
	Logger  interfaces.Logger
}

// Close releases the wrapped module.
func (m *Module) Close() error {
	if m == nil || m.Module == nil {
		return nil
	}
	return m.Module.Close()
}

// BuildModule constructs a CMS module configured for markdown imports.
func BuildModule(opts Options) (*Module, error) {
	cfg := cms.DefaultConfig()
	if err := cms.ApplyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}
	cfg.Markdown.Enabled = true
	if dir := strings.TrimSpace(opts.ContentDir); dir != "" {
		cfg.Markdown.ContentDir = dir
	}
	if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
		cfg.Markdown.Pattern = pattern
	}
	cfg.Markdown.Recursive = opts.Recursive
	// One-shot imports never register cron jobs.
	cfg.Markdown.Schedule = ""

	if driver := strings.TrimSpace(opts.StorageDriver); driver != "" {
		cfg.Storage = pkgstorage.Config{Driver: driver, DSN: strings.TrimSpace(opts.StorageDSN)}
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := cms.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise cms module: %w", err)
	}

	handler := module.Container().ImportHandler()
	if handler == nil {
		_ = module.Close()
		return nil, fmt.Errorf("markdown import handler not configured")
	}

	return &Module{
		Module:  module,
		Handler: handler,
		Logger:  logging.ImportLogger(module.Container().LoggerProvider()),
	}, nil
}
