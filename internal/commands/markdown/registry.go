package markdowncmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-bilingual-cms/internal/commands"
	"github.com/goliatone/go-bilingual-cms/internal/markdown"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	importHandlerOpts []commands.HandlerOption[ImportMarkdownCommand]
}

// WithImportHandlerOptions forwards options to the import handler constructor.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportMarkdownCommand]) Option {
	return func(cfg *options) {
		cfg.importHandlerOpts = append(cfg.importHandlerOpts, opts...)
	}
}

// RegisterMarkdownCommands builds the import handler and registers it with reg.
func RegisterMarkdownCommands(reg CommandRegistry, importer DirectoryImporter, loader *markdown.Loader, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*ImportMarkdownHandler, error) {
	if importer == nil {
		return nil, errors.New("markdown command registration: importer is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	handler := NewImportMarkdownHandler(importer, loader, commands.CommandLogger(provider, "markdown"), gates, cfg.importHandlerOpts...)
	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return handler, nil
}

// RegisterMarkdownCron schedules msg on reg using cfg. The handler runs
// with a background context.
func RegisterMarkdownCron(reg CronRegistrar, handler *ImportMarkdownHandler, cfg command.HandlerConfig, msg ImportMarkdownCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
