package recordscmd

import (
	"errors"

	"github.com/goliatone/go-bilingual-cms/internal/commands"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

// CommandRegistry is the registration contract shared with go-command registries.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the record command handlers.
type HandlerSet struct {
	Save   *SaveRecordHandler
	Delete *DeleteRecordHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	saveOpts   []commands.HandlerOption[SaveRecordCommand]
	deleteOpts []commands.HandlerOption[DeleteRecordCommand]
}

// WithSaveHandlerOptions forwards options to the save handler.
func WithSaveHandlerOptions(opts ...commands.HandlerOption[SaveRecordCommand]) Option {
	return func(cfg *options) {
		cfg.saveOpts = append(cfg.saveOpts, opts...)
	}
}

// WithDeleteHandlerOptions forwards options to the delete handler.
func WithDeleteHandlerOptions(opts ...commands.HandlerOption[DeleteRecordCommand]) Option {
	return func(cfg *options) {
		cfg.deleteOpts = append(cfg.deleteOpts, opts...)
	}
}

// RegisterRecordCommands builds the record handlers and registers them
// with reg when one is supplied.
func RegisterRecordCommands(reg CommandRegistry, service RecordService, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("records command registration: service is nil")
	}
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "records")
	set := &HandlerSet{
		Save:   NewSaveRecordHandler(service, logger, cfg.saveOpts...),
		Delete: NewDeleteRecordHandler(service, logger, cfg.deleteOpts...),
	}
	if reg != nil {
		if err := reg.RegisterCommand(set.Save); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Delete); err != nil {
			return nil, err
		}
	}
	return set, nil
}
