package markdowncmd

import (
	"context"
	"errors"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-bilingual-cms/internal/commands"
	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/internal/markdown"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

const importOperation = "markdown.import"

var (
	// ErrMarkdownFeatureDisabled is returned when markdown import is switched off.
	ErrMarkdownFeatureDisabled = errors.New("markdown command: feature disabled")
	// ErrLoaderRequired is returned when no content root was configured.
	ErrLoaderRequired = errors.New("markdown command: loader is required")
)

// DirectoryImporter imports markdown pairs found by a loader.
type DirectoryImporter interface {
	ImportDirectory(ctx context.Context, loader *markdown.Loader, dir string, opts markdown.Options) (*markdown.Report, error)
}

var (
	_ DirectoryImporter                        = (*markdown.Importer)(nil)
	_ command.Commander[ImportMarkdownCommand] = (*ImportMarkdownHandler)(nil)
)

// ImportMarkdownHandler runs markdown imports through the shared command handler.
type ImportMarkdownHandler struct {
	inner *commands.Handler[ImportMarkdownCommand]
}

// NewImportMarkdownHandler binds importer to the content root read by loader.
func NewImportMarkdownHandler(importer DirectoryImporter, loader *markdown.Loader, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ImportMarkdownCommand]) *ImportMarkdownHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg ImportMarkdownCommand) error {
		if !gates.markdownEnabled() {
			return ErrMarkdownFeatureDisabled
		}
		if loader == nil {
			return ErrLoaderRequired
		}
		report, err := importer.ImportDirectory(ctx, loader, strings.TrimSpace(msg.Dir), markdown.Options{DryRun: msg.DryRun})
		if err != nil {
			return err
		}
		if msg.Report != nil && report != nil {
			*msg.Report = *report
		}
		if report != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count":    report.Count(markdown.OutcomeCreated),
				"updated_count":    report.Count(markdown.OutcomeUpdated),
				"incomplete_count": report.Count(markdown.OutcomeIncomplete),
				"failed_count":     report.Count(markdown.OutcomeFailed),
				"ignored_count":    len(report.Ignored),
				"dry_run":          msg.DryRun,
			}).Info("markdown.command.import.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportMarkdownCommand]{
		commands.WithLogger[ImportMarkdownCommand](baseLogger),
		commands.WithOperation[ImportMarkdownCommand](importOperation),
		commands.WithMessageFields(func(msg ImportMarkdownCommand) map[string]any {
			fields := map[string]any{"dir": msg.Dir}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportMarkdownHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportMarkdownCommand].
func (h *ImportMarkdownHandler) Execute(ctx context.Context, msg ImportMarkdownCommand) error {
	return h.inner.Execute(ctx, msg)
}
