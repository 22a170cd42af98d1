package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

const (
	rootModule      = "cms"
	recordsModule   = "cms.records"
	editorModule    = "cms.editor"
	httpModule      = "cms.http"
	importModule    = "cms.import"
	loaderModule    = "cms.loader"
	dashboardModule = "cms.dashboard"
)

// ModuleLogger resolves the named logger from provider and tags every entry
// with the module name. A nil provider yields a no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = rootModule
	}
	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

func RecordsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, recordsModule)
}

func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// ImportLogger is used by the markdown importer and its command.
func ImportLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, importModule)
}

func LoaderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, loaderModule)
}

func DashboardLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, dashboardModule)
}

// WithRecordContext adds the kind, record id and language of an editing or
// storage operation. Blank values are skipped.
func WithRecordContext(logger interfaces.Logger, kind, id, lang string) interfaces.Logger {
	fields := map[string]any{}
	if v := strings.TrimSpace(kind); v != "" {
		fields["kind"] = v
	}
	if v := strings.TrimSpace(id); v != "" {
		fields["record_id"] = v
	}
	if v := strings.TrimSpace(lang); v != "" {
		fields["lang"] = v
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
