package logging

import (
	"maps"

	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

// WithFields attaches fields when the logger supports FieldsLogger and
// returns it untouched otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fl, ok := logger.(interfaces.FieldsLogger); ok {
		return fl.WithFields(maps.Clone(fields))
	}
	return logger
}

// Ensure never returns nil.
func Ensure(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}
