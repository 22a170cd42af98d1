package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-bilingual-cms/internal/records"
	"github.com/goliatone/go-bilingual-cms/internal/validation"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"

	RecordIncompleteCode = "RECORD_TRANSLATION_INCOMPLETE"
	RecordSchemaCode     = "RECORD_SCHEMA_INVALID"
	RecordNotFoundCode   = "RECORD_NOT_FOUND"
	RecordConflictCode   = "RECORD_CONFLICT"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(commandContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(commandContextErrorCode)
	}
}

// wrapExecuteError tags record failures the caller can fix (missing
// translations, malformed payloads) as validation errors; everything else
// is a command failure.
func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	var (
		incomplete *records.IncompleteError
		payload    *validation.PayloadValidationError
		notFound   *records.NotFoundError
	)
	switch {
	case errors.As(err, &incomplete):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "record is missing translations").
			WithTextCode(RecordIncompleteCode)
	case errors.As(err, &payload):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "record payload is invalid").
			WithTextCode(RecordSchemaCode)
	case errors.As(err, &notFound):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "record not found").
			WithTextCode(RecordNotFoundCode)
	case errors.Is(err, records.ErrSlugExists), errors.Is(err, records.ErrRecordExists):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "record conflicts with an existing one").
			WithTextCode(RecordConflictCode)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return wrapContextError(err)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
			WithTextCode(commandExecuteFailed)
	}
}
