package http

import (
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5/middleware"
	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-bilingual-cms/internal/bilingual"
	markdowncmd "github.com/goliatone/go-bilingual-cms/internal/commands/markdown"
	"github.com/goliatone/go-bilingual-cms/internal/records"
	"github.com/goliatone/go-bilingual-cms/internal/validation"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

// Error codes carried in the "error" field of error responses.
const (
	CodeNotFound             = "not_found"
	CodeUnknownKind          = "unknown_kind"
	CodeInvalidPayload       = "validation_failed"
	CodeIncomplete           = "translation_incomplete"
	CodeInvalidSlug          = "invalid_slug"
	CodeConflict             = "conflict"
	CodeBadRequest           = "bad_request"
	CodeConfirmationRequired = "confirmation_required"
	CodeUnavailable          = "unavailable"
	CodeInternal             = "internal_error"
)

type errorResponse struct {
	Error     string                       `json:"error"`
	Message   string                       `json:"message,omitempty"`
	Missing   []string                     `json:"missing,omitempty"`
	Items     []bilingual.ItemGap          `json:"items,omitempty"`
	Issues    []validation.ValidationIssue `json:"issues,omitempty"`
	RequestID string                       `json:"requestId,omitempty"`
}

// requestError is raised by the handlers themselves.
type requestError struct {
	status int
	code   string
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func newRequestError(status int, code, message string) error {
	return &requestError{status: status, code: code, msg: message}
}

func writeError(w http.ResponseWriter, r *http.Request, logger interfaces.Logger, err error) {
	status, payload := mapError(err)
	payload.RequestID = middleware.GetReqID(r.Context())
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error("http.request.failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		logger.Debug("http.request.rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return reqErr.status, errorResponse{Error: reqErr.code, Message: reqErr.msg}
	}

	var incomplete *records.IncompleteError
	if errors.As(err, &incomplete) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   CodeIncomplete,
			Message: "both languages must be complete before saving",
			Missing: incomplete.Missing,
			Items:   incomplete.Items,
		}
	}

	if errors.Is(err, validation.ErrSchemaValidation) || errors.Is(err, validation.ErrSchemaInvalid) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   CodeInvalidPayload,
			Message: "payload does not match the kind's schema",
			Issues:  validation.Issues(err),
		}
	}

	var notFound *records.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, errorResponse{
			Error:   CodeNotFound,
			Message: notFound.Error(),
		}
	}

	if errors.Is(err, records.ErrUnknownKind) ||
		errors.Is(err, records.ErrNotCollection) ||
		errors.Is(err, records.ErrNotSingleton) {
		return http.StatusNotFound, errorResponse{
			Error:   CodeUnknownKind,
			Message: err.Error(),
		}
	}

	if errors.Is(err, records.ErrSlugExists) || errors.Is(err, records.ErrRecordExists) {
		return http.StatusConflict, errorResponse{
			Error:   CodeConflict,
			Message: err.Error(),
		}
	}

	if errors.Is(err, records.ErrInvalidSlug) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   CodeInvalidSlug,
			Message: err.Error(),
		}
	}

	if errors.Is(err, markdowncmd.ErrMarkdownFeatureDisabled) || errors.Is(err, markdowncmd.ErrLoaderRequired) {
		return http.StatusServiceUnavailable, errorResponse{
			Error:   CodeUnavailable,
			Message: err.Error(),
		}
	}

	var fields ozzo.Errors
	if errors.As(err, &fields) {
		return http.StatusBadRequest, errorResponse{
			Error:   CodeBadRequest,
			Message: "request is invalid",
			Issues:  fieldIssues(fields),
		}
	}

	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return http.StatusBadRequest, errorResponse{
			Error:   CodeBadRequest,
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   CodeInternal,
		Message: "internal error",
	}
}

func fieldIssues(fields ozzo.Errors) []validation.ValidationIssue {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	issues := make([]validation.ValidationIssue, 0, len(keys))
	for _, key := range keys {
		if fields[key] == nil {
			continue
		}
		issues = append(issues, validation.ValidationIssue{Location: key, Message: fields[key].Error()})
	}
	return issues
}
