package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-bilingual-cms/internal/bilingual"
	"github.com/goliatone/go-bilingual-cms/internal/validation"
)

const (
	codeIncomplete  = "translation_incomplete"
	codeNotFound    = "not_found"
	codeUnknownKind = "unknown_kind"
	codeConflict    = "conflict"
)

// APIError is a non-success response decoded from the API error body.
type APIError struct {
	Status    int                          `json:"-"`
	Code      string                       `json:"error"`
	Message   string                       `json:"message,omitempty"`
	Missing   []string                     `json:"missing,omitempty"`
	Items     []bilingual.ItemGap          `json:"items,omitempty"`
	Issues    []validation.ValidationIssue `json:"issues,omitempty"`
	RequestID string                       `json:"requestId,omitempty"`
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return fmt.Sprintf("client: api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("client: api error %d (%s)", e.Status, e.Code)
}

// Incomplete reports whether the save was refused for missing translations.
func (e *APIError) Incomplete() bool {
	return e != nil && e.Code == codeIncomplete
}

// NotFound reports a missing record or an unknown kind.
func (e *APIError) NotFound() bool {
	return e != nil && (e.Status == http.StatusNotFound || e.Code == codeNotFound || e.Code == codeUnknownKind)
}

// Conflict reports a slug or id collision.
func (e *APIError) Conflict() bool {
	return e != nil && (e.Status == http.StatusConflict || e.Code == codeConflict)
}

func errorFromResponse(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	apiErr := &APIError{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
			apiErr = &APIError{Code: "unexpected_response", Message: strings.TrimSpace(string(body))}
		}
	}
	if apiErr.Code == "" {
		apiErr.Code = "unexpected_response"
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	apiErr.Status = resp.StatusCode
	return apiErr
}
