package records

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/bilingual"
)

var (
	ErrUnknownKind    = errors.New("records: unknown content kind")
	ErrNotCollection  = errors.New("records: kind is not a collection")
	ErrNotSingleton   = errors.New("records: kind is not a singleton")
	ErrSlugExists     = errors.New("records: slug already exists")
	ErrInvalidSlug    = errors.New("records: slug is invalid")
	ErrRecordExists   = errors.New("records: record already exists")
	ErrIncomplete     = errors.New("records: translation incomplete")
	ErrRepositoryNil  = errors.New("records: repository required")
	ErrInvalidPayload = errors.New("records: payload invalid")
)

// NotFoundError is returned when a record does not exist.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IncompleteError lists what a document still lacks in either language.
// Missing uses the validator's "<path>.<lang>" form; shared fields carry no
// language suffix.
type IncompleteError struct {
	Kind    content.Kind
	Missing []string
	Items   []bilingual.ItemGap
}

func (e *IncompleteError) Error() string {
	parts := append([]string{}, e.Missing...)
	for _, gap := range e.Items {
		parts = append(parts, fmt.Sprintf("%s[%s].%s", gap.List, gap.ID, gap.Lang))
	}
	return fmt.Sprintf("records: %s is incomplete: %s", e.Kind, strings.Join(parts, ", "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }
