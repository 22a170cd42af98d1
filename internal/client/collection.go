package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/kinds"
	"github.com/goliatone/go-bilingual-cms/internal/loader"
)

// Collection is a typed view over one collection kind, e.g.
// Collection[content.BlogPost] for blogs.
type Collection[T any] struct {
	client *Client
	kind   content.Kind
}

// NewCollection binds kind to c. Singleton kinds are rejected; use
// Client.GetSingleton and Client.PutSingleton for those.
func NewCollection[T any](c *Client, kind content.Kind) (*Collection[T], error) {
	if c == nil {
		return nil, fmt.Errorf("client: client is required")
	}
	def, ok := kinds.Lookup(kind)
	if !ok || def.Singleton {
		return nil, fmt.Errorf("client: %q is not a collection kind", kind)
	}
	return &Collection[T]{client: c, kind: kind}, nil
}

// Kind returns the collection kind.
func (c *Collection[T]) Kind() content.Kind { return c.kind }

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := c.client.call(ctx, http.MethodGet, c.kind.String(), nil, nil, http.StatusOK, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Collection[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	if err := c.client.call(ctx, http.MethodGet, c.itemPath(id), nil, nil, http.StatusOK, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create POSTs a new record and returns it as stored, with id and slug set.
func (c *Collection[T]) Create(ctx context.Context, item *T) (*T, error) {
	var saved T
	if err := c.client.call(ctx, http.MethodPost, c.kind.String(), nil, item, http.StatusCreated, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// Update PUTs the full record.
func (c *Collection[T]) Update(ctx context.Context, id uuid.UUID, item *T) (*T, error) {
	var saved T
	if err := c.client.call(ctx, http.MethodPut, c.itemPath(id), nil, item, http.StatusOK, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// Delete removes the record. The API requires explicit confirmation,
// which this call always sends.
func (c *Collection[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return c.client.call(ctx, http.MethodDelete, c.itemPath(id), url.Values{"confirm": {"true"}}, nil, http.StatusNoContent, nil)
}

// Resource wraps List in a loader so callers can track loading state
// and retry failed fetches.
func (c *Collection[T]) Resource(opts ...loader.Option) *loader.Resource[[]T] {
	return loader.New(c.kind.String(), c.List, opts...)
}

func (c *Collection[T]) itemPath(id uuid.UUID) string {
	return c.kind.String() + "/" + id.String()
}
