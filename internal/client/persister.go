package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/editor"
)

// Persister saves editor documents through the admin API.
type Persister struct {
	client *Client
}

var _ editor.Persister = (*Persister)(nil)

// NewPersister returns an editor.Persister backed by c.
func NewPersister(c *Client) *Persister {
	return &Persister{client: c}
}

func (p *Persister) Create(ctx context.Context, kind content.Kind, doc map[string]any) (map[string]any, error) {
	var saved map[string]any
	err := p.client.call(ctx, http.MethodPost, kind.String(), nil, doc, http.StatusCreated, &saved)
	return saved, err
}

func (p *Persister) Update(ctx context.Context, kind content.Kind, id uuid.UUID, doc map[string]any) (map[string]any, error) {
	var saved map[string]any
	err := p.client.call(ctx, http.MethodPut, kind.String()+"/"+id.String(), nil, doc, http.StatusOK, &saved)
	return saved, err
}

func (p *Persister) Delete(ctx context.Context, kind content.Kind, id uuid.UUID) error {
	coll, err := NewCollection[map[string]any](p.client, kind)
	if err != nil {
		return err
	}
	return coll.Delete(ctx, id)
}

func (p *Persister) PutSingleton(ctx context.Context, kind content.Kind, key string, doc map[string]any) (map[string]any, error) {
	return p.client.PutSingleton(ctx, kind, key, doc)
}
