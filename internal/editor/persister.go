package editor

import (
	"context"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/records"
	"github.com/google/uuid"
)

// Persister stores documents once they pass the bilingual check. Create is
// the POST of a new record and Update the PUT of an existing one.
type Persister interface {
	Create(ctx context.Context, kind content.Kind, doc map[string]any) (map[string]any, error)
	Update(ctx context.Context, kind content.Kind, id uuid.UUID, doc map[string]any) (map[string]any, error)
	Delete(ctx context.Context, kind content.Kind, id uuid.UUID) error
	PutSingleton(ctx context.Context, kind content.Kind, key string, doc map[string]any) (map[string]any, error)
}

// ServicePersister saves through an in-process records service.
type ServicePersister struct {
	Service *records.Service
}

var _ Persister = ServicePersister{}

func (p ServicePersister) Create(ctx context.Context, kind content.Kind, doc map[string]any) (map[string]any, error) {
	rec, err := p.Service.Create(ctx, kind, doc)
	if err != nil {
		return nil, err
	}
	return rec.Document(), nil
}

func (p ServicePersister) Update(ctx context.Context, kind content.Kind, id uuid.UUID, doc map[string]any) (map[string]any, error) {
	rec, err := p.Service.Update(ctx, kind, id, doc)
	if err != nil {
		return nil, err
	}
	return rec.Document(), nil
}

func (p ServicePersister) Delete(ctx context.Context, kind content.Kind, id uuid.UUID) error {
	return p.Service.Delete(ctx, kind, id)
}

func (p ServicePersister) PutSingleton(ctx context.Context, kind content.Kind, key string, doc map[string]any) (map[string]any, error) {
	rec, err := p.Service.PutSingleton(ctx, kind, key, doc)
	if err != nil {
		return nil, err
	}
	return rec.Document(), nil
}
