package records

import (
	"context"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/google/uuid"
)

// Collection is a typed view over one collection kind, e.g.
// Collection[content.BlogPost] for blogs.
type Collection[T any] struct {
	svc  *Service
	kind content.Kind
}

// NewCollection binds a typed view to kind.
func NewCollection[T any](svc *Service, kind content.Kind) *Collection[T] {
	return &Collection[T]{svc: svc, kind: kind}
}

// Kind returns the bound kind.
func (c *Collection[T]) Kind() content.Kind { return c.kind }

func (c *Collection[T]) List(ctx context.Context) ([]*T, error) {
	recs, err := c.svc.List(ctx, c.kind)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](recs)
}

func (c *Collection[T]) ListOnHome(ctx context.Context) ([]*T, error) {
	recs, err := c.svc.ListOnHome(ctx, c.kind)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](recs)
}

func (c *Collection[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	rec, err := c.svc.Get(ctx, c.kind, id)
	if err != nil {
		return nil, err
	}
	return decode[T](rec)
}

func (c *Collection[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	rec, err := c.svc.GetBySlug(ctx, c.kind, slug)
	if err != nil {
		return nil, err
	}
	return decode[T](rec)
}

func (c *Collection[T]) Create(ctx context.Context, item *T) (*T, error) {
	doc, err := content.ToDocument(item)
	if err != nil {
		return nil, err
	}
	rec, err := c.svc.Create(ctx, c.kind, doc)
	if err != nil {
		return nil, err
	}
	return decode[T](rec)
}

func (c *Collection[T]) Update(ctx context.Context, id uuid.UUID, item *T) (*T, error) {
	doc, err := content.ToDocument(item)
	if err != nil {
		return nil, err
	}
	rec, err := c.svc.Update(ctx, c.kind, id, doc)
	if err != nil {
		return nil, err
	}
	return decode[T](rec)
}

func (c *Collection[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return c.svc.Delete(ctx, c.kind, id)
}

// Singleton is a typed view over one singleton document.
type Singleton[T any] struct {
	svc  *Service
	kind content.Kind
	key  string
}

// NewSingleton binds a typed view to kind and key.
func NewSingleton[T any](svc *Service, kind content.Kind, key string) *Singleton[T] {
	return &Singleton[T]{svc: svc, kind: kind, key: key}
}

func (s *Singleton[T]) Get(ctx context.Context) (*T, error) {
	rec, err := s.svc.GetSingleton(ctx, s.kind, s.key)
	if err != nil {
		return nil, err
	}
	return decode[T](rec)
}

func (s *Singleton[T]) Put(ctx context.Context, value *T) (*T, error) {
	doc, err := content.ToDocument(value)
	if err != nil {
		return nil, err
	}
	rec, err := s.svc.PutSingleton(ctx, s.kind, s.key, doc)
	if err != nil {
		return nil, err
	}
	return decode[T](rec)
}

func decode[T any](rec *Record) (*T, error) {
	out := new(T)
	if err := content.FromDocument(rec.Document(), out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeAll[T any](recs []*Record) ([]*T, error) {
	out := make([]*T, 0, len(recs))
	for _, rec := range recs {
		item, err := decode[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
