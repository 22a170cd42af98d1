package records

import (
	"context"
	"fmt"

	"github.com/goliatone/go-bilingual-cms/content"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const recordNamespace = "content_record"

// BunRepository implements Repository with optional caching.
type BunRepository struct {
	repo         repository.Repository[*Record]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunRepository creates a record repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates a record repository that reads through
// cacheService when both cache arguments are set.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := NewRecordRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = cachePrefix(recordNamespace)
	}
	return &BunRepository{repo: base, cacheService: svc, cachePrefix: prefix}
}

func (r *BunRepository) Create(ctx context.Context, record *Record) (*Record, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("content_record repository error: %w", err)
	}
	return created, r.InvalidateCache(ctx)
}

func (r *BunRepository) Update(ctx context.Context, record *Record) (*Record, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"slug",
			"show_on_home",
			"payload",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "content_record", record.ID.String())
	}
	return updated, r.InvalidateCache(ctx)
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "content_record", id.String())
	}
	return record, nil
}

func (r *BunRepository) GetBySlug(ctx context.Context, kind content.Kind, slug string) (*Record, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.kind = ?", kind.String()).
				Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "content_record", slug)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "content_record", Key: fmt.Sprintf("%s:%s", kind, slug)}
	}
	return records[0], nil
}

func (r *BunRepository) List(ctx context.Context, kind content.Kind) ([]*Record, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.kind = ?", kind.String()).
				OrderExpr("?TableAlias.created_at ASC").
				OrderExpr("?TableAlias.slug ASC")
		}),
	)
	return records, err
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Record{ID: id}); err != nil {
		return mapRepositoryError(err, "content_record", id.String())
	}
	return r.InvalidateCache(ctx)
}

// InvalidateCache drops every cached record read.
func (r *BunRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func cachePrefix(namespace string) string {
	if namespace == "" {
		return ""
	}
	return namespace + cache.KeySeparator
}
