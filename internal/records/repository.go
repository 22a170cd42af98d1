package records

import (
	"context"

	"github.com/goliatone/go-bilingual-cms/content"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository stores records.
type Repository interface {
	Create(ctx context.Context, record *Record) (*Record, error)
	Update(ctx context.Context, record *Record) (*Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	GetBySlug(ctx context.Context, kind content.Kind, slug string) (*Record, error)
	List(ctx context.Context, kind content.Kind) ([]*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewRecordRepository builds the go-repository-bun repository for Record.
func NewRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(r *Record) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Record, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(r *Record) string {
			return r.Slug
		},
	})
}
