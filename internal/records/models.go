package records

import (
	"time"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record is the stored form of every content document. Payload holds the
// full bilingual document; Slug and ShowOnHome are copied out of it so they
// can be queried.
type Record struct {
	bun.BaseModel `bun:"table:content_records,alias:cr"`

	ID         uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Kind       content.Kind   `bun:"kind,notnull" json:"kind"`
	Slug       string         `bun:"slug,notnull" json:"slug"`
	ShowOnHome bool           `bun:"show_on_home,notnull,default:false" json:"showOnHome"`
	Payload    map[string]any `bun:"payload,type:jsonb,notnull" json:"payload"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt"`
}

// Document returns a copy of the payload with the stored columns applied.
func (r *Record) Document() map[string]any {
	if r == nil {
		return nil
	}
	doc := content.CloneDocument(r.Payload)
	if doc == nil {
		doc = map[string]any{}
	}
	stamp(doc, r)
	return doc
}

// stamp writes the server-owned fields into doc.
func stamp(doc map[string]any, r *Record) {
	if r.Kind == content.KindNavbar || r.Kind == content.KindContact {
		return
	}
	if r.Kind == content.KindPages {
		doc["kind"] = r.Slug
		return
	}
	doc["id"] = r.ID.String()
	doc["slug"] = r.Slug
	doc["showOnHome"] = r.ShowOnHome
	if !r.CreatedAt.IsZero() {
		doc["createdAt"] = r.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if !r.UpdatedAt.IsZero() {
		doc["updatedAt"] = r.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
}

func cloneRecord(src *Record) *Record {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Payload = content.CloneDocument(src.Payload)
	return &copied
}
