package records

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository for scaffolding and tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Record
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[uuid.UUID]*Record)}
}

func (m *MemoryRepository) Create(_ context.Context, record *Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[record.ID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrRecordExists, record.ID)
	}
	copied := cloneRecord(record)
	m.records[copied.ID] = copied
	return cloneRecord(copied), nil
}

func (m *MemoryRepository) Update(_ context.Context, record *Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.records[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "content_record", Key: record.ID.String()}
	}
	copied := cloneRecord(record)
	copied.Kind = existing.Kind
	copied.CreatedAt = existing.CreatedAt
	m.records[copied.ID] = copied
	return cloneRecord(copied), nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "content_record", Key: id.String()}
	}
	return cloneRecord(rec), nil
}

func (m *MemoryRepository) GetBySlug(_ context.Context, kind content.Kind, slug string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.records {
		if rec.Kind == kind && rec.Slug == slug {
			return cloneRecord(rec), nil
		}
	}
	return nil, &NotFoundError{Resource: "content_record", Key: fmt.Sprintf("%s:%s", kind, slug)}
}

// List returns the records of kind oldest first.
func (m *MemoryRepository) List(_ context.Context, kind content.Kind) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Record, 0)
	for _, rec := range m.records {
		if rec.Kind == kind {
			out = append(out, cloneRecord(rec))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Slug < out[j].Slug
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return &NotFoundError{Resource: "content_record", Key: id.String()}
	}
	delete(m.records, id)
	return nil
}
