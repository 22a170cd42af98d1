package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/records"
	pkgstorage "github.com/goliatone/go-bilingual-cms/pkg/storage"
)

func TestOpenSQLiteAndEnsureSchema(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, pkgstorage.Config{Driver: "sqlite3", DSN: "file:storage_open_test?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("EnsureSchema must be idempotent: %v", err)
	}

	svc, err := records.NewService(records.NewBunRepository(db))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	rec, err := svc.PutSingleton(ctx, content.KindContact, "", map[string]any{
		"email":   "info@example.org",
		"phone":   "+92 300 0000000",
		"address": map[string]any{"en": "Lahore", "ur": "لاہور"},
	})
	if err != nil {
		t.Fatalf("PutSingleton: %v", err)
	}
	got, err := svc.GetSingleton(ctx, content.KindContact, "")
	if err != nil || got.ID != rec.ID {
		t.Fatalf("expected stored contact, got %+v (%v)", got, err)
	}
}

func TestOpenRejectsUnsupportedDrivers(t *testing.T) {
	if _, err := Open(context.Background(), pkgstorage.Config{Driver: "memory", DSN: "x"}); !errors.Is(err, ErrDriverUnsupported) {
		t.Fatalf("expected ErrDriverUnsupported, got %v", err)
	}
	if _, err := Open(context.Background(), pkgstorage.Config{Driver: "sqlite"}); !errors.Is(err, ErrDSNRequired) {
		t.Fatalf("expected ErrDSNRequired, got %v", err)
	}
}
