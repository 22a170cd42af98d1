package markdowncmd

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/commands/fixtures"
	"github.com/goliatone/go-bilingual-cms/internal/markdown"
	"github.com/goliatone/go-bilingual-cms/internal/records"
)

func newImporter(t *testing.T) (*markdown.Importer, *records.Service) {
	t.Helper()
	svc, err := records.NewService(records.NewMemoryRepository())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return markdown.NewImporter(markdown.ImporterConfig{Store: svc}), svc
}

func postsLoader() *markdown.Loader {
	return markdown.NewLoader(fstest.MapFS{
		"posts/wells.en.md": {Data: []byte("---\ntitle: New Wells\nsummary: Twelve wells\ncategory: Water\nimage: /img/wells.jpg\ndate: 2024-05-01\n---\nWe built wells.\n")},
		"posts/wells.ur.md": {Data: []byte("---\ntitle: نئے کنویں\nsummary: بارہ کنویں\n---\nہم نے کنویں بنائے۔\n")},
	}, markdown.LoaderConfig{})
}

func TestImportMarkdownValidatesDir(t *testing.T) {
	importer, _ := newImporter(t)
	handler := NewImportMarkdownHandler(importer, postsLoader(), nil, FeatureGates{})

	for _, dir := range []string{"", "  ", "../posts", "/abs/posts"} {
		err := handler.Execute(context.Background(), ImportMarkdownCommand{Dir: dir})
		if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
			t.Fatalf("dir %q: expected validation error, got %v", dir, err)
		}
	}
}

func TestImportMarkdownCreatesRecordsAndFillsReport(t *testing.T) {
	importer, svc := newImporter(t)
	handler := NewImportMarkdownHandler(importer, postsLoader(), nil, FeatureGates{})

	report := &markdown.Report{}
	if err := handler.Execute(context.Background(), ImportMarkdownCommand{Dir: "posts", Report: report}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if report.Count(markdown.OutcomeCreated) != 1 {
		t.Fatalf("expected one created entry, got %+v", report.Entries)
	}
	rec, err := svc.GetBySlug(context.Background(), content.KindBlogs, "wells")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if rec.Slug != "wells" {
		t.Fatalf("unexpected slug %q", rec.Slug)
	}
}

func TestImportMarkdownDryRunWritesNothing(t *testing.T) {
	importer, svc := newImporter(t)
	handler := NewImportMarkdownHandler(importer, postsLoader(), nil, FeatureGates{})

	report := &markdown.Report{}
	if err := handler.Execute(context.Background(), ImportMarkdownCommand{Dir: "posts", DryRun: true, Report: report}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if report.Count(markdown.OutcomeDryRun) != 1 {
		t.Fatalf("expected dry run entry, got %+v", report.Entries)
	}
	list, err := svc.List(context.Background(), content.KindBlogs)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no records after dry run, got %d", len(list))
	}
}

func TestImportMarkdownHonoursFeatureGate(t *testing.T) {
	importer, _ := newImporter(t)
	handler := NewImportMarkdownHandler(importer, postsLoader(), nil, FeatureGates{
		MarkdownEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), ImportMarkdownCommand{Dir: "posts"})
	if !errors.Is(err, ErrMarkdownFeatureDisabled) {
		t.Fatalf("expected feature disabled error, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestImportMarkdownRequiresLoader(t *testing.T) {
	importer, _ := newImporter(t)
	err := NewImportMarkdownHandler(importer, nil, nil, FeatureGates{}).
		Execute(context.Background(), ImportMarkdownCommand{Dir: "posts"})
	if !errors.Is(err, ErrLoaderRequired) {
		t.Fatalf("expected loader required error, got %v", err)
	}
}

func TestRegisterMarkdownCommands(t *testing.T) {
	importer, _ := newImporter(t)
	reg := fixtures.NewRecordingRegistry()

	handler, err := RegisterMarkdownCommands(reg, importer, postsLoader(), nil, FeatureGates{})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(reg.Handlers) != 1 || reg.Handlers[0] != handler {
		t.Fatalf("expected handler registered, got %v", reg.Handlers)
	}

	if _, err := RegisterMarkdownCommands(reg, nil, nil, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error for nil importer")
	}
}
