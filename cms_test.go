package cms_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	cms "github.com/goliatone/go-bilingual-cms"
	"github.com/goliatone/go-bilingual-cms/content"
	markdowncmd "github.com/goliatone/go-bilingual-cms/internal/commands/markdown"
	"github.com/goliatone/go-bilingual-cms/internal/markdown"
	"github.com/goliatone/go-bilingual-cms/internal/records"
)

func newModule(t *testing.T, mutate func(*cms.Config)) *cms.Module {
	t.Helper()
	cfg := cms.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	module, err := cms.New(cfg)
	if err != nil {
		t.Fatalf("cms.New: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })
	return module
}

func TestModuleTypedCollections(t *testing.T) {
	module := newModule(t, nil)
	ctx := context.Background()

	post := content.NewBlogPost()
	post.Image = "/img/wells.jpg"
	post.Date = "2024-03-01"
	post.Category = "Water"
	post.EN = content.BlogLocale{Title: "Clean Water Wells", ShortDescription: "Wells", Content: "<p>Wells</p>"}
	post.UR = content.BlogLocale{Title: "صاف پانی کے کنویں", ShortDescription: "کنویں", Content: "<p>کنویں</p>"}
	post.SocialShare.Title = content.LocalizedText{EN: "Clean Water Wells", UR: "صاف پانی کے کنویں"}

	created, err := module.Blogs().Create(ctx, post)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug != "clean-water-wells" {
		t.Fatalf("expected slug from the English title, got %q", created.Slug)
	}

	list, err := module.Blogs().List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one post, got %d (%v)", len(list), err)
	}
	if events, _ := module.Events().List(ctx); len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestModuleSingletons(t *testing.T) {
	module := newModule(t, nil)
	ctx := context.Background()

	contact := &content.ContactInfo{
		Email:   "info@example.org",
		Phone:   "+92 300 0000000",
		Address: content.LocalizedText{EN: "Main Road, Lahore", UR: "مین روڈ، لاہور"},
	}
	if _, err := module.Contact().Put(ctx, contact); err != nil {
		t.Fatalf("Put contact: %v", err)
	}
	got, err := module.Contact().Get(ctx)
	if err != nil {
		t.Fatalf("Get contact: %v", err)
	}
	if got.Address.UR != "مین روڈ، لاہور" {
		t.Fatalf("expected Urdu address, got %q", got.Address.UR)
	}

	if _, err := module.PageSettings(content.KindNavbar); !errors.Is(err, cms.ErrPageKindInvalid) {
		t.Fatalf("expected ErrPageKindInvalid, got %v", err)
	}
	page, err := module.PageSettings("Events")
	if err != nil {
		t.Fatalf("PageSettings: %v", err)
	}
	settings := content.NewPageSettings(content.KindEvents)
	settings.EN.Heading = "Events"
	settings.UR.Heading = "تقریبات"
	saved, err := page.Put(ctx, settings)
	if err != nil {
		t.Fatalf("Put page settings: %v", err)
	}
	if saved.Kind != content.KindEvents {
		t.Fatalf("expected events page settings, got %q", saved.Kind)
	}
}

func TestModuleHandlerServesPublicAPI(t *testing.T) {
	module := newModule(t, nil)

	rec := httptest.NewRecorder()
	module.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/blogs?lang=ur", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Language"); got != "ur" {
		t.Fatalf("expected ur Content-Language, got %q", got)
	}
}

func TestModuleImportMarkdown(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("wells.en.md", "---\ntitle: New Wells\nsummary: Twelve wells\ncategory: Water\nimage: /img/wells.jpg\ndate: 2024-05-01\n---\nWe built wells.\n")
	write("wells.ur.md", "---\ntitle: نئے کنویں\nsummary: بارہ کنویں\n---\nہم نے کنویں بنائے۔\n")

	module := newModule(t, func(cfg *cms.Config) {
		cfg.Markdown.Enabled = true
		cfg.Markdown.ContentDir = dir
	})
	ctx := context.Background()

	report, err := module.ImportMarkdown(ctx, ".", true)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if report.Count(markdown.OutcomeDryRun) != 1 {
		t.Fatalf("expected one dry run entry, got %#v", report.Entries)
	}
	if _, err := module.Records().GetBySlug(ctx, content.KindBlogs, "wells"); err == nil {
		t.Fatal("expected dry run to leave storage untouched")
	}

	if _, err := module.ImportMarkdown(ctx, ".", false); err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, err := module.Records().GetBySlug(ctx, content.KindBlogs, "wells"); err != nil {
		t.Fatalf("expected imported post: %v", err)
	}
}

func TestModuleImportMarkdownDisabled(t *testing.T) {
	module := newModule(t, nil)
	if _, err := module.ImportMarkdown(context.Background(), ".", false); !errors.Is(err, markdowncmd.ErrMarkdownFeatureDisabled) {
		t.Fatalf("expected ErrMarkdownFeatureDisabled, got %v", err)
	}
}

func TestModuleEditorOpensSessions(t *testing.T) {
	module := newModule(t, nil)
	machine := module.Editor()
	if err := machine.OpenNew(content.KindServices); err != nil {
		t.Fatalf("OpenNew: %v", err)
	}
	if got := machine.Session().Kind(); got != content.KindServices {
		t.Fatalf("expected services session, got %q", got)
	}
	if _, err := machine.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	list, err := module.Records().List(context.Background(), content.KindServices)
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty draft to be refused, got %d (%v)", len(list), err)
	}
	var notFound *records.NotFoundError
	if _, err := module.Records().GetBySlug(context.Background(), content.KindServices, "missing"); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
