package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-bilingual-cms/content"
	recordscmd "github.com/goliatone/go-bilingual-cms/internal/commands/records"
	cmshttp "github.com/goliatone/go-bilingual-cms/internal/http"
	"github.com/goliatone/go-bilingual-cms/internal/loader"
	"github.com/goliatone/go-bilingual-cms/internal/records"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	svc, err := records.NewService(records.NewMemoryRepository())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	set, err := recordscmd.RegisterRecordCommands(nil, svc, nil)
	if err != nil {
		t.Fatalf("RegisterRecordCommands: %v", err)
	}
	router, err := cmshttp.NewRouter(cmshttp.RouterConfig{
		Admin: cmshttp.NewAdminAPI(
			cmshttp.WithRecordService(svc),
			cmshttp.WithSaveHandler(set.Save),
			cmshttp.WithDeleteHandler(set.Delete),
		),
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	c, err := New(server.URL+"/admin/api", WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func wellsPost() *content.BlogPost {
	post := content.NewBlogPost()
	post.Image = "/img/wells.jpg"
	post.Date = "2024-05-01"
	post.Category = "Water"
	post.EN = content.BlogLocale{Title: "Clean Water Wells", ShortDescription: "Twelve new wells", Content: "<p>Dug in Tharparkar</p>"}
	post.UR = content.BlogLocale{Title: "صاف پانی کے کنویں", ShortDescription: "بارہ نئے کنویں", Content: "<p>تھرپارکر میں کھودے گئے</p>"}
	post.SocialShare.Title = content.LocalizedText{EN: "Clean Water Wells", UR: "صاف پانی کے کنویں"}
	return post
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestNewCollectionRejectsSingletons(t *testing.T) {
	c := newTestClient(t)
	if _, err := NewCollection[content.Navbar](c, content.KindNavbar); err == nil {
		t.Fatal("expected error for singleton kind")
	}
	if _, err := NewCollection[content.BlogPost](nil, content.KindBlogs); err == nil {
		t.Fatal("expected error for nil client")
	}
}

func TestCollectionRoundTrip(t *testing.T) {
	ctx := context.Background()
	blogs, err := NewCollection[content.BlogPost](newTestClient(t), content.KindBlogs)
	if err != nil {
		t.Fatalf("NewCollection: %v", err)
	}

	created, err := blogs.Create(ctx, wellsPost())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug != "clean-water-wells" || created.CreatedAt.IsZero() {
		t.Fatalf("unexpected created post %+v", created)
	}

	fetched, err := blogs.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fetched.UR.Title != "صاف پانی کے کنویں" {
		t.Fatalf("expected urdu title to round trip, got %q", fetched.UR.Title)
	}

	fetched.EN.Title = "Clean Water Wells 2024"
	updated, err := blogs.Update(ctx, fetched.ID, fetched)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Slug != "clean-water-wells-2024" {
		t.Fatalf("expected regenerated slug, got %q", updated.Slug)
	}

	list, err := blogs.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List: %v (%d items)", err, len(list))
	}

	if err := blogs.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = blogs.Get(ctx, created.ID)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || !apiErr.NotFound() {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestCreateSurfacesTranslationGaps(t *testing.T) {
	blogs, err := NewCollection[content.BlogPost](newTestClient(t), content.KindBlogs)
	if err != nil {
		t.Fatalf("NewCollection: %v", err)
	}
	post := wellsPost()
	post.UR.Content = ""

	_, err = blogs.Create(context.Background(), post)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if !apiErr.Incomplete() || apiErr.Status != 422 {
		t.Fatalf("expected incomplete 422, got %+v", apiErr)
	}
	if !slices.Contains(apiErr.Missing, "content.ur") {
		t.Fatalf("expected content.ur missing, got %v", apiErr.Missing)
	}
}

func TestCreateConflictOnDuplicateSlug(t *testing.T) {
	ctx := context.Background()
	blogs, err := NewCollection[content.BlogPost](newTestClient(t), content.KindBlogs)
	if err != nil {
		t.Fatalf("NewCollection: %v", err)
	}
	if _, err := blogs.Create(ctx, wellsPost()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = blogs.Create(ctx, wellsPost())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || !apiErr.Conflict() {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestResourceTracksListLoads(t *testing.T) {
	ctx := context.Background()
	blogs, err := NewCollection[content.BlogPost](newTestClient(t), content.KindBlogs)
	if err != nil {
		t.Fatalf("NewCollection: %v", err)
	}
	if _, err := blogs.Create(ctx, wellsPost()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	res := blogs.Resource()
	if res.Name() != "blogs" || res.Status() != loader.StatusIdle {
		t.Fatalf("unexpected resource %s in %s", res.Name(), res.Status())
	}
	if err := res.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Status() != loader.StatusReady || len(res.Data()) != 1 {
		t.Fatalf("expected one loaded post, got %+v", res.Snapshot())
	}
}

func TestPersisterSavesSingletons(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	p := NewPersister(c)

	contact := map[string]any{
		"email":   "hello@example.org",
		"phone":   "+92 300 0000000",
		"address": map[string]any{"en": "Main Road, Karachi", "ur": "مین روڈ، کراچی"},
	}
	if _, err := p.PutSingleton(ctx, content.KindContact, "", contact); err != nil {
		t.Fatalf("PutSingleton: %v", err)
	}
	doc, err := c.GetSingleton(ctx, content.KindContact, "")
	if err != nil {
		t.Fatalf("GetSingleton: %v", err)
	}
	if doc["email"] != "hello@example.org" {
		t.Fatalf("unexpected contact %v", doc)
	}

	doc, err = c.GetSingleton(ctx, content.KindPages, "Events")
	if err != nil {
		t.Fatalf("GetSingleton pages: %v", err)
	}
	if doc["kind"] != "events" {
		t.Fatalf("expected events page settings, got %v", doc)
	}
}

func TestPersisterCreateAndDelete(t *testing.T) {
	ctx := context.Background()
	p := NewPersister(newTestClient(t))

	doc, err := content.ToDocument(wellsPost())
	if err != nil {
		t.Fatalf("ToDocument: %v", err)
	}
	saved, err := p.Create(ctx, content.KindBlogs, doc)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id, ok := saved["id"].(string)
	if !ok || id == "" {
		t.Fatalf("expected stored id, got %v", saved)
	}
	saved["category"] = "Health"
	if _, err := p.Update(ctx, content.KindBlogs, mustUUID(t, id), saved); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := p.Delete(ctx, content.KindBlogs, mustUUID(t, id)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func mustUUID(t *testing.T, value string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(value)
	if err != nil {
		t.Fatalf("parse uuid %q: %v", value, err)
	}
	return id
}
