package kinds

import (
	"testing"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/bilingual"
	"github.com/goliatone/go-bilingual-cms/internal/validation"
)

func TestRegistryCoversEveryKind(t *testing.T) {
	all := All()
	if len(all) != 6 {
		t.Fatalf("expected 6 kinds, got %d", len(all))
	}
	for _, def := range Collections() {
		if def.Singleton || !def.HasSlug() {
			t.Fatalf("%s: collections are slugged, got %+v", def.Kind, def)
		}
	}
	if _, ok := Parse("gallery"); ok {
		t.Fatal("unexpected kind gallery")
	}
}

func TestEmptyDocumentsMatchSchemas(t *testing.T) {
	v := validation.NewValidator()
	for _, def := range All() {
		if err := v.Register(def.Kind.String(), def.Schema); err != nil {
			t.Fatalf("%s: schema does not compile: %v", def.Kind, err)
		}
		doc, err := def.NewDocument()
		if err != nil {
			t.Fatalf("%s: NewDocument: %v", def.Kind, err)
		}
		if def.Kind == content.KindPages {
			doc["kind"] = "blogs"
		}
		if err := v.Validate(def.Kind.String(), doc); err != nil {
			t.Fatalf("%s: empty document rejected: %v", def.Kind, err)
		}
	}
}

func TestEmptyDocumentsAreIncomplete(t *testing.T) {
	for _, def := range All() {
		doc, err := def.NewDocument()
		if err != nil {
			t.Fatalf("%s: NewDocument: %v", def.Kind, err)
		}
		result := bilingual.Validate(doc, content.LangEN, def.Spec)
		if result.Complete() {
			t.Fatalf("%s: fresh record must not be complete", def.Kind)
		}
	}
}

func TestBlogSpecResolvesTypedRecord(t *testing.T) {
	post := content.NewBlogPost()
	post.Image, post.Date, post.Category = "/x.jpg", "2024-01-01", "News"
	post.EN = content.BlogLocale{Title: "Annual Report", ShortDescription: "Year", Content: "<p>Body</p>"}
	post.UR = content.BlogLocale{Title: "سالانہ رپورٹ", ShortDescription: "سال", Content: "<p>متن</p>"}
	post.SocialShare.Title = content.LocalizedText{EN: "x", UR: ""}

	doc, err := content.ToDocument(post)
	if err != nil {
		t.Fatalf("ToDocument: %v", err)
	}
	result := bilingual.Validate(doc, content.LangEN, MustLookup(content.KindBlogs).Spec)
	if len(result.MissingCurrent) != 0 {
		t.Fatalf("unexpected current gaps %v", result.MissingCurrent)
	}
	if len(result.MissingOpposite) != 1 || result.MissingOpposite[0] != "socialShare.title.ur" {
		t.Fatalf("expected socialShare.title.ur, got %v", result.MissingOpposite)
	}
}

func TestServiceSchemaRejectsItemsWithoutID(t *testing.T) {
	def := MustLookup(content.KindServices)
	doc, _ := def.NewDocument()
	doc["en"].(map[string]any)["keyFeatures"] = []any{map[string]any{"title": "Wells"}}
	if err := validation.ValidatePayload(def.Schema, doc); err == nil {
		t.Fatal("expected item without id to be rejected")
	}
}
