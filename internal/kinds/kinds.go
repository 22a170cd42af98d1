// Package kinds describes every editable content kind: what it requires in
// each language, which fields hold rich text and what shape its payload
// must have.
package kinds

import (
	"fmt"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/bilingual"
)

// Definition is the registry entry for one kind.
type Definition struct {
	Kind content.Kind
	// Singleton kinds hold exactly one document (per page kind for pages).
	Singleton bool
	Spec      bilingual.FieldSpec
	// RichText lists per-language paths holding HTML, sanitised on save.
	RichText []string
	// TitlePath is the per-language path the slug is derived from. Blank
	// for kinds without slugs.
	TitlePath string
	Schema    map[string]any
	New       func() any
}

// NewDocument returns the empty document for the kind.
func (d Definition) NewDocument() (map[string]any, error) {
	if d.New == nil {
		return nil, fmt.Errorf("kinds: %s has no factory", d.Kind)
	}
	return content.ToDocument(d.New())
}

// HasSlug reports whether records of the kind are addressed by slug.
func (d Definition) HasSlug() bool {
	return !d.Singleton && d.TitlePath != ""
}

var registry = map[content.Kind]Definition{
	content.KindBlogs: {
		Kind: content.KindBlogs,
		Spec: bilingual.FieldSpec{
			Shared: []bilingual.Field{{Path: "image"}, {Path: "date"}, {Path: "category"}},
			Bilingual: []bilingual.Field{
				{Path: "title"},
				{Path: "shortDescription"},
				{Path: "content", RichText: true},
				{Path: "socialShare.title"},
			},
		},
		RichText:  []string{"content"},
		TitlePath: "title",
		Schema:    blogSchema,
		New:       func() any { return content.NewBlogPost() },
	},
	content.KindEvents: {
		Kind: content.KindEvents,
		Spec: bilingual.FieldSpec{
			Shared: []bilingual.Field{{Path: "image"}, {Path: "date"}},
			Bilingual: []bilingual.Field{
				{Path: "title"},
				{Path: "shortDescription"},
				{Path: "description", RichText: true},
				{Path: "location"},
				{Path: "socialShare.title"},
			},
		},
		RichText:  []string{"description"},
		TitlePath: "title",
		Schema:    eventSchema,
		New:       func() any { return content.NewEventDetail() },
	},
	content.KindServices: {
		Kind: content.KindServices,
		Spec: bilingual.FieldSpec{
			Shared: []bilingual.Field{{Path: "image"}},
			Bilingual: []bilingual.Field{
				{Path: "title"},
				{Path: "shortDescription"},
				{Path: "description", RichText: true},
				{Path: "socialShare.title"},
			},
			Lists: []bilingual.ListSpec{
				{Path: "keyFeatures"},
				{Path: "impact"},
				{Path: "contentBlocks"},
			},
		},
		RichText:  []string{"description", "contentBlocks[].body"},
		TitlePath: "title",
		Schema:    serviceSchema,
		New:       func() any { return content.NewServiceDetail() },
	},
	content.KindNavbar: {
		Kind:      content.KindNavbar,
		Singleton: true,
		Spec: bilingual.FieldSpec{
			Shared:    []bilingual.Field{{Path: "logo"}},
			Bilingual: []bilingual.Field{{Path: "items[].label"}},
		},
		Schema: navbarSchema,
		New:    func() any { return content.NewNavbar() },
	},
	content.KindContact: {
		Kind:      content.KindContact,
		Singleton: true,
		Spec: bilingual.FieldSpec{
			Shared:    []bilingual.Field{{Path: "email"}, {Path: "phone"}},
			Bilingual: []bilingual.Field{{Path: "address"}},
		},
		Schema: contactSchema,
		New:    func() any { return content.NewContactInfo() },
	},
	content.KindPages: {
		Kind:      content.KindPages,
		Singleton: true,
		Spec: bilingual.FieldSpec{
			Bilingual: []bilingual.Field{{Path: "heading"}},
		},
		Schema: pageSettingsSchema,
		New:    func() any { return content.NewPageSettings("") },
	},
}

var order = []content.Kind{
	content.KindBlogs,
	content.KindEvents,
	content.KindServices,
	content.KindNavbar,
	content.KindContact,
	content.KindPages,
}

// Lookup returns the definition registered for kind.
func Lookup(kind content.Kind) (Definition, bool) {
	def, ok := registry[kind]
	return def, ok
}

// MustLookup is Lookup for kinds known at compile time.
func MustLookup(kind content.Kind) Definition {
	def, ok := registry[kind]
	if !ok {
		panic(fmt.Sprintf("kinds: unknown kind %q", kind))
	}
	return def
}

// Parse resolves a kind name taken from a request path.
func Parse(name string) (Definition, bool) {
	return Lookup(content.Kind(name))
}

// All returns every definition in registration order.
func All() []Definition {
	out := make([]Definition, 0, len(order))
	for _, kind := range order {
		out = append(out, registry[kind])
	}
	return out
}

// Collections returns the list-edited kinds.
func Collections() []Definition {
	out := make([]Definition, 0, len(content.CollectionKinds))
	for _, kind := range content.CollectionKinds {
		out = append(out, registry[kind])
	}
	return out
}
