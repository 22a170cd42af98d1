package bilingual_test

import (
	"reflect"
	"testing"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/bilingual"
)

func blogSpec() bilingual.FieldSpec {
	return bilingual.FieldSpec{
		Shared: []bilingual.Field{{Path: "image"}, {Path: "date"}, {Path: "category"}},
		Bilingual: []bilingual.Field{
			{Path: "title"},
			{Path: "shortDescription"},
			{Path: "content", RichText: true},
			{Path: "socialShare.title"},
		},
	}
}

func completeBlog() map[string]any {
	return map[string]any{
		"image":    "/x.jpg",
		"date":     "2024-01-01",
		"category": "News",
		"en": map[string]any{
			"title":            "Annual Report",
			"shortDescription": "Our year",
			"content":          "<p>Body</p>",
		},
		"ur": map[string]any{
			"title":            "سالانہ رپورٹ",
			"shortDescription": "ہمارا سال",
			"content":          "<p>متن</p>",
		},
		"socialShare": map[string]any{
			"title":       map[string]any{"en": "x", "ur": "y"},
			"description": map[string]any{"en": "", "ur": ""},
		},
	}
}

func TestValidateCompleteRecordHasNoGaps(t *testing.T) {
	for _, lang := range content.Langs {
		result := bilingual.Validate(completeBlog(), lang, blogSpec())
		if !result.Complete() {
			t.Fatalf("%s: expected complete record, got %+v", lang, result)
		}
		if result.MissingCurrent == nil || result.MissingOpposite == nil {
			t.Fatalf("%s: expected empty, non-nil lists", lang)
		}
	}
}

func TestValidateImageOnlyRichTextIsNotAGap(t *testing.T) {
	doc := completeBlog()
	doc["ur"].(map[string]any)["content"] = `<p><img src="/img/chart.png"></p>`
	result := bilingual.Validate(doc, content.LangEN, blogSpec())
	if !result.Complete() {
		t.Fatalf("expected image-only urdu body to count, got %+v", result)
	}
}

func TestValidateSingleUrduGapFromEnglish(t *testing.T) {
	doc := completeBlog()
	doc["ur"].(map[string]any)["shortDescription"] = "   "

	result := bilingual.Validate(doc, content.LangEN, blogSpec())

	if want := []string{"shortDescription.ur"}; !reflect.DeepEqual(result.MissingOpposite, want) {
		t.Fatalf("expected %v, got %v", want, result.MissingOpposite)
	}
	if len(result.MissingCurrent) != 0 {
		t.Fatalf("expected no current gaps, got %v", result.MissingCurrent)
	}
}

func TestValidateSymmetry(t *testing.T) {
	doc := completeBlog()
	doc["en"].(map[string]any)["title"] = ""

	fromUrdu := bilingual.Validate(doc, content.LangUR, blogSpec())
	if want := []string{"title.en"}; !reflect.DeepEqual(fromUrdu.MissingOpposite, want) {
		t.Fatalf("expected %v in opposite, got %+v", want, fromUrdu)
	}

	fromEnglish := bilingual.Validate(doc, content.LangEN, blogSpec())
	if want := []string{"title.en"}; !reflect.DeepEqual(fromEnglish.MissingCurrent, want) {
		t.Fatalf("expected %v in current, got %+v", want, fromEnglish)
	}
	if len(fromEnglish.MissingOpposite) != 0 {
		t.Fatalf("expected no opposite gaps, got %v", fromEnglish.MissingOpposite)
	}
}

func TestValidateIsIdempotentAndPure(t *testing.T) {
	doc := completeBlog()
	doc["ur"].(map[string]any)["title"] = ""
	delete(doc, "image")
	before := content.CloneDocument(doc)

	first := bilingual.Validate(doc, content.LangEN, blogSpec())
	second := bilingual.Validate(doc, content.LangEN, blogSpec())

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if !reflect.DeepEqual(doc, before) {
		t.Fatal("Validate must not modify the document")
	}
}

func TestValidateFollowsSpecOrder(t *testing.T) {
	doc := map[string]any{"en": map[string]any{}, "ur": map[string]any{}}
	spec := bilingual.FieldSpec{
		Shared:    []bilingual.Field{{Path: "date"}, {Path: "image"}},
		Bilingual: []bilingual.Field{{Path: "title"}, {Path: "location"}, {Path: "shortDescription"}},
	}
	result := bilingual.Validate(doc, content.LangEN, spec)

	wantCurrent := []string{"date", "image", "title.en", "location.en", "shortDescription.en"}
	wantOpposite := []string{"title.ur", "location.ur", "shortDescription.ur"}
	if !reflect.DeepEqual(result.MissingCurrent, wantCurrent) {
		t.Fatalf("expected %v, got %v", wantCurrent, result.MissingCurrent)
	}
	if !reflect.DeepEqual(result.MissingOpposite, wantOpposite) {
		t.Fatalf("expected %v, got %v", wantOpposite, result.MissingOpposite)
	}
}

func TestValidateTreatsEmptyEditorMarkupAsMissing(t *testing.T) {
	doc := completeBlog()
	doc["ur"].(map[string]any)["content"] = "<p><br></p>"
	result := bilingual.Validate(doc, content.LangEN, blogSpec())
	if want := []string{"content.ur"}; !reflect.DeepEqual(result.MissingOpposite, want) {
		t.Fatalf("expected %v, got %v", want, result.MissingOpposite)
	}
}

func TestValidateLocalizedFieldShape(t *testing.T) {
	doc := map[string]any{
		"image":    "/x.jpg",
		"date":     "2024-01-01",
		"category": "News",
		"title":    map[string]any{"en": "Annual Report", "ur": ""},
		"socialShare": map[string]any{
			"title":       map[string]any{"en": "x", "ur": "y"},
			"description": map[string]any{"en": "", "ur": ""},
		},
	}
	spec := bilingual.FieldSpec{
		Shared:    []bilingual.Field{{Path: "image"}, {Path: "date"}, {Path: "category"}},
		Bilingual: []bilingual.Field{{Path: "title"}, {Path: "socialShare.title"}},
	}

	result := bilingual.Validate(doc, content.LangEN, spec)
	if want := []string{"title.ur"}; !reflect.DeepEqual(result.MissingOpposite, want) {
		t.Fatalf("expected %v, got %v", want, result.MissingOpposite)
	}

	verdict := bilingual.Check(doc, content.LangEN, spec)
	if verdict.Action != bilingual.ActionSwitchLanguage || verdict.Target != content.LangUR {
		t.Fatalf("expected switch to ur, got %+v", verdict)
	}
	if want := []string{"title.ur"}; !reflect.DeepEqual(verdict.Missing, want) {
		t.Fatalf("expected only the opposite gap, got %v", verdict.Missing)
	}
}

func TestValidateTextWrapperValues(t *testing.T) {
	doc := map[string]any{
		"title": map[string]any{
			"en": map[string]any{"text": "Hello"},
			"ur": map[string]any{"text": " "},
		},
	}
	spec := bilingual.FieldSpec{Bilingual: []bilingual.Field{{Path: "title"}}}
	result := bilingual.Validate(doc, content.LangEN, spec)
	if want := []string{"title.ur"}; !reflect.DeepEqual(result.MissingOpposite, want) {
		t.Fatalf("expected %v, got %v", want, result.MissingOpposite)
	}
}

func TestValidateListFieldRequiresEveryElement(t *testing.T) {
	spec := bilingual.FieldSpec{
		Shared:    []bilingual.Field{{Path: "logo"}},
		Bilingual: []bilingual.Field{{Path: "items[].label"}},
	}
	doc := map[string]any{
		"logo": "/logo.svg",
		"items": []any{
			map[string]any{"id": "home", "label": map[string]any{"en": "Home", "ur": "ہوم"}},
			map[string]any{"id": "blog", "label": map[string]any{"en": "Blog", "ur": ""}},
		},
	}
	result := bilingual.Validate(doc, content.LangEN, spec)
	if want := []string{"items[].label.ur"}; !reflect.DeepEqual(result.MissingOpposite, want) {
		t.Fatalf("expected %v, got %v", want, result.MissingOpposite)
	}

	empty := map[string]any{"logo": "/logo.svg", "items": []any{}}
	result = bilingual.Validate(empty, content.LangEN, spec)
	if want := []string{"items[].label.en"}; !reflect.DeepEqual(result.MissingCurrent, want) {
		t.Fatalf("expected empty list to be missing, got %v", result.MissingCurrent)
	}
}

func TestValidateNeverPanicsOnOddInput(t *testing.T) {
	spec := blogSpec()
	spec.Lists = []bilingual.ListSpec{{Path: "keyFeatures"}}
	docs := []map[string]any{
		nil,
		{},
		{"en": "not an object", "title": 3},
		{"en": map[string]any{"keyFeatures": "nope"}},
	}
	for _, doc := range docs {
		result := bilingual.Validate(doc, content.Lang("fr"), spec)
		if len(result.MissingCurrent) == 0 {
			t.Fatalf("expected gaps for %v", doc)
		}
	}
}
