package bilingual_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/bilingual"
)

func TestCheckWithholdsCurrentGapsWhileOppositeIncomplete(t *testing.T) {
	doc := completeBlog()
	doc["en"].(map[string]any)["shortDescription"] = ""
	doc["ur"].(map[string]any)["title"] = ""

	verdict := bilingual.Check(doc, content.LangEN, blogSpec())
	if verdict.Action != bilingual.ActionSwitchLanguage {
		t.Fatalf("expected switch prompt, got %+v", verdict)
	}
	if want := []string{"title.ur"}; !reflect.DeepEqual(verdict.Missing, want) {
		t.Fatalf("expected %v, got %v", want, verdict.Missing)
	}

	doc["ur"].(map[string]any)["title"] = "سالانہ رپورٹ"
	verdict = bilingual.Check(doc, content.LangEN, blogSpec())
	if verdict.Action != bilingual.ActionFixCurrent || verdict.Target != "" {
		t.Fatalf("expected inline fix, got %+v", verdict)
	}
	if want := []string{"shortDescription.en"}; !reflect.DeepEqual(verdict.Missing, want) {
		t.Fatalf("expected %v, got %v", want, verdict.Missing)
	}
}

func TestCheckAllowsSave(t *testing.T) {
	verdict := bilingual.Check(completeBlog(), content.LangUR, blogSpec())
	if verdict.Blocked() || verdict.Action != bilingual.ActionSave {
		t.Fatalf("expected save, got %+v", verdict)
	}
}

func TestCheckPromptsForMissingListItems(t *testing.T) {
	doc := serviceDoc([]any{item(1), item(2)}, []any{item(1)})
	verdict := bilingual.Check(doc, content.LangEN, serviceSpec())
	if verdict.Action != bilingual.ActionSwitchLanguage {
		t.Fatalf("expected switch prompt, got %+v", verdict)
	}
	want := []bilingual.ItemGap{{List: "keyFeatures", ID: "2", Lang: content.LangUR}}
	if !reflect.DeepEqual(verdict.Items, want) {
		t.Fatalf("expected %v, got %v", want, verdict.Items)
	}
}

func TestRemedyCopiesIntoDetectedGap(t *testing.T) {
	doc := completeBlog()
	doc["ur"].(map[string]any)["title"] = ""
	spec := blogSpec()
	result := bilingual.Validate(doc, content.LangEN, spec)

	remedy := bilingual.NewRemedy(spec, content.LangEN, result)
	if !remedy.Allowed("title.ur") || !remedy.Allowed("title") {
		t.Fatal("expected title to be copyable")
	}
	if err := remedy.CopyField(doc, "title"); err != nil {
		t.Fatalf("CopyField: %v", err)
	}
	if got := doc["ur"].(map[string]any)["title"]; got != "Annual Report" {
		t.Fatalf("expected copied title, got %v", got)
	}
	if got := doc["en"].(map[string]any)["title"]; got != "Annual Report" {
		t.Fatalf("source must not change, got %v", got)
	}
	if err := remedy.CopyField(doc, "title"); !errors.Is(err, bilingual.ErrCopyNotAllowed) {
		t.Fatalf("expected second copy to be refused, got %v", err)
	}
}

func TestRemedyRefusesUndetectedOrFilledFields(t *testing.T) {
	doc := completeBlog()
	doc["ur"].(map[string]any)["title"] = ""
	spec := blogSpec()
	remedy := bilingual.NewRemedy(spec, content.LangEN, bilingual.Validate(doc, content.LangEN, spec))

	if err := remedy.CopyField(doc, "shortDescription"); !errors.Is(err, bilingual.ErrCopyNotAllowed) {
		t.Fatalf("expected refusal for a field that was not missing, got %v", err)
	}

	doc["ur"].(map[string]any)["title"] = "پہلے سے لکھا"
	if err := remedy.CopyField(doc, "title"); !errors.Is(err, bilingual.ErrCopyNotAllowed) {
		t.Fatalf("expected refusal once the target is filled, got %v", err)
	}
	if got := doc["ur"].(map[string]any)["title"]; got != "پہلے سے لکھا" {
		t.Fatalf("target was overwritten: %v", got)
	}
}

func TestRemedyCopiesLocalizedValues(t *testing.T) {
	doc := completeBlog()
	doc["socialShare"].(map[string]any)["title"] = map[string]any{"en": "Share me", "ur": ""}
	spec := blogSpec()
	remedy := bilingual.NewRemedy(spec, content.LangEN, bilingual.Validate(doc, content.LangEN, spec))

	if got := remedy.Paths(); !reflect.DeepEqual(got, []string{"socialShare.title"}) {
		t.Fatalf("unexpected copyable paths %v", got)
	}
	if err := remedy.CopyField(doc, "socialShare.title.ur"); err != nil {
		t.Fatalf("CopyField: %v", err)
	}
	title := doc["socialShare"].(map[string]any)["title"].(map[string]any)
	if title["ur"] != "Share me" || title["en"] != "Share me" {
		t.Fatalf("unexpected share title %v", title)
	}
}

func TestRemedyCopiesNavLabelsElementWise(t *testing.T) {
	spec := bilingual.FieldSpec{Bilingual: []bilingual.Field{{Path: "items[].label"}}}
	doc := map[string]any{
		"items": []any{
			map[string]any{"id": "home", "label": map[string]any{"en": "Home", "ur": "ہوم"}},
			map[string]any{"id": "blog", "label": map[string]any{"en": "Blog", "ur": ""}},
		},
	}
	remedy := bilingual.NewRemedy(spec, content.LangEN, bilingual.Validate(doc, content.LangEN, spec))
	if err := remedy.CopyField(doc, "items[].label"); err != nil {
		t.Fatalf("CopyField: %v", err)
	}
	items := doc["items"].([]any)
	if got := items[0].(map[string]any)["label"].(map[string]any)["ur"]; got != "ہوم" {
		t.Fatalf("existing label overwritten: %v", got)
	}
	if got := items[1].(map[string]any)["label"].(map[string]any)["ur"]; got != "Blog" {
		t.Fatalf("expected copied label, got %v", got)
	}
}

func TestRemedyReportsEmptySource(t *testing.T) {
	doc := completeBlog()
	doc["en"].(map[string]any)["title"] = ""
	doc["ur"].(map[string]any)["title"] = ""
	spec := blogSpec()
	remedy := bilingual.NewRemedy(spec, content.LangEN, bilingual.Validate(doc, content.LangEN, spec))
	if err := remedy.CopyField(doc, "title"); !errors.Is(err, bilingual.ErrCopySourceEmpty) {
		t.Fatalf("expected ErrCopySourceEmpty, got %v", err)
	}
}
