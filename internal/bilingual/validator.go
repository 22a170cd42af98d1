// Package bilingual checks English/Urdu completeness of content documents
// and implements the remedies offered when a translation is missing.
package bilingual

import (
	"strings"

	"github.com/goliatone/go-bilingual-cms/content"
)

// Field is a required field path. RichText fields hold HTML and are empty
// when they have no visible text.
type Field struct {
	Path     string
	RichText bool
}

// ListSpec names a per-language list whose items are matched across
// languages by IDField ("id" when blank).
type ListSpec struct {
	Path    string
	IDField string
}

func (l ListSpec) idField() string {
	if f := strings.TrimSpace(l.IDField); f != "" {
		return f
	}
	return "id"
}

// FieldSpec declares what a kind requires. Order is significant: results
// list paths in declaration order.
type FieldSpec struct {
	Shared    []Field
	Bilingual []Field
	Lists     []ListSpec
}

// Field returns the bilingual field declared at path.
func (s FieldSpec) Field(path string) (Field, bool) {
	for _, f := range s.Bilingual {
		if f.Path == path {
			return f, true
		}
	}
	return Field{}, false
}

// List returns the list declared at path.
func (s FieldSpec) List(path string) (ListSpec, bool) {
	for _, l := range s.Lists {
		if l.Path == path {
			return l, true
		}
	}
	return ListSpec{}, false
}

// ItemGap is a list item present in one language and absent, by id, from
// Lang.
type ItemGap struct {
	List string       `json:"list"`
	ID   string       `json:"id"`
	Lang content.Lang `json:"lang"`
}

// Result is the outcome of Validate. MissingCurrent holds empty shared
// fields and "<path>.<current>" entries, MissingOpposite holds
// "<path>.<opposite>" entries and MissingItems the list items the opposite
// language lacks.
type Result struct {
	MissingCurrent  []string  `json:"missingCurrent"`
	MissingOpposite []string  `json:"missingOpposite"`
	MissingItems    []ItemGap `json:"missingItems"`
}

// Complete reports whether nothing is missing.
func (r Result) Complete() bool {
	return len(r.MissingCurrent) == 0 && len(r.MissingOpposite) == 0 && len(r.MissingItems) == 0
}

// OppositeIncomplete reports whether the other language has gaps.
func (r Result) OppositeIncomplete() bool {
	return len(r.MissingOpposite) > 0 || len(r.MissingItems) > 0
}

// Validate reports which required values are empty in current, which are
// empty in the opposite language, and which list items exist in current
// only. It never fails; an unsupported current language is read as English.
func Validate(doc map[string]any, current content.Lang, spec FieldSpec) Result {
	if !current.Valid() {
		current = content.LangEN
	}
	opposite := current.Opposite()
	result := Result{
		MissingCurrent:  []string{},
		MissingOpposite: []string{},
		MissingItems:    []ItemGap{},
	}

	for _, field := range spec.Shared {
		slots, ok := collectSlots(doc, parsePath(field.Path), false)
		if !present(slots, ok, field.RichText) {
			result.MissingCurrent = append(result.MissingCurrent, field.Path)
		}
	}
	for _, field := range spec.Bilingual {
		if !hasValue(doc, field, current) {
			result.MissingCurrent = append(result.MissingCurrent, qualify(field.Path, current))
		}
	}
	for _, field := range spec.Bilingual {
		if !hasValue(doc, field, opposite) {
			result.MissingOpposite = append(result.MissingOpposite, qualify(field.Path, opposite))
		}
	}
	for _, list := range spec.Lists {
		result.MissingItems = append(result.MissingItems, MissingItems(doc, current, list)...)
	}
	return result
}

func hasValue(doc map[string]any, field Field, lang content.Lang) bool {
	slots, ok := langSlots(doc, field.Path, lang, false)
	return present(slots, ok, field.RichText)
}

func qualify(path string, lang content.Lang) string {
	return path + "." + string(lang)
}

// splitQualified turns "title.ur" into ("title", ur).
func splitQualified(path string) (string, content.Lang, bool) {
	idx := strings.LastIndex(path, ".")
	if idx <= 0 {
		return path, "", false
	}
	lang, ok := content.ParseLang(path[idx+1:])
	if !ok {
		return path, "", false
	}
	return path[:idx], lang, true
}
