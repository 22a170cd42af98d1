package i18n

import (
	"github.com/goliatone/go-bilingual-cms/content"
)

// Localize returns the view of doc a visitor reading lang sees: the lang
// half of a partitioned document is lifted to the top level, the other
// half is dropped, and every {"en": ..., "ur": ...} value collapses to its
// lang entry. doc is not modified.
func Localize(doc map[string]any, lang content.Lang) map[string]any {
	if doc == nil {
		return nil
	}
	if !lang.Valid() {
		lang = content.LangEN
	}
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		if _, isLang := content.ParseLang(key); isLang {
			continue
		}
		out[key] = localizeValue(value, lang)
	}
	if half, ok := doc[lang.String()].(map[string]any); ok {
		for key, value := range half {
			out[key] = localizeValue(value, lang)
		}
	}
	return out
}

// LocalizeAll applies Localize to each document.
func LocalizeAll(docs []map[string]any, lang content.Lang) []map[string]any {
	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Localize(doc, lang))
	}
	return out
}

func localizeValue(value any, lang content.Lang) any {
	switch typed := value.(type) {
	case map[string]any:
		if isLocalized(typed) {
			return typed[lang.String()]
		}
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			out[key] = localizeValue(inner, lang)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, inner := range typed {
			out[i] = localizeValue(inner, lang)
		}
		return out
	default:
		return content.CloneValue(typed)
	}
}

// isLocalized reports whether m only holds language keys with scalar
// values.
func isLocalized(m map[string]any) bool {
	if len(m) == 0 {
		return false
	}
	for key, value := range m {
		if _, ok := content.ParseLang(key); !ok {
			return false
		}
		switch value.(type) {
		case map[string]any, []any:
			return false
		}
	}
	return true
}
