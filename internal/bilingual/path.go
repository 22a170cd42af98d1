package bilingual

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/richtext"
)

// segment is one dot-separated part of a field path. "items[]" walks every
// element of a list and "items[2]" a single one.
type segment struct {
	name    string
	isArray bool
	index   *int
}

func parseSegment(part string) segment {
	part = strings.TrimSpace(part)
	if part == "" {
		return segment{}
	}
	if name, ok := strings.CutSuffix(part, "[]"); ok {
		return segment{name: name, isArray: true}
	}
	open := strings.Index(part, "[")
	end := strings.LastIndex(part, "]")
	if open >= 0 && end > open {
		name := part[:open]
		raw := strings.TrimSpace(part[open+1 : end])
		if raw == "" {
			return segment{name: name, isArray: true}
		}
		if idx, err := strconv.Atoi(raw); err == nil {
			return segment{name: name, isArray: true, index: &idx}
		}
		return segment{name: name}
	}
	return segment{name: part}
}

func parsePath(path string) []segment {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		seg := parseSegment(part)
		if seg.name == "" && !seg.isArray {
			continue
		}
		segments = append(segments, seg)
	}
	return segments
}

func hasArray(segments []segment) bool {
	for _, seg := range segments {
		if seg.isArray {
			return true
		}
	}
	return false
}

// slot addresses a single value: parent[key].
type slot struct {
	parent map[string]any
	key    string
}

func (s slot) value() any { return s.parent[s.key] }

// collectSlots expands segments below root into the concrete slots they
// address. It reports false when the structure needed to reach a slot is
// absent: a missing or non-object container, or an empty list walked with
// "[]". With create set, missing intermediate objects are added; lists are
// never created.
func collectSlots(root any, segments []segment, create bool) ([]slot, bool) {
	if len(segments) == 0 {
		return nil, false
	}
	current, ok := root.(map[string]any)
	if !ok {
		return nil, false
	}
	seg := segments[0]
	last := len(segments) == 1

	if last && (!seg.isArray || seg.index == nil) {
		// A trailing "name[]" addresses the list itself.
		return []slot{{parent: current, key: seg.name}}, true
	}

	next, exists := current[seg.name]
	if !seg.isArray {
		if !exists || next == nil {
			if !create {
				return nil, false
			}
			next = map[string]any{}
			current[seg.name] = next
		}
		return collectSlots(next, segments[1:], create)
	}

	list, ok := next.([]any)
	if !ok {
		return nil, false
	}
	if seg.index != nil {
		i := *seg.index
		if i < 0 || i >= len(list) {
			return nil, false
		}
		if last {
			return []slot{{parent: listElementHolder(list, i), key: "value"}}, true
		}
		return collectSlots(list[i], segments[1:], create)
	}
	if len(list) == 0 {
		return nil, false
	}
	var out []slot
	for _, element := range list {
		slots, ok := collectSlots(element, segments[1:], create)
		if !ok {
			return nil, false
		}
		out = append(out, slots...)
	}
	return out, true
}

// listElementHolder wraps a list element so an indexed trailing segment can
// still be read through a slot. It is read-only.
func listElementHolder(list []any, i int) map[string]any {
	return map[string]any{"value": list[i]}
}

// partitioned reports whether path lives under per-language objects
// ("en.title") rather than a localized value ("socialShare.title.en").
func partitioned(doc map[string]any, segments []segment) bool {
	if len(segments) == 0 {
		return false
	}
	for _, lang := range content.Langs {
		if half, ok := doc[string(lang)].(map[string]any); ok {
			if _, found := half[segments[0].name]; found {
				return true
			}
		}
	}
	return false
}

// langSlots resolves the slots holding path's value in lang.
func langSlots(doc map[string]any, path string, lang content.Lang, create bool) ([]slot, bool) {
	if doc == nil {
		return nil, false
	}
	segments := parsePath(path)
	if len(segments) == 0 {
		return nil, false
	}
	if partitioned(doc, segments) {
		half, ok := doc[string(lang)].(map[string]any)
		if !ok {
			if !create {
				return nil, false
			}
			half = map[string]any{}
			doc[string(lang)] = half
		}
		return collectSlots(half, segments, create)
	}
	localized := append(append([]segment(nil), segments...), segment{name: string(lang)})
	return collectSlots(doc, localized, create)
}

// present reports whether every slot holds a meaningful value.
func present(slots []slot, ok bool, rich bool) bool {
	if !ok || len(slots) == 0 {
		return false
	}
	for _, s := range slots {
		if !meaningful(s.value(), rich) {
			return false
		}
	}
	return true
}

// meaningful is the emptiness rule: nil, blank strings and empty lists or
// objects are missing. Rich text is judged on its visible text or images and a
// {"text": ...} wrapper on its text.
func meaningful(value any, rich bool) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case string:
		if rich {
			return !richtext.IsBlank(typed)
		}
		return strings.TrimSpace(typed) != ""
	case []any:
		return len(typed) > 0
	case []string:
		return len(typed) > 0
	case map[string]any:
		if text, ok := typed["text"]; ok {
			return meaningful(text, rich)
		}
		return len(typed) > 0
	default:
		return true
	}
}

// Lookup returns the single value stored at path for lang. Paths with "[]"
// segments are not addressable this way.
func Lookup(doc map[string]any, path string, lang content.Lang) (any, bool) {
	if hasArray(parsePath(path)) {
		return nil, false
	}
	slots, ok := langSlots(doc, path, lang, false)
	if !ok || len(slots) != 1 {
		return nil, false
	}
	value, found := slots[0].parent[slots[0].key]
	return value, found
}

// Assign writes value at path for lang, creating intermediate objects.
func Assign(doc map[string]any, path string, lang content.Lang, value any) error {
	if hasArray(parsePath(path)) {
		return fmt.Errorf("%w: %q", ErrPathNotAssignable, path)
	}
	slots, ok := langSlots(doc, path, lang, true)
	if !ok || len(slots) != 1 {
		return fmt.Errorf("%w: %q", ErrPathNotAssignable, path)
	}
	slots[0].parent[slots[0].key] = value
	return nil
}

// LookupShared returns a language-independent value.
func LookupShared(doc map[string]any, path string) (any, bool) {
	segments := parsePath(path)
	if hasArray(segments) {
		return nil, false
	}
	slots, ok := collectSlots(doc, segments, false)
	if !ok || len(slots) != 1 {
		return nil, false
	}
	value, found := slots[0].parent[slots[0].key]
	return value, found
}

// AssignShared writes a language-independent value.
func AssignShared(doc map[string]any, path string, value any) error {
	segments := parsePath(path)
	if doc == nil || hasArray(segments) {
		return fmt.Errorf("%w: %q", ErrPathNotAssignable, path)
	}
	slots, ok := collectSlots(doc, segments, true)
	if !ok || len(slots) != 1 {
		return fmt.Errorf("%w: %q", ErrPathNotAssignable, path)
	}
	slots[0].parent[slots[0].key] = value
	return nil
}

// idKey normalises item ids decoded from JSON ("7", 7, 7.0) to one form.
func idKey(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case json.Number:
		return typed.String()
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		return strings.TrimSpace(fmt.Sprint(typed))
	}
}

// Transform replaces every value stored at path for lang with fn(value).
// Unlike Assign it walks "[]" segments; slots that do not exist are left
// alone. It returns the number of values visited.
func Transform(doc map[string]any, path string, lang content.Lang, fn func(any) any) int {
	slots, ok := langSlots(doc, path, lang, false)
	if !ok {
		return 0
	}
	visited := 0
	for _, s := range slots {
		value, found := s.parent[s.key]
		if !found {
			continue
		}
		s.parent[s.key] = fn(value)
		visited++
	}
	return visited
}
