package bilingual

import (
	"fmt"

	"github.com/goliatone/go-bilingual-cms/content"
)

// listSlot locates the list for lang. With create set, a missing list is
// added so items can be appended.
func listSlot(doc map[string]any, list ListSpec, lang content.Lang, create bool) (slot, bool) {
	slots, ok := langSlots(doc, list.Path, lang, create)
	if !ok || len(slots) != 1 {
		return slot{}, false
	}
	s := slots[0]
	if _, isList := s.value().([]any); !isList {
		if !create || s.value() != nil {
			return slot{}, false
		}
		s.parent[s.key] = []any{}
	}
	return s, true
}

// Items returns the objects in the list for lang. Non-object entries are
// skipped.
func Items(doc map[string]any, lang content.Lang, list ListSpec) []map[string]any {
	s, ok := listSlot(doc, list, lang, false)
	if !ok {
		return nil
	}
	raw := s.value().([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if item, ok := entry.(map[string]any); ok {
			out = append(out, item)
		}
	}
	return out
}

func itemIDs(items []map[string]any, field string) map[string]bool {
	ids := make(map[string]bool, len(items))
	for _, item := range items {
		if id := idKey(item[field]); id != "" {
			ids[id] = true
		}
	}
	return ids
}

// MissingItems lists the ids present in current's list and absent from the
// opposite language's list, in current-list order. Items without an id
// cannot be matched and are ignored.
func MissingItems(doc map[string]any, current content.Lang, list ListSpec) []ItemGap {
	if !current.Valid() {
		current = content.LangEN
	}
	opposite := current.Opposite()
	field := list.idField()
	have := itemIDs(Items(doc, opposite, list), field)

	gaps := []ItemGap{}
	seen := map[string]bool{}
	for _, item := range Items(doc, current, list) {
		id := idKey(item[field])
		if id == "" || have[id] || seen[id] {
			continue
		}
		seen[id] = true
		gaps = append(gaps, ItemGap{List: list.Path, ID: id, Lang: opposite})
	}
	return gaps
}

// FindItem returns the item with id from lang's list.
func FindItem(doc map[string]any, lang content.Lang, list ListSpec, id string) (map[string]any, bool) {
	field := list.idField()
	for _, item := range Items(doc, lang, list) {
		if idKey(item[field]) == id {
			return item, true
		}
	}
	return nil, false
}

// DraftItem builds the empty draft shown in the opposite language for an
// item of current: same keys, blank values, same id.
func DraftItem(doc map[string]any, current content.Lang, list ListSpec, id string) (map[string]any, error) {
	item, ok := FindItem(doc, current, list, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s %q in %s", ErrItemNotFound, list.Path, id, current)
	}
	draft, _ := blank(item).(map[string]any)
	draft[list.idField()] = content.CloneValue(item[list.idField()])
	return draft, nil
}

func blank(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			out[key] = blank(inner)
		}
		return out
	case []any:
		return []any{}
	case string:
		return ""
	case bool:
		return false
	case nil:
		return nil
	default:
		return ""
	}
}

// SkipTranslation copies the whole item with id from current's list into
// the opposite language's list under the same id. The item must exist in
// current and be missing from the opposite list.
func SkipTranslation(doc map[string]any, current content.Lang, list ListSpec, id string) error {
	if !current.Valid() {
		current = content.LangEN
	}
	item, ok := FindItem(doc, current, list, id)
	if !ok {
		return fmt.Errorf("%w: %s %q in %s", ErrItemNotFound, list.Path, id, current)
	}
	opposite := current.Opposite()
	if _, exists := FindItem(doc, opposite, list, id); exists {
		return fmt.Errorf("%w: %s %q in %s", ErrItemNotMissing, list.Path, id, opposite)
	}
	s, ok := listSlot(doc, list, opposite, true)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPathNotAssignable, list.Path)
	}
	s.parent[s.key] = append(s.value().([]any), content.CloneDocument(item))
	return nil
}

// UpsertItem replaces the item in lang's list that shares item's id, or
// appends it.
func UpsertItem(doc map[string]any, lang content.Lang, list ListSpec, item map[string]any) error {
	field := list.idField()
	id := idKey(item[field])
	if id == "" {
		return fmt.Errorf("%w: %s item without %s", ErrPathNotAssignable, list.Path, field)
	}
	s, ok := listSlot(doc, list, lang, true)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPathNotAssignable, list.Path)
	}
	entries := s.value().([]any)
	for i, entry := range entries {
		if existing, ok := entry.(map[string]any); ok && idKey(existing[field]) == id {
			entries[i] = content.CloneDocument(item)
			return nil
		}
	}
	s.parent[s.key] = append(entries, content.CloneDocument(item))
	return nil
}
