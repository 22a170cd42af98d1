package bilingual

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-bilingual-cms/content"
)

// Remedy carries the cross-language copy action offered with a
// switch-language prompt. It only copies into fields the preceding
// validation found empty in the target language, each at most once.
type Remedy struct {
	spec    FieldSpec
	from    content.Lang
	to      content.Lang
	allowed map[string]bool
}

// NewRemedy prepares copies from current into the opposite language for
// the fields result reported missing there.
func NewRemedy(spec FieldSpec, current content.Lang, result Result) *Remedy {
	if !current.Valid() {
		current = content.LangEN
	}
	r := &Remedy{
		spec:    spec,
		from:    current,
		to:      current.Opposite(),
		allowed: make(map[string]bool, len(result.MissingOpposite)),
	}
	for _, missing := range result.MissingOpposite {
		base, lang, ok := splitQualified(missing)
		if ok && lang == r.to {
			r.allowed[base] = true
		}
	}
	return r
}

// From is the language values are copied from.
func (r *Remedy) From() content.Lang { return r.from }

// To is the language values are copied into.
func (r *Remedy) To() content.Lang { return r.to }

// Allowed reports whether path ("title" or "title.ur") may still be copied.
func (r *Remedy) Allowed(path string) bool {
	if r == nil {
		return false
	}
	return r.allowed[r.base(path)]
}

// Paths lists the fields that may still be copied, in spec order.
func (r *Remedy) Paths() []string {
	if r == nil {
		return nil
	}
	var out []string
	for _, f := range r.spec.Bilingual {
		if r.allowed[f.Path] {
			out = append(out, f.Path)
		}
	}
	return out
}

func (r *Remedy) base(path string) string {
	path = strings.TrimSpace(path)
	if base, lang, ok := splitQualified(path); ok && lang == r.to {
		return base
	}
	return path
}

// CopyField copies the value of path verbatim from the current language
// into the opposite one. Target slots that already hold a value are never
// written; if none is empty any more the copy is refused.
func (r *Remedy) CopyField(doc map[string]any, path string) error {
	if r == nil || doc == nil {
		return ErrCopyNotAllowed
	}
	base := r.base(path)
	if !r.allowed[base] {
		return fmt.Errorf("%w: %s.%s was not reported missing", ErrCopyNotAllowed, base, r.to)
	}
	field, ok := r.spec.Field(base)
	if !ok {
		return fmt.Errorf("%w: unknown field %q", ErrCopyNotAllowed, base)
	}

	segments := parsePath(base)
	var copied int
	var err error
	if partitioned(doc, segments) {
		copied, err = r.copyPartitioned(doc, field)
	} else {
		copied, err = r.copyLocalized(doc, field, segments)
	}
	if err != nil {
		return err
	}
	if copied == 0 {
		return ErrCopySourceEmpty
	}
	delete(r.allowed, base)
	return nil
}

func (r *Remedy) copyPartitioned(doc map[string]any, field Field) (int, error) {
	if hasArray(parsePath(field.Path)) {
		return 0, fmt.Errorf("%w: %q spans a per-language list", ErrCopyNotAllowed, field.Path)
	}
	source, _ := Lookup(doc, field.Path, r.from)
	if !meaningful(source, field.RichText) {
		return 0, nil
	}
	if target, _ := Lookup(doc, field.Path, r.to); meaningful(target, field.RichText) {
		return 0, fmt.Errorf("%w: %s.%s is no longer empty", ErrCopyNotAllowed, field.Path, r.to)
	}
	if err := Assign(doc, field.Path, r.to, content.CloneValue(source)); err != nil {
		return 0, err
	}
	return 1, nil
}

// copyLocalized handles {"en": ..., "ur": ...} values, element by element
// when the path walks a list.
func (r *Remedy) copyLocalized(doc map[string]any, field Field, segments []segment) (int, error) {
	holders, ok := collectSlots(doc, segments, true)
	if !ok {
		return 0, nil
	}
	copied, blocked := 0, 0
	for _, holder := range holders {
		values, isMap := holder.value().(map[string]any)
		if !isMap {
			if holder.value() != nil {
				continue
			}
			values = map[string]any{}
			holder.parent[holder.key] = values
		}
		if meaningful(values[string(r.to)], field.RichText) {
			blocked++
			continue
		}
		source := values[string(r.from)]
		if !meaningful(source, field.RichText) {
			continue
		}
		values[string(r.to)] = content.CloneValue(source)
		copied++
	}
	if copied == 0 && blocked == len(holders) {
		return 0, fmt.Errorf("%w: %s.%s is no longer empty", ErrCopyNotAllowed, field.Path, r.to)
	}
	return copied, nil
}
