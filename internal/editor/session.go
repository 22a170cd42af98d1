package editor

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/bilingual"
	"github.com/goliatone/go-bilingual-cms/internal/kinds"
	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
	"github.com/google/uuid"
)

// Session is the draft of one document. Values are written into the
// language currently selected.
type Session struct {
	def    kinds.Definition
	doc    map[string]any
	lang   content.Lang
	id     uuid.UUID
	isNew  bool
	logger interfaces.Logger
}

func newSession(def kinds.Definition, doc map[string]any, isNew bool, logger interfaces.Logger) *Session {
	s := &Session{
		def:    def,
		doc:    doc,
		lang:   content.LangEN,
		isNew:  isNew,
		logger: logging.Ensure(logger),
	}
	if raw, ok := doc["id"].(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			s.id = id
		}
	}
	return s
}

func (s *Session) Kind() content.Kind        { return s.def.Kind }
func (s *Session) Spec() bilingual.FieldSpec { return s.def.Spec }
func (s *Session) Lang() content.Lang        { return s.lang }
func (s *Session) ID() uuid.UUID             { return s.id }
func (s *Session) IsNew() bool               { return s.isNew }

// Document returns a copy of the draft.
func (s *Session) Document() map[string]any {
	return content.CloneDocument(s.doc)
}

// Slug returns the draft's current slug.
func (s *Session) Slug() string {
	slug, _ := s.doc["slug"].(string)
	return slug
}

// Get reads path in the current language.
func (s *Session) Get(path string) (any, bool) {
	return bilingual.Lookup(s.doc, path, s.lang)
}

// Set writes path in the current language. Editing the English title
// re-derives the slug, replacing a slug that was edited by hand.
func (s *Session) Set(path string, value any) error {
	path = strings.TrimSpace(path)
	if !s.translatable(path) {
		return fmt.Errorf("%w: %q is not a translated field of %s", bilingual.ErrPathNotAssignable, path, s.def.Kind)
	}
	tracksSlug := s.def.HasSlug() && s.lang == content.LangEN && path == s.def.TitlePath
	var previous string
	if tracksSlug {
		previous = s.englishTitle()
	}
	if err := bilingual.Assign(s.doc, path, s.lang, value); err != nil {
		return err
	}
	if tracksSlug {
		s.syncSlug(previous)
	}
	return nil
}

// SetShared writes a language-independent field. Writing "slug" sets a
// manual slug.
func (s *Session) SetShared(path string, value any) error {
	if strings.TrimSpace(path) == "slug" {
		text, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: slug must be a string", bilingual.ErrPathNotAssignable)
		}
		s.doc["slug"] = content.NormalizeSlug(text)
		return nil
	}
	return bilingual.AssignShared(s.doc, path, value)
}

// translatable reports whether path holds per-language text: a declared
// bilingual field, or an optional one the draft already carries per language
// (page subheadings, contact hours).
func (s *Session) translatable(path string) bool {
	if _, ok := s.def.Spec.Field(path); ok {
		return true
	}
	for _, f := range s.def.Spec.Shared {
		if f.Path == path {
			return false
		}
	}
	for _, lang := range content.Langs {
		if _, ok := bilingual.Lookup(s.doc, path, lang); ok {
			return true
		}
	}
	return false
}

func (s *Session) englishTitle() string {
	value, _ := bilingual.Lookup(s.doc, s.def.TitlePath, content.LangEN)
	title, _ := value.(string)
	return title
}

func (s *Session) syncSlug(previousTitle string) {
	current := s.Slug()
	change := content.SyncSlug(previousTitle, s.englishTitle(), current)
	if change.Replaced {
		s.logger.Warn("editor.slug.overwritten",
			"kind", s.def.Kind.String(),
			"previous_slug", current,
			"slug", change.Slug,
		)
	}
	s.doc["slug"] = change.Slug
}

func (s *Session) switchLanguage() content.Lang {
	s.lang = s.lang.Opposite()
	return s.lang
}
