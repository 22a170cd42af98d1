// Package records persists bilingual content documents. Every write is
// gated on both languages being complete.
package records

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/bilingual"
	"github.com/goliatone/go-bilingual-cms/internal/identity"
	"github.com/goliatone/go-bilingual-cms/internal/kinds"
	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/internal/richtext"
	"github.com/goliatone/go-bilingual-cms/internal/validation"
	"github.com/goliatone/go-bilingual-cms/pkg/activity"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
	"github.com/google/uuid"
)

// Report is the outcome of validating a draft without saving it.
type Report struct {
	Kind    content.Kind      `json:"kind"`
	Lang    content.Lang      `json:"lang"`
	Result  bilingual.Result  `json:"result"`
	Verdict bilingual.Verdict `json:"verdict"`
}

// Service stores and validates documents of every registered kind.
type Service struct {
	repo     Repository
	logger   interfaces.Logger
	hooks    activity.Hooks
	schemas  *validation.Validator
	now      func() time.Time
	newID    func() uuid.UUID
	sanitize bool
}

// ServiceOption configures Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithActivityHooks registers hooks notified after every write.
func WithActivityHooks(hooks ...activity.Hook) ServiceOption {
	return func(s *Service) {
		s.hooks = append(s.hooks, hooks...)
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides uuid.New for new records.
func WithIDGenerator(fn func() uuid.UUID) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithRichTextSanitizer toggles HTML sanitising of rich-text fields.
func WithRichTextSanitizer(enabled bool) ServiceOption {
	return func(s *Service) {
		s.sanitize = enabled
	}
}

// WithSchemaValidator replaces the payload schema validator. Nil disables
// shape checks.
func WithSchemaValidator(v *validation.Validator) ServiceOption {
	return func(s *Service) {
		s.schemas = v
	}
}

// NewService wires a Service over repo.
func NewService(repo Repository, opts ...ServiceOption) (*Service, error) {
	if repo == nil {
		return nil, ErrRepositoryNil
	}
	schemas, err := KindSchemas()
	if err != nil {
		return nil, err
	}
	s := &Service{
		repo:     repo,
		logger:   logging.NoOp(),
		schemas:  schemas,
		now:      time.Now,
		newID:    uuid.New,
		sanitize: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

var (
	schemasOnce sync.Once
	schemas     *validation.Validator
	schemasErr  error
)

// KindSchemas returns a validator with every kind's schema registered.
func KindSchemas() (*validation.Validator, error) {
	schemasOnce.Do(func() {
		v := validation.NewValidator()
		for _, def := range kinds.All() {
			if err := v.Register(def.Kind.String(), def.Schema); err != nil {
				schemasErr = err
				return
			}
		}
		schemas = v
	})
	return schemas, schemasErr
}

func (s *Service) definition(kind content.Kind) (kinds.Definition, error) {
	def, ok := kinds.Lookup(kind)
	if !ok {
		return kinds.Definition{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return def, nil
}

func (s *Service) collection(kind content.Kind) (kinds.Definition, error) {
	def, err := s.definition(kind)
	if err != nil {
		return def, err
	}
	if def.Singleton {
		return def, fmt.Errorf("%w: %s", ErrNotCollection, kind)
	}
	return def, nil
}

// List returns every record of kind, oldest first.
func (s *Service) List(ctx context.Context, kind content.Kind) ([]*Record, error) {
	if _, err := s.collection(kind); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, kind)
}

// ListOnHome returns the records of kind flagged for the home page.
func (s *Service) ListOnHome(ctx context.Context, kind content.Kind) ([]*Record, error) {
	all, err := s.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]*Record, 0, len(all))
	for _, rec := range all {
		if rec.ShowOnHome {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Get returns the record of kind with id.
func (s *Service) Get(ctx context.Context, kind content.Kind, id uuid.UUID) (*Record, error) {
	if _, err := s.collection(kind); err != nil {
		return nil, err
	}
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Kind != kind {
		return nil, &NotFoundError{Resource: kind.String(), Key: id.String()}
	}
	return rec, nil
}

// GetBySlug returns the record of kind with slug.
func (s *Service) GetBySlug(ctx context.Context, kind content.Kind, slug string) (*Record, error) {
	if _, err := s.collection(kind); err != nil {
		return nil, err
	}
	return s.repo.GetBySlug(ctx, kind, content.NormalizeSlug(slug))
}

// Validate runs the bilingual check on doc as the editor would in lang.
func (s *Service) Validate(kind content.Kind, doc map[string]any, lang content.Lang) (Report, error) {
	def, err := s.definition(kind)
	if err != nil {
		return Report{}, err
	}
	if !lang.Valid() {
		lang = content.LangEN
	}
	result := bilingual.Validate(doc, lang, def.Spec)
	return Report{
		Kind:    kind,
		Lang:    lang,
		Result:  result,
		Verdict: bilingual.Gate(result, lang),
	}, nil
}

// Create stores a new record. A valid "id" in doc is kept so imports and
// seeds can use stable ids.
func (s *Service) Create(ctx context.Context, kind content.Kind, doc map[string]any) (*Record, error) {
	def, err := s.collection(kind)
	if err != nil {
		return nil, err
	}
	work, err := s.prepare(def, doc)
	if err != nil {
		return nil, err
	}

	id := documentID(work)
	if id == uuid.Nil {
		id = s.newID()
	} else if _, err := s.repo.GetByID(ctx, id); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrRecordExists, id)
	}

	slug, err := s.resolveSlug(def, work, "", sharedString(work, "slug"))
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugAvailable(ctx, kind, slug, id); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rec := &Record{
		ID:         id,
		Kind:       kind,
		Slug:       slug,
		ShowOnHome: boolAt(work, "showOnHome"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	stamp(work, rec)
	rec.Payload = work

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.recordLogger(kind, created.ID).Info("records.created", "slug", created.Slug)
	s.emit(ctx, "content.created", created)
	return created, nil
}

// Update replaces the stored document. Concurrent updates are not
// coordinated; the last write wins.
func (s *Service) Update(ctx context.Context, kind content.Kind, id uuid.UUID, doc map[string]any) (*Record, error) {
	def, err := s.collection(kind)
	if err != nil {
		return nil, err
	}
	existing, err := s.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	work, err := s.prepare(def, doc)
	if err != nil {
		return nil, err
	}

	previousTitle := englishString(existing.Payload, def.TitlePath)
	requested := sharedString(work, "slug")
	if requested == "" {
		requested = existing.Slug
	}
	slug, err := s.resolveSlug(def, work, previousTitle, requested)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugAvailable(ctx, kind, slug, id); err != nil {
		return nil, err
	}

	rec := cloneRecord(existing)
	rec.Slug = slug
	rec.ShowOnHome = boolAt(work, "showOnHome")
	rec.UpdatedAt = s.now().UTC()
	stamp(work, rec)
	rec.Payload = work

	updated, err := s.repo.Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.recordLogger(kind, updated.ID).Info("records.updated", "slug", updated.Slug)
	s.emit(ctx, "content.updated", updated)
	return updated, nil
}

// Delete removes the record permanently.
func (s *Service) Delete(ctx context.Context, kind content.Kind, id uuid.UUID) error {
	existing, err := s.Get(ctx, kind, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recordLogger(kind, id).Info("records.deleted", "slug", existing.Slug)
	s.emit(ctx, "content.deleted", existing)
	return nil
}

// GetSingleton returns the document stored for a singleton kind. key
// selects the listing kind for page settings and is ignored otherwise.
// When nothing is stored yet an unsaved record holding the empty document
// is returned.
func (s *Service) GetSingleton(ctx context.Context, kind content.Kind, key string) (*Record, error) {
	def, key, err := s.singleton(kind, key)
	if err != nil {
		return nil, err
	}
	id := identity.SingletonUUID(kind.String(), key)
	rec, err := s.repo.GetByID(ctx, id)
	if err == nil {
		return rec, nil
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}
	doc, err := def.NewDocument()
	if err != nil {
		return nil, err
	}
	empty := &Record{ID: id, Kind: kind, Slug: key}
	stamp(doc, empty)
	empty.Payload = doc
	return empty, nil
}

// PutSingleton stores the document for a singleton kind, creating it on
// first write.
func (s *Service) PutSingleton(ctx context.Context, kind content.Kind, key string, doc map[string]any) (*Record, error) {
	def, key, err := s.singleton(kind, key)
	if err != nil {
		return nil, err
	}
	if doc != nil && kind == content.KindPages {
		doc = content.CloneDocument(doc)
		doc["kind"] = key
	}
	work, err := s.prepare(def, doc)
	if err != nil {
		return nil, err
	}

	id := identity.SingletonUUID(kind.String(), key)
	now := s.now().UTC()
	rec := &Record{ID: id, Kind: kind, Slug: key, UpdatedAt: now}
	stamp(work, rec)
	rec.Payload = work

	existing, err := s.repo.GetByID(ctx, id)
	var notFound *NotFoundError
	switch {
	case err == nil:
		rec.CreatedAt = existing.CreatedAt
		saved, err := s.repo.Update(ctx, rec)
		if err != nil {
			return nil, err
		}
		s.recordLogger(kind, id).Info("records.singleton.updated", "key", key)
		s.emit(ctx, "content.updated", saved)
		return saved, nil
	case errors.As(err, &notFound):
		rec.CreatedAt = now
		saved, err := s.repo.Create(ctx, rec)
		if err != nil {
			return nil, err
		}
		s.recordLogger(kind, id).Info("records.singleton.created", "key", key)
		s.emit(ctx, "content.created", saved)
		return saved, nil
	default:
		return nil, err
	}
}

func (s *Service) singleton(kind content.Kind, key string) (kinds.Definition, string, error) {
	def, err := s.definition(kind)
	if err != nil {
		return def, "", err
	}
	if !def.Singleton {
		return def, "", fmt.Errorf("%w: %s", ErrNotSingleton, kind)
	}
	if kind != content.KindPages {
		return def, kind.String(), nil
	}
	key = strings.ToLower(strings.TrimSpace(key))
	page, ok := kinds.Lookup(content.Kind(key))
	if !ok || page.Singleton {
		return def, "", fmt.Errorf("%w: page settings for %q", ErrUnknownKind, key)
	}
	return def, key, nil
}

// prepare checks shape, sanitises rich text and enforces completeness in
// both languages. It works on a copy of doc.
func (s *Service) prepare(def kinds.Definition, doc map[string]any) (map[string]any, error) {
	if doc == nil {
		doc = map[string]any{}
	}
	if s.schemas != nil {
		if err := s.schemas.Validate(def.Kind.String(), doc); err != nil {
			return nil, err
		}
	}
	work := content.CloneDocument(doc)
	if s.sanitize {
		for _, path := range def.RichText {
			for _, lang := range content.Langs {
				bilingual.Transform(work, path, lang, sanitizeValue)
			}
		}
	}
	if err := completeness(def, work); err != nil {
		return nil, err
	}
	return work, nil
}

func sanitizeValue(value any) any {
	if html, ok := value.(string); ok {
		return richtext.Sanitize(html)
	}
	return value
}

// Gaps reports what doc still lacks in either language, or nil when it is
// complete.
func Gaps(kind content.Kind, doc map[string]any) (*IncompleteError, error) {
	def, ok := kinds.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return missingTranslations(def, doc), nil
}

func completeness(def kinds.Definition, doc map[string]any) error {
	if gaps := missingTranslations(def, doc); gaps != nil {
		return gaps
	}
	return nil
}

// missingTranslations validates from English so MissingCurrent carries the
// English and shared gaps and MissingOpposite the Urdu ones. Item gaps are
// collected in both directions.
func missingTranslations(def kinds.Definition, doc map[string]any) *IncompleteError {
	result := bilingual.Validate(doc, content.LangEN, def.Spec)
	items := append([]bilingual.ItemGap{}, result.MissingItems...)
	for _, list := range def.Spec.Lists {
		items = append(items, bilingual.MissingItems(doc, content.LangUR, list)...)
	}
	if len(result.MissingCurrent) == 0 && len(result.MissingOpposite) == 0 && len(items) == 0 {
		return nil
	}
	missing := append(append([]string{}, result.MissingCurrent...), result.MissingOpposite...)
	return &IncompleteError{Kind: def.Kind, Missing: missing, Items: items}
}

// resolveSlug derives the slug for collections. On create a supplied slug
// is kept; on update a changed English title regenerates it even when it
// was edited by hand.
func (s *Service) resolveSlug(def kinds.Definition, doc map[string]any, previousTitle, requested string) (string, error) {
	title := englishString(doc, def.TitlePath)
	if previousTitle == "" {
		previousTitle = title
	}
	change := content.SyncSlug(previousTitle, title, content.NormalizeSlug(requested))
	if change.Replaced {
		s.logger.Warn("records.slug.overwritten",
			"kind", def.Kind.String(),
			"previous_slug", requested,
			"slug", change.Slug,
		)
	}
	if !content.IsValidSlug(change.Slug) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, change.Slug)
	}
	return change.Slug, nil
}

func (s *Service) ensureSlugAvailable(ctx context.Context, kind content.Kind, slug string, self uuid.UUID) error {
	existing, err := s.repo.GetBySlug(ctx, kind, slug)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return fmt.Errorf("%w: %s/%s", ErrSlugExists, kind, slug)
	}
	return nil
}

func (s *Service) recordLogger(kind content.Kind, id uuid.UUID) interfaces.Logger {
	return logging.WithRecordContext(s.logger, kind.String(), id.String(), "")
}

func (s *Service) emit(ctx context.Context, verb string, rec *Record) {
	if !s.hooks.Enabled() || rec == nil {
		return
	}
	event := activity.Event{
		Verb:           verb,
		ActorID:        activity.ActorFromContext(ctx),
		ObjectType:     "content." + rec.Kind.String(),
		ObjectID:       rec.ID.String(),
		Channel:        "cms",
		DefinitionCode: rec.Kind.String() + ":" + strings.TrimPrefix(verb, "content."),
		Metadata: map[string]any{
			"kind": rec.Kind.String(),
			"slug": rec.Slug,
		},
		OccurredAt: s.now().UTC(),
	}
	if err := s.hooks.Notify(ctx, event); err != nil {
		s.recordLogger(rec.Kind, rec.ID).Warn("records.activity.failed", "verb", verb, "error", err)
	}
}

// sharedString reads a language-independent string field.
func sharedString(doc map[string]any, path string) string {
	value, ok := bilingual.LookupShared(doc, path)
	if !ok {
		return ""
	}
	text, _ := value.(string)
	return strings.TrimSpace(text)
}

// englishString reads the English value of a bilingual string field.
func englishString(doc map[string]any, path string) string {
	if path == "" {
		return ""
	}
	value, ok := bilingual.Lookup(doc, path, content.LangEN)
	if !ok {
		return ""
	}
	text, _ := value.(string)
	return strings.TrimSpace(text)
}

func boolAt(doc map[string]any, path string) bool {
	value, _ := bilingual.LookupShared(doc, path)
	flag, _ := value.(bool)
	return flag
}

func documentID(doc map[string]any) uuid.UUID {
	raw := sharedString(doc, "id")
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
