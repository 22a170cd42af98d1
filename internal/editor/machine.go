// Package editor models the admin editing workflow as a single state
// machine: list view, singleton edit, record edit and list-item edit.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/bilingual"
	"github.com/goliatone/go-bilingual-cms/internal/kinds"
	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	// ErrInvalidTransition is returned when an operation is not legal in
	// the current mode.
	ErrInvalidTransition = errors.New("editor: invalid transition")
	ErrPersisterRequired = errors.New("editor: persister required")
	ErrUnknownKind       = errors.New("editor: unknown kind")
	ErrNoPrompt          = errors.New("editor: no language prompt to act on")
)

// SaveResult reports what a save attempt did. Saved is the stored
// document when the verdict allowed the save.
type SaveResult struct {
	Verdict bilingual.Verdict
	Saved   map[string]any
}

// Machine drives one editor. It is not safe for concurrent use; an editor
// session is owned by a single user interaction loop.
type Machine struct {
	mode      Mode
	persister Persister
	logger    interfaces.Logger
	newItemID func() string
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the editor logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithItemIDGenerator overrides how new list items are identified.
func WithItemIDGenerator(fn func() string) Option {
	return func(m *Machine) {
		if fn != nil {
			m.newItemID = fn
		}
	}
}

// NewMachine returns an idle editor.
func NewMachine(persister Persister, opts ...Option) *Machine {
	m := &Machine{
		mode:      Idle{},
		persister: persister,
		logger:    logging.NoOp(),
		newItemID: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:12] },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode { return m.mode }

func (m *Machine) invalid(op string) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, op, m.mode.Kind())
}

func (m *Machine) idle(op string) (Idle, error) {
	idle, ok := m.mode.(Idle)
	if !ok {
		return Idle{}, m.invalid(op)
	}
	return idle, nil
}

// OpenPage starts editing a singleton. key selects the listing kind for
// page settings; doc is the stored document, or nil for the empty one.
func (m *Machine) OpenPage(kind content.Kind, key string, doc map[string]any) error {
	if _, err := m.idle("open page"); err != nil {
		return err
	}
	def, ok := kinds.Lookup(kind)
	if !ok || !def.Singleton {
		return fmt.Errorf("%w: %q is not a singleton", ErrUnknownKind, kind)
	}
	draft, err := draftDocument(def, doc)
	if err != nil {
		return err
	}
	m.mode = EditingPage{Session: newSession(def, draft, doc == nil, m.logger), Key: key}
	return nil
}

// OpenNew starts an Add form with the kind's empty document.
func (m *Machine) OpenNew(kind content.Kind) error {
	return m.openRecord("open new", kind, nil)
}

// OpenExisting starts editing a stored record.
func (m *Machine) OpenExisting(kind content.Kind, doc map[string]any) error {
	if doc == nil {
		return fmt.Errorf("%w: document required", ErrInvalidTransition)
	}
	return m.openRecord("open existing", kind, doc)
}

func (m *Machine) openRecord(op string, kind content.Kind, doc map[string]any) error {
	if _, err := m.idle(op); err != nil {
		return err
	}
	def, ok := kinds.Lookup(kind)
	if !ok || def.Singleton {
		return fmt.Errorf("%w: %q is not a collection", ErrUnknownKind, kind)
	}
	draft, err := draftDocument(def, doc)
	if err != nil {
		return err
	}
	session := newSession(def, draft, doc == nil, logging.WithRecordContext(m.logger, kind.String(), "", ""))
	m.mode = EditingRecord{Session: session}
	m.logger.Debug("editor.record.opened", "kind", kind.String(), "new", doc == nil)
	return nil
}

func draftDocument(def kinds.Definition, doc map[string]any) (map[string]any, error) {
	if doc != nil {
		return content.CloneDocument(doc), nil
	}
	return def.NewDocument()
}

// Session returns the draft being edited, or nil when idle.
func (m *Machine) Session() *Session {
	switch mode := m.mode.(type) {
	case EditingPage:
		return mode.Session
	case EditingRecord:
		return mode.Session
	case EditingSubItem:
		return mode.Parent.Session
	default:
		return nil
	}
}

// Set writes a field of the open document in its current language.
// Earlier validation results are kept until the next save attempt.
func (m *Machine) Set(path string, value any) error {
	switch mode := m.mode.(type) {
	case EditingPage:
		return mode.Session.Set(path, value)
	case EditingRecord:
		return mode.Session.Set(path, value)
	default:
		return m.invalid("set field")
	}
}

// SetShared writes a language-independent field of the open document.
func (m *Machine) SetShared(path string, value any) error {
	switch mode := m.mode.(type) {
	case EditingPage:
		return mode.Session.SetShared(path, value)
	case EditingRecord:
		return mode.Session.SetShared(path, value)
	default:
		return m.invalid("set field")
	}
}

// SwitchLanguage flips the language being edited. Validation results are
// dropped since they were computed for the other language.
func (m *Machine) SwitchLanguage() (content.Lang, error) {
	switch mode := m.mode.(type) {
	case EditingPage:
		lang := mode.Session.switchLanguage()
		m.mode = EditingPage{Session: mode.Session, Key: mode.Key}
		return lang, nil
	case EditingRecord:
		lang := mode.Session.switchLanguage()
		m.mode = EditingRecord{Session: mode.Session}
		return lang, nil
	default:
		return "", m.invalid("switch language")
	}
}

// Save applies the gating order. Gaps in the opposite language block the
// save with a prompt to switch; otherwise gaps in the current language
// block it with inline markers; otherwise the document is persisted and
// the editor returns to the list.
func (m *Machine) Save(ctx context.Context) (SaveResult, error) {
	switch mode := m.mode.(type) {
	case EditingRecord:
		return m.saveRecord(ctx, mode)
	case EditingPage:
		return m.savePage(ctx, mode)
	default:
		return SaveResult{}, m.invalid("save")
	}
}

func (m *Machine) saveRecord(ctx context.Context, mode EditingRecord) (SaveResult, error) {
	session := mode.Session
	result := bilingual.Validate(session.doc, session.lang, session.def.Spec)
	verdict := bilingual.Gate(result, session.lang)
	if verdict.Action == bilingual.ActionSave {
		// Items only the other language has are gaps in this one.
		if gaps := reverseItemGaps(session); len(gaps) > 0 {
			verdict = bilingual.Verdict{Action: bilingual.ActionFixCurrent, Current: session.lang, Missing: []string{}, Items: gaps}
		}
	}
	logger := logging.WithRecordContext(m.logger, session.Kind().String(), session.id.String(), session.lang.String())

	switch verdict.Action {
	case bilingual.ActionSwitchLanguage:
		m.mode = EditingRecord{
			Session: session,
			Result:  &result,
			Verdict: &verdict,
			Prompt:  true,
			Remedy:  bilingual.NewRemedy(session.def.Spec, session.lang, result),
		}
		logger.Info("editor.save.blocked", "reason", "opposite_incomplete", "missing", strings.Join(verdict.Missing, ","))
		return SaveResult{Verdict: verdict}, nil
	case bilingual.ActionFixCurrent:
		m.mode = EditingRecord{Session: session, Result: &result, Verdict: &verdict}
		logger.Info("editor.save.blocked", "reason", "current_incomplete", "missing", strings.Join(verdict.Missing, ","))
		return SaveResult{Verdict: verdict}, nil
	}

	if m.persister == nil {
		return SaveResult{Verdict: verdict}, ErrPersisterRequired
	}
	var (
		saved map[string]any
		err   error
	)
	if session.isNew {
		saved, err = m.persister.Create(ctx, session.Kind(), session.Document())
	} else {
		saved, err = m.persister.Update(ctx, session.Kind(), session.id, session.Document())
	}
	if err != nil {
		logger.Error("editor.save.failed", "error", err)
		return SaveResult{Verdict: verdict}, err
	}
	logger.Info("editor.save.success", "new", session.isNew)
	m.mode = Idle{}
	return SaveResult{Verdict: verdict, Saved: saved}, nil
}

func reverseItemGaps(session *Session) []bilingual.ItemGap {
	var gaps []bilingual.ItemGap
	for _, list := range session.def.Spec.Lists {
		gaps = append(gaps, bilingual.MissingItems(session.doc, session.lang.Opposite(), list)...)
	}
	return gaps
}

func (m *Machine) savePage(ctx context.Context, mode EditingPage) (SaveResult, error) {
	session := mode.Session
	verdict := bilingual.Check(session.doc, session.lang, session.def.Spec)
	if verdict.Blocked() {
		m.mode = EditingPage{Session: session, Key: mode.Key, Verdict: &verdict}
		return SaveResult{Verdict: verdict}, nil
	}
	if m.persister == nil {
		return SaveResult{Verdict: verdict}, ErrPersisterRequired
	}
	saved, err := m.persister.PutSingleton(ctx, session.Kind(), mode.Key, session.Document())
	if err != nil {
		m.logger.Error("editor.page.save.failed", "kind", session.Kind().String(), "error", err)
		return SaveResult{Verdict: verdict}, err
	}
	m.mode = Idle{}
	return SaveResult{Verdict: verdict, Saved: saved}, nil
}

// AcceptPrompt switches to the language the prompt points at. When the
// gaps include list items, the first missing item opens as an empty draft
// carrying the same id.
func (m *Machine) AcceptPrompt() error {
	mode, ok := m.mode.(EditingRecord)
	if !ok {
		return m.invalid("accept prompt")
	}
	if !mode.Prompt || mode.Verdict == nil {
		return ErrNoPrompt
	}
	source := mode.Session.lang
	target := mode.Verdict.Target
	if mode.Session.lang != target {
		mode.Session.switchLanguage()
	}
	parent := EditingRecord{Session: mode.Session}
	if len(mode.Verdict.Items) == 0 {
		m.mode = parent
		return nil
	}

	gap := mode.Verdict.Items[0]
	list, ok := mode.Session.def.Spec.List(gap.List)
	if !ok {
		m.mode = parent
		return fmt.Errorf("%w: %s", bilingual.ErrUnknownList, gap.List)
	}
	draft, err := bilingual.DraftItem(mode.Session.doc, source, list, gap.ID)
	if err != nil {
		m.mode = parent
		return err
	}
	m.mode = EditingSubItem{
		Parent: parent,
		List:   list,
		ID:     gap.ID,
		Lang:   target,
		Draft:  draft,
		Gap:    true,
		IsNew:  true,
	}
	return nil
}

// DismissPrompt closes the prompt without switching. The copy remedy
// stays available until the next save attempt or language switch.
func (m *Machine) DismissPrompt() error {
	mode, ok := m.mode.(EditingRecord)
	if !ok {
		return m.invalid("dismiss prompt")
	}
	if !mode.Prompt {
		return ErrNoPrompt
	}
	mode.Prompt = false
	m.mode = mode
	return nil
}

// CopyFromCurrent copies path from the language being edited into the
// opposite one. It is only legal for a field the last save attempt
// reported as missing there, and never overwrites a value.
func (m *Machine) CopyFromCurrent(path string) error {
	mode, ok := m.mode.(EditingRecord)
	if !ok {
		return m.invalid("copy field")
	}
	if mode.Remedy == nil {
		return bilingual.ErrCopyNotAllowed
	}
	if err := mode.Remedy.CopyField(mode.Session.doc, path); err != nil {
		return err
	}
	m.logger.Info("editor.copy.applied",
		"kind", mode.Session.Kind().String(),
		"path", path,
		"from", mode.Remedy.From().String(),
		"to", mode.Remedy.To().String(),
	)
	return nil
}

// OpenSubItem edits the item with id from the current language's list. A
// blank id starts a new item.
func (m *Machine) OpenSubItem(listPath, id string) error {
	mode, ok := m.mode.(EditingRecord)
	if !ok {
		return m.invalid("open sub-item")
	}
	list, ok := mode.Session.def.Spec.List(listPath)
	if !ok {
		return fmt.Errorf("%w: %s", bilingual.ErrUnknownList, listPath)
	}
	lang := mode.Session.lang
	parent := EditingRecord{Session: mode.Session}

	if strings.TrimSpace(id) == "" {
		field := list.IDField
		if field == "" {
			field = "id"
		}
		newID := m.newItemID()
		m.mode = EditingSubItem{
			Parent: parent,
			List:   list,
			ID:     newID,
			Lang:   lang,
			Draft:  map[string]any{field: newID},
			IsNew:  true,
		}
		return nil
	}

	item, found := bilingual.FindItem(mode.Session.doc, lang, list, id)
	if found {
		m.mode = EditingSubItem{Parent: parent, List: list, ID: id, Lang: lang, Draft: content.CloneDocument(item)}
		return nil
	}
	// Present only in the other language: open it as a gap to fill.
	draft, err := bilingual.DraftItem(mode.Session.doc, lang.Opposite(), list, id)
	if err != nil {
		return err
	}
	m.mode = EditingSubItem{Parent: parent, List: list, ID: id, Lang: lang, Draft: draft, Gap: true, IsNew: true}
	return nil
}

// UpdateSubItem sets a field of the item draft. The id cannot change.
func (m *Machine) UpdateSubItem(field string, value any) error {
	mode, ok := m.mode.(EditingSubItem)
	if !ok {
		return m.invalid("update sub-item")
	}
	idField := mode.List.IDField
	if idField == "" {
		idField = "id"
	}
	if field == idField {
		return fmt.Errorf("%w: %s is the item id", bilingual.ErrPathNotAssignable, field)
	}
	mode.Draft[field] = value
	return nil
}

// CommitSubItem writes the draft into the list and returns to the record.
func (m *Machine) CommitSubItem() error {
	mode, ok := m.mode.(EditingSubItem)
	if !ok {
		return m.invalid("commit sub-item")
	}
	if err := bilingual.UpsertItem(mode.Parent.Session.doc, mode.Lang, mode.List, mode.Draft); err != nil {
		return err
	}
	m.mode = mode.Parent
	return nil
}

// SkipTranslation fills a gap by copying the whole item from the other
// language under the same id, then returns to the record.
func (m *Machine) SkipTranslation() error {
	mode, ok := m.mode.(EditingSubItem)
	if !ok || !mode.Gap {
		return m.invalid("skip translation")
	}
	source := mode.Lang.Opposite()
	if err := bilingual.SkipTranslation(mode.Parent.Session.doc, source, mode.List, mode.ID); err != nil {
		return err
	}
	m.logger.Info("editor.item.translation_skipped",
		"kind", mode.Parent.Session.Kind().String(),
		"list", mode.List.Path,
		"item", mode.ID,
	)
	m.mode = mode.Parent
	return nil
}

// CancelSubItem discards the draft.
func (m *Machine) CancelSubItem() error {
	mode, ok := m.mode.(EditingSubItem)
	if !ok {
		return m.invalid("cancel sub-item")
	}
	m.mode = mode.Parent
	return nil
}

// Close abandons any edit and returns to the list.
func (m *Machine) Close() error {
	switch m.mode.(type) {
	case EditingPage, EditingRecord, EditingSubItem:
		m.mode = Idle{}
		return nil
	default:
		return m.invalid("close")
	}
}

// RequestDelete asks for confirmation before deleting a record.
func (m *Machine) RequestDelete(kind content.Kind, id uuid.UUID) error {
	if _, err := m.idle("request delete"); err != nil {
		return err
	}
	if id == uuid.Nil {
		return fmt.Errorf("%w: record id required", ErrInvalidTransition)
	}
	m.mode = Idle{PendingDelete: &PendingDelete{Kind: kind, ID: id}}
	return nil
}

// ConfirmDelete performs the pending delete. Deletion is irreversible.
func (m *Machine) ConfirmDelete(ctx context.Context) error {
	idle, err := m.idle("confirm delete")
	if err != nil {
		return err
	}
	if idle.PendingDelete == nil {
		return m.invalid("confirm delete")
	}
	if m.persister == nil {
		return ErrPersisterRequired
	}
	pending := *idle.PendingDelete
	if err := m.persister.Delete(ctx, pending.Kind, pending.ID); err != nil {
		m.logger.Error("editor.delete.failed", "kind", pending.Kind.String(), "record_id", pending.ID.String(), "error", err)
		return err
	}
	m.logger.Info("editor.delete.success", "kind", pending.Kind.String(), "record_id", pending.ID.String())
	m.mode = Idle{}
	return nil
}

// CancelDelete drops the pending delete.
func (m *Machine) CancelDelete() error {
	idle, err := m.idle("cancel delete")
	if err != nil {
		return err
	}
	if idle.PendingDelete == nil {
		return m.invalid("cancel delete")
	}
	m.mode = Idle{}
	return nil
}
