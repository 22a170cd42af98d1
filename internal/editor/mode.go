package editor

import (
	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/bilingual"
	"github.com/google/uuid"
)

// ModeKind names the state the editor is in.
type ModeKind string

const (
	ModeIdle           ModeKind = "idle"
	ModeEditingPage    ModeKind = "editing_page"
	ModeEditingRecord  ModeKind = "editing_record"
	ModeEditingSubItem ModeKind = "editing_sub_item"
)

// Mode is one of Idle, EditingPage, EditingRecord or EditingSubItem.
// Validation results exist only on the modes that edit a document.
type Mode interface {
	Kind() ModeKind
	isMode()
}

// PendingDelete is a delete awaiting confirmation.
type PendingDelete struct {
	Kind content.Kind
	ID   uuid.UUID
}

// Idle is the list view.
type Idle struct {
	PendingDelete *PendingDelete
}

// EditingPage edits a singleton document: page settings, the navbar or
// contact info.
type EditingPage struct {
	Session *Session
	Key     string
	Verdict *bilingual.Verdict
}

// EditingRecord edits one collection record. Verdict is set after a
// blocked save; Prompt is true while the switch-language prompt is shown
// and Remedy offers cross-language copies for the gaps it reported.
type EditingRecord struct {
	Session *Session
	Result  *bilingual.Result
	Verdict *bilingual.Verdict
	Prompt  bool
	Remedy  *bilingual.Remedy
}

// EditingSubItem edits one list item of the parent record in Lang. Gap is
// set when the draft was opened to fill an item missing in Lang, which is
// when skipping translation is offered.
type EditingSubItem struct {
	Parent EditingRecord
	List   bilingual.ListSpec
	ID     string
	Lang   content.Lang
	Draft  map[string]any
	Gap    bool
	IsNew  bool
}

func (Idle) Kind() ModeKind           { return ModeIdle }
func (EditingPage) Kind() ModeKind    { return ModeEditingPage }
func (EditingRecord) Kind() ModeKind  { return ModeEditingRecord }
func (EditingSubItem) Kind() ModeKind { return ModeEditingSubItem }

func (Idle) isMode()           {}
func (EditingPage) isMode()    {}
func (EditingRecord) isMode()  {}
func (EditingSubItem) isMode() {}
