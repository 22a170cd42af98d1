package recordscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/kinds"
	"github.com/goliatone/go-bilingual-cms/internal/records"
)

const (
	saveRecordMessageType   = "cms.records.save"
	deleteRecordMessageType = "cms.records.delete"
)

// SaveResult receives the stored record once a save succeeds.
type SaveResult struct {
	Record *records.Record
}

// SaveRecordCommand creates or updates a record. A zero ID creates a new
// collection record; singleton kinds always overwrite their stored document.
type SaveRecordCommand struct {
	Kind content.Kind `json:"kind"`
	// ID selects the collection record to update.
	ID uuid.UUID `json:"id,omitempty"`
	// Key selects the listing kind when saving page settings.
	Key     string         `json:"key,omitempty"`
	Payload map[string]any `json:"payload"`
	// Lang is the language the editor was working in. Defaults to en.
	Lang   content.Lang `json:"lang,omitempty"`
	Result *SaveResult  `json:"-"`
}

// Type implements command.Message.
func (SaveRecordCommand) Type() string { return saveRecordMessageType }

// Validate ensures the kind is known and a payload is present.
func (m SaveRecordCommand) Validate() error {
	errs := validation.Errors{}
	def, ok := kinds.Lookup(m.Kind)
	if !ok {
		errs["kind"] = validation.NewError("cms.records.save.kind_unknown", "kind is not registered")
	}
	if m.Payload == nil {
		errs["payload"] = validation.NewError("cms.records.save.payload_required", "payload is required")
	}
	if m.Lang != "" && !m.Lang.Valid() {
		errs["lang"] = validation.NewError("cms.records.save.lang_invalid", "lang must be en or ur")
	}
	if ok && def.Singleton && m.ID != uuid.Nil {
		errs["id"] = validation.NewError("cms.records.save.id_not_allowed", "singleton kinds are not addressed by id")
	}
	if ok && m.Kind == content.KindPages {
		page, known := kinds.Lookup(content.Kind(strings.ToLower(strings.TrimSpace(m.Key))))
		if !known || page.Singleton {
			errs["key"] = validation.NewError("cms.records.save.key_invalid", "key must name a listing kind")
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteRecordCommand removes a collection record permanently. Confirmed
// must be set; deletion cannot be undone.
type DeleteRecordCommand struct {
	Kind      content.Kind `json:"kind"`
	ID        uuid.UUID    `json:"id"`
	Confirmed bool         `json:"confirmed"`
}

// Type implements command.Message.
func (DeleteRecordCommand) Type() string { return deleteRecordMessageType }

// Validate ensures the message targets a collection record and carries confirmation.
func (m DeleteRecordCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Kind, validation.By(func(value any) error {
			def, ok := kinds.Lookup(value.(content.Kind))
			if !ok || def.Singleton {
				return validation.NewError("cms.records.delete.kind_invalid", "kind must be a collection")
			}
			return nil
		})),
		validation.Field(&m.ID, validation.By(func(value any) error {
			if value.(uuid.UUID) == uuid.Nil {
				return validation.NewError("cms.records.delete.id_required", "id is required")
			}
			return nil
		})),
		validation.Field(&m.Confirmed, validation.By(func(value any) error {
			if !value.(bool) {
				return validation.NewError("cms.records.delete.confirmation_required", "deletion must be confirmed")
			}
			return nil
		})),
	)
}
