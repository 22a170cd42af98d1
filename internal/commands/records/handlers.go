package recordscmd

import (
	"context"

	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/commands"
	"github.com/goliatone/go-bilingual-cms/internal/kinds"
	"github.com/goliatone/go-bilingual-cms/internal/records"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

const (
	saveOperation   = "records.save"
	deleteOperation = "records.delete"
)

// RecordService is the subset of records.Service the handlers drive.
type RecordService interface {
	Create(ctx context.Context, kind content.Kind, doc map[string]any) (*records.Record, error)
	Update(ctx context.Context, kind content.Kind, id uuid.UUID, doc map[string]any) (*records.Record, error)
	Delete(ctx context.Context, kind content.Kind, id uuid.UUID) error
	PutSingleton(ctx context.Context, kind content.Kind, key string, doc map[string]any) (*records.Record, error)
}

var (
	_ RecordService                          = (*records.Service)(nil)
	_ command.Commander[SaveRecordCommand]   = (*SaveRecordHandler)(nil)
	_ command.Commander[DeleteRecordCommand] = (*DeleteRecordHandler)(nil)
)

// SaveRecordHandler stores records through the record service.
type SaveRecordHandler struct {
	inner *commands.Handler[SaveRecordCommand]
}

// NewSaveRecordHandler constructs a save handler over service.
func NewSaveRecordHandler(service RecordService, logger interfaces.Logger, opts ...commands.HandlerOption[SaveRecordCommand]) *SaveRecordHandler {
	exec := func(ctx context.Context, msg SaveRecordCommand) error {
		var (
			rec *records.Record
			err error
		)
		switch {
		case isSingleton(msg.Kind):
			rec, err = service.PutSingleton(ctx, msg.Kind, msg.Key, msg.Payload)
		case msg.ID == uuid.Nil:
			rec, err = service.Create(ctx, msg.Kind, msg.Payload)
		default:
			rec, err = service.Update(ctx, msg.Kind, msg.ID, msg.Payload)
		}
		if err != nil {
			return err
		}
		if msg.Result != nil {
			msg.Result.Record = rec
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SaveRecordCommand]{
		commands.WithLogger[SaveRecordCommand](logger),
		commands.WithOperation[SaveRecordCommand](saveOperation),
		commands.WithMessageFields(func(msg SaveRecordCommand) map[string]any {
			fields := map[string]any{"kind": msg.Kind.String()}
			if msg.ID != uuid.Nil {
				fields["record_id"] = msg.ID.String()
			}
			if msg.Key != "" {
				fields["key"] = msg.Key
			}
			if msg.Lang != "" {
				fields["lang"] = msg.Lang.String()
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SaveRecordHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[SaveRecordCommand].
func (h *SaveRecordHandler) Execute(ctx context.Context, msg SaveRecordCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteRecordHandler removes confirmed collection records.
type DeleteRecordHandler struct {
	inner *commands.Handler[DeleteRecordCommand]
}

// NewDeleteRecordHandler constructs a delete handler over service.
func NewDeleteRecordHandler(service RecordService, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteRecordCommand]) *DeleteRecordHandler {
	exec := func(ctx context.Context, msg DeleteRecordCommand) error {
		return service.Delete(ctx, msg.Kind, msg.ID)
	}

	handlerOpts := []commands.HandlerOption[DeleteRecordCommand]{
		commands.WithLogger[DeleteRecordCommand](logger),
		commands.WithOperation[DeleteRecordCommand](deleteOperation),
		commands.WithMessageFields(func(msg DeleteRecordCommand) map[string]any {
			return map[string]any{
				"kind":      msg.Kind.String(),
				"record_id": msg.ID.String(),
			}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteRecordHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[DeleteRecordCommand].
func (h *DeleteRecordHandler) Execute(ctx context.Context, msg DeleteRecordCommand) error {
	return h.inner.Execute(ctx, msg)
}

func isSingleton(kind content.Kind) bool {
	def, ok := kinds.Lookup(kind)
	return ok && def.Singleton
}
