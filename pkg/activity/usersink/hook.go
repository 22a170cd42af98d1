// Package usersink forwards activity events to a go-users activity sink.
package usersink

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-bilingual-cms/pkg/activity"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
	"github.com/google/uuid"
)

// Hook implements activity.Hook on top of a go-users ActivitySink.
type Hook struct {
	Sink interfaces.ActivitySink
}

// Notify maps event to an ActivityRecord. Events without a verb are
// dropped.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil || strings.TrimSpace(event.Verb) == "" {
		return nil
	}
	data := map[string]any{}
	if len(event.Metadata) > 0 {
		data = maps.Clone(event.Metadata)
	}
	if event.DefinitionCode != "" {
		data["definition_code"] = event.DefinitionCode
	}
	if len(event.Recipients) > 0 {
		data["recipients"] = append([]string(nil), event.Recipients...)
	}
	record := interfaces.ActivityRecord{
		ActorID:    parseID(event.ActorID),
		UserID:     parseID(event.UserID),
		TenantID:   parseID(event.TenantID),
		Verb:       event.Verb,
		ObjectType: event.ObjectType,
		ObjectID:   event.ObjectID,
		Channel:    event.Channel,
		OccurredAt: event.OccurredAt,
		Data:       data,
	}
	return h.Sink.Log(ctx, record)
}

func parseID(value string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return id
}
