package activity

import (
	"context"
	"errors"
	"testing"
)

func TestHooksNotifyAllAndJoinErrors(t *testing.T) {
	var seen []string
	failing := errors.New("sink offline")
	hooks := Hooks{
		HookFunc(func(_ context.Context, e Event) error {
			seen = append(seen, "first:"+e.Verb)
			return failing
		}),
		nil,
		HookFunc(func(_ context.Context, e Event) error {
			seen = append(seen, "second:"+e.Verb)
			return nil
		}),
	}
	err := hooks.Notify(context.Background(), Event{Verb: "content.created"})
	if !errors.Is(err, failing) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("expected both hooks to run, got %v", seen)
	}
	if !hooks.Enabled() || (Hooks{nil}).Enabled() {
		t.Fatal("unexpected Enabled result")
	}
}

func TestActorContext(t *testing.T) {
	ctx := ContextWithActor(context.Background(), " editor-1 ")
	if got := ActorFromContext(ctx); got != "editor-1" {
		t.Fatalf("expected editor-1, got %q", got)
	}
	if got := ActorFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty actor, got %q", got)
	}
}
