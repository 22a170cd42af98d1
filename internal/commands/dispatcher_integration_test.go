package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	"github.com/google/uuid"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/commands"
	recordscmd "github.com/goliatone/go-bilingual-cms/internal/commands/records"
	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/internal/records"
)

// flakyStore fails the first failures calls of every operation.
type flakyStore struct {
	failures int
	calls    int
}

func (s *flakyStore) attempt() error {
	s.calls++
	if s.calls <= s.failures {
		return errors.New("database is locked")
	}
	return nil
}

func (s *flakyStore) Create(_ context.Context, kind content.Kind, _ map[string]any) (*records.Record, error) {
	if err := s.attempt(); err != nil {
		return nil, err
	}
	return &records.Record{ID: uuid.New(), Kind: kind}, nil
}

func (s *flakyStore) Update(_ context.Context, kind content.Kind, id uuid.UUID, _ map[string]any) (*records.Record, error) {
	if err := s.attempt(); err != nil {
		return nil, err
	}
	return &records.Record{ID: id, Kind: kind}, nil
}

func (s *flakyStore) Delete(context.Context, content.Kind, uuid.UUID) error {
	return s.attempt()
}

func (s *flakyStore) PutSingleton(_ context.Context, kind content.Kind, key string, _ map[string]any) (*records.Record, error) {
	if err := s.attempt(); err != nil {
		return nil, err
	}
	return &records.Record{Kind: kind, Slug: key}, nil
}

func TestDispatcherRetriesSaveUntilSuccess(t *testing.T) {
	store := &flakyStore{failures: 1}
	handler := recordscmd.NewSaveRecordHandler(store, logging.NoOp(), commands.WithTimeout[recordscmd.SaveRecordCommand](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	result := &recordscmd.SaveResult{}
	msg := recordscmd.SaveRecordCommand{Kind: content.KindBlogs, Payload: map[string]any{}, Result: result}
	if err := dispatcher.Dispatch(context.Background(), msg); err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if store.calls != 2 {
		t.Fatalf("expected 2 attempts (initial + retry), got %d", store.calls)
	}
	if result.Record == nil || result.Record.Kind != content.KindBlogs {
		t.Fatalf("expected stored record in result, got %#v", result.Record)
	}
}

func TestDispatcherDeleteRetryExhaustionPropagatesError(t *testing.T) {
	store := &flakyStore{failures: 10}
	handler := recordscmd.NewDeleteRecordHandler(store, logging.NoOp(), commands.WithTimeout[recordscmd.DeleteRecordCommand](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	err := dispatcher.Dispatch(context.Background(), recordscmd.DeleteRecordCommand{Kind: content.KindEvents, ID: uuid.New(), Confirmed: true})
	if err == nil {
		t.Fatal("expected dispatcher to return error after exhausting retries")
	}
	if store.calls != 3 {
		t.Fatalf("expected 3 attempts (initial + 2 retries), got %d", store.calls)
	}
}
