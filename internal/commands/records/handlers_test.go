package recordscmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/commands"
	"github.com/goliatone/go-bilingual-cms/internal/commands/fixtures"
	"github.com/goliatone/go-bilingual-cms/internal/records"
)

type serviceCall struct {
	op   string
	kind content.Kind
	id   uuid.UUID
	key  string
}

type stubService struct {
	calls []serviceCall
	err   error
}

func (s *stubService) record(call serviceCall) (*records.Record, error) {
	s.calls = append(s.calls, call)
	if s.err != nil {
		return nil, s.err
	}
	id := call.id
	if id == uuid.Nil {
		id = uuid.MustParse("7d3c2a7e-5d0e-4d4e-9d8a-2f5b2b6f3a10")
	}
	return &records.Record{ID: id, Kind: call.kind}, nil
}

func (s *stubService) Create(_ context.Context, kind content.Kind, _ map[string]any) (*records.Record, error) {
	return s.record(serviceCall{op: "create", kind: kind})
}

func (s *stubService) Update(_ context.Context, kind content.Kind, id uuid.UUID, _ map[string]any) (*records.Record, error) {
	return s.record(serviceCall{op: "update", kind: kind, id: id})
}

func (s *stubService) Delete(_ context.Context, kind content.Kind, id uuid.UUID) error {
	_, err := s.record(serviceCall{op: "delete", kind: kind, id: id})
	return err
}

func (s *stubService) PutSingleton(_ context.Context, kind content.Kind, key string, _ map[string]any) (*records.Record, error) {
	return s.record(serviceCall{op: "put", kind: kind, key: key})
}

func TestSaveRecordRoutesByKindAndID(t *testing.T) {
	existing := uuid.MustParse("0b8f5f0c-1111-4a5b-8c9d-000000000001")
	cases := []struct {
		name string
		msg  SaveRecordCommand
		want serviceCall
	}{
		{"create", SaveRecordCommand{Kind: content.KindBlogs, Payload: map[string]any{}}, serviceCall{op: "create", kind: content.KindBlogs}},
		{"update", SaveRecordCommand{Kind: content.KindEvents, ID: existing, Payload: map[string]any{}}, serviceCall{op: "update", kind: content.KindEvents, id: existing}},
		{"singleton", SaveRecordCommand{Kind: content.KindContact, Payload: map[string]any{}}, serviceCall{op: "put", kind: content.KindContact}},
		{"page settings", SaveRecordCommand{Kind: content.KindPages, Key: "services", Payload: map[string]any{}}, serviceCall{op: "put", kind: content.KindPages, key: "services"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubService{}
			result := &SaveResult{}
			tc.msg.Result = result
			if err := NewSaveRecordHandler(svc, nil).Execute(context.Background(), tc.msg); err != nil {
				t.Fatalf("execute: %v", err)
			}
			if len(svc.calls) != 1 || svc.calls[0] != tc.want {
				t.Fatalf("expected call %+v, got %+v", tc.want, svc.calls)
			}
			if result.Record == nil {
				t.Fatal("expected saved record in result")
			}
		})
	}
}

func TestSaveRecordRejectsInvalidMessages(t *testing.T) {
	cases := map[string]SaveRecordCommand{
		"unknown kind":     {Kind: "donations", Payload: map[string]any{}},
		"no payload":       {Kind: content.KindBlogs},
		"bad lang":         {Kind: content.KindBlogs, Payload: map[string]any{}, Lang: "fr"},
		"singleton id":     {Kind: content.KindNavbar, ID: uuid.New(), Payload: map[string]any{}},
		"page key":         {Kind: content.KindPages, Key: "navbar", Payload: map[string]any{}},
		"missing page key": {Kind: content.KindPages, Payload: map[string]any{}},
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &stubService{}
			err := NewSaveRecordHandler(svc, nil).Execute(context.Background(), msg)
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(svc.calls) != 0 {
				t.Fatalf("expected no service calls, got %+v", svc.calls)
			}
		})
	}
}

func TestSaveRecordSurfacesIncompleteTranslations(t *testing.T) {
	svc := &stubService{err: &records.IncompleteError{Kind: content.KindBlogs, Missing: []string{"content.ur"}}}
	err := NewSaveRecordHandler(svc, nil).Execute(context.Background(), SaveRecordCommand{
		Kind:    content.KindBlogs,
		Payload: map[string]any{},
		Lang:    content.LangEN,
	})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	var incomplete *records.IncompleteError
	if !errors.As(err, &incomplete) || incomplete.Missing[0] != "content.ur" {
		t.Fatalf("expected incomplete error, got %v", err)
	}
}

func TestDeleteRecordRequiresConfirmation(t *testing.T) {
	svc := &stubService{}
	handler := NewDeleteRecordHandler(svc, nil)
	id := uuid.New()

	err := handler.Execute(context.Background(), DeleteRecordCommand{Kind: content.KindBlogs, ID: id})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error for unconfirmed delete, got %v", err)
	}
	if len(svc.calls) != 0 {
		t.Fatal("expected unconfirmed delete not to reach the service")
	}

	if err := handler.Execute(context.Background(), DeleteRecordCommand{Kind: content.KindBlogs, ID: id, Confirmed: true}); err != nil {
		t.Fatalf("confirmed delete: %v", err)
	}
	if len(svc.calls) != 1 || svc.calls[0].op != "delete" || svc.calls[0].id != id {
		t.Fatalf("unexpected calls %+v", svc.calls)
	}
}

func TestDeleteRecordRejectsSingletons(t *testing.T) {
	err := NewDeleteRecordHandler(&stubService{}, nil).Execute(context.Background(), DeleteRecordCommand{
		Kind:      content.KindNavbar,
		ID:        uuid.New(),
		Confirmed: true,
	})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterRecordCommands(t *testing.T) {
	reg := fixtures.NewRecordingRegistry()
	saveApplied := false

	set, err := RegisterRecordCommands(reg, &stubService{}, nil,
		WithSaveHandlerOptions(func(*commands.Handler[SaveRecordCommand]) { saveApplied = true }),
	)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if set.Save == nil || set.Delete == nil {
		t.Fatal("expected both handlers")
	}
	if len(reg.Handlers) != 2 {
		t.Fatalf("expected 2 registered handlers, got %d", len(reg.Handlers))
	}
	if !saveApplied {
		t.Fatal("expected save handler options applied")
	}

	if _, err := RegisterRecordCommands(reg, nil, nil); err == nil {
		t.Fatal("expected error for nil service")
	}
}
