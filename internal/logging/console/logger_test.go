package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/internal/logging/console"
)

func TestConsoleLoggerWritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	level := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &level,
	})

	logger := logging.WithFields(provider.GetLogger("cms.records"), map[string]any{"module": "cms.records"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"request_id": "req-1"})
	logger = logger.WithContext(ctx)

	logger.Info("records.saved", "kind", "blogs", "title", "Annual Report")

	got := strings.TrimSpace(buf.String())
	want := `2024-01-01T09:30:00Z INFO records.saved kind=blogs logger=cms.records module=cms.records request_id=req-1 title="Annual Report"`
	if got != want {
		t.Fatalf("unexpected entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	level := console.ParseLevel("warn")
	logger := console.NewProvider(console.Options{Writer: &buf, MinLevel: &level}).GetLogger("cms")

	logger.Info("skipped")
	logger.Warn("kept", "error", errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "WARN kept error=boom") {
		t.Fatalf("unexpected line %q", lines[0])
	}
}

func TestConsoleLoggerKeepsDanglingArgument(t *testing.T) {
	var buf bytes.Buffer
	logger := console.NewProvider(console.Options{Writer: &buf}).GetLogger("cms")

	logger.Info("odd", "lonely")

	if !strings.Contains(buf.String(), "arg_0=lonely") {
		t.Fatalf("expected dangling arg to be kept, got %q", buf.String())
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if console.ParseLevel("bogus") != console.LevelInfo {
		t.Fatal("expected unknown level to map to info")
	}
	if console.ParseLevel("WARNING") != console.LevelWarn {
		t.Fatal("expected warning alias")
	}
}
