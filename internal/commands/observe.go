package commands

import (
	"context"
	"strings"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

// SlowExecution is the duration after which a successful command is
// logged at warn level.
const SlowExecution = 2 * time.Second

// Outcome is how a command execution ended.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeCanceled  Outcome = "canceled"
)

// Execution describes one finished command run.
type Execution struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Err       error
	Outcome   Outcome
	Logger    interfaces.Logger
}

// Observer is called once per execution, after the wrapped function returns.
type Observer[T command.Message] func(ctx context.Context, msg T, run Execution)

// CommandLogger returns the logger of a command module, named
// cms.commands.<module>.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.ModuleLogger(provider, "cms.commands."+name), map[string]any{
		"command_module": name,
	})
}

func logExecution(run Execution) {
	logger := run.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	ms := run.Duration.Milliseconds()
	switch run.Outcome {
	case OutcomeFailed:
		logger.Error("command.failed", "duration_ms", ms, "error", run.Err)
	case OutcomeCanceled:
		logger.Warn("command.canceled", "duration_ms", ms, "error", run.Err)
	default:
		if run.Duration > SlowExecution {
			logger.Warn("command.slow", "duration_ms", ms)
			return
		}
		logger.Info("command.succeeded", "duration_ms", ms)
	}
}
