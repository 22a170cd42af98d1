package main

import (
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/robfig/cron/v3"

	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

// scheduler runs cron jobs registered by the container.
type scheduler struct {
	cron   *cron.Cron
	logger interfaces.Logger
}

func newScheduler(logger interfaces.Logger) *scheduler {
	adapter := cronLogger{logger: logger}
	return &scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(adapter),
			cron.SkipIfStillRunning(adapter),
		)),
		logger: logger,
	}
}

// Register matches the container's cron registrar signature.
func (s *scheduler) Register(cfg command.HandlerConfig, handler any) error {
	expr := strings.TrimSpace(cfg.Expression)
	if expr == "" {
		return fmt.Errorf("scheduler: cron expression is required")
	}
	job, ok := handler.(func() error)
	if !ok {
		return fmt.Errorf("scheduler: unsupported job %T", handler)
	}
	id, err := s.cron.AddFunc(expr, func() {
		if err := job(); err != nil {
			s.logger.Error("scheduler.job.failed", "expression", expr, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	s.logger.Info("scheduler.job.registered", "expression", expr, "entry", int(id))
	return nil
}

func (s *scheduler) Len() int { return len(s.cron.Entries()) }

func (s *scheduler) Start() { s.cron.Start() }

// Stop halts the scheduler and waits for running jobs.
func (s *scheduler) Stop() {
	<-s.cron.Stop().Done()
}

type cronLogger struct {
	logger interfaces.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("scheduler."+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("scheduler."+msg, append(keysAndValues, "error", err)...)
}
