package di

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	markdowncmd "github.com/goliatone/go-bilingual-cms/internal/commands/markdown"
	recordscmd "github.com/goliatone/go-bilingual-cms/internal/commands/records"
)

// DispatcherRegistry subscribes command handlers to the go-command
// dispatcher so messages can be sent with dispatcher.Dispatch.
type DispatcherRegistry struct {
	opts []runner.Option

	mu     sync.Mutex
	unsubs []func()
}

// NewDispatcherRegistry applies opts (retries, timeouts) to every
// subscription.
func NewDispatcherRegistry(opts ...runner.Option) *DispatcherRegistry {
	return &DispatcherRegistry{opts: opts}
}

// RegisterCommand subscribes a handler built by the container.
func (r *DispatcherRegistry) RegisterCommand(handler any) error {
	var unsubscribe func()
	switch h := handler.(type) {
	case *recordscmd.SaveRecordHandler:
		unsubscribe = dispatcher.SubscribeCommand(h, r.opts...).Unsubscribe
	case *recordscmd.DeleteRecordHandler:
		unsubscribe = dispatcher.SubscribeCommand(h, r.opts...).Unsubscribe
	case *markdowncmd.ImportMarkdownHandler:
		unsubscribe = dispatcher.SubscribeCommand(h, r.opts...).Unsubscribe
	default:
		return fmt.Errorf("di: unsupported command handler %T", handler)
	}
	r.mu.Lock()
	r.unsubs = append(r.unsubs, unsubscribe)
	r.mu.Unlock()
	return nil
}

// Len reports the number of live subscriptions.
func (r *DispatcherRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.unsubs)
}

// Close removes every subscription.
func (r *DispatcherRegistry) Close() {
	r.mu.Lock()
	unsubs := r.unsubs
	r.unsubs = nil
	r.mu.Unlock()
	for _, unsubscribe := range unsubs {
		unsubscribe()
	}
}
