package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hustlemode/coach/pkg/domain"
)

// Handler executes one tool's invocations.
type Handler interface {
	Execute(ctx context.Context, inv domain.ToolInvocation) (any, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, inv domain.ToolInvocation) (any, error)

func (f HandlerFunc) Execute(ctx context.Context, inv domain.ToolInvocation) (any, error) {
	return f(ctx, inv)
}

// maxParallelTools bounds concurrent invocations in ExecuteAll.
const maxParallelTools = 4

// Executor validates, caches, and dispatches tool invocations. Every failure
// mode is contained into a failed ToolResult; Execute never returns an error
// and never panics outward.
type Executor struct {
	defs     map[domain.ToolName]domain.ToolDefinition
	handlers map[domain.ToolName]Handler
	cache    *Cache
}

// NewExecutor creates an executor over the closed tool set. cache may be nil
// to disable result caching entirely.
func NewExecutor(cache *Cache) *Executor {
	return &Executor{
		defs:     Definitions(),
		handlers: map[domain.ToolName]Handler{},
		cache:    cache,
	}
}

// Register installs the handler for one tool, replacing any previous one.
func (e *Executor) Register(name domain.ToolName, h Handler) {
	e.handlers[name] = h
}

// Execute runs one invocation through validate, cache lookup, and dispatch.
func (e *Executor) Execute(ctx context.Context, inv domain.ToolInvocation) domain.ToolResult {
	start := time.Now()
	fail := func(msg string) domain.ToolResult {
		return domain.ToolResult{
			Tool:     inv.Tool,
			Success:  false,
			Error:    msg,
			Duration: time.Since(start),
			Channel:  inv.Channel,
		}
	}

	def, ok := e.defs[inv.Tool]
	if !ok {
		return fail(fmt.Sprintf("%v: %q", domain.ErrUnknownTool, inv.Tool))
	}
	if err := def.Validate(inv.Parameters); err != nil {
		return fail(err.Error())
	}

	key := CacheKey(inv)
	if e.cache != nil && def.CacheTTL > 0 {
		if data, hit := e.cache.Get(key); hit {
			return domain.ToolResult{
				Tool:     inv.Tool,
				Success:  true,
				Data:     data,
				Cached:   true,
				Duration: time.Since(start),
				Channel:  inv.Channel,
			}
		}
	}

	handler, ok := e.handlers[inv.Tool]
	if !ok {
		return fail(fmt.Sprintf("no handler registered for %q", inv.Tool))
	}

	data, err := e.dispatch(ctx, handler, inv)
	if err != nil {
		slog.Error("tool execution failed", "tool", inv.Tool, "user", inv.UserID, "error", err)
		return fail(err.Error())
	}

	if e.cache != nil && def.CacheTTL > 0 {
		e.cache.Put(key, data, def.CacheTTL)
	}
	return domain.ToolResult{
		Tool:     inv.Tool,
		Success:  true,
		Data:     data,
		Duration: time.Since(start),
		Channel:  inv.Channel,
	}
}

// dispatch calls the handler, converting panics into errors.
func (e *Executor) dispatch(ctx context.Context, h Handler, inv domain.ToolInvocation) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool %q panicked: %v", inv.Tool, r)
		}
	}()
	return h.Execute(ctx, inv)
}

// ExecuteAll runs invocations concurrently, bounded by maxParallelTools.
// Results come back in invocation order; one tool's failure never blocks the
// others.
func (e *Executor) ExecuteAll(ctx context.Context, invs []domain.ToolInvocation) []domain.ToolResult {
	results := make([]domain.ToolResult, len(invs))
	g := errgroup.Group{}
	g.SetLimit(maxParallelTools)
	for i, inv := range invs {
		g.Go(func() error {
			results[i] = e.Execute(ctx, inv)
			return nil
		})
	}
	g.Wait()
	return results
}
