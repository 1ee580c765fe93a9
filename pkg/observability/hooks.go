// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about each pipeline
// stage without the core packages depending on any observability backend.
// The default hooks do nothing.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// The pipeline calls them around each stage:
//
//	observability.Pipeline().OnLoadStart(ctx, path)
//	// ... read the lock file ...
//	observability.Pipeline().OnLoadComplete(ctx, path, packages, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the lock file → graph → output pipeline.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, path string)
	OnLoadComplete(ctx context.Context, path string, packages int, duration time.Duration, err error)

	// Build events
	OnBuildComplete(ctx context.Context, nodes, edges int, duration time.Duration)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, bytes int64, duration time.Duration, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                                   {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error)     {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, int, time.Duration)              {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                                 {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int64, time.Duration, error) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores the hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
