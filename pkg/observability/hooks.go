// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about project mutations and storage operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (log lines, Prometheus, OpenTelemetry, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetProjectHooks(&myProjectHooks{})
//	    observability.SetStorageHooks(&myStorageHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Project().OnPaint(ctx, "Colour", x, y, "added")
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Project Hooks
// =============================================================================

// ProjectHooks receives events from project mutations.
type ProjectHooks interface {
	// OnLoad records a load; defaulted counts keys that were missing or corrupt.
	OnLoad(ctx context.Context, defaulted int, duration time.Duration, err error)

	// OnPaint records a single click on a layer.
	OnPaint(ctx context.Context, mode string, x, y int, result string)

	// OnExport records a project or shape export.
	OnExport(ctx context.Context, kind string, size int, err error)

	// OnImport records a project import attempt.
	OnImport(ctx context.Context, size int, err error)

	// OnClear records a project reset.
	OnClear(ctx context.Context, err error)
}

// =============================================================================
// Storage Hooks
// =============================================================================

// StorageHooks receives events from storage operations.
type StorageHooks interface {
	// OnRead records a read; hit reports whether the key existed.
	OnRead(ctx context.Context, key string, hit bool)

	// OnWrite records a write.
	OnWrite(ctx context.Context, key string, size int)

	// OnDelete records a delete.
	OnDelete(ctx context.Context, key string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopProjectHooks is a no-op implementation of ProjectHooks.
type NoopProjectHooks struct{}

func (NoopProjectHooks) OnLoad(context.Context, int, time.Duration, error) {}
func (NoopProjectHooks) OnPaint(context.Context, string, int, int, string) {}
func (NoopProjectHooks) OnExport(context.Context, string, int, error)      {}
func (NoopProjectHooks) OnImport(context.Context, int, error)              {}
func (NoopProjectHooks) OnClear(context.Context, error)                    {}

// NoopStorageHooks is a no-op implementation of StorageHooks.
type NoopStorageHooks struct{}

func (NoopStorageHooks) OnRead(context.Context, string, bool)  {}
func (NoopStorageHooks) OnWrite(context.Context, string, int)  {}
func (NoopStorageHooks) OnDelete(context.Context, string)      {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	projectHooks ProjectHooks = NoopProjectHooks{}
	storageHooks StorageHooks = NoopStorageHooks{}
	hooksMu      sync.RWMutex
)

// SetProjectHooks registers custom project hooks.
// This should be called once at application startup before any project operations.
func SetProjectHooks(h ProjectHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		projectHooks = h
	}
}

// SetStorageHooks registers custom storage hooks.
// This should be called once at application startup before any storage operations.
func SetStorageHooks(h StorageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storageHooks = h
	}
}

// Project returns the registered project hooks.
func Project() ProjectHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return projectHooks
}

// Storage returns the registered storage hooks.
func Storage() StorageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storageHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	projectHooks = NoopProjectHooks{}
	storageHooks = NoopStorageHooks{}
}
