// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about editor interactions, property
// resolution anomalies, and snapshot operations.
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
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEditorHooks(&myEditorHooks{})
//	    observability.SetSnapshotHooks(&mySnapshotHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Editor().OnSelect(nodeID, frameID, instanceCount)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Editor Hooks
// =============================================================================

// EditorHooks receives events from selection tracking and the transform engine.
type EditorHooks interface {
	// OnSelect records a selection change; instances is the number of
	// render instances the selected node materialized in.
	OnSelect(nodeID, frameID string, instances int)

	// OnDeselect records a return to the idle selection state.
	OnDeselect()

	// OnTransform records a canvas transform mutation (pan, zoom, reset).
	OnTransform(zoom, panX, panY float64)
}

// =============================================================================
// Resolve Hooks
// =============================================================================

// ResolveHooks receives events from responsive property resolution.
type ResolveHooks interface {
	// OnIntegrityWarning records a responsive-map entry referencing a
	// breakpoint that is no longer in the breakpoint set. Resolution
	// proceeds using the fallback chain; the entry is unreachable.
	OnIntegrityWarning(breakpointID, detail string)
}

// =============================================================================
// Snapshot Hooks
// =============================================================================

// SnapshotHooks receives events from snapshot store operations.
type SnapshotHooks interface {
	// OnSave records a snapshot write.
	OnSave(ctx context.Context, name string, size int, duration time.Duration)

	// OnLoad records a snapshot read.
	OnLoad(ctx context.Context, name string, hit bool, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEditorHooks is a no-op implementation of EditorHooks.
type NoopEditorHooks struct{}

func (NoopEditorHooks) OnSelect(string, string, int)          {}
func (NoopEditorHooks) OnDeselect()                           {}
func (NoopEditorHooks) OnTransform(float64, float64, float64) {}

// NoopResolveHooks is a no-op implementation of ResolveHooks.
type NoopResolveHooks struct{}

func (NoopResolveHooks) OnIntegrityWarning(string, string) {}

// NoopSnapshotHooks is a no-op implementation of SnapshotHooks.
type NoopSnapshotHooks struct{}

func (NoopSnapshotHooks) OnSave(context.Context, string, int, time.Duration)  {}
func (NoopSnapshotHooks) OnLoad(context.Context, string, bool, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	editorHooks   EditorHooks   = NoopEditorHooks{}
	resolveHooks  ResolveHooks  = NoopResolveHooks{}
	snapshotHooks SnapshotHooks = NoopSnapshotHooks{}
	hooksMu       sync.RWMutex
)

// SetEditorHooks registers custom editor hooks.
// This should be called once at application startup.
func SetEditorHooks(h EditorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		editorHooks = h
	}
}

// SetResolveHooks registers custom resolve hooks.
// This should be called once at application startup.
func SetResolveHooks(h ResolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		resolveHooks = h
	}
}

// SetSnapshotHooks registers custom snapshot hooks.
// This should be called once at application startup.
func SetSnapshotHooks(h SnapshotHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		snapshotHooks = h
	}
}

// Editor returns the registered editor hooks.
func Editor() EditorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return editorHooks
}

// Resolve returns the registered resolve hooks.
func Resolve() ResolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return resolveHooks
}

// Snapshot returns the registered snapshot hooks.
func Snapshot() SnapshotHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return snapshotHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	editorHooks = NoopEditorHooks{}
	resolveHooks = NoopResolveHooks{}
	snapshotHooks = NoopSnapshotHooks{}
}
