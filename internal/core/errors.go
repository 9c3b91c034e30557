package core

import "errors"

// Error taxonomy for the orchestration layer (spec §7). Callers use
// errors.Is against these sentinels; wrapped context is added with
// fmt.Errorf("...: %w", ...) at the call site.
var (
	// ErrUnknownWindow is returned when an operation names a WindowID not
	// present in the WindowRegistry.
	ErrUnknownWindow = errors.New("core: unknown window")

	// ErrUnknownTab is returned when an operation names a TabID not
	// present in the addressed TabCollection.
	ErrUnknownTab = errors.New("core: unknown tab")

	// ErrNoActiveWindow is returned when an operation requires an active
	// window but none is set.
	ErrNoActiveWindow = errors.New("core: no active window")

	// ErrQueueClosed is returned by CommandQueue.Push after Close.
	ErrQueueClosed = errors.New("core: command queue closed")
)
