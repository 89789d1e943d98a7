package hal

import "errors"

// Common HAL errors representing unrecoverable backend states (spec §4.6,
// §7). Validation errors belong to core, not here: the facade only reports
// conditions a backend cannot itself recover from.
var (
	// ErrDeviceLost indicates the GPU device has been lost (driver crash,
	// hardware disconnection, or driver timeout). The device cannot be
	// recovered and must be recreated.
	ErrDeviceLost = errors.New("hal: device lost")

	// ErrOutOfMemory indicates the backend could not satisfy a resource
	// allocation request.
	ErrOutOfMemory = errors.New("hal: out of memory")

	// ErrNoSyncEvent describes a queue with no timeline event in this
	// backend's domain. EventSource.SyncEvent reports that case by returning
	// false rather than this error, and the core then falls back to a CPU
	// wait; no function in this module returns ErrNoSyncEvent.
	ErrNoSyncEvent = errors.New("hal: queue has no timeline event in this backend")
)
