// Package hal is the capability facade the scheduler core consumes from a
// graphics backend (spec §4.6). It is deliberately narrow: the core never
// creates pipelines, shader modules, or bind groups, and never branches on
// concrete backend identity. It asks for exactly:
//
//   - A per-queue timeline event: monotonic Signal(value)/Wait(value).
//   - A command buffer: EncodeCommands(encoderIndex, resourceCommands, waits),
//     Commit(onCompletion), PresentSwapchains, and read-only GPU start/end
//     time and error.
//   - A transient resource registry: allocate-if-needed per resource kind,
//     dispose with a wait event, disposal fences, heap-aliasing helpers.
//   - A persistent resource registry: allocate, multi-frame preparation,
//     dispose, and a sampler cache.
//
// Backend capabilities form a set rather than a fixed hierarchy: a given
// backend may support residency tracking, memoryless attachments, or
// emulated input attachments independently of the others. The core queries
// these through the documented capability methods on TransientRegistry and
// never through backend identity.
//
// # Error handling
//
// Only unrecoverable conditions are reported here (ErrDeviceLost,
// ErrOutOfMemory, ErrNoSyncEvent). Validation of usage declarations is the
// core's responsibility, not the facade's.
package hal
