// Package core implements the execution core of a GPU render-graph
// scheduler: given a sequence of declared render passes and their resource
// usages, it produces command-buffer-level work — barriers, inter-encoder
// dependencies, resource materialization/disposal, cross-queue
// synchronization, and end-of-frame completion callbacks.
//
// Architecture:
//
//	types/  → value types shared with hal (no logic)
//	hal/    → capabilities the core consumes from a backend (Backend Facade)
//	core/   → this package: resource model, hazard tracker, command
//	          generator, render-graph context, end-action manager
//
// Resources are identified by type-safe IDs combining an index and epoch
// (id.go, identity.go); Registry (registry.go) and Storage (storage.go)
// manage their lifecycle. The hazard pass lives in tracker.go; the command
// generator that ties it together is generator.go; the per-frame driver is
// context.go.
//
// Thread Safety: a type is safe for concurrent use only where its own
// documentation says so; the per-frame types (ResourceUsageList,
// DependencyTable, FrameCommandInfo) have no internal locking.
package core
