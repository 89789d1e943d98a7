package core

import (
	"sync/atomic"

	"github.com/gogpu/rendergraph/types"
)

// ResourceFlags are the lifecycle flags a Resource carries (spec §3).
type ResourceFlags uint8

const (
	// ResourceFlagPersistent marks a resource that lives across frames.
	ResourceFlagPersistent ResourceFlags = 1 << iota
	// ResourceFlagHistoryBuffer marks a resource that alternates: read the
	// previous frame's contents, write this frame's, then swap.
	ResourceFlagHistoryBuffer
	// ResourceFlagWindowHandle marks a resource backed by a swapchain image.
	ResourceFlagWindowHandle
	// ResourceFlagImmutableOnceInitialised marks a resource written at most
	// once across all frames.
	ResourceFlagImmutableOnceInitialised
)

func (f ResourceFlags) Has(flag ResourceFlags) bool { return f&flag != 0 }

// AccessWaitIndices holds the last-published wait index for a persistent
// resource on one queue, keyed by access kind (spec §4.3.4: "writers publish
// readWrite; readers that follow a writer publish write").
type AccessWaitIndices struct {
	Read      atomic.Uint64
	Write     atomic.Uint64
	ReadWrite atomic.Uint64
}

// WaitIndexFor returns the published wait index for the given access kind.
func (w *AccessWaitIndices) WaitIndexFor(access types.AccessType) uint64 {
	switch {
	case access == types.AccessReadWrite:
		return w.ReadWrite.Load()
	case access.IsWrite():
		return w.Write.Load()
	default:
		return w.Read.Load()
	}
}

// Resource is a typed handle (buffer, texture, texture-view, argument
// buffer, function-table, ...) with the bookkeeping the hazard tracker and
// materialization pass need (spec §3). Handles are opaque; equality is
// handle equality, which the ID epoch scheme provides: a disposed and
// reallocated slot's old ID compares unequal to the new one.
type Resource struct {
	ID   ResourceID
	Kind types.ResourceKind
	Name string

	Flags ResourceFlags
	// Initialised is true once the resource has received its first write.
	Initialised atomic.Bool

	// ShapeSize is the resource's total subresource count: mips*slices for
	// a texture, byte size for a buffer. Used to build types.Full(ShapeSize).
	ShapeSize uint64

	// TextureDesc carries the full texture descriptor for a Kind ==
	// ResourceKindTexture resource, so the transient registry allocates
	// the actual format/extent/usage instead of a bare subresource count.
	// Nil for buffers and non-texture resources.
	TextureDesc *types.TextureDescriptor

	// TextureViewDesc carries the view descriptor for a Kind ==
	// ResourceKindTextureView resource. Nil otherwise.
	TextureViewDesc *types.TextureViewDescriptor

	// BaseResource is set when this Resource is a view over another
	// Resource (e.g. a TextureView over a Texture).
	BaseResource ResourceID
	IsView       bool

	// Usages is this frame's ordered usage list, allocated from the owning
	// frame's ResourceUsageList arena (arena.go). Cleared at frame start.
	Usages []*ResourceUsage

	// waitIndices holds per-queue published wait indices, indexed by queue
	// registration order (parallel to QueueCommandIndices slots). Only
	// meaningful for persistent resources (spec §4.3.4).
	waitIndices [maxQueues]AccessWaitIndices

	// AliasedHeap marks a transient resource backed by an aliased heap
	// allocation, requiring waitForHeapAliasingFences handling (§4.3.2, §4.3.5).
	AliasedHeap bool

	// CanBeMemoryless is computed during materialization & disposal
	// (§4.3.3): textures storing only to render-target usages and never
	// listed in storedTextures, on a backend that supports memoryless
	// attachments, are skipped for both materialization and heap-aliasing
	// fence storage.
	CanBeMemoryless bool
}

// WaitIndices returns the per-queue wait-index tracker for queue slot q.
func (r *Resource) WaitIndices(queueSlot int) *AccessWaitIndices {
	return &r.waitIndices[queueSlot]
}

// ResourceUsage is one usage of a Resource by a pass (spec §3): the tuple
// {resource, renderPassRecord, type, stages, commandRange, activeRange}.
type ResourceUsage struct {
	Resource         *Resource
	RenderPassRecord *RenderPassRecord
	Type             types.AccessType
	Stages           types.Stages
	// CommandRange is the half-open range of command indices within the
	// encoded pass stream that this usage occupies.
	CommandRange types.Range
	// ActiveRange describes which subresources this usage touches:
	// types.Full(shapeSize) for "every subresource", types.Inactive() for
	// none, or an explicit subset.
	ActiveRange types.SubresourceSet
	// AllowReordering is cleared for render-target usages and for
	// intra-encoder residency coalescing (§4.3.1).
	AllowReordering bool
}

// IndexOfPreviousWrite returns the index in usages of the nearest usage
// before i whose activeRange intersects usages[i].ActiveRange and which is a
// write, or -1 if none exists. O(k) in usage count (spec §4.1).
func IndexOfPreviousWrite(usages []*ResourceUsage, before int) int {
	return indexOfPrevious(usages, before, func(u *ResourceUsage) bool { return u.Type.IsWrite() })
}

// IndexOfPreviousRead is the read-usage analogue of IndexOfPreviousWrite.
func IndexOfPreviousRead(usages []*ResourceUsage, before int) int {
	return indexOfPrevious(usages, before, func(u *ResourceUsage) bool { return u.Type.IsRead() })
}

func indexOfPrevious(usages []*ResourceUsage, before int, match func(*ResourceUsage) bool) int {
	target := usages[before].ActiveRange
	for i := before - 1; i >= 0; i-- {
		u := usages[i]
		if match(u) && u.ActiveRange.Intersects(target) {
			return i
		}
	}
	return -1
}
