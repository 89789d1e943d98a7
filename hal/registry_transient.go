package hal

import "github.com/gogpu/rendergraph/types"

// TransientResource is the minimal handle the transient registry returns
// and the core round-trips back on dispose; backends attach their own
// allocation metadata behind it.
type TransientResource interface {
	// Destroy releases the underlying GPU allocation immediately. Called
	// only after any disposal fences the registry tracked have signaled.
	Destroy()
}

// TransientRegistry is the per-context allocator/recycler for resources
// that live only one frame (spec §4.6, glossary "Transient registry"). The
// core calls it through core/transientadapter.go during the materialization
// & disposal pass (spec §4.3.3) and the heap-aliasing disposal-fence pass
// (§4.3.5); AllocateWindowHandleTexture and WithHeapAliasingFencesIfPresent
// are not called by the core.
type TransientRegistry interface {
	AllocateBufferIfNeeded(sizeBytes uint64) (TransientResource, error)
	// AllocateTextureIfNeeded allocates a texture backing store. desc
	// carries the full WebGPU-shaped texture descriptor (format, extent,
	// mip/sample counts, usage); shapeSize remains the subresource count
	// the hazard tracker keys ranges on.
	AllocateTextureIfNeeded(shapeSize uint64, desc types.TextureDescriptor) (TransientResource, error)
	AllocateTextureView(base TransientResource, desc types.TextureViewDescriptor) (TransientResource, error)
	AllocateArgumentBufferIfNeeded(sizeBytes uint64) (TransientResource, error)
	AllocateWindowHandleTexture() (TransientResource, error)

	DisposeBuffer(r TransientResource, waitEvent uint64)
	DisposeTexture(r TransientResource, waitEvent uint64)
	DisposeArgumentBuffer(r TransientResource, waitEvent uint64)

	// SetDisposalFences records the fence set a heap-aliased resource must
	// wait on before its backing memory may be reused (§4.3.5).
	SetDisposalFences(r TransientResource, fences []uint64)

	// WithHeapAliasingFencesIfPresent invokes fn with the disposal fences
	// previously recorded for r, if any.
	WithHeapAliasingFencesIfPresent(r TransientResource, fn func(fences []uint64))

	// SupportsMemorylessAttachments reports whether this backend can back a
	// render-target texture with no memory at all when nothing reads it
	// after the pass (§4.3.3's memoryless candidate rule).
	SupportsMemorylessAttachments() bool
}
