package hal

// PersistentResource is the handle the persistent registry hands back for
// resources whose lifetime exceeds one frame.
type PersistentResource interface {
	Destroy()
}

// SamplerDescriptor is the minimal shape the persistent registry's sampler
// cache keys on.
type SamplerDescriptor struct {
	MinFilter, MagFilter int
	AddressModeU         int
	AddressModeV         int
	AddressModeW         int
}

// PersistentRegistry allocates and disposes resources that live across
// frames (spec §4.6), including the history-buffer alternation the core
// drives at the data-model level (spec §3's "History-buffer resources").
type PersistentRegistry interface {
	AllocateBuffer(sizeBytes uint64) (PersistentResource, error)
	AllocateTexture(shapeSize uint64) (PersistentResource, error)

	// PrepareMultiframeBuffer and PrepareMultiframeTexture let the backend
	// rotate per-frame-in-flight storage for a persistent resource. The core
	// does not call them.
	PrepareMultiframeBuffer(r PersistentResource, frameSlot int) error
	PrepareMultiframeTexture(r PersistentResource, frameSlot int) error

	Dispose(r PersistentResource)

	// Sampler returns a cached sampler for desc, creating one on first use.
	Sampler(desc SamplerDescriptor) (PersistentResource, error)
}
