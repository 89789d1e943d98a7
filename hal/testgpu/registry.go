package testgpu

import (
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

// Resource is the shared in-memory handle both registries hand back.
type Resource struct {
	sizeOrShape uint64
	textureDesc types.TextureDescriptor
	destroyed   bool
	fences      []uint64
}

// TextureDescriptor returns the descriptor this texture was allocated with,
// for tests that assert the resource-command generator propagated one.
func (r *Resource) TextureDescriptor() types.TextureDescriptor { return r.textureDesc }

func (r *Resource) Destroy() { r.destroyed = true }

// TransientRegistry is an in-memory hal.TransientRegistry: every
// allocate-if-needed call returns a fresh Resource, disposal just marks it
// destroyed, and memoryless-attachment support is whatever
// NewTransientRegistry was given.
type TransientRegistry struct {
	memoryless bool
}

// NewTransientRegistry creates a registry. supportsMemoryless controls
// SupportsMemorylessAttachments, letting tests exercise both branches of
// the materialization & disposal pass (spec §4.3.3).
func NewTransientRegistry(supportsMemoryless bool) *TransientRegistry {
	return &TransientRegistry{memoryless: supportsMemoryless}
}

func (t *TransientRegistry) AllocateBufferIfNeeded(sizeBytes uint64) (hal.TransientResource, error) {
	return &Resource{sizeOrShape: sizeBytes}, nil
}
func (t *TransientRegistry) AllocateTextureIfNeeded(shapeSize uint64, desc types.TextureDescriptor) (hal.TransientResource, error) {
	return &Resource{sizeOrShape: shapeSize, textureDesc: desc}, nil
}
func (t *TransientRegistry) AllocateTextureView(base hal.TransientResource, desc types.TextureViewDescriptor) (hal.TransientResource, error) {
	viewDesc := types.TextureDescriptor{Format: desc.Format}
	if b, ok := base.(*Resource); ok {
		viewDesc = b.textureDesc
		if desc.Format != types.TextureFormatUndefined {
			viewDesc.Format = desc.Format
		}
	}
	return &Resource{textureDesc: viewDesc}, nil
}
func (t *TransientRegistry) AllocateArgumentBufferIfNeeded(sizeBytes uint64) (hal.TransientResource, error) {
	return &Resource{sizeOrShape: sizeBytes}, nil
}
func (t *TransientRegistry) AllocateWindowHandleTexture() (hal.TransientResource, error) {
	return &Resource{}, nil
}

func (t *TransientRegistry) DisposeBuffer(r hal.TransientResource, waitEvent uint64)         { r.Destroy() }
func (t *TransientRegistry) DisposeTexture(r hal.TransientResource, waitEvent uint64)        { r.Destroy() }
func (t *TransientRegistry) DisposeArgumentBuffer(r hal.TransientResource, waitEvent uint64) { r.Destroy() }

func (t *TransientRegistry) SetDisposalFences(r hal.TransientResource, fences []uint64) {
	if res, ok := r.(*Resource); ok {
		res.fences = fences
	}
}

func (t *TransientRegistry) WithHeapAliasingFencesIfPresent(r hal.TransientResource, fn func(fences []uint64)) {
	if res, ok := r.(*Resource); ok && len(res.fences) > 0 {
		fn(res.fences)
	}
}

func (t *TransientRegistry) SupportsMemorylessAttachments() bool { return t.memoryless }

// PersistentRegistry is an in-memory hal.PersistentRegistry.
type PersistentRegistry struct {
	samplers map[hal.SamplerDescriptor]*Resource
}

// NewPersistentRegistry creates a registry with an empty sampler cache.
func NewPersistentRegistry() *PersistentRegistry {
	return &PersistentRegistry{samplers: make(map[hal.SamplerDescriptor]*Resource)}
}

func (p *PersistentRegistry) AllocateBuffer(sizeBytes uint64) (hal.PersistentResource, error) {
	return &Resource{sizeOrShape: sizeBytes}, nil
}
func (p *PersistentRegistry) AllocateTexture(shapeSize uint64) (hal.PersistentResource, error) {
	return &Resource{sizeOrShape: shapeSize}, nil
}
func (p *PersistentRegistry) PrepareMultiframeBuffer(r hal.PersistentResource, frameSlot int) error {
	return nil
}
func (p *PersistentRegistry) PrepareMultiframeTexture(r hal.PersistentResource, frameSlot int) error {
	return nil
}
func (p *PersistentRegistry) Dispose(r hal.PersistentResource) { r.Destroy() }

func (p *PersistentRegistry) Sampler(desc hal.SamplerDescriptor) (hal.PersistentResource, error) {
	if s, ok := p.samplers[desc]; ok {
		return s, nil
	}
	s := &Resource{}
	p.samplers[desc] = s
	return s, nil
}
