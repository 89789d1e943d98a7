package core

import (
	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/types"
)

// transientAdapter bridges a hal.TransientRegistry (which allocates by raw
// size/shape and hands back opaque hal.TransientResource handles) to the
// generator's TransientRegistry interface (which operates on *Resource and
// owns the mapping from a core Resource to its backing hal handle).
//
// The handle table is guarded by a SnatchLock: materialisation inserts under
// a write guard, Handle and MaterialiseTextureView's base-resource lookup
// read under a shared read guard, and Dispose snatches the handle under a
// write guard so a concurrent reader never observes a half-destroyed entry.
type transientAdapter struct {
	backend hal.TransientRegistry
	lock    *SnatchLock
	handles map[ResourceID]*Snatchable[hal.TransientResource]
}

func newTransientAdapter(backend hal.TransientRegistry) *transientAdapter {
	return &transientAdapter{
		backend: backend,
		lock:    NewSnatchLock(),
		handles: make(map[ResourceID]*Snatchable[hal.TransientResource]),
	}
}

func (a *transientAdapter) store(id ResourceID, h hal.TransientResource) {
	guard := a.lock.Write()
	defer guard.Release()
	a.handles[id] = NewSnatchable(h)
}

// Handle resolves the backend handle r was most recently materialised as,
// or nil if r was never materialised through this adapter or has since been
// disposed. Used to attach a resource command's opaque hal.ResourceCommand
// target before handing it to the backend facade.
func (a *transientAdapter) Handle(id ResourceID) any {
	guard := a.lock.Read()
	defer guard.Release()
	s, ok := a.handles[id]
	if !ok {
		return nil
	}
	h := s.Get(guard)
	if h == nil {
		return nil
	}
	return *h
}

func (a *transientAdapter) MaterialiseBuffer(r *Resource) error {
	h, err := a.backend.AllocateBufferIfNeeded(r.ShapeSize)
	if err != nil {
		return err
	}
	a.store(r.ID, h)
	return nil
}

func (a *transientAdapter) MaterialiseTexture(r *Resource) error {
	var desc types.TextureDescriptor
	if r.TextureDesc != nil {
		desc = *r.TextureDesc
	}
	h, err := a.backend.AllocateTextureIfNeeded(r.ShapeSize, desc)
	if err != nil {
		return err
	}
	a.store(r.ID, h)
	return nil
}

func (a *transientAdapter) MaterialiseTextureView(r *Resource) error {
	guard := a.lock.Read()
	baseEntry, ok := a.handles[r.BaseResource]
	if !ok {
		guard.Release()
		return &ProgrammerAssertion{Message: "materialiseTextureView: base resource not materialised"}
	}
	basePtr := baseEntry.Get(guard)
	guard.Release()
	if basePtr == nil {
		return &ProgrammerAssertion{Message: "materialiseTextureView: base resource already disposed"}
	}

	var desc types.TextureViewDescriptor
	if r.TextureViewDesc != nil {
		desc = *r.TextureViewDesc
	}
	h, err := a.backend.AllocateTextureView(*basePtr, desc)
	if err != nil {
		return err
	}
	a.store(r.ID, h)
	return nil
}

func (a *transientAdapter) MaterialiseArgumentBuffer(r *Resource) error {
	h, err := a.backend.AllocateArgumentBufferIfNeeded(r.ShapeSize)
	if err != nil {
		return err
	}
	a.store(r.ID, h)
	return nil
}

func (a *transientAdapter) MaterialiseArgumentBufferArray(r *Resource) error {
	return a.MaterialiseArgumentBuffer(r)
}

func (a *transientAdapter) MaterialiseVisibleFunctionTable(r *Resource) error {
	h, err := a.backend.AllocateArgumentBufferIfNeeded(r.ShapeSize)
	if err != nil {
		return err
	}
	a.store(r.ID, h)
	return nil
}

func (a *transientAdapter) MaterialiseIntersectionFunctionTable(r *Resource) error {
	return a.MaterialiseVisibleFunctionTable(r)
}

func (a *transientAdapter) Dispose(r *Resource, waitEvent uint64) error {
	guard := a.lock.Write()
	entry, ok := a.handles[r.ID]
	if !ok {
		guard.Release()
		return nil
	}
	hPtr := entry.Snatch(guard)
	delete(a.handles, r.ID)
	guard.Release()
	if hPtr == nil {
		return nil
	}

	h := *hPtr
	switch r.Kind {
	case types.ResourceKindTexture, types.ResourceKindTextureView:
		a.backend.DisposeTexture(h, waitEvent)
	case types.ResourceKindArgumentBuffer, types.ResourceKindArgumentBufferArray:
		a.backend.DisposeArgumentBuffer(h, waitEvent)
	default:
		a.backend.DisposeBuffer(h, waitEvent)
	}
	return nil
}

func (a *transientAdapter) SetDisposalFences(r *Resource, fences []FenceDependency) {
	guard := a.lock.Read()
	defer guard.Release()
	entry, ok := a.handles[r.ID]
	if !ok {
		return
	}
	hPtr := entry.Get(guard)
	if hPtr == nil {
		return
	}

	values := make([]uint64, len(fences))
	for i, f := range fences {
		values[i] = uint64(f.Signal.CommandIndex)
	}
	a.backend.SetDisposalFences(*hPtr, values)
}

func (a *transientAdapter) SupportsMemorylessAttachments() bool {
	return a.backend.SupportsMemorylessAttachments()
}
