package core

import "github.com/gogpu/rendergraph/types"

// TransientRegistry is the subset of the backend facade's transient
// registry the generator drives directly (spec §4.6): materialize-on-demand
// allocation, disposal, and heap-aliasing disposal fences.
type TransientRegistry interface {
	MaterialiseBuffer(r *Resource) error
	MaterialiseTexture(r *Resource) error
	MaterialiseTextureView(r *Resource) error
	MaterialiseArgumentBuffer(r *Resource) error
	MaterialiseArgumentBufferArray(r *Resource) error
	MaterialiseVisibleFunctionTable(r *Resource) error
	MaterialiseIntersectionFunctionTable(r *Resource) error
	Dispose(r *Resource, waitEvent uint64) error
	SetDisposalFences(r *Resource, fences []FenceDependency)
	SupportsMemorylessAttachments() bool
}

// GeneratorResult is the Resource Command Generator's full output for one
// frame (spec §4.3): the sorted pre-frame commands, the per-encoder
// resource commands, and the inter-encoder dependency table.
type GeneratorResult struct {
	PreFrame  []PreFrameCommand
	Resource  []FrameResourceCommand
	DepTable  *DependencyTable
}

// Generate runs the full Resource Command Generator over frame for every
// resource touched this frame (spec §4.3.1-§4.3.6). encoderOf maps a
// command index to its owning encoder; queueSlotFor resolves the queue slot
// a resource's persistent wait-indices should be read/written on, for a
// given pass.
func Generate(frame *FrameCommandInfo, resources []*Resource, registry TransientRegistry, encoderOf func(int) int, queueSlotFor func(*RenderPassRecord) int) *GeneratorResult {
	result := &GeneratorResult{DepTable: NewDependencyTable(len(frame.CommandEncoders))}

	for _, r := range resources {
		if len(r.Usages) == 0 {
			continue
		}

		// §4.3.1 Residency pass: coalesce contiguous compatible usages into
		// a single useResource within one encoder.
		result.Resource = append(result.Resource, residencyPass(r, encoderOf)...)

		// §4.3.2 Hazard pass.
		hazard := RunHazardPass(r, r.Usages, result.DepTable, encoderOf)
		result.Resource = append(result.Resource, hazard.Barriers...)
		if hazard.AliasingFenceCmd != nil {
			result.PreFrame = append(result.PreFrame, *hazard.AliasingFenceCmd)
		}

		// §4.3.3 Materialisation & disposal.
		result.PreFrame = append(result.PreFrame, materialisationAndDisposal(r, frame, encoderOf, registry)...)

		// §4.3.4 Cross-frame queue waits, persistent resources only.
		if r.Flags.Has(ResourceFlagPersistent) {
			result.PreFrame = append(result.PreFrame, crossFrameQueueWaits(r, queueSlotFor)...)
		}

		// §4.3.5 Heap-aliasing disposal fences, transient non-memoryless only.
		if r.AliasedHeap && !r.CanBeMemoryless {
			if fences := aliasingDisposalFences(r); len(fences) > 0 {
				registry.SetDisposalFences(r, fences)
			}
		}
	}

	SortPreFrameCommands(result.PreFrame)
	return result
}

func residencyPass(r *Resource, encoderOf func(int) int) []FrameResourceCommand {
	var out []FrameResourceCommand
	usages := r.Usages
	i := 0
	for i < len(usages) {
		u := usages[i]
		if u.Type.IsRenderTarget() || !u.AllowReordering {
			out = append(out, UseResource(encoderOf(int(u.CommandRange.Lo)), int(u.CommandRange.Hi)-1, r, u.Type, u.Stages, false))
			i++
			continue
		}
		j := i + 1
		enc := encoderOf(int(u.CommandRange.Lo))
		stages := u.Stages
		for j < len(usages) {
			next := usages[j]
			if !next.AllowReordering || next.Type.IsRenderTarget() {
				break
			}
			if encoderOf(int(next.CommandRange.Lo)) != enc {
				break
			}
			stages = stages.Merged(next.Stages)
			j++
		}
		// A useResource that coalesces several usages has reordering cleared.
		out = append(out, UseResource(enc, int(usages[j-1].CommandRange.Hi)-1, r, u.Type, stages, j == i+1))
		i = j
	}
	return out
}

func materialisationAndDisposal(r *Resource, frame *FrameCommandInfo, encoderOf func(int) int, registry TransientRegistry) []PreFrameCommand {
	if r.Flags.Has(ResourceFlagPersistent) || r.Flags.Has(ResourceFlagWindowHandle) {
		return nil
	}

	if registry.SupportsMemorylessAttachments() && isMemorylessCandidate(r, frame) {
		r.CanBeMemoryless = true
		return nil
	}

	first := r.Usages[0]
	last := r.Usages[len(r.Usages)-1]
	lastEncoderIndex := encoderOf(int(last.CommandRange.Hi) - 1)
	lastEncoder := frame.CommandEncoders[lastEncoderIndex]

	tag := materialiseTagFor(r.Kind)
	return []PreFrameCommand{
		materialiseCommand(tag, int(first.CommandRange.Lo), r),
		DisposeResource(int(lastEncoder.PassRange.Hi), r, last.Stages),
	}
}

func materialiseTagFor(kind types.ResourceKind) PreFrameCommandTag {
	switch kind {
	case types.ResourceKindBuffer:
		return TagMaterialiseBuffer
	case types.ResourceKindTexture:
		return TagMaterialiseTexture
	case types.ResourceKindTextureView:
		return TagMaterialiseTextureView
	case types.ResourceKindArgumentBuffer:
		return TagMaterialiseArgumentBuffer
	case types.ResourceKindArgumentBufferArray:
		return TagMaterialiseArgumentBufferArray
	case types.ResourceKindVisibleFunctionTable:
		return TagMaterialiseVisibleFunctionTable
	case types.ResourceKindIntersectionFunctionTable:
		return TagMaterialiseIntersectionFunctionTable
	default:
		return TagMaterialiseBuffer
	}
}

// isMemorylessCandidate reports whether r stores only to render-target
// usages and is never listed in frame.StoredTextures (spec §4.3.3).
func isMemorylessCandidate(r *Resource, frame *FrameCommandInfo) bool {
	if r.Kind != types.ResourceKindTexture {
		return false
	}
	if frame.StoredTextures[r.ID] {
		return false
	}
	for _, u := range r.Usages {
		if !u.Type.IsRenderTarget() {
			return false
		}
	}
	return true
}

// crossFrameQueueWaits implements §4.3.4: at the first usage, emit a
// waitForCommandBuffer against the persistent resource's published wait
// index for this queue; after the last write (or after every read since the
// last write, when no write occurs this frame), emit
// updateCommandBufferWaitIndex.
func crossFrameQueueWaits(r *Resource, queueSlotFor func(*RenderPassRecord) int) []PreFrameCommand {
	var out []PreFrameCommand
	first := r.Usages[0]
	queueSlot := queueSlotFor(first.RenderPassRecord)
	access := firstUsageWaitAccess(first)
	waitIndex := r.WaitIndices(queueSlot).WaitIndexFor(access)
	out = append(out, WaitForCommandBuffer(int(first.CommandRange.Lo), r, queueSlot, waitIndex))

	lastWrite := -1
	for i, u := range r.Usages {
		if u.Type.IsWrite() {
			lastWrite = i
		}
	}

	if lastWrite >= 0 {
		u := r.Usages[lastWrite]
		out = append(out, UpdateCommandBufferWaitIndex(int(u.CommandRange.Hi)-1, r, queueSlotFor(u.RenderPassRecord), types.AccessReadWrite))
		return out
	}

	for _, u := range r.Usages {
		out = append(out, UpdateCommandBufferWaitIndex(int(u.CommandRange.Hi)-1, r, queueSlotFor(u.RenderPassRecord), u.Type))
	}
	return out
}

func firstUsageWaitAccess(u *ResourceUsage) types.AccessType {
	if u.Type.IsWrite() {
		return types.AccessReadWrite
	}
	return types.AccessRead
}

// ExecutePreFrameCommands walks the sorted pre-frame commands in order
// (spec §4.3.6), mutating the transient registry and flushing each
// encoder's accumulated queueCommandWaitIndices as the walk crosses that
// encoder's command-range boundary.
func ExecutePreFrameCommands(frame *FrameCommandInfo, cmds []PreFrameCommand, registry TransientRegistry) error {
	var waitVector QueueCommandIndices
	encoderIdx := 0

	flushTo := func(commandIndex int) {
		for encoderIdx < len(frame.CommandEncoders) && uint64(commandIndex) >= frame.CommandEncoders[encoderIdx].PassRange.Hi {
			frame.CommandEncoders[encoderIdx].QueueCommandWaitIndices = waitVector
			encoderIdx++
		}
	}

	for _, cmd := range cmds {
		flushTo(cmd.CommandIndex)

		switch cmd.Tag {
		case TagMaterialiseBuffer:
			if err := registry.MaterialiseBuffer(cmd.Resource); err != nil {
				return err
			}
		case TagMaterialiseTexture:
			if err := registry.MaterialiseTexture(cmd.Resource); err != nil {
				return err
			}
		case TagMaterialiseTextureView:
			if err := registry.MaterialiseTextureView(cmd.Resource); err != nil {
				return err
			}
		case TagMaterialiseArgumentBuffer:
			if err := registry.MaterialiseArgumentBuffer(cmd.Resource); err != nil {
				return err
			}
		case TagMaterialiseArgumentBufferArray:
			if err := registry.MaterialiseArgumentBufferArray(cmd.Resource); err != nil {
				return err
			}
		case TagMaterialiseVisibleFunctionTable:
			if err := registry.MaterialiseVisibleFunctionTable(cmd.Resource); err != nil {
				return err
			}
		case TagMaterialiseIntersectionFunctionTable:
			if err := registry.MaterialiseIntersectionFunctionTable(cmd.Resource); err != nil {
				return err
			}
		case TagDisposeResource:
			if err := registry.Dispose(cmd.Resource, 0); err != nil {
				return err
			}
		case TagWaitForHeapAliasingFences:
			// Handled by the hazard pass's aliasing-fence command; nothing
			// further mutates registry state here beyond what SetDisposalFences
			// already recorded in §4.3.5.
		case TagWaitForCommandBuffer:
			if cmd.QueueSlot < maxQueues && cmd.WaitIndex > waitVector[cmd.QueueSlot] {
				waitVector[cmd.QueueSlot] = cmd.WaitIndex
			}
		case TagUpdateCommandBufferWaitIndex:
			publishWaitIndex(cmd.Resource, cmd.QueueSlot, cmd.AccessType, uint64(cmd.CommandIndex))
		}
	}

	flushTo(int(^uint(0) >> 1))
	return nil
}

func publishWaitIndex(r *Resource, queueSlot int, access types.AccessType, value uint64) {
	indices := r.WaitIndices(queueSlot)
	switch {
	case access == types.AccessReadWrite:
		atomicMaxUint64(&indices.ReadWrite, value)
	case access.IsWrite():
		atomicMaxUint64(&indices.Write, value)
	default:
		atomicMaxUint64(&indices.Read, value)
	}
}

// aliasingDisposalFences implements §4.3.5: after the last write if no
// subsequent read, the single fence is the write; otherwise one fence per
// read since the last write.
func aliasingDisposalFences(r *Resource) []FenceDependency {
	lastWrite := -1
	for i, u := range r.Usages {
		if u.Type.IsWrite() {
			lastWrite = i
		}
	}
	if lastWrite < 0 {
		return nil
	}

	var readsAfter []*ResourceUsage
	for i := lastWrite + 1; i < len(r.Usages); i++ {
		if r.Usages[i].Type.IsRead() {
			readsAfter = append(readsAfter, r.Usages[i])
		}
	}

	w := r.Usages[lastWrite]
	signal := Dependency{CommandIndex: int(w.CommandRange.Hi) - 1, Stages: w.Stages}

	if len(readsAfter) == 0 {
		return []FenceDependency{{Signal: signal, Wait: signal}}
	}

	fences := make([]FenceDependency, 0, len(readsAfter))
	for _, rd := range readsAfter {
		fences = append(fences, FenceDependency{
			Signal: signal,
			Wait:   Dependency{CommandIndex: int(rd.CommandRange.Hi) - 1, Stages: rd.Stages},
		})
	}
	return fences
}
