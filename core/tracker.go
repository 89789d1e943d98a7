package core

import "github.com/gogpu/rendergraph/types"

// HazardPassResult accumulates the output of running the hazard pass
// (spec §4.3.2) over one resource's usage list: the intra-encoder barriers
// and pre-frame commands it produced, plus any inter-encoder dependencies
// recorded into the shared DependencyTable.
type HazardPassResult struct {
	Barriers         []FrameResourceCommand
	AliasingFenceCmd *PreFrameCommand
}

// RunHazardPass implements the per-resource hazard pass (spec §4.3.2). usages
// must be in pass order (the ordering ResourceUsageList guarantees). deps
// receives inter-encoder dependencies; encoderOf maps a usage's command index
// to its owning encoder index, used to tell intra- from inter-encoder
// hazards apart.
func RunHazardPass(resource *Resource, usages []*ResourceUsage, deps *DependencyTable, encoderOf func(commandIndex int) int) HazardPassResult {
	var result HazardPassResult
	if len(usages) == 0 {
		return result
	}

	if resource.AliasedHeap {
		first := usages[0]
		cmd := WaitForHeapAliasingFences(int(first.CommandRange.Lo), resource, FenceDependency{})
		result.AliasingFenceCmd = &cmd
	}

	tracked := trackedRange{active: resource.trackedFullRange()}

	i := 0
	for i < len(usages) {
		u := usages[i]

		if tracked.partiallyOverlaps(u.ActiveRange) {
			intersection := tracked.active.Intersection(u.ActiveRange)
			remainder := u.ActiveRange.Subtracting(intersection)
			splitUsage := *u
			splitUsage.ActiveRange = intersection
			result.Barriers = append(result.Barriers, processUsage(resource, usages, i, &splitUsage, deps, encoderOf)...)

			remainderUsage := *u
			remainderUsage.ActiveRange = remainder
			usages[i] = &remainderUsage
			tracked.active = tracked.active.Union(intersection)
			continue
		}

		result.Barriers = append(result.Barriers, processUsage(resource, usages, i, u, deps, encoderOf)...)
		if u.Type == types.AccessInputAttachment {
			result.Barriers = append(result.Barriers, inputAttachmentBarriers(resource, u, encoderOf)...)
		}
		tracked.active = tracked.active.Union(u.ActiveRange)
		i++
	}

	return result
}

// inputAttachmentRenderTarget usages on backends that emulate input
// attachments require a barrier between every draw command inside the pass
// (spec §4.3.2 step 5): each draw may read what the previous draw wrote to
// the same attachment, so every consecutive pair of draw commands in the
// usage's range gets its own memoryBarrier.
func inputAttachmentBarriers(resource *Resource, u *ResourceUsage, encoderOf func(int) int) []FrameResourceCommand {
	lo, hi := int(u.CommandRange.Lo), int(u.CommandRange.Hi)
	if hi-lo < 2 {
		return nil
	}
	encoderIndex := encoderOf(lo)
	barriers := make([]FrameResourceCommand, 0, hi-lo-1)
	for cmd := lo; cmd < hi-1; cmd++ {
		barriers = append(barriers, MemoryBarrier(
			encoderIndex, resource,
			u.Type, u.Stages, cmd,
			cmd+1, u.Type, u.Stages,
			u.ActiveRange,
		))
	}
	return barriers
}

// trackedRange is the activeSubresources / remainingSubresources state the
// hazard pass maintains while scanning one resource's usages.
type trackedRange struct {
	active types.SubresourceSet
}

func (t trackedRange) partiallyOverlaps(r types.SubresourceSet) bool {
	if t.active.IsEmpty() || r.IsEmpty() {
		return false
	}
	inter := t.active.Intersection(r)
	return !inter.IsEmpty() && !inter.IsEqual(r)
}

// trackedFullRange returns fullResource for resources with subresources
// (textures), or the sentinel single-range [0,1) standing for "the whole
// buffer" otherwise — buffers have no subresource structure to split.
func (r *Resource) trackedFullRange() types.SubresourceSet {
	if r.Kind == types.ResourceKindTexture || r.Kind == types.ResourceKindTextureView {
		return types.Full(r.ShapeSize)
	}
	return types.Full(1)
}

// processUsage handles steps 3-4 of the hazard pass for a single
// (possibly already range-split) usage at index i; step 5's input-attachment
// barriers are added by RunHazardPass.
func processUsage(resource *Resource, usages []*ResourceUsage, i int, u *ResourceUsage, deps *DependencyTable, encoderOf func(int) int) []FrameResourceCommand {
	var barriers []FrameResourceCommand
	consumerEncoder := encoderOf(int(u.CommandRange.Lo))

	if u.Type.IsWrite() {
		for j := i - 1; j >= 0; j-- {
			r := usages[j]
			if !r.ActiveRange.Intersects(u.ActiveRange) {
				continue
			}
			if r.Type.IsWrite() {
				// Reads before this write were already fenced against it
				// when it was itself processed as the current write; going
				// further back would record the same hazard twice.
				break
			}
			if !r.Type.IsRead() {
				continue
			}
			producerEncoder := encoderOf(int(r.CommandRange.Hi) - 1)
			if producerEncoder != consumerEncoder {
				deps.Record(producerEncoder, consumerEncoder, FenceDependency{
					Signal: Dependency{EncoderIndex: producerEncoder, CommandIndex: int(r.CommandRange.Hi) - 1, Stages: r.Stages},
					Wait:   Dependency{EncoderIndex: consumerEncoder, CommandIndex: int(u.CommandRange.Lo), Stages: u.Stages},
				})
			}
		}
	}

	prevWrite := IndexOfPreviousWrite(usages, i)
	if prevWrite >= 0 {
		w := usages[prevWrite]
		producerEncoder := encoderOf(int(w.CommandRange.Hi) - 1)
		sameEncoderSkip := w.Type.IsRenderTarget() && u.Type == types.AccessReadWriteRenderTarget
		if producerEncoder == consumerEncoder {
			if !sameEncoderSkip {
				barriers = append(barriers, MemoryBarrier(
					consumerEncoder, resource,
					w.Type, w.Stages, int(w.CommandRange.Hi)-1,
					int(u.CommandRange.Lo), u.Type, u.Stages,
					u.ActiveRange,
				))
			}
		} else {
			deps.Record(producerEncoder, consumerEncoder, FenceDependency{
				Signal: Dependency{EncoderIndex: producerEncoder, CommandIndex: int(w.CommandRange.Hi) - 1, Stages: w.Stages},
				Wait:   Dependency{EncoderIndex: consumerEncoder, CommandIndex: int(u.CommandRange.Lo), Stages: u.Stages},
			})
		}
	}

	return barriers
}
