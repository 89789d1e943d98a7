package core

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/rendergraph/types"
)

// AttachmentDescriptor is one color, depth, or stencil attachment within a
// RenderTargetDescriptor.
type AttachmentDescriptor struct {
	Resource   ResourceID
	LoadOp     gputypes.LoadOp
	ClearColor gputypes.Color
	// Stored is true if the attachment's contents are read after the pass
	// (copied out, or used by a later pass) — contributes to storedTextures.
	Stored bool
}

// RenderTargetDescriptor accumulates attachments across contiguous draw
// passes within one encoder (spec §4.2). Two descriptors "identity-merge"
// when they reference the same attachment set in the same configuration.
type RenderTargetDescriptor struct {
	Color   []AttachmentDescriptor
	Depth   *AttachmentDescriptor
	Stencil *AttachmentDescriptor
}

// identityMerges reports whether d and other describe the same render
// target, and so may share one encoder (spec §4.2 rule 2).
func (d *RenderTargetDescriptor) identityMerges(other *RenderTargetDescriptor) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.Color) != len(other.Color) {
		return false
	}
	for i := range d.Color {
		if d.Color[i].Resource != other.Color[i].Resource {
			return false
		}
	}
	if (d.Depth == nil) != (other.Depth == nil) {
		return false
	}
	if d.Depth != nil && d.Depth.Resource != other.Depth.Resource {
		return false
	}
	if (d.Stencil == nil) != (other.Stencil == nil) {
		return false
	}
	if d.Stencil != nil && d.Stencil.Resource != other.Stencil.Resource {
		return false
	}
	return true
}

// FrameCommandInfo is the partition of one frame's pass list into command
// encoders and command buffers (spec §3):
// {globalFrameIndex, baseCommandBufferGlobalIndex, passes, passEncoderIndices,
//  commandEncoders, commandEncoderRenderTargets, storedTextures}.
type FrameCommandInfo struct {
	GlobalFrameIndex             uint64
	BaseCommandBufferGlobalIndex uint64

	Passes             []*RenderPassRecord
	PassEncoderIndices []int // O(1) pass -> encoder lookup
	CommandEncoders    []*CommandEncoderInfo
	StoredTextures     map[ResourceID]bool
}

// CommandBufferCount is lastEncoder.commandBufferIndex + 1, or 0 for an
// empty pass list (spec §4.2, and §9's Open Question: "empty pass list ⇒
// zero encoders, zero command buffers").
func (f *FrameCommandInfo) CommandBufferCount() int {
	if len(f.CommandEncoders) == 0 {
		return 0
	}
	return f.CommandEncoders[len(f.CommandEncoders)-1].CommandBufferIndex + 1
}

// BuildFrameCommandInfo partitions passes into encoders by scanning
// left-to-right (spec §4.2). renderTargetFor resolves each draw pass's
// render-target descriptor; queueFamilyFor resolves a pass's queue family.
func BuildFrameCommandInfo(
	globalFrameIndex, baseCommandBufferGlobalIndex uint64,
	passes []*RenderPassRecord,
	renderTargetFor func(*RenderPassRecord) *RenderTargetDescriptor,
	queueFamilyFor func(*RenderPassRecord) int,
) *FrameCommandInfo {
	info := &FrameCommandInfo{
		GlobalFrameIndex:             globalFrameIndex,
		BaseCommandBufferGlobalIndex: baseCommandBufferGlobalIndex,
		Passes:                       passes,
		PassEncoderIndices:           make([]int, len(passes)),
		StoredTextures:               make(map[ResourceID]bool),
	}
	if len(passes) == 0 {
		return info
	}

	commandBufferIndex := 0
	var cur *CommandEncoderInfo

	for i, p := range passes {
		rt := renderTargetFor(p)
		qf := queueFamilyFor(p)

		cut := cur == nil || shouldCutEncoder(passes[i-1], p, cur.RenderTarget, rt)
		if cur != nil && !cut {
			// Same encoder: merge render target attachments.
			cur.PassRange.Hi = uint64(i + 1)
			cur.UsesWindowTexture = cur.UsesWindowTexture || p.UsesWindowTexture
		} else {
			if cur != nil {
				newCommandBuffer := cur.UsesWindowTexture != p.UsesWindowTexture || cur.QueueFamilyIndex != qf
				if newCommandBuffer {
					commandBufferIndex++
				}
			}
			cur = &CommandEncoderInfo{
				Type:              p.Type,
				CommandBufferIndex: commandBufferIndex,
				QueueFamilyIndex:  qf,
				PassRange:         types.Range{Lo: uint64(i), Hi: uint64(i + 1)},
				UsesWindowTexture: p.UsesWindowTexture,
				RenderTarget:      rt,
			}
			info.CommandEncoders = append(info.CommandEncoders, cur)
		}

		info.PassEncoderIndices[i] = len(info.CommandEncoders) - 1

		if rt != nil {
			for _, a := range rt.Color {
				if a.Stored {
					info.StoredTextures[a.Resource] = true
				}
			}
			if rt.Depth != nil && rt.Depth.Stored {
				info.StoredTextures[rt.Depth.Resource] = true
			}
			if rt.Stencil != nil && rt.Stencil.Stored {
				info.StoredTextures[rt.Stencil.Resource] = true
			}
		}
	}

	return info
}

// shouldCutEncoder implements spec §4.2's two cut rules: scanning
// left-to-right, cut between pass[i-1] and pass[i] when either holds.
func shouldCutEncoder(prev, cur *RenderPassRecord, prevRT, curRT *RenderTargetDescriptor) bool {
	// Rule 1: pass[i].type != draw AND NOT (both blit).
	if cur.Type != PassTypeDraw && !(cur.Type == PassTypeBlit && prev.Type == PassTypeBlit) {
		return true
	}
	// Rule 2: draw passes but render-target descriptors do not identity-merge.
	if cur.Type == PassTypeDraw && !prevRT.identityMerges(curRT) {
		return true
	}
	return false
}
