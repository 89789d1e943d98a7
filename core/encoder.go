package core

import (
	"fmt"

	"github.com/gogpu/rendergraph/types"
)

// CommandEncoderInfo batches contiguous passes that share a render target
// (for draws) or run on the same blit-compatible surface (spec §3, §4.2):
// {type, commandBufferIndex, queueFamilyIndex, passRange, queueCommandWaitIndices, usesWindowTexture}.
type CommandEncoderInfo struct {
	Type              PassType
	CommandBufferIndex int
	QueueFamilyIndex  int
	// PassRange is the half-open range of pass indices this encoder covers.
	PassRange types.Range
	// QueueCommandWaitIndices is flushed from the accumulated
	// wait-index vector when PreFrameCommand execution crosses this
	// encoder's boundary (§4.3.6).
	QueueCommandWaitIndices QueueCommandIndices
	UsesWindowTexture       bool

	// RenderTarget accumulates attachments across the encoder's contiguous
	// draw passes (§4.2); nil for non-draw encoders.
	RenderTarget *RenderTargetDescriptor
}

// Name renders an encoder label: up to four passes inline, otherwise
// "[first…last] (N passes)" (spec §4.2).
func (e *CommandEncoderInfo) Name(passes []*RenderPassRecord) string {
	lo, hi := int(e.PassRange.Lo), int(e.PassRange.Hi)
	n := hi - lo
	if n <= 0 {
		return "[empty]"
	}
	if n <= 4 {
		s := ""
		for i := lo; i < hi; i++ {
			if i > lo {
				s += ", "
			}
			s += passes[i].Name
		}
		return s
	}
	return fmt.Sprintf("[%s…%s] (%d passes)", passes[lo].Name, passes[hi-1].Name, n)
}
