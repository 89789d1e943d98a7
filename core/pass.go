package core

import "github.com/gogpu/rendergraph/types"

// PassType is the kind of work a RenderPassRecord performs (spec §3).
type PassType uint8

const (
	PassTypeDraw PassType = iota
	PassTypeCompute
	PassTypeBlit
	PassTypeExternal
	PassTypeCPU
)

func (t PassType) String() string {
	switch t {
	case PassTypeDraw:
		return "draw"
	case PassTypeCompute:
		return "compute"
	case PassTypeBlit:
		return "blit"
	case PassTypeExternal:
		return "external"
	case PassTypeCPU:
		return "cpu"
	default:
		return "unknown"
	}
}

// Pass is the external, opaque collaborator a RenderPassRecord wraps: the
// actual recording callback. Its body is out of this repository's scope
// (spec §1 treats pass bodies as external collaborators) — the core only
// needs to invoke it once materialization has run and it knows which
// command encoder it has been assigned to.
type Pass interface {
	// Encode records this pass's commands into the given encoder index.
	Encode(encoderIndex int) error
}

// RenderPassRecord is one declared pass in a frame's pass list (spec §3):
// {passIndex, type, name, commandRange, usesWindowTexture, isActive, pass}.
// Passes form a linear sequence; PassIndex is the index into that sequence.
type RenderPassRecord struct {
	PassIndex int
	Type      PassType
	Name      string
	// CommandRange is the half-open range of command indices this pass
	// occupies within its encoder's command stream.
	CommandRange types.Range
	// UsesWindowTexture is true when the pass reads or writes a
	// window-handle resource, forcing a new command buffer (§4.2).
	UsesWindowTexture bool
	// IsActive is false for passes elided by the graph compiler (e.g. no
	// surviving outputs); inactive passes contribute no encoder or usage.
	IsActive bool
	Pass     Pass
}
