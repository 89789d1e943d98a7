package core

import "github.com/gogpu/rendergraph/types"

// FrameResourceCommandKind tags a FrameResourceCommand's variant (spec §4.3).
type FrameResourceCommandKind uint8

const (
	// CommandUseResource declares residency at a command index.
	CommandUseResource FrameResourceCommandKind = iota
	// CommandMemoryBarrier fixes an intra-encoder hazard.
	CommandMemoryBarrier
)

// FrameResourceCommand is a command executed during command-buffer encoding
// (spec §4.3): either useResource(resource, usage, stages, allowReordering)
// or memoryBarrier(resource, afterUsage, afterStages, beforeCommand,
// beforeUsage, beforeStages, activeRange).
type FrameResourceCommand struct {
	Kind         FrameResourceCommandKind
	EncoderIndex int
	CommandIndex int
	Resource     *Resource

	// useResource fields.
	Usage           types.AccessType
	Stages          types.Stages
	AllowReordering bool

	// memoryBarrier fields.
	AfterUsage    types.AccessType
	AfterStages   types.Stages
	BeforeCommand int
	BeforeUsage   types.AccessType
	BeforeStages  types.Stages
	ActiveRange   types.SubresourceSet
}

// UseResource builds a residency-declaration command.
func UseResource(encoderIndex, commandIndex int, resource *Resource, usage types.AccessType, stages types.Stages, allowReordering bool) FrameResourceCommand {
	return FrameResourceCommand{
		Kind:            CommandUseResource,
		EncoderIndex:    encoderIndex,
		CommandIndex:    commandIndex,
		Resource:        resource,
		Usage:           usage,
		Stages:          stages,
		AllowReordering: allowReordering,
	}
}

// MemoryBarrier builds an intra-encoder hazard-fix command.
func MemoryBarrier(encoderIndex int, resource *Resource, afterUsage types.AccessType, afterStages types.Stages, afterCommand int, beforeCommand int, beforeUsage types.AccessType, beforeStages types.Stages, activeRange types.SubresourceSet) FrameResourceCommand {
	return FrameResourceCommand{
		Kind:          CommandMemoryBarrier,
		EncoderIndex:  encoderIndex,
		CommandIndex:  afterCommand,
		Resource:      resource,
		AfterUsage:    afterUsage,
		AfterStages:   afterStages,
		BeforeCommand: beforeCommand,
		BeforeUsage:   beforeUsage,
		BeforeStages:  beforeStages,
		ActiveRange:   activeRange,
	}
}
