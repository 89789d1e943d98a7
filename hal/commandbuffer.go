package hal

import (
	"time"

	"github.com/gogpu/rendergraph/types"
)

// ResourceCommandKind tags a ResourceCommand's variant, mirroring the
// core's resource command generator output (spec §4.3).
type ResourceCommandKind uint8

const (
	// ResourceCommandUseResource declares residency at a command index.
	ResourceCommandUseResource ResourceCommandKind = iota
	// ResourceCommandMemoryBarrier fixes an intra-encoder hazard.
	ResourceCommandMemoryBarrier
)

// ResourceCommand is the backend-facing shape of a core resource command
// (spec §4.3): the core resolves the resource it names to whatever handle
// the transient or persistent registry materialised it as before crossing
// into this package, since hal cannot import the core package that defines
// the resource type itself. Resource is nil for a resource that was never
// materialised through a registry this adapter tracks (e.g. one disposed
// before this command was encoded).
type ResourceCommand struct {
	Kind         ResourceCommandKind
	CommandIndex int
	Resource     any

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

// EncoderWait is one inter-encoder dependency a consuming encoder must
// synchronize against before replaying its commands, resolved from the
// core's per-frame dependency table (spec §4.3, §4.6 step 8).
type EncoderWait struct {
	ProducerEncoder      int
	ProducerCommandIndex int
	ConsumerCommandIndex int
	Stages               types.Stages
}

// CommandBuffer is the backend-level container of encoded work the core
// submits atomically (spec §4.6, §3's glossary). The core never inspects a
// command buffer's contents; it only drives this lifecycle.
type CommandBuffer interface {
	// EncodeCommands records the resource commands and backend-compacted
	// opcodes for one encoder into this command buffer. resourceCommands
	// is every useResource/memoryBarrier command the generator placed on
	// this encoder; waits is every same-queue dependency this encoder must
	// synchronize against before its commands run, in producer-encoder
	// order.
	EncodeCommands(encoderIndex int, resourceCommands []ResourceCommand, waits []EncoderWait) error

	// Commit submits the command buffer to its queue. onCompletion is
	// invoked once the GPU has finished executing it; the backend is free
	// to invoke it from any goroutine.
	Commit(onCompletion func()) error

	// PresentSwapchains schedules presentation of every window-handle
	// texture this command buffer wrote, after GPU completion.
	PresentSwapchains() error

	// GPUStartTime and GPUEndTime report timestamps captured by the
	// backend, valid only after Commit's onCompletion has fired.
	GPUStartTime() time.Time
	GPUEndTime() time.Time

	// Error reports the backend-level submission error, if Commit's work
	// failed on the GPU (spec §7 BackendSubmitError). Valid only after
	// onCompletion has fired.
	Error() error
}

// QueueFacade builds and submits command buffers for one queue slot (spec
// §4.6's "Build a command buffer with ...").
type QueueFacade interface {
	// NewCommandBuffer allocates a command buffer for this queue. The
	// encoders it holds are supplied afterwards, one EncodeCommands call per
	// encoder.
	NewCommandBuffer() (CommandBuffer, error)
}
