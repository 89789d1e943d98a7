package testgpu

import (
	"time"

	"github.com/gogpu/rendergraph/hal"
)

// CommandBuffer is an in-memory hal.CommandBuffer: encoding just records
// what it was given, commit invokes the completion callback immediately and
// inline.
type CommandBuffer struct {
	encoded          []int
	resourceCommands []hal.ResourceCommand
	waits            []hal.EncoderWait
	committed        bool
	start, end       time.Time
	err              error
}

// NewCommandBuffer creates an empty command buffer.
func NewCommandBuffer() *CommandBuffer { return &CommandBuffer{} }

func (c *CommandBuffer) EncodeCommands(encoderIndex int, resourceCommands []hal.ResourceCommand, waits []hal.EncoderWait) error {
	c.encoded = append(c.encoded, encoderIndex)
	c.resourceCommands = append(c.resourceCommands, resourceCommands...)
	c.waits = append(c.waits, waits...)
	return nil
}

// EncodedResourceCommands returns every resource command passed to
// EncodeCommands across all encoders, in encode order.
func (c *CommandBuffer) EncodedResourceCommands() []hal.ResourceCommand { return c.resourceCommands }

// EncodedWaits returns every inter-encoder wait passed to EncodeCommands
// across all encoders, in encode order.
func (c *CommandBuffer) EncodedWaits() []hal.EncoderWait { return c.waits }

func (c *CommandBuffer) Commit(onCompletion func()) error {
	c.start = time.Now()
	c.committed = true
	c.end = time.Now()
	if onCompletion != nil {
		onCompletion()
	}
	return nil
}

func (c *CommandBuffer) PresentSwapchains() error { return nil }
func (c *CommandBuffer) GPUStartTime() time.Time  { return c.start }
func (c *CommandBuffer) GPUEndTime() time.Time    { return c.end }
func (c *CommandBuffer) Error() error             { return c.err }

// Queue is an in-memory hal.QueueFacade.
type Queue struct{}

// NewQueue creates a queue facade.
func NewQueue() *Queue { return &Queue{} }

func (q *Queue) NewCommandBuffer() (hal.CommandBuffer, error) {
	return NewCommandBuffer(), nil
}
