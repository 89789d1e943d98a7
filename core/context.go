package core

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/internal/task"
)

// CompiledGraph is the external graph compiler's output (spec §4.4 step 2):
// the pass list split into CPU-only and GPU passes, the resources each
// touches, and the dependency table the generator will widen further.
type CompiledGraph struct {
	CPUPasses []*RenderPassRecord
	GPUPasses []*RenderPassRecord
	Resources []*Resource
}

// GraphCompiler is the external collaborator that turns a declared graph
// into a CompiledGraph. Out of this repository's scope (spec §1); the core
// only consumes its output.
type GraphCompiler interface {
	Compile(ctx context.Context, graph any) (*CompiledGraph, error)
}

// WaitToken is awaitable to observe GPU completion of one executeRenderGraph
// call (spec §6): token.Wait blocks until queue.lastCompletedCommand ≥
// executionIndex.
type WaitToken struct {
	QueueSlot     int
	ExecutionIndex uint64
	queue         *QueueState
}

// Wait blocks (synchronously — callers run it from their own goroutine if
// they need non-blocking semantics) until the token's queue has completed
// ExecutionIndex.
func (t WaitToken) Wait() {
	for t.queue != nil && t.queue.LastCompleted() < t.ExecutionIndex {
		runtime.Gosched()
	}
}

// Context is the per-frame state machine for one GPU device and one
// render-graph queue (spec §4.4). A bounded semaphore gates in-flight
// frames; a serialized task stream serializes all frame work.
type Context struct {
	runtime *Runtime
	queueID QueueID
	queue   *QueueState

	compiler GraphCompiler
	timeline hal.EventSource
	queueHAL hal.QueueFacade
	transient hal.TransientRegistry
	persistent hal.PersistentRegistry

	inFlight chan struct{}
	stream   *task.Stream

	usageArena *ResourceUsageList

	log *slog.Logger

	cancelled atomic.Bool
}

// NewContext constructs a Context bound to one backend, gated at
// inflightFrameCount concurrently-in-flight frames (spec §6:
// `Context.new(backend, inflightFrameCount, transientRegistryIndex)`).
func NewContext(runtime *Runtime, queueID QueueID, queue *QueueState, compiler GraphCompiler, timeline hal.EventSource, queueHAL hal.QueueFacade, transient hal.TransientRegistry, persistent hal.PersistentRegistry, inflightFrameCount int) *Context {
	if inflightFrameCount <= 0 {
		inflightFrameCount = 1
	}
	return &Context{
		runtime:    runtime,
		queueID:    queueID,
		queue:      queue,
		compiler:   compiler,
		timeline:   timeline,
		queueHAL:   queueHAL,
		transient:  transient,
		persistent: persistent,
		inFlight:   make(chan struct{}, inflightFrameCount),
		stream:     task.NewStream(),
		usageArena: NewResourceUsageList(256),
		log:        slog.Default(),
	}
}

// RegisterWindowTexture marks texture as a window-handle texture (spec §6);
// swapchain is not stored. It returns NoTransientRegistryError when the
// Context has no in-flight capacity, but NewContext clamps a zero or
// negative inflightFrameCount to 1, so on a Context built by NewContext this
// call always succeeds.
func (c *Context) RegisterWindowTexture(texture *Resource, swapchain any) error {
	if cap(c.inFlight) == 0 {
		return &NoTransientRegistryError{}
	}
	texture.Flags |= ResourceFlagWindowHandle
	return nil
}

// Cancel refuses to enqueue further frames and is idempotent. It does not
// abort in-flight GPU work (spec §5: "no preemptive cancellation").
func (c *Context) Cancel() {
	c.cancelled.Store(true)
}

// ExecuteRenderGraph runs the full per-frame flow (spec §4.4). waitingFor
// is the minimum per-queue command indices this frame's GPU work should be
// ordered after (cross-queue waits beyond what the generator itself
// derives); onSwapchainPresented and onCompletion may be nil.
func (c *Context) ExecuteRenderGraph(ctx context.Context, graph any, waitingFor QueueCommandIndices, onSwapchainPresented func(), onCompletion func(commandBufferRange [2]uint64)) (WaitToken, error) {
	if c.cancelled.Load() {
		return WaitToken{}, &ProgrammerAssertion{Message: "executeRenderGraph called after Cancel"}
	}

	// Step 1: acquire the in-flight slot.
	c.inFlight <- struct{}{}
	released := false
	release := func() {
		if !released {
			released = true
			<-c.inFlight
		}
	}

	var token WaitToken
	var resultErr error

	c.stream.RunSyncVoid(func() {
		// Step 2: compile.
		compiled, err := c.compiler.Compile(ctx, graph)
		if err != nil {
			release()
			resultErr = err
			return
		}

		// Step 3: no GPU passes — run CPU passes and signal immediately,
		// or defer completion if the queue has outstanding work.
		if len(compiled.GPUPasses) == 0 {
			runCPUPasses(compiled.CPUPasses)
			if c.queue.LastSubmitted() == c.queue.LastCompleted() {
				release()
				if onCompletion != nil {
					onCompletion([2]uint64{0, 0})
				}
			} else {
				deferred := c.queue.CommandBufferIndex()
				c.runtime.EndActions.EnqueuePerQueue(
					CommandEndAction{Run: func() {
						release()
						if onCompletion != nil {
							onCompletion([2]uint64{deferred, deferred})
						}
					}},
					deferred,
					int(c.queueID.Index()),
				)
			}
			token = WaitToken{QueueSlot: int(c.queueID.Index()), ExecutionIndex: c.queue.CommandBufferIndex(), queue: c.queue}
			return
		}

		// Step 4: build FrameCommandInfo.
		base := c.queue.CommandBufferIndex() + 1
		frame := BuildFrameCommandInfo(0, base, compiled.GPUPasses,
			func(p *RenderPassRecord) *RenderTargetDescriptor { return nil },
			func(p *RenderPassRecord) int { return int(c.queueID.Index()) },
		)

		// waitingFor encodes cross-queue ordering this frame must respect
		// beyond what the generator itself derives (spec §4.4 step 8): the
		// foreign queue's identity is not modeled here, so we await its
		// completion on the CPU rather than insert a GPU-side wait.
		awaitQueueCommandIndices(c.runtime.Queues, waitingFor)

		// Step 5: generate and execute pre-frame commands.
		adapter := newTransientAdapter(c.transient)
		genResult := Generate(frame, compiled.Resources, adapter, func(commandIndex int) int {
			return encoderForCommand(frame, commandIndex)
		}, func(p *RenderPassRecord) int { return int(c.queueID.Index()) })

		if err := ExecutePreFrameCommands(frame, genResult.PreFrame, adapter); err != nil {
			release()
			resultErr = err
			return
		}

		// Step 6: run CPU passes after materialization.
		runCPUPasses(compiled.CPUPasses)

		// Steps 7-9: encode each command buffer.
		commandBufferCount := frame.CommandBufferCount()
		resourceCommandsByEncoderIndex := resourceCommandsByEncoder(genResult.Resource, len(frame.CommandEncoders))
		var waited QueueCommandIndices
		for cbIndex := 0; cbIndex < commandBufferCount; cbIndex++ {
			cb, err := c.queueHAL.NewCommandBuffer()
			if err != nil {
				release()
				resultErr = err
				return
			}

			completed := c.runtime.Queues.LastCompletedCommands()
			for encoderIdx, enc := range frame.CommandEncoders {
				if enc.CommandBufferIndex != cbIndex {
					continue
				}
				c.insertCrossQueueWaits(enc.QueueCommandWaitIndices, &waited, completed)
				resourceCmds := toHALResourceCommands(resourceCommandsByEncoderIndex[encoderIdx], adapter.Handle)
				waits := sameQueueEncoderWaits(genResult.DepTable, encoderIdx)
				if err := cb.EncodeCommands(encoderIdx, resourceCmds, waits); err != nil {
					resultErr = err
				}
			}

			// Step 10: present on the last command buffer.
			isLast := cbIndex == commandBufferCount-1
			if isLast {
				if err := cb.PresentSwapchains(); err == nil && onSwapchainPresented != nil {
					onSwapchainPresented()
				}
			}

			// Step 11: bump the queue index, signal, submit, chain completion.
			cbCommandIndex := c.queue.NextCommandBufferIndex()
			if c.timeline != nil {
				if event, ok := c.timeline.SyncEvent(int(c.queueID.Index())); ok {
					event.Signal(cbCommandIndex)
				}
			}

			queue := c.queue
			queueSlot := int(c.queueID.Index())
			registry := c.runtime.Queues
			endActions := c.runtime.EndActions
			last := isLast
			completion := onCompletion
			rangeLo := base

			err = cb.Commit(func() {
				queue.MarkCompleted(cbCommandIndex)
				endActions.DidCompleteCommand(cbCommandIndex, queueSlot, registry)
				if last {
					release()
					if completion != nil {
						completion([2]uint64{rangeLo, cbCommandIndex + 1})
					}
				}
			})
			if err != nil {
				resultErr = &BackendSubmitError{CommandBufferIndex: cbCommandIndex, Cause: err}
				c.log.Error("command buffer submit failed", "index", cbCommandIndex, "error", err)
			}
			queue.MarkSubmitted(cbCommandIndex)
		}

		token = WaitToken{QueueSlot: int(c.queueID.Index()), ExecutionIndex: c.queue.CommandBufferIndex(), queue: c.queue}
	})

	return token, resultErr
}

// awaitQueueCommandIndices blocks until every registered queue has completed
// at least target's recorded index, polling the process-wide registry
// snapshot (spec §4.4 step 8, foreign-queue branch).
func awaitQueueCommandIndices(queues *QueueRegistry, target QueueCommandIndices) {
	for !queues.LastCompletedCommands().GreaterOrEqual(target) {
		runtime.Gosched()
	}
}

// insertCrossQueueWaits implements spec §4.4 step 8 for the encoder about to
// be recorded: for every other queue slot this encoder's wait vector names,
// insert a GPU-side waitForEvent if the required value exceeds both what has
// already been waited for on that slot and that queue's last-completed
// value; when no sync event is available for the slot, fall back to a
// CPU-side wait instead. waited is updated in place so later encoders in
// this same command-buffer loop never re-insert a satisfied wait.
func (c *Context) insertCrossQueueWaits(required QueueCommandIndices, waited *QueueCommandIndices, completed QueueCommandIndices) {
	ownSlot := int(c.queueID.Index())
	for slot := 0; slot < maxQueues; slot++ {
		target := required[slot]
		if target == 0 || slot == ownSlot || target <= waited[slot] {
			continue
		}
		if target <= completed[slot] {
			waited[slot] = target
			continue
		}
		if c.timeline != nil {
			if event, ok := c.timeline.SyncEvent(slot); ok {
				event.Wait(target)
				waited[slot] = target
				continue
			}
		}
		awaitQueueSlotCompletion(c.runtime.Queues, slot, target)
		waited[slot] = target
	}
}

// awaitQueueSlotCompletion blocks on the CPU until the queue registered at
// slot has completed at least target, for the case where the backend has no
// sync event for that queue (spec §4.4 step 8, "foreign queue unknown to the
// backend").
func awaitQueueSlotCompletion(queues *QueueRegistry, slot int, target uint64) {
	for queues.LastCompletedCommands()[slot] < target {
		runtime.Gosched()
	}
}

func runCPUPasses(passes []*RenderPassRecord) {
	for _, p := range passes {
		if p.Pass != nil {
			_ = p.Pass.Encode(-1)
		}
	}
}

// resourceCommandsByEncoder groups the generator's per-frame resource
// commands by owning encoder, so encoding a command buffer can look its
// encoders' commands up in constant time instead of rescanning the full
// per-frame list for each one.
func resourceCommandsByEncoder(cmds []FrameResourceCommand, encoderCount int) [][]FrameResourceCommand {
	out := make([][]FrameResourceCommand, encoderCount)
	for _, cmd := range cmds {
		out[cmd.EncoderIndex] = append(out[cmd.EncoderIndex], cmd)
	}
	return out
}

// toHALResourceCommands converts one encoder's resource commands to the
// backend facade's shape (spec §4.3 step 7), resolving each command's
// resource to whatever handle the transient registry materialised it as.
func toHALResourceCommands(cmds []FrameResourceCommand, handle func(ResourceID) any) []hal.ResourceCommand {
	if len(cmds) == 0 {
		return nil
	}
	out := make([]hal.ResourceCommand, len(cmds))
	for i, cmd := range cmds {
		kind := hal.ResourceCommandUseResource
		if cmd.Kind == CommandMemoryBarrier {
			kind = hal.ResourceCommandMemoryBarrier
		}
		var resourceHandle any
		if cmd.Resource != nil {
			resourceHandle = handle(cmd.Resource.ID)
		}
		out[i] = hal.ResourceCommand{
			Kind:            kind,
			CommandIndex:    cmd.CommandIndex,
			Resource:        resourceHandle,
			Usage:           cmd.Usage,
			Stages:          cmd.Stages,
			AllowReordering: cmd.AllowReordering,
			AfterUsage:      cmd.AfterUsage,
			AfterStages:     cmd.AfterStages,
			BeforeCommand:   cmd.BeforeCommand,
			BeforeUsage:     cmd.BeforeUsage,
			BeforeStages:    cmd.BeforeStages,
			ActiveRange:     cmd.ActiveRange,
		}
	}
	return out
}

// sameQueueEncoderWaits collects every same-queue inter-encoder dependency
// the hazard pass recorded against consumerEncoder (spec §4.3's dependency
// table, §4.6 step 8's same-queue case — insertCrossQueueWaits handles the
// cross-queue case from the caller-supplied wait vector instead).
func sameQueueEncoderWaits(deps *DependencyTable, consumerEncoder int) []hal.EncoderWait {
	var out []hal.EncoderWait
	for producer := 0; producer < consumerEncoder; producer++ {
		dep, ok := deps.Get(producer, consumerEncoder)
		if !ok {
			continue
		}
		out = append(out, hal.EncoderWait{
			ProducerEncoder:      producer,
			ProducerCommandIndex: dep.Signal.CommandIndex,
			ConsumerCommandIndex: dep.Wait.CommandIndex,
			Stages:               dep.Wait.Stages,
		})
	}
	return out
}

func encoderForCommand(frame *FrameCommandInfo, commandIndex int) int {
	for i, enc := range frame.CommandEncoders {
		if uint64(commandIndex) >= enc.PassRange.Lo && uint64(commandIndex) < enc.PassRange.Hi {
			return i
		}
	}
	if len(frame.CommandEncoders) == 0 {
		return 0
	}
	return len(frame.CommandEncoders) - 1
}
