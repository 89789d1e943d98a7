package core

import (
	"sync"
	"sync/atomic"
)

// maxQueues bounds QueueCommandIndices, the fixed-width vector of per-queue
// monotonic counters (spec §3). Chosen generously above any realistic
// backend's queue family count.
const maxQueues = 8

// QueueState is the process-wide bookkeeping for one GPU queue: its
// monotonic command-buffer counter and the last-completed/last-submitted
// indices other contexts and the end-action manager observe.
//
// lastCompleted and lastSubmitted are written with release semantics when a
// command completes or is submitted, and read with acquire semantics by
// generators and by the CommandEndActionManager (spec §5) — atomic.Uint64
// gives both for free on every supported Go platform.
type QueueState struct {
	commandBufferIndex atomic.Uint64
	lastSubmitted      atomic.Uint64
	lastCompleted      atomic.Uint64
}

// NextCommandBufferIndex advances and returns this queue's command-buffer
// index. queueCommandBufferIndex is strictly monotonic per spec's invariant.
func (q *QueueState) NextCommandBufferIndex() uint64 {
	return q.commandBufferIndex.Add(1)
}

// CommandBufferIndex returns the current (last-allocated) index without advancing it.
func (q *QueueState) CommandBufferIndex() uint64 {
	return q.commandBufferIndex.Load()
}

// MarkSubmitted records that commandIndex has been submitted to the backend.
func (q *QueueState) MarkSubmitted(commandIndex uint64) {
	atomicMaxUint64(&q.lastSubmitted, commandIndex)
}

// MarkCompleted records that the GPU has completed commandIndex.
func (q *QueueState) MarkCompleted(commandIndex uint64) {
	atomicMaxUint64(&q.lastCompleted, commandIndex)
}

// LastCompleted returns the last command index this queue has completed.
func (q *QueueState) LastCompleted() uint64 { return q.lastCompleted.Load() }

// LastSubmitted returns the last command index submitted to this queue.
func (q *QueueState) LastSubmitted() uint64 { return q.lastSubmitted.Load() }

func atomicMaxUint64(addr *atomic.Uint64, val uint64) {
	for {
		old := addr.Load()
		if val <= old {
			return
		}
		if addr.CompareAndSwap(old, val) {
			return
		}
	}
}

// QueueRegistry is process-wide state for every queue known to this
// Runtime: a fixed maximum queue count, init-once/never-torn-down (spec §9
// "Global mutable state"). It hands out QueueIDs and their QueueState.
type QueueRegistry struct {
	registry *Registry[*QueueState, queueMarker]
}

// NewQueueRegistry creates an empty queue registry.
func NewQueueRegistry() *QueueRegistry {
	return &QueueRegistry{registry: NewRegistry[*QueueState, queueMarker]()}
}

// RegisterQueue allocates a QueueID and its QueueState.
func (r *QueueRegistry) RegisterQueue() (QueueID, *QueueState) {
	state := &QueueState{}
	id := r.registry.Register(state)
	return id, state
}

// Queue retrieves the QueueState for id.
func (r *QueueRegistry) Queue(id QueueID) (*QueueState, error) {
	return r.registry.Get(id)
}

// LastCompletedCommands returns a snapshot of every registered queue's
// last-completed index, keyed by QueueCommandIndices slot order (registration
// order). Used by CommandEndActionManager.didCompleteCommand (spec §4.5).
func (r *QueueRegistry) LastCompletedCommands() QueueCommandIndices {
	var out QueueCommandIndices
	i := 0
	r.registry.ForEach(func(_ QueueID, state *QueueState) bool {
		if i < maxQueues {
			out[i] = state.LastCompleted()
			i++
		}
		return true
	})
	return out
}

// Runtime is the explicit, passable alternative to a package-global
// singleton (spec §9 "Global mutable state": "prefer an explicit Runtime
// struct passed to every context, with the global being a default
// convenience"). It owns the process-wide QueueRegistry and
// CommandEndActionManager that every Context shares.
type Runtime struct {
	Queues     *QueueRegistry
	EndActions *CommandEndActionManager
}

// NewRuntime constructs an independent Runtime — useful for tests that want
// isolation from the process-wide default.
func NewRuntime() *Runtime {
	return &Runtime{
		Queues:     NewQueueRegistry(),
		EndActions: NewCommandEndActionManager(),
	}
}

var (
	defaultRuntimeOnce sync.Once
	defaultRuntime     *Runtime
)

// DefaultRuntime returns the process-wide convenience Runtime, created
// lazily on first use.
func DefaultRuntime() *Runtime {
	defaultRuntimeOnce.Do(func() {
		defaultRuntime = NewRuntime()
	})
	return defaultRuntime
}
