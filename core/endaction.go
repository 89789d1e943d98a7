package core

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/rendergraph/internal/task"
)

// CommandEndActionType is the action run once its wait condition is
// satisfied. The spec names only `release(reference)` (§3); the type is
// kept as a tagged variant so future action kinds slot in without touching
// the ring-buffer plumbing.
type CommandEndActionType uint8

const (
	// ActionRelease decrements a strong reference count.
	ActionRelease CommandEndActionType = iota
)

// CommandEndAction pairs an action with the condition gating it.
type CommandEndAction struct {
	Type CommandEndActionType
	Run  func()
}

type deviceEndEntry struct {
	action CommandEndAction
	after  QueueCommandIndices
}

type queueEndEntry struct {
	action CommandEndAction
	after  uint64
}

// CommandEndActionManager is the process-wide queue of "release X after GPU
// reaches command index Y" (spec §4.5). It holds a device-wide ring of
// actions gated on every queue's progress, and one per-queue ring gated on
// a single counter. Its public entry points are serialized through an
// internal task.Stream so callers on any goroutine never race the ring
// state (spec §5: "a serialized actor").
type CommandEndActionManager struct {
	mu sync.Mutex

	device []deviceEndEntry
	queues map[int][]queueEndEntry

	stream *task.Stream
}

// NewCommandEndActionManager creates an empty manager.
func NewCommandEndActionManager() *CommandEndActionManager {
	return &CommandEndActionManager{
		queues: make(map[int][]queueEndEntry),
		stream: task.NewStream(),
	}
}

// EnqueueDeviceWide schedules action to run once every queue's
// last-completed index is at least after, elementwise. Posted asynchronously
// so the caller never blocks (spec §4.5: "enqueue operations ... post
// asynchronous tasks").
func (m *CommandEndActionManager) EnqueueDeviceWide(action CommandEndAction, after QueueCommandIndices) {
	m.stream.RunAsync(func() {
		m.mu.Lock()
		m.device = append(m.device, deviceEndEntry{action: action, after: after})
		m.mu.Unlock()
	})
}

// EnqueuePerQueue schedules action to run once queueSlot's completed index
// reaches at least afterCommand.
func (m *CommandEndActionManager) EnqueuePerQueue(action CommandEndAction, afterCommand uint64, queueSlot int) {
	m.stream.RunAsync(func() {
		m.mu.Lock()
		m.queues[queueSlot] = append(m.queues[queueSlot], queueEndEntry{action: action, after: afterCommand})
		m.mu.Unlock()
	})
}

// DidCompleteCommand is called by the backend on GPU completion (spec
// §4.5). It drains both rings' satisfied front entries in FIFO order,
// stopping at the first entry whose condition is not yet met.
func (m *CommandEndActionManager) DidCompleteCommand(commandIndex uint64, queueSlot int, queues *QueueRegistry) {
	m.stream.RunSyncVoid(func() {
		snapshot := queues.LastCompletedCommands()
		if queueSlot < maxQueues && commandIndex > snapshot[queueSlot] {
			snapshot[queueSlot] = commandIndex
		}

		m.mu.Lock()
		defer m.mu.Unlock()

		for len(m.device) > 0 && snapshot.GreaterOrEqual(m.device[0].after) {
			action := m.device[0].action
			m.device = m.device[1:]
			action.Run()
		}

		ring := m.queues[queueSlot]
		i := 0
		for i < len(ring) && ring[i].after <= commandIndex {
			ring[i].action.Run()
			i++
		}
		m.queues[queueSlot] = ring[i:]
	})
}

// Release builds a CommandEndAction that decrements ref's strong reference
// count when run.
func Release(ref *RefCount) CommandEndAction {
	return CommandEndAction{Type: ActionRelease, Run: ref.Release}
}

// RefCount is a minimal strong-reference counter for resources whose
// disposal is deferred behind a CommandEndAction.
type RefCount struct {
	count  atomic.Int32
	onZero func()
}

// NewRefCount creates a counter starting at 1, invoking onZero once the
// count drops to zero.
func NewRefCount(onZero func()) *RefCount {
	r := &RefCount{onZero: onZero}
	r.count.Store(1)
	return r
}

// Retain increments the reference count.
func (r *RefCount) Retain() { r.count.Add(1) }

// Release decrements the reference count, invoking onZero if it reaches zero.
func (r *RefCount) Release() {
	if r.count.Add(-1) == 0 && r.onZero != nil {
		r.onZero()
	}
}
