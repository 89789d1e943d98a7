package core

import "github.com/gogpu/rendergraph/types"

// QueueCommandIndices is a fixed-width vector of monotonic per-queue
// counters (spec §3). Capacity is fixed at build time (maxQueues,
// runtime.go) rather than grown dynamically, matching the process-wide
// QueueRegistry's "fixed maximum queue count" (spec §9).
type QueueCommandIndices [maxQueues]uint64

// Max returns the elementwise maximum of a and b.
func (a QueueCommandIndices) Max(b QueueCommandIndices) QueueCommandIndices {
	var out QueueCommandIndices
	for i := range a {
		out[i] = a[i]
		if b[i] > out[i] {
			out[i] = b[i]
		}
	}
	return out
}

// GreaterOrEqual reports whether a[i] >= b[i] for every slot i.
func (a QueueCommandIndices) GreaterOrEqual(b QueueCommandIndices) bool {
	for i := range a {
		if a[i] < b[i] {
			return false
		}
	}
	return true
}

// Dependency is a {encoderIndex, commandIndex, stages} pair forming one side
// of a (signal, wait) inter-encoder dependency (spec §3).
type Dependency struct {
	EncoderIndex int
	CommandIndex int
	Stages       types.Stages
}

// FenceDependency is the producer→consumer pair recorded for an
// inter-encoder hazard: Signal is emitted by the producing encoder, Wait is
// consumed by the dependent one.
type FenceDependency struct {
	Signal Dependency
	Wait   Dependency
}

// Merged widens wait-stages and moves the wait point earlier; widens
// signal-stages and moves the signal point later (spec §3's `merged`
// operation). Both sides must reference the same encoder pair.
func (d FenceDependency) Merged(other FenceDependency) FenceDependency {
	signal := d.Signal
	signal.Stages = signal.Stages.Merged(other.Signal.Stages)
	if other.Signal.CommandIndex > signal.CommandIndex {
		signal.CommandIndex = other.Signal.CommandIndex
	}

	wait := d.Wait
	wait.Stages = wait.Stages.Merged(other.Wait.Stages)
	if other.Wait.CommandIndex < wait.CommandIndex {
		wait.CommandIndex = other.Wait.CommandIndex
	}

	return FenceDependency{Signal: signal, Wait: wait}
}

// DependencyTable is a triangular table of inter-encoder hazards, sized by
// encoder count. Entry [i][j] (j < i) carries the merged producer→consumer
// dependency from encoder j to encoder i (spec §4.3).
type DependencyTable struct {
	// rows[i] has length i: rows[i][j] is the entry for producer encoder j,
	// consumer encoder i.
	rows [][]*FenceDependency
}

// NewDependencyTable allocates a table for the given encoder count.
func NewDependencyTable(encoderCount int) *DependencyTable {
	rows := make([][]*FenceDependency, encoderCount)
	for i := range rows {
		rows[i] = make([]*FenceDependency, i)
	}
	return &DependencyTable{rows: rows}
}

// Record adds dep as a hazard from producer to consumer, merging with any
// existing entry at that pair. producer must be strictly less than consumer.
func (t *DependencyTable) Record(producer, consumer int, dep FenceDependency) {
	assertf(producer < consumer, "dependency table: producer encoder %d must precede consumer %d", producer, consumer)
	existing := t.rows[consumer][producer]
	if existing == nil {
		merged := dep
		t.rows[consumer][producer] = &merged
		return
	}
	merged := existing.Merged(dep)
	t.rows[consumer][producer] = &merged
}

// Get returns the dependency recorded from producer to consumer, if any.
func (t *DependencyTable) Get(producer, consumer int) (FenceDependency, bool) {
	if consumer <= producer || consumer >= len(t.rows) || producer >= len(t.rows[consumer]) {
		return FenceDependency{}, false
	}
	dep := t.rows[consumer][producer]
	if dep == nil {
		return FenceDependency{}, false
	}
	return *dep, true
}

// EncoderCount returns the number of encoders this table was sized for.
func (t *DependencyTable) EncoderCount() int { return len(t.rows) }
