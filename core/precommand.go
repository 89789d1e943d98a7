package core

import "github.com/gogpu/rendergraph/types"

// PreFrameCommandTag identifies a PreFrameCommand's variant and doubles as
// its tie-break priority within the same command index and order (spec
// §4.3.7): materialize-plain < materialize-view < materialize-argument-buffer
// < dispose/wait/update.
type PreFrameCommandTag uint8

const (
	TagMaterialiseBuffer PreFrameCommandTag = iota
	TagMaterialiseTexture
	TagMaterialiseTextureView
	TagMaterialiseVisibleFunctionTable
	TagMaterialiseIntersectionFunctionTable
	TagMaterialiseArgumentBuffer
	TagMaterialiseArgumentBufferArray
	TagDisposeResource
	TagWaitForHeapAliasingFences
	TagWaitForCommandBuffer
	TagUpdateCommandBufferWaitIndex
)

// PreFrameOrder is the before/after bit in a PreFrameCommand's sort key.
type PreFrameOrder uint8

const (
	OrderBefore PreFrameOrder = iota
	OrderAfter
)

// PreFrameCommand is one pre-execution command (spec §4.3): materialization,
// disposal, an aliasing-fence wait, or a cross-frame queue-wait/update.
type PreFrameCommand struct {
	Tag          PreFrameCommandTag
	Order        PreFrameOrder
	CommandIndex int
	Resource     *Resource

	// disposeResource
	AfterStages types.Stages

	// waitForHeapAliasingFences
	WaitDependency FenceDependency

	// waitForCommandBuffer / updateCommandBufferWaitIndex
	QueueSlot  int
	WaitIndex  uint64
	AccessType types.AccessType
}

// sortKey packs (commandIndex << 1) | order-bit into a single comparable
// value (spec §4.3.7): order.before sorts before order.after at the same
// command index. Ties within the same key break on tiePriority, which packs
// the per-tag priority so that argument-buffer materialization is forced
// last among materializations — an argument buffer's materialize command
// sorts after every resource it references, provided those resources share
// the same command index.
func (c PreFrameCommand) sortKey() uint64 {
	order := uint64(0)
	if c.Order == OrderAfter {
		order = 1
	}
	return (uint64(c.CommandIndex) << 1) | order
}

// tiePriority breaks ties within the same (commandIndex, order) pair by tag
// ordinal: lower tags sort first.
func (c PreFrameCommand) tiePriority() uint8 { return uint8(c.Tag) }

// SortPreFrameCommands orders commands by sort key, then by tag priority.
func SortPreFrameCommands(cmds []PreFrameCommand) {
	// Insertion sort: pre-frame command lists are small (bounded by resource
	// count per frame). The comparator orders by sortKey, then tiePriority;
	// the sort is stable, so commands equal on both keep their input order.
	stableSortPreFrame(cmds)
}

func stableSortPreFrame(cmds []PreFrameCommand) {
	less := func(i, j int) bool {
		ki, kj := cmds[i].sortKey(), cmds[j].sortKey()
		if ki != kj {
			return ki < kj
		}
		return cmds[i].tiePriority() < cmds[j].tiePriority()
	}
	for i := 1; i < len(cmds); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			cmds[j], cmds[j-1] = cmds[j-1], cmds[j]
		}
	}
}

func materialiseCommand(tag PreFrameCommandTag, commandIndex int, resource *Resource) PreFrameCommand {
	return PreFrameCommand{Tag: tag, Order: OrderBefore, CommandIndex: commandIndex, Resource: resource}
}

// DisposeResource builds a last-use disposal command (spec §4.3.3).
func DisposeResource(commandIndex int, resource *Resource, afterStages types.Stages) PreFrameCommand {
	return PreFrameCommand{
		Tag:          TagDisposeResource,
		Order:        OrderAfter,
		CommandIndex: commandIndex,
		Resource:     resource,
		AfterStages:  afterStages,
	}
}

// WaitForHeapAliasingFences builds a first-usage aliased-heap wait (§4.3.2).
func WaitForHeapAliasingFences(commandIndex int, resource *Resource, dep FenceDependency) PreFrameCommand {
	return PreFrameCommand{
		Tag:            TagWaitForHeapAliasingFences,
		Order:          OrderBefore,
		CommandIndex:   commandIndex,
		Resource:       resource,
		WaitDependency: dep,
	}
}

// WaitForCommandBuffer builds a cross-frame queue-wait command (§4.3.4).
func WaitForCommandBuffer(commandIndex int, resource *Resource, queueSlot int, waitIndex uint64) PreFrameCommand {
	return PreFrameCommand{
		Tag:          TagWaitForCommandBuffer,
		Order:        OrderBefore,
		CommandIndex: commandIndex,
		Resource:     resource,
		QueueSlot:    queueSlot,
		WaitIndex:    waitIndex,
	}
}

// UpdateCommandBufferWaitIndex builds a post-usage wait-index publish (§4.3.4).
func UpdateCommandBufferWaitIndex(commandIndex int, resource *Resource, queueSlot int, access types.AccessType) PreFrameCommand {
	return PreFrameCommand{
		Tag:          TagUpdateCommandBufferWaitIndex,
		Order:        OrderAfter,
		CommandIndex: commandIndex,
		Resource:     resource,
		QueueSlot:    queueSlot,
		AccessType:   access,
	}
}
