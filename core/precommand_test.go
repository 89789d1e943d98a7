package core

import "testing"

func TestSortPreFrameCommands_OrdersByCommandIndexThenOrderBit(t *testing.T) {
	cmds := []PreFrameCommand{
		{Tag: TagDisposeResource, Order: OrderAfter, CommandIndex: 1},
		{Tag: TagMaterialiseBuffer, Order: OrderBefore, CommandIndex: 2},
		{Tag: TagMaterialiseBuffer, Order: OrderBefore, CommandIndex: 1},
	}

	SortPreFrameCommands(cmds)

	want := []struct {
		idx   int
		order PreFrameOrder
	}{
		{1, OrderBefore},
		{1, OrderAfter},
		{2, OrderBefore},
	}
	for i, w := range want {
		if cmds[i].CommandIndex != w.idx || cmds[i].Order != w.order {
			t.Errorf("cmds[%d] = {index:%d order:%v}, want {index:%d order:%v}",
				i, cmds[i].CommandIndex, cmds[i].Order, w.idx, w.order)
		}
	}
}

func TestSortPreFrameCommands_TiesBreakOnTagOrdinal(t *testing.T) {
	cmds := []PreFrameCommand{
		{Tag: TagMaterialiseArgumentBuffer, Order: OrderBefore, CommandIndex: 0},
		{Tag: TagMaterialiseBuffer, Order: OrderBefore, CommandIndex: 0},
		{Tag: TagMaterialiseTextureView, Order: OrderBefore, CommandIndex: 0},
	}

	SortPreFrameCommands(cmds)

	if cmds[0].Tag != TagMaterialiseBuffer {
		t.Errorf("cmds[0].Tag = %v, want TagMaterialiseBuffer (lowest ordinal)", cmds[0].Tag)
	}
	if cmds[len(cmds)-1].Tag != TagMaterialiseArgumentBuffer {
		t.Errorf("cmds[last].Tag = %v, want TagMaterialiseArgumentBuffer (argument buffers sort last among materializations)", cmds[len(cmds)-1].Tag)
	}
}

func TestSortPreFrameCommands_StableForEqualKeys(t *testing.T) {
	a := PreFrameCommand{Tag: TagWaitForCommandBuffer, Order: OrderBefore, CommandIndex: 5, QueueSlot: 0}
	b := PreFrameCommand{Tag: TagWaitForCommandBuffer, Order: OrderBefore, CommandIndex: 5, QueueSlot: 1}
	cmds := []PreFrameCommand{a, b}

	SortPreFrameCommands(cmds)

	if cmds[0].QueueSlot != 0 || cmds[1].QueueSlot != 1 {
		t.Error("equal-key commands should retain their relative input order")
	}
}

func TestDisposeResource_BuildsAfterOrderCommand(t *testing.T) {
	r := &Resource{}
	cmd := DisposeResource(3, r, 0)

	if cmd.Tag != TagDisposeResource {
		t.Errorf("Tag = %v, want TagDisposeResource", cmd.Tag)
	}
	if cmd.Order != OrderAfter {
		t.Errorf("Order = %v, want OrderAfter", cmd.Order)
	}
	if cmd.Resource != r {
		t.Error("Resource not preserved")
	}
}

func TestWaitForCommandBuffer_PreservesQueueSlotAndWaitIndex(t *testing.T) {
	r := &Resource{}
	cmd := WaitForCommandBuffer(7, r, 2, 42)

	if cmd.QueueSlot != 2 || cmd.WaitIndex != 42 {
		t.Errorf("got {slot:%d wait:%d}, want {slot:2 wait:42}", cmd.QueueSlot, cmd.WaitIndex)
	}
	if cmd.Order != OrderBefore {
		t.Errorf("Order = %v, want OrderBefore", cmd.Order)
	}
}
