package core

import (
	"testing"

	"github.com/gogpu/rendergraph/types"
)

func TestUseResource_BuildsCommandUseResourceKind(t *testing.T) {
	r := &Resource{}
	cmd := UseResource(1, 4, r, types.AccessRead, types.StageFragment, true)

	if cmd.Kind != CommandUseResource {
		t.Errorf("Kind = %v, want CommandUseResource", cmd.Kind)
	}
	if cmd.EncoderIndex != 1 || cmd.CommandIndex != 4 {
		t.Errorf("got {encoder:%d command:%d}, want {1,4}", cmd.EncoderIndex, cmd.CommandIndex)
	}
	if !cmd.AllowReordering {
		t.Error("AllowReordering not preserved")
	}
}

func TestMemoryBarrier_BuildsCommandMemoryBarrierKind(t *testing.T) {
	r := &Resource{}
	active := types.Full(8)
	cmd := MemoryBarrier(0, r, types.AccessWrite, types.StageCompute, 2, 3, types.AccessRead, types.StageFragment, active)

	if cmd.Kind != CommandMemoryBarrier {
		t.Errorf("Kind = %v, want CommandMemoryBarrier", cmd.Kind)
	}
	if cmd.CommandIndex != 2 {
		t.Errorf("CommandIndex (afterCommand) = %d, want 2", cmd.CommandIndex)
	}
	if cmd.BeforeCommand != 3 {
		t.Errorf("BeforeCommand = %d, want 3", cmd.BeforeCommand)
	}
	if !cmd.ActiveRange.IsEqual(active) {
		t.Error("ActiveRange not preserved")
	}
}
