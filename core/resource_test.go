package core

import (
	"testing"

	"github.com/gogpu/rendergraph/types"
)

func TestResourceFlags_Has(t *testing.T) {
	f := ResourceFlagPersistent | ResourceFlagWindowHandle
	if !f.Has(ResourceFlagPersistent) {
		t.Error("expected ResourceFlagPersistent to be set")
	}
	if f.Has(ResourceFlagHistoryBuffer) {
		t.Error("did not expect ResourceFlagHistoryBuffer to be set")
	}
}

func TestAccessWaitIndices_WaitIndexForSelectsByAccessKind(t *testing.T) {
	var w AccessWaitIndices
	w.Read.Store(1)
	w.Write.Store(2)
	w.ReadWrite.Store(3)

	if got := w.WaitIndexFor(types.AccessRead); got != 1 {
		t.Errorf("WaitIndexFor(Read) = %d, want 1", got)
	}
	if got := w.WaitIndexFor(types.AccessWrite); got != 2 {
		t.Errorf("WaitIndexFor(Write) = %d, want 2", got)
	}
	if got := w.WaitIndexFor(types.AccessReadWrite); got != 3 {
		t.Errorf("WaitIndexFor(ReadWrite) = %d, want 3", got)
	}
}

func TestResource_WaitIndicesPerQueueSlot(t *testing.T) {
	r := &Resource{}
	r.WaitIndices(0).Write.Store(5)
	r.WaitIndices(1).Write.Store(9)

	if r.WaitIndices(0).Write.Load() != 5 {
		t.Error("queue slot 0's wait index should be independent of slot 1's")
	}
	if r.WaitIndices(1).Write.Load() != 9 {
		t.Error("queue slot 1's wait index should be independent of slot 0's")
	}
}

func TestIndexOfPreviousWrite(t *testing.T) {
	r := newTestResource(types.ResourceKindBuffer, 64)
	usages := []*ResourceUsage{
		usage(r, types.AccessWrite, types.StageCompute, 0, 1, types.Full(64)),
		usage(r, types.AccessRead, types.StageFragment, 1, 2, types.Full(64)),
		usage(r, types.AccessRead, types.StageVertex, 2, 3, types.Full(64)),
	}

	if got := IndexOfPreviousWrite(usages, 2); got != 0 {
		t.Errorf("IndexOfPreviousWrite(2) = %d, want 0", got)
	}
	if got := IndexOfPreviousWrite(usages, 0); got != -1 {
		t.Errorf("IndexOfPreviousWrite(0) = %d, want -1 (no earlier usage)", got)
	}
}

func TestIndexOfPreviousRead(t *testing.T) {
	r := newTestResource(types.ResourceKindBuffer, 64)
	usages := []*ResourceUsage{
		usage(r, types.AccessRead, types.StageVertex, 0, 1, types.Full(64)),
		usage(r, types.AccessWrite, types.StageCompute, 1, 2, types.Full(64)),
	}

	if got := IndexOfPreviousRead(usages, 1); got != 0 {
		t.Errorf("IndexOfPreviousRead(1) = %d, want 0", got)
	}
}

func TestIndexOfPrevious_IgnoresNonIntersectingRanges(t *testing.T) {
	r := newTestResource(types.ResourceKindBuffer, 64)
	usages := []*ResourceUsage{
		usage(r, types.AccessWrite, types.StageCompute, 0, 1, types.Single(0, 32)),
		usage(r, types.AccessRead, types.StageFragment, 1, 2, types.Single(32, 64)),
	}

	if got := IndexOfPreviousWrite(usages, 1); got != -1 {
		t.Errorf("IndexOfPreviousWrite(1) = %d, want -1 (disjoint subresource ranges)", got)
	}
}
