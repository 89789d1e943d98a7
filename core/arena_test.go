package core

import (
	"testing"

	"github.com/gogpu/rendergraph/types"
)

func TestResourceUsageList_AllocAndReset(t *testing.T) {
	arena := NewResourceUsageList(2)

	u1 := arena.Alloc(ResourceUsage{CommandRange: types.Range{Lo: 0, Hi: 1}})
	u2 := arena.Alloc(ResourceUsage{CommandRange: types.Range{Lo: 1, Hi: 2}})

	if arena.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", arena.Len())
	}
	if u1.CommandRange.Lo != 0 || u2.CommandRange.Lo != 1 {
		t.Error("Alloc did not return pointers to the expected entries")
	}

	arena.Reset()
	if arena.Len() != 0 {
		t.Errorf("Len() after Reset() = %d, want 0", arena.Len())
	}

	u3 := arena.Alloc(ResourceUsage{CommandRange: types.Range{Lo: 5, Hi: 6}})
	if u3.CommandRange.Lo != 5 {
		t.Error("Alloc after Reset should allocate from the start of the reused backing array")
	}
}
