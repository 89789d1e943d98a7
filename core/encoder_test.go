package core

import (
	"testing"

	"github.com/gogpu/rendergraph/types"
)

func TestCommandEncoderInfo_NameInlinesUpToFourPasses(t *testing.T) {
	passes := []*RenderPassRecord{
		{Name: "shadow"}, {Name: "gbuffer"}, {Name: "lighting"},
	}
	enc := &CommandEncoderInfo{PassRange: types.Range{Lo: 0, Hi: 3}}

	if got, want := enc.Name(passes), "shadow, gbuffer, lighting"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}

func TestCommandEncoderInfo_NameSummarisesBeyondFourPasses(t *testing.T) {
	passes := make([]*RenderPassRecord, 6)
	for i := range passes {
		passes[i] = &RenderPassRecord{Name: "p"}
	}
	passes[0].Name = "first"
	passes[5].Name = "last"
	enc := &CommandEncoderInfo{PassRange: types.Range{Lo: 0, Hi: 6}}

	if got, want := enc.Name(passes), "[first…last] (6 passes)"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}

func TestCommandEncoderInfo_NameEmptyRange(t *testing.T) {
	enc := &CommandEncoderInfo{PassRange: types.Range{Lo: 2, Hi: 2}}
	if got := enc.Name(nil); got != "[empty]" {
		t.Errorf("Name() = %q, want [empty]", got)
	}
}
