package core

import (
	"errors"
	"testing"

	"github.com/gogpu/rendergraph/types"
)

// fakeRegistry is a minimal core.TransientRegistry recording every call it
// receives, used to assert Generate/ExecutePreFrameCommands drive the
// registry in the expected order without depending on a real backend.
type fakeRegistry struct {
	memoryless bool
	calls      []string
	failOn     string
}

func (f *fakeRegistry) record(name string) error {
	f.calls = append(f.calls, name)
	if name == f.failOn {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeRegistry) MaterialiseBuffer(r *Resource) error                   { return f.record("materialiseBuffer") }
func (f *fakeRegistry) MaterialiseTexture(r *Resource) error                  { return f.record("materialiseTexture") }
func (f *fakeRegistry) MaterialiseTextureView(r *Resource) error              { return f.record("materialiseTextureView") }
func (f *fakeRegistry) MaterialiseArgumentBuffer(r *Resource) error           { return f.record("materialiseArgumentBuffer") }
func (f *fakeRegistry) MaterialiseArgumentBufferArray(r *Resource) error      { return f.record("materialiseArgumentBufferArray") }
func (f *fakeRegistry) MaterialiseVisibleFunctionTable(r *Resource) error     { return f.record("materialiseVisibleFunctionTable") }
func (f *fakeRegistry) MaterialiseIntersectionFunctionTable(r *Resource) error {
	return f.record("materialiseIntersectionFunctionTable")
}
func (f *fakeRegistry) Dispose(r *Resource, waitEvent uint64) error { return f.record("dispose") }
func (f *fakeRegistry) SetDisposalFences(r *Resource, fences []FenceDependency) {
	f.calls = append(f.calls, "setDisposalFences")
}
func (f *fakeRegistry) SupportsMemorylessAttachments() bool { return f.memoryless }

func oneCommandPerEncoder(passCount int) (*FrameCommandInfo, func(int) int) {
	passes := make([]*RenderPassRecord, passCount)
	for i := range passes {
		passes[i] = &RenderPassRecord{PassIndex: i, Type: PassTypeCompute, IsActive: true}
	}
	frame := BuildFrameCommandInfo(0, 0, passes,
		func(*RenderPassRecord) *RenderTargetDescriptor { return nil },
		func(*RenderPassRecord) int { return 0 },
	)
	return frame, func(commandIndex int) int { return encoderForCommand(frame, commandIndex) }
}

func TestGenerate_MaterializesAndDisposesTransientResource(t *testing.T) {
	frame, encoderOf := oneCommandPerEncoder(2)
	r := newTestResource(types.ResourceKindBuffer, 64)
	r.Usages = []*ResourceUsage{
		usage(r, types.AccessWrite, types.StageCompute, 0, 1, types.Full(64)),
	}

	reg := &fakeRegistry{}
	result := Generate(frame, []*Resource{r}, reg, encoderOf, func(*RenderPassRecord) int { return 0 })

	foundMaterialise, foundDispose := false, false
	for _, c := range result.PreFrame {
		if c.Tag == TagMaterialiseBuffer {
			foundMaterialise = true
		}
		if c.Tag == TagDisposeResource {
			foundDispose = true
		}
	}
	if !foundMaterialise {
		t.Error("expected a materialise command for a transient buffer")
	}
	if !foundDispose {
		t.Error("expected a dispose command for a transient buffer")
	}
}

func TestGenerate_MemorylessCandidateSkipsMaterialisation(t *testing.T) {
	frame, encoderOf := oneCommandPerEncoder(1)
	r := newTestResource(types.ResourceKindTexture, 1)
	r.Usages = []*ResourceUsage{
		usage(r, types.AccessColorAttachment, types.StageFragment, 0, 1, types.Full(1)),
	}

	reg := &fakeRegistry{memoryless: true}
	result := Generate(frame, []*Resource{r}, reg, encoderOf, func(*RenderPassRecord) int { return 0 })

	for _, c := range result.PreFrame {
		if c.Tag == TagMaterialiseTexture || c.Tag == TagDisposeResource {
			t.Errorf("unexpected %v for a memoryless-eligible render-target-only texture", c.Tag)
		}
	}
	if !r.CanBeMemoryless {
		t.Error("expected CanBeMemoryless to be set")
	}
}

func TestGenerate_PersistentResourceSkipsMaterialisation(t *testing.T) {
	frame, encoderOf := oneCommandPerEncoder(1)
	r := newTestResource(types.ResourceKindBuffer, 64)
	r.Flags = ResourceFlagPersistent
	r.Usages = []*ResourceUsage{
		usage(r, types.AccessWrite, types.StageCompute, 0, 1, types.Full(64)),
	}

	reg := &fakeRegistry{}
	result := Generate(frame, []*Resource{r}, reg, encoderOf, func(*RenderPassRecord) int { return 0 })

	for _, c := range result.PreFrame {
		if c.Tag == TagMaterialiseBuffer {
			t.Error("a persistent resource should never be materialised as transient")
		}
		if c.Tag == TagWaitForCommandBuffer || c.Tag == TagUpdateCommandBufferWaitIndex {
			return
		}
	}
	t.Error("expected cross-frame queue-wait commands for a persistent resource")
}

func TestExecutePreFrameCommands_DrivesRegistryInSortedOrder(t *testing.T) {
	frame, encoderOf := oneCommandPerEncoder(2)
	r := newTestResource(types.ResourceKindBuffer, 64)
	r.Usages = []*ResourceUsage{
		usage(r, types.AccessWrite, types.StageCompute, 0, 1, types.Full(64)),
	}

	reg := &fakeRegistry{}
	result := Generate(frame, []*Resource{r}, reg, encoderOf, func(*RenderPassRecord) int { return 0 })

	if err := ExecutePreFrameCommands(frame, result.PreFrame, reg); err != nil {
		t.Fatalf("ExecutePreFrameCommands: %v", err)
	}

	if len(reg.calls) != 2 || reg.calls[0] != "materialiseBuffer" || reg.calls[1] != "dispose" {
		t.Fatalf("calls = %v, want [materialiseBuffer dispose]", reg.calls)
	}
}

func TestExecutePreFrameCommands_PropagatesRegistryError(t *testing.T) {
	frame, encoderOf := oneCommandPerEncoder(1)
	r := newTestResource(types.ResourceKindBuffer, 64)
	r.Usages = []*ResourceUsage{
		usage(r, types.AccessWrite, types.StageCompute, 0, 1, types.Full(64)),
	}

	reg := &fakeRegistry{failOn: "materialiseBuffer"}
	result := Generate(frame, []*Resource{r}, reg, encoderOf, func(*RenderPassRecord) int { return 0 })

	if err := ExecutePreFrameCommands(frame, result.PreFrame, reg); err == nil {
		t.Fatal("expected ExecutePreFrameCommands to propagate the registry error")
	}
}

func TestExecutePreFrameCommands_FlushesQueueWaitIndicesPerEncoder(t *testing.T) {
	frame, _ := oneCommandPerEncoder(2)
	cmds := []PreFrameCommand{
		WaitForCommandBuffer(0, nil, 0, 7),
	}

	reg := &fakeRegistry{}
	if err := ExecutePreFrameCommands(frame, cmds, reg); err != nil {
		t.Fatalf("ExecutePreFrameCommands: %v", err)
	}

	if frame.CommandEncoders[0].QueueCommandWaitIndices[0] != 7 {
		t.Errorf("encoder 0 QueueCommandWaitIndices[0] = %d, want 7", frame.CommandEncoders[0].QueueCommandWaitIndices[0])
	}
	if frame.CommandEncoders[1].QueueCommandWaitIndices[0] != 7 {
		t.Errorf("encoder 1 QueueCommandWaitIndices[0] = %d, want 7 (carried forward)", frame.CommandEncoders[1].QueueCommandWaitIndices[0])
	}
}
