package types

// Stages is a bitset over the pipeline stages a resource usage can touch.
// It includes the synthetic CPUBeforeRender stage used by CPU passes that
// must be ordered before any GPU work references the same resource.
type Stages uint32

const (
	StageVertex Stages = 1 << iota
	StageFragment
	StageCompute
	StageBlit
	StageIndirectCommand
	StageResolve
	// StageCPUBeforeRender marks a usage from a CPU pass that must be
	// visible before the frame's GPU work begins; it never participates
	// in a GPU-side pipeline barrier, only in ordering decisions.
	StageCPUBeforeRender

	StageAll = StageVertex | StageFragment | StageCompute | StageBlit |
		StageIndirectCommand | StageResolve
)

// Contains reports whether all bits in other are set in s.
func (s Stages) Contains(other Stages) bool { return s&other == other }

// Intersects reports whether s and other share any stage.
func (s Stages) Intersects(other Stages) bool { return s&other != 0 }

// Merged widens s to include other's stages, per the Dependency merge rule
// in the spec's §3: "widen wait-stages" / "widen signal-stages".
func (s Stages) Merged(other Stages) Stages { return s | other }
