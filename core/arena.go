package core

// ResourceUsageList is a frame-scoped bump allocator for ResourceUsage
// values (spec §9: "allocate usages in a frame-scoped bump allocator, index
// from 0"). Every usage recorded while compiling one frame lives in the same
// contiguous slice; the whole arena is discarded at frame end rather than
// freeing usages individually, mirroring the dense-index allocator pattern
// the teacher used for tracker indices.
type ResourceUsageList struct {
	usages []ResourceUsage
}

// NewResourceUsageList creates an arena with room for capacity usages
// before it needs to grow.
func NewResourceUsageList(capacity int) *ResourceUsageList {
	return &ResourceUsageList{usages: make([]ResourceUsage, 0, capacity)}
}

// Alloc appends a usage to the arena and returns a pointer to the appended
// element. An append that outgrows the arena's capacity moves the backing
// array, after which pointers from earlier calls refer to the old copy; no
// pointer is valid after Reset.
func (l *ResourceUsageList) Alloc(u ResourceUsage) *ResourceUsage {
	l.usages = append(l.usages, u)
	return &l.usages[len(l.usages)-1]
}

// Len returns the number of usages allocated so far this frame.
func (l *ResourceUsageList) Len() int { return len(l.usages) }

// Reset discards every usage, retaining the underlying capacity for reuse
// next frame.
func (l *ResourceUsageList) Reset() {
	l.usages = l.usages[:0]
}
