package types

// AccessType classifies how a single ResourceUsage touches a resource.
// The render-target kinds exist because a color/depth/stencil attachment
// usage participates in hazard tracking differently than a plain read or
// write: the residency pass emits one useResource per render-target usage,
// never coalescing it with neighbouring usages or reordering it (see core's
// residencyPass, §4.3.1).
type AccessType uint8

const (
	AccessUnusedArgumentBuffer AccessType = iota
	AccessRead
	AccessWrite
	AccessReadWrite

	AccessColorAttachment
	AccessDepthAttachment
	AccessStencilAttachment
	AccessInputAttachment
	AccessReadWriteRenderTarget
	// AccessFrameStartLayoutTransitionCheck is a zero-cost bookkeeping usage
	// emitted for window-handle textures so the first real usage of the
	// frame can assume a known starting layout.
	AccessFrameStartLayoutTransitionCheck
)

// IsWrite reports whether this access type can produce a hazard against a
// later read or write of an overlapping active range.
func (a AccessType) IsWrite() bool {
	switch a {
	case AccessWrite, AccessReadWrite, AccessColorAttachment, AccessDepthAttachment,
		AccessStencilAttachment, AccessReadWriteRenderTarget:
		return true
	default:
		return false
	}
}

// IsRead reports whether this access type observes the resource's contents.
func (a AccessType) IsRead() bool {
	switch a {
	case AccessRead, AccessReadWrite, AccessInputAttachment, AccessReadWriteRenderTarget:
		return true
	default:
		return false
	}
}

// IsRenderTarget reports whether this usage is a render-target attachment,
// which the residency pass (§4.3.1) never coalesces with other usages and
// which disables subresource reordering.
func (a AccessType) IsRenderTarget() bool {
	switch a {
	case AccessColorAttachment, AccessDepthAttachment, AccessStencilAttachment,
		AccessInputAttachment, AccessReadWriteRenderTarget, AccessFrameStartLayoutTransitionCheck:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer for debug output.
func (a AccessType) String() string {
	switch a {
	case AccessUnusedArgumentBuffer:
		return "unusedArgumentBuffer"
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	case AccessReadWrite:
		return "readWrite"
	case AccessColorAttachment:
		return "colorAttachment"
	case AccessDepthAttachment:
		return "depthAttachment"
	case AccessStencilAttachment:
		return "stencilAttachment"
	case AccessInputAttachment:
		return "inputAttachment"
	case AccessReadWriteRenderTarget:
		return "readWriteRenderTarget"
	case AccessFrameStartLayoutTransitionCheck:
		return "frameStartLayoutTransitionCheck"
	default:
		return "unknown"
	}
}
