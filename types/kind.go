package types

// ResourceKind distinguishes the storage shapes that participate in hazard
// tracking. Argument buffers and function tables are tracked as opaque
// single-range resources; buffers and textures use the full subresource
// machinery in range.go.
type ResourceKind uint8

const (
	ResourceKindUnknown ResourceKind = iota
	ResourceKindBuffer
	ResourceKindTexture
	ResourceKindTextureView
	ResourceKindArgumentBuffer
	ResourceKindArgumentBufferArray
	ResourceKindFunctionTable
	ResourceKindVisibleFunctionTable
	ResourceKindIntersectionFunctionTable
)

// HasSubresources reports whether the kind is addressed by mip/slice (or
// byte-range) subresources rather than treated as a single opaque range.
func (k ResourceKind) HasSubresources() bool {
	switch k {
	case ResourceKindBuffer, ResourceKindTexture, ResourceKindTextureView:
		return true
	default:
		return false
	}
}

func (k ResourceKind) String() string {
	switch k {
	case ResourceKindBuffer:
		return "buffer"
	case ResourceKindTexture:
		return "texture"
	case ResourceKindTextureView:
		return "textureView"
	case ResourceKindArgumentBuffer:
		return "argumentBuffer"
	case ResourceKindArgumentBufferArray:
		return "argumentBufferArray"
	case ResourceKindFunctionTable:
		return "functionTable"
	case ResourceKindVisibleFunctionTable:
		return "visibleFunctionTable"
	case ResourceKindIntersectionFunctionTable:
		return "intersectionFunctionTable"
	default:
		return "unknown"
	}
}
