// Package types defines the value types shared by the render-graph core and
// the backend abstraction layer (hal): pipeline stages, resource access
// kinds, subresource ranges, and the texture/buffer descriptor vocabulary
// used when materializing resources.
//
// These types carry no logic beyond the subresource-range arithmetic needed
// by the hazard tracker; resource identity and lifecycle live in core.
package types
