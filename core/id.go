package core

import "fmt"

// Index is the index component of a resource ID.
// It identifies the slot in the storage array.
type Index = uint32

// Epoch is the generation component of a resource ID.
// It prevents use-after-free by invalidating old IDs.
type Epoch = uint32

// RawID is the underlying 64-bit representation of a resource identifier.
// Layout: lower 32 bits = index, upper 32 bits = epoch.
type RawID uint64

// Zip combines an index and epoch into a RawID.
func Zip(index Index, epoch Epoch) RawID {
	return RawID(index) | (RawID(epoch) << 32)
}

// Unzip extracts the index and epoch from a RawID.
func (id RawID) Unzip() (Index, Epoch) {
	return Index(id & 0xFFFFFFFF), Epoch(id >> 32)
}

// Index returns the index component of the RawID.
func (id RawID) Index() Index {
	return Index(id & 0xFFFFFFFF)
}

// Epoch returns the epoch component of the RawID.
func (id RawID) Epoch() Epoch {
	return Epoch(id >> 32)
}

// IsZero returns true if both index and epoch are zero.
func (id RawID) IsZero() bool {
	return id == 0
}

func (id RawID) String() string {
	index, epoch := id.Unzip()
	return fmt.Sprintf("RawID(%d,%d)", index, epoch)
}

// Marker is a constraint for marker types used to distinguish ID types.
type Marker interface {
	marker()
}

// ID is a type-safe resource identifier parameterized by a marker type.
// Equality of two IDs is equality of their raw value: a disposed and
// reallocated slot gets a new epoch, so a stale handle compares unequal to
// the handle that replaces it even though it shares the same index.
type ID[T Marker] struct {
	raw RawID
}

// NewID creates a new ID from index and epoch components.
func NewID[T Marker](index Index, epoch Epoch) ID[T] {
	return ID[T]{raw: Zip(index, epoch)}
}

// FromRaw creates an ID from a raw representation.
func FromRaw[T Marker](raw RawID) ID[T] {
	return ID[T]{raw: raw}
}

// Raw returns the underlying RawID.
func (id ID[T]) Raw() RawID { return id.raw }

// Unzip extracts the index and epoch from the ID.
func (id ID[T]) Unzip() (Index, Epoch) { return id.raw.Unzip() }

// Index returns the index component of the ID.
func (id ID[T]) Index() Index { return id.raw.Index() }

// Epoch returns the epoch component of the ID.
func (id ID[T]) Epoch() Epoch { return id.raw.Epoch() }

// IsZero returns true if the ID is zero (invalid).
func (id ID[T]) IsZero() bool { return id.raw.IsZero() }

func (id ID[T]) String() string {
	index, epoch := id.Unzip()
	return fmt.Sprintf("ID(%d,%d)", index, epoch)
}

// Marker types for each entity kind tracked by a resource ID. Unexported so
// only this package can mint new ID spaces.

type resourceMarker struct{}

func (resourceMarker) marker() {}

type renderPassMarker struct{}

func (renderPassMarker) marker() {}

type commandEncoderMarker struct{}

func (commandEncoderMarker) marker() {}

type commandBufferMarker struct{}

func (commandBufferMarker) marker() {}

type queueMarker struct{}

func (queueMarker) marker() {}

type contextMarker struct{}

func (contextMarker) marker() {}

// ResourceID identifies a buffer, texture, texture view, argument buffer, or
// function table — any entity tracked by the hazard tracker.
type ResourceID = ID[resourceMarker]

// RenderPassID identifies a RenderPassRecord within one frame's pass list.
type RenderPassID = ID[renderPassMarker]

// CommandEncoderID identifies a CommandEncoderInfo within one frame.
type CommandEncoderID = ID[commandEncoderMarker]

// CommandBufferID identifies a backend command buffer.
type CommandBufferID = ID[commandBufferMarker]

// QueueID identifies a GPU queue registered with the process-wide Runtime.
type QueueID = ID[queueMarker]

// ContextID identifies a Render-Graph Context.
type ContextID = ID[contextMarker]
