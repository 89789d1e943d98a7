package core

import "testing"

func TestRegistry_RegisterGetUnregister(t *testing.T) {
	r := NewRegistry[string, resourceMarker]()
	id := r.Register("widget")

	got, err := r.Get(id)
	if err != nil || got != "widget" {
		t.Fatalf("Get() = (%q, %v), want (\"widget\", nil)", got, err)
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d, want 1", r.Count())
	}

	removed, err := r.Unregister(id)
	if err != nil || removed != "widget" {
		t.Fatalf("Unregister() = (%q, %v), want (\"widget\", nil)", removed, err)
	}
	if r.Contains(id) {
		t.Error("Contains() should be false after Unregister()")
	}
	if r.Count() != 0 {
		t.Errorf("Count() after Unregister() = %d, want 0", r.Count())
	}
}

func TestRegistry_GetDistinguishesInvalidEpochMismatchAndNotFound(t *testing.T) {
	r := NewRegistry[string, resourceMarker]()

	if _, err := r.Get(ID[resourceMarker]{}); err != ErrInvalidID {
		t.Errorf("Get(zero ID) error = %v, want ErrInvalidID", err)
	}

	// Register a first item so "a" lands at index 1: at index 0 the epoch-1
	// ID below would be the zero ID, which Get reports as ErrInvalidID.
	r.Register("first")
	id := r.Register("a")
	stale := NewID[resourceMarker](id.Index(), id.Epoch()-1)
	if _, err := r.Get(stale); err != ErrEpochMismatch {
		t.Errorf("Get(stale epoch) error = %v, want ErrEpochMismatch", err)
	}

	farAway := NewID[resourceMarker](1000, 1)
	if _, err := r.Get(farAway); err != ErrResourceNotFound {
		t.Errorf("Get(out of range) error = %v, want ErrResourceNotFound", err)
	}
}

func TestRegistry_RecycledIDDoesNotResolveToThePriorItem(t *testing.T) {
	r := NewRegistry[string, resourceMarker]()
	first := r.Register("first")
	if _, err := r.Unregister(first); err != nil {
		t.Fatalf("Unregister: %v", err)
	}

	second := r.Register("second")
	if second.Index() != first.Index() {
		t.Skip("identity manager did not recycle the index this run")
	}
	if _, err := r.Get(first); err == nil {
		t.Error("the released ID should no longer resolve after its index was recycled")
	}
	got, err := r.Get(second)
	if err != nil || got != "second" {
		t.Errorf("Get(second) = (%q, %v), want (\"second\", nil)", got, err)
	}
}
