package core

import "testing"

func TestRefCount_ReleaseAtZeroInvokesOnZero(t *testing.T) {
	var zeroed bool
	ref := NewRefCount(func() { zeroed = true })

	ref.Retain()
	ref.Release()
	if zeroed {
		t.Fatal("onZero fired before the count reached zero")
	}
	ref.Release()
	if !zeroed {
		t.Error("onZero did not fire once the count reached zero")
	}
}

func TestCommandEndActionManager_PerQueueFIFO(t *testing.T) {
	m := NewCommandEndActionManager()
	registry := NewQueueRegistry()
	_, queue := registry.RegisterQueue()

	var order []int
	action := func(n int) CommandEndAction {
		return CommandEndAction{Run: func() { order = append(order, n) }}
	}

	m.EnqueuePerQueue(action(1), 1, 0)
	m.EnqueuePerQueue(action(2), 2, 0)
	m.EnqueuePerQueue(action(3), 5, 0)

	queue.MarkCompleted(2)
	m.DidCompleteCommand(2, 0, registry)

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("order = %v, want [1 2]", order)
	}

	queue.MarkCompleted(5)
	m.DidCompleteCommand(5, 0, registry)
	if len(order) != 3 || order[2] != 3 {
		t.Fatalf("order = %v, want third entry 3", order)
	}
}

func TestCommandEndActionManager_DeviceWideWaitsForEveryQueue(t *testing.T) {
	m := NewCommandEndActionManager()
	registry := NewQueueRegistry()
	_, q0 := registry.RegisterQueue()
	_, q1 := registry.RegisterQueue()

	var fired bool
	target := QueueCommandIndices{0: 3, 1: 2}
	m.EnqueueDeviceWide(CommandEndAction{Run: func() { fired = true }}, target)

	q0.MarkCompleted(3)
	m.DidCompleteCommand(3, 0, registry)
	if fired {
		t.Fatal("device-wide action fired before every queue satisfied its index")
	}

	q1.MarkCompleted(2)
	m.DidCompleteCommand(2, 1, registry)
	if !fired {
		t.Error("device-wide action did not fire once every queue was satisfied")
	}
}
