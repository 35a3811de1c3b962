package ssa

import "testing"

func TestIDValid(t *testing.T) {
	if ID(0).Valid() {
		t.Error("id 0 should not be valid")
	}
	if !ID(1).Valid() {
		t.Error("id 1 should be valid")
	}
}

func TestSetAddContainsRemove(t *testing.T) {
	s := NewSet()
	if !s.Add(5) {
		t.Fatal("first add of 5 should report true")
	}
	if s.Add(5) {
		t.Fatal("second add of 5 should report false")
	}
	if !s.Contains(5) {
		t.Fatal("set should contain 5")
	}
	s.Add(7)
	s.Add(3)
	if got := s.Items(); !equalIDs(got, []ID{5, 7, 3}) {
		t.Fatalf("insertion order not preserved: %v", got)
	}
	s.Remove(7)
	if s.Contains(7) {
		t.Fatal("7 should have been removed")
	}
	if got := s.Items(); !equalIDs(got, []ID{5, 3}) {
		t.Fatalf("order after remove wrong: %v", got)
	}
}

func TestOrderedMapInsertionOrder(t *testing.T) {
	m := NewOrderedMap[string]()
	m.Set(10, "ten")
	m.Set(2, "two")
	m.Set(10, "TEN") // re-set existing key: keeps position, updates value
	if got := m.Keys(); !equalIDs(got, []ID{10, 2}) {
		t.Fatalf("keys order wrong: %v", got)
	}
	v, ok := m.Get(10)
	if !ok || v != "TEN" {
		t.Fatalf("expected updated value TEN, got %q ok=%v", v, ok)
	}
}

func TestOrderedMapGetOrCreate(t *testing.T) {
	m := NewOrderedMap[int]()
	calls := 0
	create := func() int {
		calls++
		return 42
	}
	if v := m.GetOrCreate(1, create); v != 42 {
		t.Fatalf("expected 42, got %d", v)
	}
	if v := m.GetOrCreate(1, create); v != 42 {
		t.Fatalf("expected cached 42, got %d", v)
	}
	if calls != 1 {
		t.Fatalf("create should run once, ran %d times", calls)
	}
}

func TestAllocatorFreshAndBound(t *testing.T) {
	a := NewAllocator(0)
	if id := a.Fresh(); id != 1 {
		t.Fatalf("first fresh id should be 1, got %d", id)
	}
	a.Observe(10)
	if id := a.Fresh(); id != 11 {
		t.Fatalf("fresh after observe(10) should be 11, got %d", id)
	}
	if b := a.Bound(); b != 12 {
		t.Fatalf("bound should be maxID+1=12, got %d", b)
	}
}

func equalIDs(a, b []ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
