package chartview

import "testing"

func TestArenaAlloc(t *testing.T) {
	var a arena[float64]
	if a.alloc(0) != nil {
		t.Error("alloc(0) should return nil")
	}
	s1 := a.alloc(4)
	s2 := a.alloc(3)
	if len(s1) != 4 || len(s2) != 3 || a.used() != 7 {
		t.Fatalf("lens %d %d used %d", len(s1), len(s2), a.used())
	}
	s1[3] = 1
	if s2[0] != 0 {
		t.Error("slices overlap")
	}
	// Capacity is clipped so appends cannot spill into the next slice.
	if cap(s2) != 3 {
		t.Errorf("cap = %d, want 3", cap(s2))
	}
}

func TestArenaResetReuses(t *testing.T) {
	var a arena[int]
	s := a.alloc(8)
	for i := range s {
		s[i] = i + 1
	}
	a.reset()
	if a.used() != 0 {
		t.Fatalf("used = %d after reset", a.used())
	}
	r := a.alloc(8)
	if &r[0] != &s[0] {
		t.Error("reset did not reuse the buffer")
	}
	for i, v := range r {
		if v != 0 {
			t.Fatalf("r[%d] = %d, want zeroed", i, v)
		}
	}
}

func TestArenaSteadyStateNoAllocs(t *testing.T) {
	var a arena[Vec2]
	a.alloc(64)
	a.reset()
	allocs := testing.AllocsPerRun(100, func() {
		a.reset()
		a.alloc(32)
		a.alloc(32)
	})
	if allocs != 0 {
		t.Errorf("allocs = %v, want 0", allocs)
	}
}
