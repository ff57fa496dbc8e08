package physics

import "testing"

func TestTrail_FIFO(t *testing.T) {
	tr, err := NewTrail(3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 5; i++ {
		tr.Push(Vec2{float64(i), 0})
	}

	got := tr.Points()
	want := []Vec2{{3, 0}, {4, 0}, {5, 0}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("points[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTrail_Clear(t *testing.T) {
	tr, _ := NewTrail(2)
	tr.Push(Vec2{1, 1})
	tr.Clear()
	if tr.Len() != 0 {
		t.Errorf("len = %d after clear", tr.Len())
	}
	if _, ok := tr.Last(); ok {
		t.Error("Last should report empty")
	}
}

func TestNewTrail_ZeroCapacity(t *testing.T) {
	if _, err := NewTrail(0); err == nil {
		t.Error("expected error for zero capacity")
	}
}
