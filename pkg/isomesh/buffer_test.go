package isomesh

import "testing"

func TestScratchPushAndSlice(t *testing.T) {
	s := NewScratch[int](4)
	s.Push(1)
	s.Push(2)
	s.Push(3)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	got := s.Slice()
	want := []int{1, 2, 3}
	for i, v := range want {
		if got[i] != v {
			t.Errorf("Slice()[%d] = %d, want %d", i, got[i], v)
		}
	}
}

func TestScratchPushBeyondCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic pushing beyond capacity")
		}
	}()
	s := NewScratch[int](1)
	s.Push(1)
	s.Push(2)
}

func TestScratchClear(t *testing.T) {
	s := NewScratch[int](2)
	s.Push(1)
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", s.Len())
	}
	s.Push(9)
	if s.At(0) != 9 {
		t.Fatalf("At(0) = %d, want 9", s.At(0))
	}
}

func TestScratchSwap(t *testing.T) {
	a := NewScratch[int](2)
	a.Push(1)
	b := NewScratch[int](2)
	b.Push(2)
	b.Push(3)

	a.Swap(b)

	if a.Len() != 2 || a.At(0) != 2 || a.At(1) != 3 {
		t.Fatalf("after swap, a = %+v", a.Slice())
	}
	if b.Len() != 1 || b.At(0) != 1 {
		t.Fatalf("after swap, b = %+v", b.Slice())
	}
}

func TestScratchResizeAndCopy(t *testing.T) {
	s := NewScratch[int](5)
	s.Resize(3, 7)
	if s.Len() != 3 || s.At(0) != 7 || s.At(2) != 7 {
		t.Fatalf("Resize = %+v, want [7 7 7]", s.Slice())
	}

	s.Copy([]int{1, 2})
	if s.Len() != 2 || s.At(0) != 1 || s.At(1) != 2 {
		t.Fatalf("Copy = %+v, want [1 2]", s.Slice())
	}
}
