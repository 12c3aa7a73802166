package derive

import "testing"

func TestFIFO1(t *testing.T) {
	f := NewFrontier(FIFO)
	if _, ok := f.Pop(); ok {
		t.Error("should not be able to Pop() from empty frontier")
	}
	f.Push(Entry{ID: 7})
	if f.Len() != 1 {
		t.Error("Len() should be 1 for frontier with 1 entry")
	}
	e, ok := f.Pop()
	if !ok || e.ID != 7 {
		t.Errorf("expected to pop entry #7, have %v/%v", e.ID, ok)
	}
	if f.Len() != 0 {
		t.Error("frontier should be empty after single pop")
	}
}

func TestFIFO2(t *testing.T) {
	f := NewFrontier(FIFO)
	f.Push(Entry{ID: 1, Heuristic: 5})
	f.Push(Entry{ID: 2, Heuristic: 0})
	f.Push(Entry{ID: 3, Heuristic: 2})
	for _, id := range []NodeID{1, 2, 3} {
		e, ok := f.Pop()
		if !ok || e.ID != id {
			t.Errorf("FIFO frontier must ignore heuristics: expected #%d, have #%d", id, e.ID)
		}
	}
	f.Push(Entry{ID: 4})
	if e, _ := f.Pop(); e.ID != 4 {
		t.Errorf("frontier should be usable after having been emptied, have #%d", e.ID)
	}
}

func TestBestFirst1(t *testing.T) {
	f := NewFrontier(BestFirst)
	if f.Mode() != BestFirst {
		t.Errorf("expected best-first frontier, have %s", f.Mode())
	}
	f.Push(Entry{ID: 1, Heuristic: 3, Depth: 1})
	f.Push(Entry{ID: 2, Heuristic: 1, Depth: 4})
	f.Push(Entry{ID: 3, Heuristic: 1, Depth: 2})
	f.Push(Entry{ID: 4, Heuristic: 0, Depth: 9})
	if f.Len() != 4 {
		t.Errorf("Len() should be 4, is %d", f.Len())
	}
	for _, id := range []NodeID{4, 3, 2, 1} {
		e, ok := f.Pop()
		if !ok || e.ID != id {
			t.Errorf("expected #%d, have #%d", id, e.ID)
		}
	}
	if _, ok := f.Pop(); ok {
		t.Error("should not be able to Pop() from empty frontier")
	}
}

func TestBestFirst2(t *testing.T) {
	f := NewFrontier(BestFirst)
	for id := NodeID(1); id <= 5; id++ {
		f.Push(Entry{ID: id, Heuristic: 2, Depth: 3})
	}
	f.Push(Entry{ID: 6, Heuristic: 2, Depth: 2})
	expected := []NodeID{6, 1, 2, 3, 4, 5}
	for _, id := range expected {
		if e, _ := f.Pop(); e.ID != id {
			t.Errorf("ties should be broken by depth, then insertion order: expected #%d, have #%d", id, e.ID)
		}
	}
}

func TestParseSearchMode(t *testing.T) {
	for s, m := range map[string]SearchMode{"fifo": FIFO, "BFS": FIFO, "best": BestFirst, "best-first": BestFirst} {
		mode, err := ParseSearchMode(s)
		if err != nil || mode != m {
			t.Errorf("expected %q to parse to %s, have %s/%v", s, m, mode, err)
		}
	}
	if _, err := ParseSearchMode("dfs"); err == nil {
		t.Error("expected error for unknown search mode")
	}
}
