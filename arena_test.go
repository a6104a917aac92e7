package rapidyaml

import "testing"

func TestStringArenaAppendAndContains(t *testing.T) {
	a := newStringArena(nil)
	s1, err := a.AppendString("hello", nil)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if !a.Contains(s1) {
		t.Error("expected span to be contained in arena after append")
	}
	if got := s1.String(); got != "hello" {
		t.Errorf("got %q, want hello", got)
	}
	external := Span("not from the arena")
	if a.Contains(external) {
		t.Error("external span should not be reported as contained")
	}
}

func TestStringArenaGrowthRelocates(t *testing.T) {
	a := newStringArena(nil)
	var spans []Span
	var relocated [][2][]byte
	relocate := func(oldBuf, newBuf []byte) {
		relocated = append(relocated, [2][]byte{oldBuf, newBuf})
		for i, s := range spans {
			tmp := &StringArena{buf: oldBuf}
			if tmp.Contains(s) {
				spans[i] = relocateSpan(s, oldBuf, newBuf)
			}
		}
	}
	for i := 0; i < 64; i++ {
		s, err := a.Append([]byte{byte(i)}, relocate)
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		spans = append(spans, s)
	}
	if len(relocated) == 0 {
		t.Fatal("expected at least one relocation as the arena grew")
	}
	for i, s := range spans {
		if !a.Contains(s) {
			t.Fatalf("span %d not contained in final arena after relocation", i)
		}
		if len(s) != 1 || s[0] != byte(i) {
			t.Fatalf("span %d corrupted: got %v, want [%d]", i, []byte(s), i)
		}
	}
}

func TestStringArenaReserveNoopWhenSufficient(t *testing.T) {
	a := newStringArena(nil)
	if err := a.Reserve(8, nil); err != nil {
		t.Fatal(err)
	}
	cap1 := a.Capacity()
	if err := a.Reserve(4, nil); err != nil {
		t.Fatal(err)
	}
	if a.Capacity() != cap1 {
		t.Errorf("Reserve with smaller cap should be a no-op, got %d want %d", a.Capacity(), cap1)
	}
}
