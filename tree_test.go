package rapidyaml

import "testing"

func TestClaimReleaseS1(t *testing.T) {
	tr := New()
	tr.Reserve(4, 0)
	root := tr.RootID()
	if err := tr.ToSeq(root, nil); err != nil {
		t.Fatal(err)
	}

	a, err := tr.Claim()
	if err != nil {
		t.Fatal(err)
	}
	tr.SetVal(a, Span("a"))
	if err := tr.SetHierarchy(a, root, None); err != nil {
		t.Fatal(err)
	}

	b, err := tr.Claim()
	if err != nil {
		t.Fatal(err)
	}
	tr.SetVal(b, Span("b"))
	if err := tr.SetHierarchy(b, root, a); err != nil {
		t.Fatal(err)
	}

	c, err := tr.Claim()
	if err != nil {
		t.Fatal(err)
	}
	tr.SetVal(c, Span("c"))
	if err := tr.SetHierarchy(c, root, b); err != nil {
		t.Fatal(err)
	}

	if tr.Size() != 4 { // root + a,b,c
		t.Fatalf("Size() = %d, want 4", tr.Size())
	}

	if err := tr.Release(b); err != nil {
		t.Fatal(err)
	}

	if tr.Size() != 3 {
		t.Fatalf("Size() after release = %d, want 3", tr.Size())
	}
	if got := tr.FirstChild(root); got != a {
		t.Fatalf("FirstChild(root) = %d, want %d", got, a)
	}
	if got := tr.LastChild(root); got != c {
		t.Fatalf("LastChild(root) = %d, want %d", got, c)
	}
	if got := tr.NextSibling(a); got != c {
		t.Fatalf("NextSibling(a) = %d, want %d (c)", got, c)
	}
	if got := tr.PrevSibling(c); got != a {
		t.Fatalf("PrevSibling(c) = %d, want %d (a)", got, a)
	}
	assertFreeListIntegrity(t, tr)
}

// assertFreeListIntegrity checks testable property 3 and 4: live and free
// slots partition [0, capacity), and walking the free list from freeHead
// reaches exactly capacity-size slots ending at freeTail.
func assertFreeListIntegrity(t *testing.T, tr *Tree) {
	t.Helper()
	total := tr.Capacity()
	seen := make([]bool, total)
	count := 0
	last := None
	for f := tr.freeHead; f != None; f = tr.nodes[f].nextSibling {
		if seen[f] {
			t.Fatalf("free list cycle detected at %d", f)
		}
		seen[f] = true
		count++
		last = f
	}
	if want := total - tr.Size(); count != want {
		t.Fatalf("free list length = %d, want %d", count, want)
	}
	if count > 0 && last != tr.freeTail {
		t.Fatalf("freeTail = %d, want %d (actual last free slot)", tr.freeTail, last)
	}
	if count == 0 && tr.freeTail != None {
		t.Fatalf("freeTail = %d, want None when free list is empty", tr.freeTail)
	}
}

func TestReserveGrowsAndRelinksFreeList(t *testing.T) {
	tr := New()
	tr.Reserve(2, 0)
	assertFreeListIntegrity(t, tr)
	for i := 0; i < 20; i++ {
		if _, err := tr.Claim(); err != nil {
			t.Fatalf("claim %d: %v", i, err)
		}
		assertFreeListIntegrity(t, tr)
	}
}

func TestClearReclaimsRoot(t *testing.T) {
	tr := New()
	tr.Reserve(8, 0)
	root := tr.RootID()
	tr.ToMap(root, nil)
	c, _ := tr.Claim()
	tr.SetKey(c, Span("k"))
	tr.SetVal(c, Span("v"))
	tr.SetHierarchy(c, root, None)

	tr.Clear()
	if tr.Size() != 1 {
		t.Fatalf("Size() after Clear = %d, want 1 (root)", tr.Size())
	}
	if tr.RootID() != 0 {
		t.Fatalf("RootID() after Clear = %d, want 0", tr.RootID())
	}
	assertFreeListIntegrity(t, tr)
}

func TestRemoveReleasesSubtree(t *testing.T) {
	tr := New()
	tr.Reserve(8, 0)
	root := tr.RootID()
	tr.ToMap(root, nil)
	parent, _ := tr.Claim()
	tr.SetKey(parent, Span("p"))
	tr.ToSeq(parent, Span("p"))
	tr.SetHierarchy(parent, root, None)

	for i := 0; i < 3; i++ {
		child, _ := tr.Claim()
		tr.SetVal(child, Span("x"))
		tr.SetHierarchy(child, parent, tr.LastChild(parent))
	}
	sizeBefore := tr.Size()
	if err := tr.Remove(parent); err != nil {
		t.Fatal(err)
	}
	if tr.Size() != sizeBefore-4 {
		t.Fatalf("Size() after Remove = %d, want %d", tr.Size(), sizeBefore-4)
	}
	if tr.HasChild(root) {
		t.Error("root should have no children after removing its only child's subtree")
	}
	assertFreeListIntegrity(t, tr)
}
