package rapidyaml

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func addKeyVal(t *testing.T, tr *Tree, parent, after ID, key, val string) ID {
	t.Helper()
	id, err := tr.Claim()
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.ToKeyVal(id, Span(key), Span(val)); err != nil {
		t.Fatal(err)
	}
	mustLink(t, tr, id, parent, after)
	return id
}

func addMapChild(t *testing.T, tr *Tree, parent, after ID, key string) ID {
	t.Helper()
	id, err := tr.Claim()
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.ToMap(id, Span(key)); err != nil {
		t.Fatal(err)
	}
	mustLink(t, tr, id, parent, after)
	return id
}

// snapshot is an exported mirror of a subtree's shape, used only in tests
// so go-cmp can compare resolved output against an expected literal without
// a hand-rolled recursive equality walk.
type snapshot struct {
	Key      string
	Val      string
	Children []snapshot
}

func snapshotOf(tr *Tree, id ID) snapshot {
	s := snapshot{Key: tr.Key(id).String(), Val: tr.Val(id).String()}
	for c := tr.FirstChild(id); c != None; c = tr.NextSibling(c) {
		s.Children = append(s.Children, snapshotOf(tr, c))
	}
	return s
}

func TestResolveMergeKeyOverrideS3(t *testing.T) {
	tr := New()
	tr.Reserve(32, 64)
	root := tr.RootID()
	tr.ToMap(root, nil)

	base := addMapChild(t, tr, root, None, "base")
	tr.SetValAnchor(base, Span("base"))
	addKeyVal(t, tr, base, None, "x", "1")
	addKeyVal(t, tr, base, tr.LastChild(base), "y", "2")

	over := addMapChild(t, tr, root, base, "over")
	merge, err := tr.Claim()
	if err != nil {
		t.Fatal(err)
	}
	tr.SetKey(merge, mergeKeySpan)
	tr.SetVal(merge, Span("*base"))
	tr.SetValRef(merge, Span("base"))
	mustLink(t, tr, merge, over, None)
	addKeyVal(t, tr, over, merge, "y", "99")
	addKeyVal(t, tr, over, tr.LastChild(over), "z", "3")

	if err := tr.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := snapshot{Key: "over", Children: []snapshot{
		{Key: "x", Val: "1"},
		{Key: "y", Val: "99"},
		{Key: "z", Val: "3"},
	}}
	got := snapshotOf(tr, over)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("resolved \"over\" mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveSequenceOfMergeRefsS4(t *testing.T) {
	tr := New()
	tr.Reserve(32, 64)
	root := tr.RootID()
	tr.ToMap(root, nil)

	a := addMapChild(t, tr, root, None, "a")
	tr.SetValAnchor(a, Span("a"))
	addKeyVal(t, tr, a, None, "k", "1")

	b := addMapChild(t, tr, root, a, "b")
	tr.SetValAnchor(b, Span("b"))
	addKeyVal(t, tr, b, None, "k", "2")
	addKeyVal(t, tr, b, tr.LastChild(b), "j", "20")

	c := addMapChild(t, tr, root, b, "c")
	mergeSeq, err := tr.Claim()
	if err != nil {
		t.Fatal(err)
	}
	tr.SetKey(mergeSeq, mergeKeySpan)
	if err := tr.ToSeq(mergeSeq, mergeKeySpan); err != nil {
		t.Fatal(err)
	}
	mustLink(t, tr, mergeSeq, c, None)

	refA, _ := tr.Claim()
	tr.SetVal(refA, Span("*a"))
	tr.SetValRef(refA, Span("a"))
	mustLink(t, tr, refA, mergeSeq, None)

	refB, _ := tr.Claim()
	tr.SetVal(refB, Span("*b"))
	tr.SetValRef(refB, Span("b"))
	mustLink(t, tr, refB, mergeSeq, refA)

	addKeyVal(t, tr, c, mergeSeq, "k", "99")

	if err := tr.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := snapshot{Key: "c", Children: []snapshot{
		{Key: "k", Val: "99"},
		{Key: "j", Val: "20"},
	}}
	got := snapshotOf(tr, c)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("resolved \"c\" mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvePlainAliasS5(t *testing.T) {
	tr := New()
	tr.Reserve(32, 64)
	root := tr.RootID()
	tr.ToMap(root, nil)

	defaults := addMapChild(t, tr, root, None, "defaults")
	tr.SetValAnchor(defaults, Span("defaults"))
	addKeyVal(t, tr, defaults, None, "timeout", "30")
	addKeyVal(t, tr, defaults, tr.LastChild(defaults), "retries", "3")

	job, err := tr.Claim()
	if err != nil {
		t.Fatal(err)
	}
	tr.SetKey(job, Span("job"))
	tr.SetVal(job, Span("*defaults"))
	tr.SetValRef(job, Span("defaults"))
	mustLink(t, tr, job, root, defaults)

	if err := tr.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if !tr.IsMap(job) {
		t.Fatalf("job should be a map after resolving the alias, got kind %s", tr.Type(job))
	}
	if tr.IsValRef(job) || tr.HasValAnchor(job) || tr.HasKeyAnchor(defaults) {
		t.Error("anchor/ref markers should be stripped after Resolve")
	}
	want := snapshot{Key: "job", Children: []snapshot{
		{Key: "timeout", Val: "30"},
		{Key: "retries", Val: "3"},
	}}
	got := snapshotOf(tr, job)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("resolved \"job\" mismatch (-want +got):\n%s", diff)
	}
	// defaults itself is untouched
	wantDefaults := snapshot{Key: "defaults", Children: []snapshot{
		{Key: "timeout", Val: "30"},
		{Key: "retries", Val: "3"},
	}}
	if diff := cmp.Diff(wantDefaults, snapshotOf(tr, defaults)); diff != "" {
		t.Fatalf("\"defaults\" mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveIdempotent(t *testing.T) {
	tr := New()
	tr.Reserve(32, 64)
	root := tr.RootID()
	tr.ToMap(root, nil)
	defaults := addMapChild(t, tr, root, None, "defaults")
	tr.SetValAnchor(defaults, Span("defaults"))
	addKeyVal(t, tr, defaults, None, "a", "1")
	job, _ := tr.Claim()
	tr.SetKey(job, Span("job"))
	tr.SetVal(job, Span("*defaults"))
	tr.SetValRef(job, Span("defaults"))
	mustLink(t, tr, job, root, defaults)

	if err := tr.Resolve(); err != nil {
		t.Fatal(err)
	}
	before := snapshotOf(tr, root)
	if err := tr.Resolve(); err != nil {
		t.Fatal(err)
	}
	after := snapshotOf(tr, root)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("second Resolve() changed the tree (-before +after):\n%s", diff)
	}
}

func TestResolveKeyAlias(t *testing.T) {
	tr := New()
	tr.Reserve(16, 32)
	root := tr.RootID()
	tr.ToMap(root, nil)

	name, err := tr.Claim()
	if err != nil {
		t.Fatal(err)
	}
	tr.SetKey(name, Span("k"))
	tr.SetVal(name, Span("id"))
	tr.SetKeyAnchor(name, Span("k"))
	mustLink(t, tr, name, root, None)

	entry, err := tr.Claim()
	if err != nil {
		t.Fatal(err)
	}
	tr.SetKey(entry, Span("*k"))
	tr.SetKeyRef(entry, Span("k"))
	tr.SetVal(entry, Span("present"))
	mustLink(t, tr, entry, root, name)

	if err := tr.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if tr.Key(entry).String() != "id" {
		t.Fatalf("entry key = %q, want %q (resolved from key alias)", tr.Key(entry).String(), "id")
	}
	if tr.Val(entry).String() != "present" {
		t.Fatalf("entry val = %q, want unchanged %q", tr.Val(entry).String(), "present")
	}
	if tr.IsKeyRef(entry) || tr.HasKeyAnchor(name) {
		t.Error("anchor/ref markers should be stripped after Resolve")
	}
}

func TestResolveKeyAliasNonScalarTarget(t *testing.T) {
	tr := New()
	tr.Reserve(16, 32)
	root := tr.RootID()
	tr.ToMap(root, nil)

	base := addMapChild(t, tr, root, None, "base")
	tr.SetKeyAnchor(base, Span("base"))
	addKeyVal(t, tr, base, None, "x", "1")

	entry, err := tr.Claim()
	if err != nil {
		t.Fatal(err)
	}
	tr.SetKey(entry, Span("*base"))
	tr.SetKeyRef(entry, Span("base"))
	tr.SetVal(entry, Span("present"))
	mustLink(t, tr, entry, root, base)

	err = tr.Resolve()
	if !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("Resolve() err = %v, want ErrKindMismatch", err)
	}
}

func TestResolveAliasNotFound(t *testing.T) {
	tr := New()
	tr.Reserve(8, 32)
	root := tr.RootID()
	tr.ToMap(root, nil)
	job, _ := tr.Claim()
	tr.SetKey(job, Span("job"))
	tr.SetVal(job, Span("*missing"))
	tr.SetValRef(job, Span("missing"))
	mustLink(t, tr, job, root, None)

	err := tr.Resolve()
	if !errors.Is(err, ErrAliasNotFound) {
		t.Fatalf("Resolve() err = %v, want ErrAliasNotFound", err)
	}
}
