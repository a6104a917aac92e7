package rapidyaml

import "fmt"

var mergeKeySpan = Span("<<")

// refEntry is one collected anchor or alias/merge-ref occurrence, in
// document order.
type refEntry struct {
	isRef         bool // true for an alias/merge reference, false for an anchor
	isMergeScalar bool // true for "<<: *name" (scalar merge, not a sequence)
	isKeyRef      bool // true for "*name: val" (the key itself is an alias)
	node          ID   // the ref or anchor-bearing node
	parentRef     ID   // for a merge-sequence child, the "<<" seq node itself; else None
	prevAnchorIdx int  // index of the nearest preceding anchor entry, or -1
	target        ID   // resolved anchor target, filled in by pass 2
}

// newRefEntry builds an entry for node with every ID field defaulted to
// None, so a field a future case forgets to set can never be mistaken for
// node 0 (the root) the way the zero value of ID would be.
func newRefEntry(node ID) *refEntry {
	return &refEntry{node: node, parentRef: None, target: None}
}

// collectEntries walks the tree in depth-first pre-order, collecting every
// anchor and every alias/merge-ref in the order they appear. Children of a
// merge-key node (whether a scalar ref or a sequence of refs) are recorded
// as ref entries and are not separately walked as ordinary children.
func (t *Tree) collectEntries() []*refEntry {
	var entries []*refEntry
	var walk func(id ID)
	walk = func(id ID) {
		if t.HasKey(id) && t.Key(id).Equal(mergeKeySpan) {
			switch {
			case t.IsSeq(id):
				for c := t.FirstChild(id); c != None; c = t.NextSibling(c) {
					e := newRefEntry(c)
					e.isRef = true
					e.parentRef = id
					entries = append(entries, e)
				}
				return
			case t.HasVal(id):
				e := newRefEntry(id)
				e.isRef = true
				e.isMergeScalar = true
				entries = append(entries, e)
				return
			}
		}
		if t.IsKeyRef(id) {
			e := newRefEntry(id)
			e.isRef = true
			e.isKeyRef = true
			entries = append(entries, e)
		}
		if t.IsValRef(id) {
			e := newRefEntry(id)
			e.isRef = true
			entries = append(entries, e)
		}
		if t.HasKeyAnchor(id) || t.HasValAnchor(id) {
			entries = append(entries, newRefEntry(id))
		}
		for c := t.FirstChild(id); c != None; c = t.NextSibling(c) {
			walk(c)
		}
	}
	if t.hasRoot {
		walk(t.RootID())
	}
	return entries
}

func anchorNameOf(t *Tree, node ID) Span {
	if a := t.ValAnchor(node); !a.Empty() {
		return a
	}
	return t.KeyAnchor(node)
}

// Resolve rewrites the tree to dereference every anchor/alias and "<<"
// merge-key in three passes: collect (document-order walk), resolve
// (match each alias to its nearest preceding same-named anchor), and
// rewrite (duplicate anchor targets into alias positions, apply merge-key
// override semantics, then strip all anchor/ref markers). It returns
// ErrAliasNotFound, wrapped with the unresolved name, if any alias has no
// matching prior anchor; that check runs before any rewrite, so the tree is
// then unchanged. An error from the rewrite pass itself (such as
// ErrKindMismatch for a key alias whose target is a container) leaves the
// tree with the rewrites made so far, so callers that need transactional
// semantics should Clone before calling Resolve.
func (t *Tree) Resolve() error {
	entries := t.collectEntries()

	last := -1
	for i, e := range entries {
		e.prevAnchorIdx = last
		if !e.isRef {
			last = i
		}
	}

	for _, e := range entries {
		if !e.isRef {
			continue
		}
		name := t.ValAnchor(e.node)
		if e.isKeyRef {
			name = t.KeyAnchor(e.node)
		}
		target := None
		for idx := e.prevAnchorIdx; idx != -1; idx = entries[idx].prevAnchorIdx {
			cand := entries[idx]
			if anchorNameOf(t, cand.node).Equal(name) {
				target = cand.node
				break
			}
		}
		if target == None {
			return fmt.Errorf("%w: %s", ErrAliasNotFound, name.String())
		}
		e.target = target
	}

	parentRefAfter := map[ID]ID{}
	touchedParentRefs := map[ID]bool{}
	for _, e := range entries {
		if !e.isRef {
			continue
		}
		switch {
		case e.parentRef != None:
			p := t.Parent(e.parentRef)
			after, ok := parentRefAfter[e.parentRef]
			if !ok {
				after = e.parentRef
			}
			newAfter, err := t.DuplicateChildrenNoRep(e.target, p, after)
			if err != nil {
				return err
			}
			parentRefAfter[e.parentRef] = newAfter
			touchedParentRefs[e.parentRef] = true
			if err := t.Remove(e.node); err != nil {
				return err
			}
		case e.isMergeScalar:
			p := t.Parent(e.node)
			after := t.PrevSibling(e.node)
			if _, err := t.DuplicateChildrenNoRep(e.target, p, after); err != nil {
				return err
			}
			if err := t.Remove(e.node); err != nil {
				return err
			}
		case e.isKeyRef:
			if t.HasChild(e.target) {
				return fmt.Errorf("%w: key alias %q targets a non-scalar node", ErrKindMismatch, anchorNameOf(t, e.node).String())
			}
			t.SetKey(e.node, t.Val(e.target))
		default:
			if err := t.DuplicateContents(e.target, e.node); err != nil {
				return err
			}
		}
	}

	for p := range touchedParentRefs {
		if int(p) < len(t.freed) && !t.freed[p] {
			if err := t.Remove(p); err != nil {
				return err
			}
		}
	}

	t.stripMarkers()
	return nil
}

// stripMarkers clears anchor and ref flags (and the anchor-name spans that
// carried them) from every live node, leaving a fully dereferenced tree.
func (t *Tree) stripMarkers() {
	var walk func(id ID)
	walk = func(id ID) {
		n := &t.nodes[id]
		n.flags &^= KEYANCHOR | VALANCHOR | KEYREF | VALREF
		n.key.anchor = nil
		n.val.anchor = nil
		for c := t.FirstChild(id); c != None; c = t.NextSibling(c) {
			walk(c)
		}
	}
	if t.hasRoot {
		walk(t.RootID())
	}
}
