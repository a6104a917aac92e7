package rapidyaml

import "fmt"

// Move relinks node to a new position under its current parent, immediately
// after after.
func (t *Tree) Move(node, after ID) error {
	parent := t.Parent(node)
	return t.MoveTo(node, parent, after)
}

// MoveTo relinks node under newParent, immediately after after.
func (t *Tree) MoveTo(node, newParent, after ID) error {
	if err := t.checkLive(node); err != nil {
		return fail(err)
	}
	t.RemHierarchy(node)
	return t.SetHierarchy(node, newParent, after)
}

// MoveFrom duplicates node (and its subtree) from src into t under
// newParent after after, then removes the original from src.
func (t *Tree) MoveFrom(src *Tree, node, newParent, after ID) (ID, error) {
	id, err := t.DuplicateFrom(src, node, newParent, after)
	if err != nil {
		return None, err
	}
	if err := src.Remove(node); err != nil {
		return None, err
	}
	return id, nil
}

// Duplicate recursively copies node and its subtree within t, linking the
// copy under parent immediately after after.
func (t *Tree) Duplicate(node, parent, after ID) (ID, error) {
	return t.DuplicateFrom(t, node, parent, after)
}

// DuplicateFrom recursively copies node and its subtree from src into t,
// linking the copy under parent (in t) immediately after after.
func (t *Tree) DuplicateFrom(src *Tree, node, parent, after ID) (ID, error) {
	if err := src.checkLive(node); err != nil {
		return None, fail(err)
	}
	id, err := t.Claim()
	if err != nil {
		return None, err
	}
	sn := &src.nodes[node]
	dn := &t.nodes[id]
	dn.flags = sn.flags
	dn.key = sn.key
	dn.val = sn.val
	if err := t.SetHierarchy(id, parent, after); err != nil {
		return None, err
	}
	prev := ID(None)
	for c := src.FirstChild(node); c != None; c = src.NextSibling(c) {
		cid, err := t.DuplicateFrom(src, c, id, prev)
		if err != nil {
			return None, err
		}
		prev = cid
	}
	return id, nil
}

// DuplicateChildren copies all children of node (not node itself) within t,
// linking them under parent starting immediately after after. Returns the
// id of the last child inserted, or after if node has no children.
func (t *Tree) DuplicateChildren(node, parent, after ID) (ID, error) {
	return t.DuplicateChildrenFrom(t, node, parent, after)
}

// DuplicateChildrenFrom is the cross-tree form of DuplicateChildren.
func (t *Tree) DuplicateChildrenFrom(src *Tree, node, parent, after ID) (ID, error) {
	prev := after
	for c := src.FirstChild(node); c != None; c = src.NextSibling(c) {
		id, err := t.DuplicateFrom(src, c, parent, prev)
		if err != nil {
			return None, err
		}
		prev = id
	}
	return prev, nil
}

// DuplicateContents overwrites dst's value (but not its key) with src's
// flags and value, then appends copies of all of src's children under dst.
// Used by the reference resolver to rewrite a plain alias in place.
func (t *Tree) DuplicateContents(src, dst ID) error {
	if err := t.checkLive(src); err != nil {
		return fail(err)
	}
	if err := t.checkLive(dst); err != nil {
		return fail(err)
	}
	sn := &t.nodes[src]
	dn := &t.nodes[dst]
	const keyBits = KEY | KEYANCHOR | KEYQUOTED | KEYTAG | KEYREF
	dn.flags = (dn.flags & keyBits) | (sn.flags &^ keyBits)
	dn.val = sn.val
	_, err := t.DuplicateChildren(src, dst, t.LastChild(dst))
	return err
}

// DuplicateChildrenNoRep duplicates the children of node into parent,
// starting immediately after after, applying merge-key override semantics:
// when parent is a map and a duplicated child's key matches an existing
// child of parent, the earlier-merged entry is replaced while a
// later/explicit entry is preserved and only relocated into sequence.
// Returns the id of the last child in the resulting run.
func (t *Tree) DuplicateChildrenNoRep(node, parent, after ID) (ID, error) {
	afterPos := -1
	if after != None {
		afterPos = t.ChildPos(parent, after)
	}
	prev := after
	for c := t.FirstChild(node); c != None; c = t.NextSibling(c) {
		if t.IsSeq(parent) {
			id, err := t.Duplicate(c, parent, prev)
			if err != nil {
				return None, err
			}
			prev = id
			continue
		}
		key := t.Key(c)
		rep := t.FindChild(parent, key)
		if rep == None {
			id, err := t.Duplicate(c, parent, prev)
			if err != nil {
				return None, err
			}
			prev = id
			continue
		}
		repPos := t.ChildPos(parent, rep)
		if afterPos != -1 && repPos < afterPos {
			if err := t.Remove(rep); err != nil {
				return None, err
			}
			id, err := t.Duplicate(c, parent, prev)
			if err != nil {
				return None, err
			}
			prev = id
			continue
		}
		if rep != prev && t.PrevSibling(rep) != prev {
			if err := t.Move(rep, prev); err != nil {
				return None, err
			}
		}
		prev = rep
	}
	return prev, nil
}

// Swap exchanges the tree position of a and b: each node keeps its own id,
// content, and children, but takes over the other's parent/sibling links.
// Neither a nor b may be the root, since the root is the only node allowed
// a None parent.
func (t *Tree) Swap(a, b ID) error {
	if err := t.checkLive(a); err != nil {
		return fail(err)
	}
	if err := t.checkLive(b); err != nil {
		return fail(err)
	}
	if a == b {
		return nil
	}
	if t.IsRoot(a) || t.IsRoot(b) {
		return fail(fmt.Errorf("%w: cannot swap the root", ErrInvalidNode))
	}
	t.swapHierarchy(a, b)
	return nil
}

// swapHierarchy implements the four cases derived from the sibling-list
// invariants: different parents; same parent non-adjacent; same parent with
// a immediately before b; same parent with b immediately before a. The
// adjacent cases need their own relink order because the naive non-adjacent
// relink would read a stale neighbor (each node's "other" neighbor is the
// node being swapped away).
func (t *Tree) swapHierarchy(a, b ID) {
	na, nb := &t.nodes[a], &t.nodes[b]
	pa, pb := na.parent, nb.parent
	prevA, nextA := na.prevSibling, na.nextSibling
	prevB, nextB := nb.prevSibling, nb.nextSibling

	switch {
	case pa == pb && nextA == b:
		t.relink(b, pa, prevA, a)
		t.relink(a, pa, b, nextB)
		t.fixEndpoints(pa, a, b)
	case pa == pb && nextB == a:
		t.relink(a, pa, prevB, b)
		t.relink(b, pa, a, nextA)
		t.fixEndpoints(pa, a, b)
	case pa == pb:
		t.relink(a, pa, prevB, nextB)
		t.relink(b, pa, prevA, nextA)
		t.fixEndpoints(pa, a, b)
	default:
		t.relink(a, pb, prevB, nextB)
		t.relink(b, pa, prevA, nextA)
		t.fixEndpoints(pa, a, b)
		t.fixEndpoints(pb, a, b)
	}
}

// relink sets id's parent/prevSibling/nextSibling and patches the named
// neighbors' links to point back at id.
func (t *Tree) relink(id, parent, prev, next ID) {
	n := &t.nodes[id]
	n.parent = parent
	n.prevSibling = prev
	n.nextSibling = next
	if prev != None {
		t.nodes[prev].nextSibling = id
	}
	if next != None {
		t.nodes[next].prevSibling = id
	}
}

// fixEndpoints recomputes parent p's firstChild/lastChild if either was
// previously a or b; any other, untouched endpoint is left alone.
func (t *Tree) fixEndpoints(p, a, b ID) {
	if p == None {
		return
	}
	pn := &t.nodes[p]
	if pn.firstChild == a || pn.firstChild == b {
		switch {
		case t.nodes[a].parent == p && t.nodes[a].prevSibling == None:
			pn.firstChild = a
		case t.nodes[b].parent == p && t.nodes[b].prevSibling == None:
			pn.firstChild = b
		}
	}
	if pn.lastChild == a || pn.lastChild == b {
		switch {
		case t.nodes[a].parent == p && t.nodes[a].nextSibling == None:
			pn.lastChild = a
		case t.nodes[b].parent == p && t.nodes[b].nextSibling == None:
			pn.lastChild = b
		}
	}
}

// Reorder permutes the node arena so that document order (depth
// first, pre-order, from root) equals slot index order: after Reorder,
// walking ids 0,1,2,...,Size()-1 in order is the same as a DFS walk from
// root. Implemented as a rebuild rather than the reference implementation's
// in-place swap-based algorithm: Go's GC makes a second full-size
// allocation cheap relative to reasoning correctly about self-referencing
// in-place swaps, and the operation is already O(n) either way.
func (t *Tree) Reorder() {
	total := len(t.nodes)
	order := make([]ID, 0, t.size)
	var walk func(id ID)
	walk = func(id ID) {
		order = append(order, id)
		for c := t.FirstChild(id); c != None; c = t.NextSibling(c) {
			walk(c)
		}
	}
	if t.hasRoot {
		walk(0)
	}
	oldToNew := make([]ID, total)
	for i := range oldToNew {
		oldToNew[i] = None
	}
	for newPos, oldID := range order {
		oldToNew[oldID] = ID(newPos)
	}
	remap := func(id ID) ID {
		if id == None {
			return None
		}
		return oldToNew[id]
	}
	newNodes := make([]nodeData, total)
	for newPos, oldID := range order {
		old := t.nodes[oldID]
		newNodes[newPos] = nodeData{
			flags:       old.flags,
			key:         old.key,
			val:         old.val,
			parent:      remap(old.parent),
			firstChild:  remap(old.firstChild),
			lastChild:   remap(old.lastChild),
			prevSibling: remap(old.prevSibling),
			nextSibling: remap(old.nextSibling),
		}
	}
	t.nodes = newNodes
	t.freed = make([]bool, total)
	t.freeHead = None
	t.freeTail = None
	t.appendFreeRange(len(order), total)
}

// ToVal converts node into a valueless-key scalar (VAL). node must have no
// children.
func (t *Tree) ToVal(id ID, val Span) error {
	if t.HasChild(id) {
		return fail(fmt.Errorf("%w: node %d has children", ErrKindMismatch, id))
	}
	n := &t.nodes[id]
	n.flags = (n.flags &^ KindMask) | VAL
	n.val.scalar = val
	return nil
}

// ToKeyVal converts node into a keyed scalar (KEYVAL). node must have no
// children.
func (t *Tree) ToKeyVal(id ID, key, val Span) error {
	if t.HasChild(id) {
		return fail(fmt.Errorf("%w: node %d has children", ErrKindMismatch, id))
	}
	n := &t.nodes[id]
	n.flags = (n.flags &^ KindMask) | KeyVal
	n.key.scalar = key
	n.val.scalar = val
	return nil
}

// ToMap converts node into a map container (MAP, or KEYMAP if key is
// non-empty). node must have no children.
func (t *Tree) ToMap(id ID, key Span) error {
	if t.HasChild(id) {
		return fail(fmt.Errorf("%w: node %d has children", ErrKindMismatch, id))
	}
	n := &t.nodes[id]
	kind := MAP
	if len(key) > 0 {
		kind |= KEY
		n.key.scalar = key
	}
	n.flags = (n.flags &^ KindMask) | kind
	return nil
}

// ToSeq converts node into a sequence container (SEQ, or KEYSEQ if key is
// non-empty). node must have no children.
func (t *Tree) ToSeq(id ID, key Span) error {
	if t.HasChild(id) {
		return fail(fmt.Errorf("%w: node %d has children", ErrKindMismatch, id))
	}
	n := &t.nodes[id]
	kind := SEQ
	if len(key) > 0 {
		kind |= KEY
		n.key.scalar = key
	}
	n.flags = (n.flags &^ KindMask) | kind
	return nil
}

// ToDoc marks node as a document container, preserving any MAP/SEQ bits
// already set so that a prior ToMap/ToSeq plus ToDoc yields DOCMAP/DOCSEQ.
func (t *Tree) ToDoc(id ID) error {
	n := &t.nodes[id]
	n.flags = (n.flags &^ (KindMask &^ (MAP | SEQ))) | DOC
	return nil
}

// ToStream marks the root as a stream of documents.
func (t *Tree) ToStream(id ID) error {
	if t.Parent(id) != None {
		return fail(fmt.Errorf("%w: only the root may become a stream", ErrKindMismatch))
	}
	n := &t.nodes[id]
	n.flags = (n.flags &^ KindMask) | STREAM
	return nil
}
