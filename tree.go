package rapidyaml

import "fmt"

const minNodeCap = 16

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithAllocator sets the Allocator used to grow the Tree's string arena.
// Defaults to a GC-backed allocator.
func WithAllocator(a Allocator) Option {
	return func(t *Tree) {
		t.arena = newStringArena(a)
	}
}

// Tree is an arena-allocated document tree. The zero value is not usable;
// construct with New or NewWithCapacity.
type Tree struct {
	nodes []nodeData
	arena *StringArena
	freed []bool // freed[i] is true iff slot i is on the free list

	size     int
	freeHead ID
	freeTail ID
	hasRoot  bool
}

// New returns an empty Tree with no nodes reserved yet; the first Claim (or
// explicit Reserve) allocates the root at index 0.
func New(opts ...Option) *Tree {
	t := &Tree{
		arena:    newStringArena(nil),
		freeHead: None,
		freeTail: None,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewWithCapacity returns a Tree pre-sized for nodeCap nodes and arenaCap
// arena bytes, with the root already claimed at index 0.
func NewWithCapacity(nodeCap, arenaCap int, opts ...Option) *Tree {
	t := New(opts...)
	t.Reserve(nodeCap, arenaCap)
	return t
}

// Capacity returns the number of node slots currently allocated (live +
// free).
func (t *Tree) Capacity() int { return len(t.nodes) }

// Size returns the number of live nodes.
func (t *Tree) Size() int { return t.size }

// ArenaSize returns the number of bytes appended to the string arena.
func (t *Tree) ArenaSize() int { return t.arena.Size() }

// ArenaCapacity returns the string arena's current backing buffer length.
func (t *Tree) ArenaCapacity() int { return t.arena.Capacity() }

// RootID returns the id of the root node, always 0 once the tree has been
// reserved at least once.
func (t *Tree) RootID() ID {
	if !t.hasRoot {
		t.Reserve(minNodeCap, 0)
	}
	return 0
}

// IsRoot reports whether id names the root node.
func (t *Tree) IsRoot(id ID) bool {
	return id == 0 && t.hasRoot
}

// Reserve grows the node arena to at least nodeCap slots and the string
// arena to at least arenaCap bytes. Growing the node arena appends the new
// slots to the tail of the free list and claims index 0 as root if this is
// the tree's first reservation.
func (t *Tree) Reserve(nodeCap, arenaCap int) {
	if arenaCap > 0 {
		_ = t.arena.Reserve(arenaCap, t.relocateAll)
	}
	if nodeCap <= len(t.nodes) {
		if !t.hasRoot {
			t.claimRoot()
		}
		return
	}
	if nodeCap < minNodeCap {
		nodeCap = minNodeCap
	}
	newNodes := make([]nodeData, nodeCap)
	copy(newNodes, t.nodes)
	oldCap := len(t.nodes)
	t.nodes = newNodes
	newFreed := make([]bool, nodeCap)
	copy(newFreed, t.freed)
	t.freed = newFreed
	t.appendFreeRange(oldCap, nodeCap)
	if !t.hasRoot {
		t.claimRoot()
	}
}

// Clone returns a deep copy of t, including a freshly allocated string
// arena with every scalar span copied and relocated into it, so the clone
// shares no mutable state with t.
func (t *Tree) Clone() *Tree {
	c := New()
	if !t.hasRoot {
		return c
	}
	relocate := func(src Span) Span {
		if src.Empty() {
			return nil
		}
		out, err := c.arena.Append([]byte(src), c.relocateAll)
		if err != nil {
			panic(err) // default allocator never fails
		}
		return out
	}
	var copyNode func(srcID, dstParent, dstAfter ID) ID
	copyNode = func(srcID, dstParent, dstAfter ID) ID {
		var dstID ID
		if srcID == 0 {
			dstID = c.RootID()
		} else {
			id, err := c.Claim()
			if err != nil {
				panic(err)
			}
			dstID = id
			if err := c.SetHierarchy(dstID, dstParent, dstAfter); err != nil {
				panic(err)
			}
		}
		sn := &t.nodes[srcID]
		dn := &c.nodes[dstID]
		dn.flags = sn.flags
		dn.key = scalarProps{scalar: relocate(sn.key.scalar), tag: relocate(sn.key.tag), anchor: relocate(sn.key.anchor)}
		dn.val = scalarProps{scalar: relocate(sn.val.scalar), tag: relocate(sn.val.tag), anchor: relocate(sn.val.anchor)}
		prev := ID(None)
		for sc := t.FirstChild(srcID); sc != None; sc = t.NextSibling(sc) {
			prev = copyNode(sc, dstID, prev)
		}
		return dstID
	}
	copyNode(0, None, None)
	return c
}

// AppendScalar copies s into the tree's string arena and returns a Span
// backed by the arena, relocating existing arena spans if the arena grows.
// Used by parsers/loaders that build scalar payloads incrementally rather
// than slicing an externally-owned source buffer.
func (t *Tree) AppendScalar(s string) (Span, error) {
	return t.arena.AppendString(s, t.relocateAll)
}

// appendFreeRange links slots [from, to) onto the tail of the free list, in
// order, leaving freeTail pointing at the real last free slot (to-1), never
// one past the end.
func (t *Tree) appendFreeRange(from, to int) {
	if from >= to {
		return
	}
	for i := from; i < to; i++ {
		t.nodes[i].reset()
		t.nodes[i].prevSibling = ID(i - 1)
		t.nodes[i].nextSibling = ID(i + 1)
		t.freed[i] = true
	}
	t.nodes[to-1].nextSibling = None
	if t.freeHead == None {
		t.nodes[from].prevSibling = None
		t.freeHead = ID(from)
	} else {
		t.nodes[t.freeTail].nextSibling = ID(from)
		t.nodes[from].prevSibling = t.freeTail
	}
	t.freeTail = ID(to - 1)
}

func (t *Tree) claimRoot() {
	id, err := t.Claim()
	if err != nil {
		panic(err) // callers (first reservation, Clear) have just populated freeHead
	}
	if id != 0 {
		panic("rapidyaml: root did not claim index 0")
	}
	t.hasRoot = true
}

// Clear resets the tree to empty, preserving allocated capacity: every slot
// becomes free and the root is reclaimed at index 0.
func (t *Tree) Clear() {
	t.size = 0
	t.hasRoot = false
	t.freeHead = None
	t.freeTail = None
	t.arena.pos = 0
	if len(t.nodes) == 0 {
		t.Reserve(minNodeCap, 0)
		return
	}
	t.appendFreeRange(0, len(t.nodes))
	t.claimRoot()
}

// relocateAll rewrites every arena-resident span in the tree after the
// string arena's backing buffer has moved from oldBuf to newBuf.
func (t *Tree) relocateAll(oldBuf, newBuf []byte) {
	relocateIfIn := func(s *Span) {
		if len(*s) == 0 {
			return
		}
		tmp := &StringArena{buf: oldBuf}
		if tmp.Contains(*s) {
			*s = relocateSpan(*s, oldBuf, newBuf)
		}
	}
	for i := range t.nodes {
		n := &t.nodes[i]
		relocateIfIn(&n.key.scalar)
		relocateIfIn(&n.key.tag)
		relocateIfIn(&n.key.anchor)
		relocateIfIn(&n.val.scalar)
		relocateIfIn(&n.val.tag)
		relocateIfIn(&n.val.anchor)
	}
}

// Claim pops the head of the free list, growing the arena first if it is
// empty, and returns a zeroed, unlinked node.
func (t *Tree) Claim() (ID, error) {
	if t.freeHead == None {
		newCap := len(t.nodes) * 2
		if newCap < minNodeCap {
			newCap = minNodeCap
		}
		t.Reserve(newCap, 0)
		if t.freeHead == None {
			return None, fmt.Errorf("%w: arena exhausted after grow", ErrAllocFailed)
		}
	}
	id := t.freeHead
	n := &t.nodes[id]
	t.freeHead = n.nextSibling
	if t.freeHead == None {
		t.freeTail = None
	} else {
		t.nodes[t.freeHead].prevSibling = None
	}
	n.reset()
	t.freed[id] = false
	t.size++
	return id, nil
}

// Release unlinks id from its parent's sibling list (if linked) and returns
// its slot to the head of the free list. Callers must release all
// descendants first; use Remove to release a whole subtree.
func (t *Tree) Release(id ID) error {
	if err := t.checkLive(id); err != nil {
		return fail(err)
	}
	if t.NumChildren(id) != 0 {
		return fail(fmt.Errorf("%w: node %d still has children", ErrKindMismatch, id))
	}
	t.RemHierarchy(id)
	n := &t.nodes[id]
	n.reset()
	n.nextSibling = t.freeHead
	if t.freeHead != None {
		t.nodes[t.freeHead].prevSibling = id
	} else {
		t.freeTail = id
	}
	n.prevSibling = None
	t.freeHead = id
	t.freed[id] = true
	t.size--
	return nil
}

// Remove releases id and all of its descendants, post-order.
func (t *Tree) Remove(id ID) error {
	if err := t.checkLive(id); err != nil {
		return fail(err)
	}
	for c := t.FirstChild(id); c != None; {
		next := t.NextSibling(c)
		if err := t.Remove(c); err != nil {
			return err
		}
		c = next
	}
	return t.Release(id)
}

// SetHierarchy links child into parent's sibling list immediately after
// after (or at the front if after == None). If parent == None, child must
// be the root and no linking is performed.
func (t *Tree) SetHierarchy(child, parent, after ID) error {
	if err := t.checkLive(child); err != nil {
		return fail(err)
	}
	if parent == None {
		if child != 0 {
			return fail(fmt.Errorf("%w: only the root may have a None parent", ErrInvalidNode))
		}
		return nil
	}
	if err := t.checkLive(parent); err != nil {
		return fail(err)
	}
	cn := &t.nodes[child]
	pn := &t.nodes[parent]
	cn.parent = parent

	if after == None {
		cn.nextSibling = pn.firstChild
		cn.prevSibling = None
		if pn.firstChild != None {
			t.nodes[pn.firstChild].prevSibling = child
		}
		pn.firstChild = child
		if pn.lastChild == None {
			pn.lastChild = child
		}
		return nil
	}
	if err := t.checkLive(after); err != nil {
		return fail(err)
	}
	an := &t.nodes[after]
	cn.prevSibling = after
	cn.nextSibling = an.nextSibling
	if an.nextSibling != None {
		t.nodes[an.nextSibling].prevSibling = child
	} else {
		pn.lastChild = child
	}
	an.nextSibling = child
	return nil
}

// RemHierarchy unlinks n from its parent's sibling list without freeing its
// slot. A no-op if n is already unlinked (parent == None and n isn't root).
func (t *Tree) RemHierarchy(n ID) {
	if int(n) >= len(t.nodes) || n == None {
		return
	}
	nn := &t.nodes[n]
	parent := nn.parent
	if parent != None {
		pn := &t.nodes[parent]
		if pn.firstChild == n {
			pn.firstChild = nn.nextSibling
		}
		if pn.lastChild == n {
			pn.lastChild = nn.prevSibling
		}
	}
	if nn.prevSibling != None {
		t.nodes[nn.prevSibling].nextSibling = nn.nextSibling
	}
	if nn.nextSibling != None {
		t.nodes[nn.nextSibling].prevSibling = nn.prevSibling
	}
	nn.parent = None
	nn.prevSibling = None
	nn.nextSibling = None
}

// checkLive validates that id addresses a currently-live node.
func (t *Tree) checkLive(id ID) error {
	if id == None || int(id) < 0 || int(id) >= len(t.nodes) {
		return fmt.Errorf("%w: %d", ErrInvalidNode, id)
	}
	if t.freed[id] {
		return fmt.Errorf("%w: %d", ErrReleased, id)
	}
	return nil
}
