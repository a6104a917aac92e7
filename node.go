package rapidyaml

// scalarProps groups the three spans a key or a value may carry: the
// scalar payload itself, an optional explicit tag, and an optional anchor
// name (for a key/val that introduces an anchor) or alias target name (for
// one that is a ref).
type scalarProps struct {
	scalar Span
	tag    Span
	anchor Span
}

func (p *scalarProps) clear() {
	p.scalar = nil
	p.tag = nil
	p.anchor = nil
}

// nodeData is the payload of one arena slot. It is never exposed directly;
// all access goes through Tree methods keyed by ID. A free slot has
// parent == None, firstChild == None, lastChild == None, and its
// prevSibling/nextSibling fields repurposed as free-list links.
type nodeData struct {
	flags NodeFlags
	key   scalarProps
	val   scalarProps

	parent      ID
	firstChild  ID
	lastChild   ID
	prevSibling ID
	nextSibling ID
}

func (n *nodeData) reset() {
	n.flags = NOTYPE
	n.key.clear()
	n.val.clear()
	n.parent = None
	n.firstChild = None
	n.lastChild = None
	n.prevSibling = None
	n.nextSibling = None
}
