package rapidyaml

// Parent returns id's parent, or None if id is the root.
func (t *Tree) Parent(id ID) ID { return t.nodes[id].parent }

// FirstChild returns id's first child, or None if id has no children.
func (t *Tree) FirstChild(id ID) ID { return t.nodes[id].firstChild }

// LastChild returns id's last child, or None if id has no children.
func (t *Tree) LastChild(id ID) ID { return t.nodes[id].lastChild }

// PrevSibling returns the sibling immediately before id, or None.
func (t *Tree) PrevSibling(id ID) ID { return t.nodes[id].prevSibling }

// NextSibling returns the sibling immediately after id, or None.
func (t *Tree) NextSibling(id ID) ID { return t.nodes[id].nextSibling }

// HasChild reports whether id has at least one child.
func (t *Tree) HasChild(id ID) bool { return t.nodes[id].firstChild != None }

// HasSibling reports whether id has a previous or next sibling.
func (t *Tree) HasSibling(id ID) bool {
	n := &t.nodes[id]
	return n.prevSibling != None || n.nextSibling != None
}

// NumChildren returns the number of direct children of id.
func (t *Tree) NumChildren(id ID) int {
	n := 0
	for c := t.nodes[id].firstChild; c != None; c = t.nodes[c].nextSibling {
		n++
	}
	return n
}

// Child returns the pos'th (0-based) child of id, or None if out of range.
func (t *Tree) Child(id ID, pos int) ID {
	i := 0
	for c := t.nodes[id].firstChild; c != None; c = t.nodes[c].nextSibling {
		if i == pos {
			return c
		}
		i++
	}
	return None
}

// ChildPos returns the 0-based ordinal position of child among its
// parent's children, or -1 if child is not a child of id.
func (t *Tree) ChildPos(id, child ID) int {
	i := 0
	for c := t.nodes[id].firstChild; c != None; c = t.nodes[c].nextSibling {
		if c == child {
			return i
		}
		i++
	}
	return -1
}

// FindChild returns the child of id whose key scalar equals name, or None.
func (t *Tree) FindChild(id ID, name Span) ID {
	for c := t.nodes[id].firstChild; c != None; c = t.nodes[c].nextSibling {
		if t.nodes[c].key.scalar.Equal(name) {
			return c
		}
	}
	return None
}

// FindChildStr is a convenience wrapper over FindChild for string keys.
func (t *Tree) FindChildStr(id ID, name string) ID {
	return t.FindChild(id, Span(name))
}

// Type returns id's full flag set.
func (t *Tree) Type(id ID) NodeFlags { return t.nodes[id].flags }

// Kind returns id's structural kind, masking off anchor/ref/tag/quote bits.
func (t *Tree) Kind(id ID) NodeFlags { return t.nodes[id].flags.Kind() }

func (t *Tree) IsMap(id ID) bool    { return t.nodes[id].flags.HasAny(MAP) }
func (t *Tree) IsSeq(id ID) bool    { return t.nodes[id].flags.HasAny(SEQ) }
func (t *Tree) IsVal(id ID) bool    { return t.nodes[id].flags.Kind() == VAL || t.nodes[id].flags.Kind() == KeyVal }
func (t *Tree) IsKeyVal(id ID) bool { return t.nodes[id].flags.Kind() == KeyVal }
func (t *Tree) IsDoc(id ID) bool    { return t.nodes[id].flags.HasAny(DOC) }
func (t *Tree) IsStream(id ID) bool { return t.nodes[id].flags.HasAny(STREAM) }
func (t *Tree) IsContainer(id ID) bool {
	return t.nodes[id].flags.HasAny(MAP | SEQ)
}

func (t *Tree) HasKey(id ID) bool { return t.nodes[id].flags.HasAny(KEY) }
func (t *Tree) HasVal(id ID) bool { return t.nodes[id].flags.HasAny(VAL) }

func (t *Tree) HasKeyAnchor(id ID) bool { return t.nodes[id].flags.HasAny(KEYANCHOR) }
func (t *Tree) HasValAnchor(id ID) bool { return t.nodes[id].flags.HasAny(VALANCHOR) }
func (t *Tree) IsKeyRef(id ID) bool     { return t.nodes[id].flags.HasAny(KEYREF) }
func (t *Tree) IsValRef(id ID) bool     { return t.nodes[id].flags.HasAny(VALREF) }

// HasAnchor reports whether id carries a key or val anchor equal to name.
func (t *Tree) HasAnchor(id ID, name Span) bool {
	n := &t.nodes[id]
	if n.flags.HasAny(KEYANCHOR) && n.key.anchor.Equal(name) {
		return true
	}
	if n.flags.HasAny(VALANCHOR) && n.val.anchor.Equal(name) {
		return true
	}
	return false
}

// Key returns id's key scalar span. Empty if id has no key.
func (t *Tree) Key(id ID) Span { return t.nodes[id].key.scalar }

// Val returns id's value scalar span. Empty if id has no value.
func (t *Tree) Val(id ID) Span { return t.nodes[id].val.scalar }

// KeyTag returns id's key tag span.
func (t *Tree) KeyTag(id ID) Span { return t.nodes[id].key.tag }

// ValTag returns id's value tag span.
func (t *Tree) ValTag(id ID) Span { return t.nodes[id].val.tag }

// KeyAnchor returns id's key anchor/alias-target name span.
func (t *Tree) KeyAnchor(id ID) Span { return t.nodes[id].key.anchor }

// ValAnchor returns id's value anchor/alias-target name span.
func (t *Tree) ValAnchor(id ID) Span { return t.nodes[id].val.anchor }

// SetKey sets id's key scalar and adds the KEY flag.
func (t *Tree) SetKey(id ID, s Span) {
	n := &t.nodes[id]
	n.key.scalar = s
	n.flags |= KEY
}

// SetVal sets id's value scalar and adds the VAL flag.
func (t *Tree) SetVal(id ID, s Span) {
	n := &t.nodes[id]
	n.val.scalar = s
	n.flags |= VAL
}

// SetKeyAnchor records name as id's key anchor.
func (t *Tree) SetKeyAnchor(id ID, name Span) {
	n := &t.nodes[id]
	n.key.anchor = name
	n.flags |= KEYANCHOR
}

// SetValAnchor records name as id's value anchor.
func (t *Tree) SetValAnchor(id ID, name Span) {
	n := &t.nodes[id]
	n.val.anchor = name
	n.flags |= VALANCHOR
}

// SetKeyRef marks id's key as an alias naming target.
func (t *Tree) SetKeyRef(id ID, target Span) {
	n := &t.nodes[id]
	n.key.anchor = target
	n.flags |= KEYREF
}

// SetValRef marks id's value as an alias naming target.
func (t *Tree) SetValRef(id ID, target Span) {
	n := &t.nodes[id]
	n.val.anchor = target
	n.flags |= VALREF
}

// SetKeyTag sets id's key tag.
func (t *Tree) SetKeyTag(id ID, s Span) {
	n := &t.nodes[id]
	n.key.tag = s
	n.flags |= KEYTAG
}

// SetValTag sets id's value tag.
func (t *Tree) SetValTag(id ID, s Span) {
	n := &t.nodes[id]
	n.val.tag = s
	n.flags |= VALTAG
}
