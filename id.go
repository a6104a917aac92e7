package rapidyaml

// ID is the index of a node within a Tree's node arena. It is the only
// valid handle to a node: there is no exported pointer type. An ID is only
// meaningful relative to the Tree that issued it.
type ID int32

// None is the null ID, used for "no parent", "no sibling", "not found",
// and as the list terminator for the free list.
const None ID = -1

// IsNone reports whether id is the null ID.
func (id ID) IsNone() bool {
	return id == None
}
