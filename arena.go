package rapidyaml

import (
	"fmt"
	"unsafe"
)

// Allocator provisions and releases the byte buffers backing a Tree's
// string arena. hint, when non-nil, is the buffer being replaced; it is
// advisory only, a pooled allocator may use it to return memory to a pool,
// the default allocator ignores it.
type Allocator interface {
	Allocate(size int, hint []byte) ([]byte, error)
	Free(buf []byte)
}

// defaultAllocator is the GC-backed Allocator used when a Tree is built
// without WithAllocator. Allocate never fails; Free is a no-op, since the
// garbage collector reclaims the buffer once unreferenced.
type defaultAllocator struct{}

func (defaultAllocator) Allocate(size int, _ []byte) ([]byte, error) {
	return make([]byte, size), nil
}

func (defaultAllocator) Free([]byte) {}

const minArenaCap = 16

// StringArena is a growable, append-only byte buffer holding scalar, tag,
// and anchor payloads for a Tree. Spans handed out by Append remain valid
// addresses until the arena grows, at which point the Tree relocates every
// arena-resident span it knows about before returning control to the
// caller; no span ever outlives a grow with a stale address.
type StringArena struct {
	buf   []byte
	pos   int
	alloc Allocator
}

func newStringArena(alloc Allocator) *StringArena {
	if alloc == nil {
		alloc = defaultAllocator{}
	}
	return &StringArena{alloc: alloc}
}

// Size returns the number of bytes appended so far.
func (a *StringArena) Size() int { return a.pos }

// Capacity returns the current backing buffer length.
func (a *StringArena) Capacity() int { return len(a.buf) }

// Contains reports whether span s is backed by this arena's current buffer,
// using address-range comparison rather than content comparison. Used to
// decide which spans require relocation on grow.
func (a *StringArena) Contains(s Span) bool {
	if len(a.buf) == 0 || len(s) == 0 {
		return false
	}
	base := unsafe.Pointer(unsafe.SliceData(a.buf))
	ptr := unsafe.Pointer(unsafe.SliceData([]byte(s)))
	baseAddr := uintptr(base)
	ptrAddr := uintptr(ptr)
	return ptrAddr >= baseAddr && ptrAddr+uintptr(len(s)) <= baseAddr+uintptr(len(a.buf))
}

// offsetOf returns s's byte offset within the arena's current buffer. The
// caller must have already confirmed Contains(s).
func (a *StringArena) offsetOf(s Span) int {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(a.buf)))
	ptr := uintptr(unsafe.Pointer(unsafe.SliceData([]byte(s))))
	return int(ptr - base)
}

// Reserve grows the backing buffer to at least newCap bytes, relocating via
// relocate if the buffer's address changes. A no-op if newCap does not
// exceed the current capacity.
func (a *StringArena) Reserve(newCap int, relocate func(oldBuf []byte, newBuf []byte)) error {
	if newCap <= len(a.buf) {
		return nil
	}
	newBuf, err := a.alloc.Allocate(newCap, a.buf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAllocFailed, err)
	}
	copy(newBuf, a.buf[:a.pos])
	old := a.buf
	a.buf = newBuf
	if relocate != nil {
		relocate(old, a.buf)
	}
	a.alloc.Free(old)
	return nil
}

// Append copies data into the arena, growing first if needed, and returns a
// Span over the newly written region.
func (a *StringArena) Append(data []byte, relocate func(oldBuf, newBuf []byte)) (Span, error) {
	needed := a.pos + len(data)
	if needed > len(a.buf) {
		newCap := len(a.buf) * 2
		if newCap < needed {
			newCap = needed
		}
		if newCap < minArenaCap {
			newCap = minArenaCap
		}
		if err := a.Reserve(newCap, relocate); err != nil {
			return nil, err
		}
	}
	start := a.pos
	copy(a.buf[start:], data)
	a.pos += len(data)
	return Span(a.buf[start:a.pos]), nil
}

// AppendString is a convenience wrapper over Append for string payloads.
func (a *StringArena) AppendString(s string, relocate func(oldBuf, newBuf []byte)) (Span, error) {
	return a.Append([]byte(s), relocate)
}

// relocateSpan recomputes s's address within newBuf given that s previously
// pointed somewhere inside oldBuf, preserving its offset and length.
func relocateSpan(s Span, oldBuf, newBuf []byte) Span {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(oldBuf)))
	ptr := uintptr(unsafe.Pointer(unsafe.SliceData([]byte(s))))
	offset := int(ptr - base)
	return Span(newBuf[offset : offset+len(s)])
}
