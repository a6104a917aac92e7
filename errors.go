package rapidyaml

import "errors"

// Sentinel errors returned by Tree operations. Wrap with fmt.Errorf("%w: ...")
// to attach context; callers should match with errors.Is.
var (
	// ErrInvalidNode is returned when an operation is given None or an id
	// outside the Tree's node arena.
	ErrInvalidNode = errors.New("rapidyaml: invalid node id")

	// ErrKindMismatch is returned when an operation's kind precondition is
	// violated, such as changing the kind of or releasing a node that still
	// has children, or resolving a key alias whose target is a container.
	ErrKindMismatch = errors.New("rapidyaml: node kind mismatch")

	// ErrAllocFailed wraps a failure from an Allocator.
	ErrAllocFailed = errors.New("rapidyaml: allocation failed")

	// ErrAliasNotFound is returned by Resolve when an alias has no prior
	// matching anchor.
	ErrAliasNotFound = errors.New("rapidyaml: alias not found")

	// ErrReleased is returned when an operation targets a node that has
	// already been released back to the free list.
	ErrReleased = errors.New("rapidyaml: node already released")
)
