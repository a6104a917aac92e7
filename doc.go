// Package rapidyaml implements an in-memory, arena-allocated document tree
// for YAML-shaped data.
//
// A Tree holds a flat, pooled array of node records addressed by ID, with
// intrusive doubly-linked sibling lists and a free list for reuse. Scalar,
// tag, and anchor payloads live in a companion string arena whose spans are
// relocated in place whenever the arena grows. A separate Resolve pass
// implements YAML 1.2 anchor, alias, and merge-key ("<<") semantics over an
// already-built tree.
//
// This package does not parse or emit YAML text, does not convert to JSON,
// and does not provide a navigation façade; it is the data model a parser
// populates and an emitter walks. Those concerns live outside the package,
// for example in cmd/ryml, which wires a YAML decoder, a colorized dumper,
// and a diff tool around this core.
package rapidyaml
