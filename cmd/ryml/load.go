package main

import (
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/scott-cotton/cli"

	rapidyaml "github.com/davemers0160/rapidyaml"
)

func runLoad(cfg *LoadConfig, cc *cli.Context, args []string) error {
	return forEachFile(args, func(name string, data []byte) error {
		tr, err := loadTree(data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		theLog.Info("loaded document", "file", name, "nodes", tr.Size(), "arenaBytes", tr.ArenaSize())
		fmt.Fprintf(cc.Out, "%s: %d nodes, %d bytes in the string arena\n", name, tr.Size(), tr.ArenaSize())
		return nil
	})
}

// loadTree parses YAML text with goccy/go-yaml's AST front end and builds
// a Tree from it, preserving anchors, aliases, and merge keys so a later
// Resolve can expand them. This is the external-parser collaborator the
// core tree is deliberately agnostic about.
func loadTree(data []byte) (*rapidyaml.Tree, error) {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, err
	}

	tr := rapidyaml.New()
	tr.Reserve(64, len(data))
	root := tr.RootID()

	switch len(file.Docs) {
	case 0:
		return tr, nil
	case 1:
		if file.Docs[0].Body == nil {
			return tr, nil
		}
		if _, err := fillRoot(tr, root, file.Docs[0].Body); err != nil {
			return nil, err
		}
		return tr, nil
	}

	if err := tr.ToStream(root); err != nil {
		return nil, err
	}
	prev := rapidyaml.None
	for _, doc := range file.Docs {
		id, err := tr.Claim()
		if err != nil {
			return nil, err
		}
		if err := tr.SetHierarchy(id, root, prev); err != nil {
			return nil, err
		}
		if err := tr.ToDoc(id); err != nil {
			return nil, err
		}
		if doc.Body != nil {
			if _, err := fillBody(tr, id, doc.Body); err != nil {
				return nil, err
			}
		}
		prev = id
	}
	return tr, nil
}

// fillRoot fills the tree's already-claimed root node from n, preserving
// the root's DOC/STREAM-eligible slot instead of claiming a fresh node.
func fillRoot(tr *rapidyaml.Tree, root rapidyaml.ID, n ast.Node) (rapidyaml.ID, error) {
	return fillBody(tr, root, n)
}

// fillBody fills an already-linked, keyless node id from n.
func fillBody(tr *rapidyaml.Tree, id rapidyaml.ID, n ast.Node) (rapidyaml.ID, error) {
	return fill(tr, id, rapidyaml.Span(nil), false, n)
}

// build claims a fresh node, links it at (parent, after), and fills it
// from n.
func build(tr *rapidyaml.Tree, parent, after rapidyaml.ID, key rapidyaml.Span, hasKey bool, n ast.Node) (rapidyaml.ID, error) {
	id, err := tr.Claim()
	if err != nil {
		return rapidyaml.None, err
	}
	if err := tr.SetHierarchy(id, parent, after); err != nil {
		return rapidyaml.None, err
	}
	return fill(tr, id, key, hasKey, n)
}

// fill sets id's own kind, scalar/container content, anchor, and tag from
// n. id must already be linked under its parent.
func fill(tr *rapidyaml.Tree, id rapidyaml.ID, key rapidyaml.Span, hasKey bool, n ast.Node) (rapidyaml.ID, error) {
	var anchor string
	hasAnchor := false
	var tag string
	hasTag := false
	for {
		switch v := n.(type) {
		case *ast.AnchorNode:
			anchor, hasAnchor = v.Name.String(), true
			n = v.Value
			continue
		case *ast.TagNode:
			tag, hasTag = v.Directive.String(), true
			n = v.Value
			continue
		}
		break
	}

	switch v := n.(type) {
	case *ast.AliasNode:
		target := v.Value.String()
		if err := toScalar(tr, id, key, hasKey, rapidyaml.Span("*"+target)); err != nil {
			return rapidyaml.None, err
		}
		tr.SetValRef(id, rapidyaml.Span(target))

	case *ast.MappingNode:
		if err := toContainer(tr, id, key, hasKey, true); err != nil {
			return rapidyaml.None, err
		}
		prev := rapidyaml.None
		for _, mv := range v.Values {
			childID, err := buildMapEntry(tr, id, prev, mv)
			if err != nil {
				return rapidyaml.None, err
			}
			prev = childID
		}

	case *ast.SequenceNode:
		if err := toContainer(tr, id, key, hasKey, false); err != nil {
			return rapidyaml.None, err
		}
		prev := rapidyaml.None
		for _, item := range v.Values {
			childID, err := build(tr, id, prev, nil, false, item)
			if err != nil {
				return rapidyaml.None, err
			}
			prev = childID
		}

	default:
		if err := toScalar(tr, id, key, hasKey, rapidyaml.Span(scalarString(n))); err != nil {
			return rapidyaml.None, err
		}
	}

	if hasAnchor {
		tr.SetValAnchor(id, rapidyaml.Span(anchor))
	}
	if hasTag {
		tr.SetValTag(id, rapidyaml.Span(tag))
	}
	return id, nil
}

func toScalar(tr *rapidyaml.Tree, id rapidyaml.ID, key rapidyaml.Span, hasKey bool, val rapidyaml.Span) error {
	if hasKey {
		return tr.ToKeyVal(id, key, val)
	}
	return tr.ToVal(id, val)
}

func toContainer(tr *rapidyaml.Tree, id rapidyaml.ID, key rapidyaml.Span, hasKey, isMap bool) error {
	var k rapidyaml.Span
	if hasKey {
		k = key
	}
	if isMap {
		return tr.ToMap(id, k)
	}
	return tr.ToSeq(id, k)
}

// buildMapEntry builds the single child node representing one mapping
// entry, folding goccy's separate key/value AST nodes into rapidyaml's
// one-node-carries-both-key-and-val representation. A "<<" merge key gets
// its own builder since its value is an alias or a sequence of aliases,
// never a plain scalar or container.
func buildMapEntry(tr *rapidyaml.Tree, parent, after rapidyaml.ID, mv *ast.MappingValueNode) (rapidyaml.ID, error) {
	if _, ok := mv.Key.(*ast.MergeKeyNode); ok {
		return buildMergeEntry(tr, parent, after, mv.Value)
	}
	return build(tr, parent, after, rapidyaml.Span(scalarString(mv.Key)), true, mv.Value)
}

func buildMergeEntry(tr *rapidyaml.Tree, parent, after rapidyaml.ID, val ast.Node) (rapidyaml.ID, error) {
	mergeKey := rapidyaml.Span("<<")

	if seq, ok := val.(*ast.SequenceNode); ok {
		id, err := tr.Claim()
		if err != nil {
			return rapidyaml.None, err
		}
		if err := tr.SetHierarchy(id, parent, after); err != nil {
			return rapidyaml.None, err
		}
		if err := tr.ToSeq(id, mergeKey); err != nil {
			return rapidyaml.None, err
		}
		prev := rapidyaml.None
		for _, item := range seq.Values {
			alias, ok := item.(*ast.AliasNode)
			if !ok {
				return rapidyaml.None, fmt.Errorf("merge key sequence entry is not an alias: %T", item)
			}
			refID, err := build(tr, id, prev, nil, false, alias)
			if err != nil {
				return rapidyaml.None, err
			}
			prev = refID
		}
		return id, nil
	}

	alias, ok := val.(*ast.AliasNode)
	if !ok {
		return rapidyaml.None, fmt.Errorf("merge key value is not an alias or a sequence of aliases: %T", val)
	}
	return build(tr, parent, after, mergeKey, true, alias)
}

// scalarString extracts a scalar node's textual value. goccy's scalar
// nodes (string/integer/float/bool/null) all implement GetValue(); the null
// node's value is nil, which yields "null", matching the merge/alias code
// paths that only ever see non-null targets.
func scalarString(n ast.Node) string {
	if v, ok := n.(interface{ GetValue() any }); ok {
		if v.GetValue() == nil {
			return "null"
		}
		return fmt.Sprintf("%v", v.GetValue())
	}
	return n.String()
}
