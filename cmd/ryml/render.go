package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	rapidyaml "github.com/davemers0160/rapidyaml"
)

// colorAttr names a role a rendered token can play, independent of the
// node's kind, mirroring the teacher's (Type, Attr) color table.
type colorAttr int

const (
	keyColor colorAttr = iota
	valColor
	tagColor
	anchorColor
	refColor
	sepColor
)

type colorable struct {
	Kind rapidyaml.NodeFlags
	Attr colorAttr
}

type colors struct {
	Default func(string, ...any) string
	Map     map[colorable]func(string, ...any) string
}

func newColors() *colors {
	c := &colors{
		Default: fmt.Sprintf,
		Map:     map[colorable]func(string, ...any) string{},
	}
	c.Map[colorable{Attr: keyColor}] = color.New(color.FgCyan).SprintfFunc()
	c.Map[colorable{Attr: valColor}] = color.New(color.FgGreen).SprintfFunc()
	c.Map[colorable{Attr: tagColor}] = color.New(color.FgBlue).SprintfFunc()
	c.Map[colorable{Attr: anchorColor}] = color.New(color.FgYellow).SprintfFunc()
	c.Map[colorable{Attr: refColor}] = color.New(color.FgMagenta).SprintfFunc()
	c.Map[colorable{Attr: sepColor}] = color.New(color.FgHiBlack).SprintfFunc()
	return c
}

func (c *colors) sprint(attr colorAttr, kind rapidyaml.NodeFlags, s string) string {
	if f, ok := c.Map[colorable{Kind: kind, Attr: attr}]; ok {
		return f("%s", s)
	}
	if f, ok := c.Map[colorable{Attr: attr}]; ok {
		return f("%s", s)
	}
	return c.Default("%s", s)
}

// renderer writes a plain-text or ANSI-colored YAML-ish dump of a tree,
// one line per scalar/key-val node, indented by depth.
type renderer struct {
	w      io.Writer
	colors *colors
}

func newRenderer(w io.Writer, useColor bool) *renderer {
	r := &renderer{w: w}
	if useColor {
		r.colors = newColors()
	}
	return r
}

func (r *renderer) paint(attr colorAttr, kind rapidyaml.NodeFlags, s string) string {
	if r.colors == nil {
		return s
	}
	return r.colors.sprint(attr, kind, s)
}

func (r *renderer) Dump(t *rapidyaml.Tree, id rapidyaml.ID) {
	r.dump(t, id, 0)
}

func (r *renderer) dump(t *rapidyaml.Tree, id rapidyaml.ID, depth int) {
	indent := strings.Repeat("  ", depth)
	kind := t.Kind(id)

	switch {
	case t.IsStream(id):
		// a stream has no scalar content of its own; only its document
		// children print.
	case t.HasKey(id):
		key := r.paint(keyColor, kind, t.Key(id).String())
		sep := r.paint(sepColor, kind, ":")
		if t.HasKeyAnchor(id) {
			key = key + r.paint(anchorColor, kind, " &"+t.KeyAnchor(id).String())
		}
		if t.IsContainer(id) {
			fmt.Fprintf(r.w, "%s%s%s\n", indent, key, sep)
		} else {
			fmt.Fprintf(r.w, "%s%s%s %s\n", indent, key, sep, r.renderVal(t, id, kind))
		}
	case t.IsDoc(id):
		fmt.Fprintf(r.w, "%s---\n", indent)
		if !t.IsContainer(id) && t.IsVal(id) {
			fmt.Fprintf(r.w, "%s%s\n", indent, r.renderVal(t, id, kind))
		}
	case id == t.RootID() && t.IsVal(id):
		fmt.Fprintf(r.w, "%s%s\n", indent, r.renderVal(t, id, kind))
	case t.IsContainer(id):
		// anonymous sequence entry that is itself a container: nothing to
		// print on this line, recurse into children below.
	default:
		fmt.Fprintf(r.w, "%s- %s\n", indent, r.renderVal(t, id, kind))
	}

	childIndent := depth
	if t.HasKey(id) && t.IsContainer(id) {
		childIndent = depth + 1
	}
	for c := t.FirstChild(id); c != rapidyaml.None; c = t.NextSibling(c) {
		r.dump(t, c, childIndent)
	}
}

func (r *renderer) renderVal(t *rapidyaml.Tree, id rapidyaml.ID, kind rapidyaml.NodeFlags) string {
	if t.IsValRef(id) {
		return r.paint(refColor, kind, "*"+t.ValAnchor(id).String())
	}
	val := r.paint(valColor, kind, t.Val(id).String())
	if t.HasValAnchor(id) {
		val = r.paint(anchorColor, kind, "&"+t.ValAnchor(id).String()+" ") + val
	}
	if t.Type(id).HasAny(rapidyaml.VALTAG) {
		val = r.paint(tagColor, kind, "!"+t.ValTag(id).String()+" ") + val
	}
	return val
}
