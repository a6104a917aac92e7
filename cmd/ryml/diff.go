package main

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	rapidyaml "github.com/davemers0160/rapidyaml"
)

func runDiff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: diff takes exactly two files", cli.ErrUsage)
	}
	a, err := loadResolvedFile(args[0])
	if err != nil {
		return err
	}
	b, err := loadResolvedFile(args[1])
	if err != nil {
		return err
	}
	if cfg.JSONPatch {
		return runJSONPatchDiff(cc, a, b)
	}
	return runTextDiff(cc, a, b)
}

func loadResolvedFile(name string) (*rapidyaml.Tree, error) {
	data, err := readFile(name)
	if err != nil {
		return nil, err
	}
	tr, err := loadTree(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := tr.Resolve(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return tr, nil
}

func runTextDiff(cc *cli.Context, a, b *rapidyaml.Tree) error {
	var sa, sb strings.Builder
	newRenderer(&sa, false).Dump(a, a.RootID())
	newRenderer(&sb, false).Dump(b, b.RootID())

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(sa.String(), sb.String(), false)
	fmt.Fprintln(cc.Out, dmp.DiffPrettyText(diffs))
	return nil
}

// patchOp mirrors one RFC 6902 JSON Patch operation.
type patchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

func runJSONPatchDiff(cc *cli.Context, a, b *rapidyaml.Tree) error {
	var ops []patchOp
	genericDiff("", toGeneric(a, a.RootID()), toGeneric(b, b.RootID()), &ops)
	if ops == nil {
		ops = []patchOp{}
	}

	buf, err := json.Marshal(ops)
	if err != nil {
		return err
	}
	// Round-trip the generated patch through the real RFC 6902 decoder,
	// so a shape mistake in genericDiff surfaces here rather than only at
	// the consumer's Apply call.
	if _, err := jsonpatch.DecodePatch(buf); err != nil {
		return fmt.Errorf("generated patch failed to decode: %w", err)
	}
	fmt.Fprintln(cc.Out, string(buf))
	return nil
}

// toGeneric converts the subtree rooted at id into plain Go values
// (map[string]any, []any, string) suitable for a structural diff.
func toGeneric(tr *rapidyaml.Tree, id rapidyaml.ID) any {
	switch {
	case tr.IsMap(id):
		m := map[string]any{}
		for c := tr.FirstChild(id); c != rapidyaml.None; c = tr.NextSibling(c) {
			m[tr.Key(c).String()] = toGeneric(tr, c)
		}
		return m
	case tr.IsSeq(id):
		s := []any{}
		for c := tr.FirstChild(id); c != rapidyaml.None; c = tr.NextSibling(c) {
			s = append(s, toGeneric(tr, c))
		}
		return s
	default:
		return tr.Val(id).String()
	}
}

// genericDiff walks a and b together, appending add/remove/replace
// operations at their JSON Pointer path whenever they disagree.
func genericDiff(path string, a, b any, ops *[]patchOp) {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok {
			*ops = append(*ops, patchOp{Op: "replace", Path: path, Value: b})
			return
		}
		for k, v := range av {
			cp := path + "/" + jsonPointerEscape(k)
			if bvv, ok := bv[k]; ok {
				genericDiff(cp, v, bvv, ops)
			} else {
				*ops = append(*ops, patchOp{Op: "remove", Path: cp})
			}
		}
		for k, v := range bv {
			if _, ok := av[k]; !ok {
				*ops = append(*ops, patchOp{Op: "add", Path: path + "/" + jsonPointerEscape(k), Value: v})
			}
		}

	case []any:
		bv, ok := b.([]any)
		if !ok || len(bv) != len(av) {
			*ops = append(*ops, patchOp{Op: "replace", Path: path, Value: b})
			return
		}
		for i := range av {
			genericDiff(path+"/"+strconv.Itoa(i), av[i], bv[i], ops)
		}

	default:
		if !reflect.DeepEqual(a, b) {
			*ops = append(*ops, patchOp{Op: "replace", Path: path, Value: b})
		}
	}
}

func jsonPointerEscape(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}
