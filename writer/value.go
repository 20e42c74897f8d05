// Package writer implements Losp's pretty-printer: a REPL-style value
// renderer and an indented AST dumper. Neither feeds back into
// evaluation — both are purely informational, read by a human or asserted
// on by a test. Grounded on the teacher's own `parser/unparse.go` (a
// type-switch walk that reassembles source text from the AST), adapted
// here to Losp's node/value kinds and narrower output contract: list
// rendering is `[v1 v2 ...]`, object rendering is a sequence of
// `{key value}` entries joined by spaces, and the type-annotated form
// prefixes every atom with `<type>`.
package writer

import (
	"strings"

	"github.com/chebwaplus/losp/value"
)

// Print renders v in the language's plain REPL form.
func Print(v value.Value) string {
	return render(v, false)
}

// PrintTyped renders v the same way as Print, except every atom (every
// leaf value: Null, Int, Float, Bool, String, Lambda, Extrinsic) is
// prefixed with its `<type>` tag.
func PrintTyped(v value.Value) string {
	return render(v, true)
}

func render(v value.Value, typed bool) string {
	switch t := v.(type) {
	case *value.List:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = render(e, typed)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case *value.Scripted:
		keys := t.Object.Keys()
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			val, _ := t.Object.Get(k)
			parts = append(parts, "{"+k+" "+render(val, typed)+"}")
		}
		return strings.Join(parts, " ")
	default:
		if typed {
			return "<" + v.Kind().String() + ">" + v.String()
		}
		return v.String()
	}
}
