package writer

import (
	"strconv"
	"strings"

	"github.com/chebwaplus/losp/parser"
)

// Dump renders n as an indented tree, one construct per line. It is a
// diagnostic view of the parsed structure (including a special operator's
// hidden children, which Print/PrintTyped never see), not a reparsable
// unparse of the original source.
func Dump(n parser.Node) string {
	var b strings.Builder
	dumpNode(&b, n, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dumpChildren(b *strings.Builder, items []parser.Node, depth int) {
	for _, c := range items {
		dumpNode(b, c, depth)
	}
}

func dumpNode(b *strings.Builder, n parser.Node, depth int) {
	switch t := n.(type) {
	case *parser.IdentifierNode:
		indent(b, depth)
		b.WriteString(t.Name + "\n")

	case *parser.LiteralNode:
		indent(b, depth)
		b.WriteString(PrintTyped(t.Value) + "\n")

	case *parser.OperatorNode:
		indent(b, depth)
		b.WriteString("(" + t.Id() + "\n")
		dumpChildren(b, t.Children().Items(), depth+1)
		indent(b, depth)
		b.WriteString(")\n")

	case *parser.SpecialOperatorNode:
		indent(b, depth)
		b.WriteString(t.Id() + "(\n")
		dumpChildren(b, t.Children().Items(), depth+1)
		if t.Hidden.Len() > 0 {
			indent(b, depth+1)
			b.WriteString("; hidden:\n")
			dumpChildren(b, t.Hidden.Items(), depth+2)
		}
		indent(b, depth)
		b.WriteString(")\n")

	case *parser.FilterNode:
		sym := "#("
		if t.Chained {
			sym = "%("
		}
		indent(b, depth)
		b.WriteString(sym + "\n")
		dumpChildren(b, t.Children().Items(), depth+1)
		indent(b, depth)
		b.WriteString(")\n")
		if t.Next != nil {
			dumpNode(b, t.Next, depth)
		}

	case *parser.KeyValueNode:
		indent(b, depth)
		b.WriteString("{" + strings.Join(t.Tags, "") + t.Key() + "\n")
		dumpChildren(b, t.Children().Items(), depth+1)
		indent(b, depth)
		b.WriteString("}\n")

	case *parser.ObjectLiteralNode:
		indent(b, depth)
		b.WriteString("{{\n")
		dumpChildren(b, t.Children().Items(), depth+1)
		indent(b, depth)
		b.WriteString("}}\n")

	case *parser.ListNode:
		indent(b, depth)
		b.WriteString("[\n")
		dumpChildren(b, t.Children().Items(), depth+1)
		indent(b, depth)
		b.WriteString("]\n")

	case *parser.FunctionNode:
		indent(b, depth)
		b.WriteString("FN(" + strconv.Itoa(len(t.ParamNames())) + " params\n")
		if t.Params != nil {
			dumpChildren(b, t.Params.Children().Items(), depth+1)
		}
		dumpChildren(b, t.Children().Items(), depth+1)
		indent(b, depth)
		b.WriteString(")\n")

	default:
		indent(b, depth)
		b.WriteString("<unknown node>\n")
	}
}
