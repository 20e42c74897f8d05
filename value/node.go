package value

// Node is the minimal surface a parsed AST node exposes to the value
// model. It exists so that Lambda can hold a reference to its body nodes
// without this package importing the parser package — parser.Node must
// embed value.Node (it stores value.Value inside Literal nodes, so the
// dependency can only run one way). Callers that need the full AST API
// type-assert a value.Node back to parser.Node, which every concrete node
// type still satisfies.
type Node interface {
	NodeKind() string
}
