// Package hostops demonstrates both host-extension points a Losp embedder
// can use: a brand-new special operator registered via
// parser.RegisterSpecialOperator + eval.RegisterSpecialOperatorRunner, and
// a brand-new ordinary operator registered via
// builtins.Registry.RegisterOperator. Grounded on the teacher's own
// crypto builtins (`builtins/crypto_unix.go`/`crypto_windows.go`), which is
// itself a host-style addition bolted onto the standard table — the same
// shape, generalized here into Losp's two real extension seams.
package hostops

import (
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/chebwaplus/losp/eval"
	"github.com/chebwaplus/losp/parser"
	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/value"
)

// InstallHash registers the $HASH special operator: $HASH(expr) does not
// evaluate expr. Instead it hashes the text of expr's source token with
// BLAKE2b-256 and returns the raw digest wrapped as a value.Extrinsic.
// For a literal or identifier that token is the whole expression; for a
// compound expression it is only the opening token (e.g. "(" or the
// special operator's name), not the full source text.
// Keeping the argument unevaluated (hidden, never pushed) is the whole
// point of the demo: a special operator can inspect syntax a plain
// operator never sees, since plain operators only ever receive already-
// evaluated values.
func InstallHash() error {
	if err := parser.RegisterSpecialOperator("$HASH", prepareHash); err != nil {
		return err
	}
	return eval.RegisterSpecialOperatorRunner("$HASH", runHash)
}

func prepareHash(op *parser.OperatorNode) (*parser.SpecialOperatorNode, error) {
	items := op.Children().Items()
	if len(items) != 1 {
		return nil, arityError(op, "exactly 1 argument")
	}
	public := parser.NewChildren(parser.AdmitAll)
	hidden := parser.NewChildren(parser.AdmitAll)
	if err := hidden.Add(items[0]); err != nil {
		return nil, err
	}
	return parser.NewSpecialOperatorNode(op.SourceToken(), "$HASH", public, hidden), nil
}

func runHash(ev *eval.Evaluator, so *parser.SpecialOperatorNode, sc *scope.Context, cr *result.ChildResults) result.Result {
	src := so.Hidden.At(0).SourceToken().Text()
	sum := blake2b.Sum256([]byte(src))
	return result.NewValue(value.NewExtrinsic("blake2b-256", sum[:]))
}

func arityError(op *parser.OperatorNode, want string) error {
	return fmt.Errorf("%s requires %s, got %d", op.Id(), want, op.Children().Len())
}
