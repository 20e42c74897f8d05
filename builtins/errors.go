package builtins

import (
	"fmt"

	"github.com/chebwaplus/losp/result"
)

func errAlreadySpecial(name string) error {
	return fmt.Errorf("%q is a special operator and cannot be overridden via register_operator", name)
}

func errReservedPrefix(name string) error {
	return fmt.Errorf("%q starts with the reserved LOSP: prefix", name)
}

func argError(op string, want string, got int) result.Result {
	return result.NewError("ARGS", op+" requires "+want+", got "+fmtInt(got)+" arguments")
}

func typeError(op string, msg string) result.Result {
	return result.NewError("TYPE", op+": "+msg)
}

func fmtInt(n int) string {
	return fmt.Sprintf("%d", n)
}
