package hostops

import (
	"github.com/amoghe/go-crypt"

	"github.com/chebwaplus/losp/builtins"
	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/value"
)

// InstallCrypt registers $CRYPT as an ordinary host operator: $CRYPT(pass
// salt) returns the traditional Unix DES-crypt digest of pass under salt.
// Grounded on the teacher's own `cryptDESPlatform` (`builtins/crypto_unix.go`
// wraps libc crypt(3) via cgo, `builtins/crypto_windows.go` falls back to a
// pure-Go implementation); this module has no cgo build constraint to
// satisfy, so it uses the pure-Go github.com/amoghe/go-crypt everywhere,
// the same library the teacher's go.mod already carried as an indirect
// dependency of its Windows fallback path.
func InstallCrypt(reg *builtins.Registry) error {
	return reg.RegisterOperator("$CRYPT", func(sc *scope.Context, cr *result.ChildResults) result.Result {
		args := cr.Unkeyed()
		if len(args) != 2 {
			return result.NewError("ARGS", "$CRYPT requires exactly 2 arguments (password, salt)")
		}
		pass, ok1 := args[0].(value.String)
		salt, ok2 := args[1].(value.String)
		if !ok1 || !ok2 {
			return result.NewError("TYPE", "$CRYPT arguments must be strings")
		}
		digest, err := crypt.Crypt(string(pass), string(salt))
		if err != nil {
			return result.NewError("E_CRYPT", err.Error())
		}
		return result.NewValue(value.NewString(digest))
	})
}
