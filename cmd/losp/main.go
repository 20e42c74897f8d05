// Command losp is a small embeddable-scripting-language host: it parses
// and evaluates Losp source from a flag or a file and prints the
// resulting value, error, or (if the program suspends) the completed
// value once its async proxy resolves. Grounded on the teacher's
// cmd/barn/main.go flag-per-concern shape, narrowed from a MOO database
// server's many inspection flags down to Losp's much smaller host
// surface: there is no object database to load, just source to run.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chebwaplus/losp/eval"
	"github.com/chebwaplus/losp/hostops"
	"github.com/chebwaplus/losp/parser"
	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/writer"
)

func main() {
	evalExpr := flag.String("eval", "", "Evaluate a Losp expression given on the command line")
	filePath := flag.String("file", "", "Evaluate a Losp program read from a file")
	tickLimit := flag.Int64("tick-limit", 1_000_000, "Abort evaluation after this many evaluator ticks (0 disables the limit)")
	typed := flag.Bool("typed", false, "Print the result in the type-annotated writer format")
	flag.Parse()

	if (*evalExpr == "") == (*filePath == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -eval or -file is required")
		os.Exit(2)
	}

	source := *evalExpr
	if *filePath != "" {
		data, err := os.ReadFile(*filePath)
		if err != nil {
			fatalf("reading %s: %v", *filePath, err)
		}
		source = string(data)
	}

	root, err := parser.Parse(source)
	if err != nil {
		fatalf("parse error: %v", err)
	}

	ev := eval.NewEvaluator()
	ev.TickLimit = *tickLimit
	if err := hostops.InstallHash(); err != nil {
		fatalf("installing $HASH: %v", err)
	}
	if err := hostops.InstallCrypt(ev.Registry); err != nil {
		fatalf("installing $CRYPT: %v", err)
	}

	r := ev.Eval(root, scope.New())
	if asyncR, ok := r.(result.Async); ok {
		r = asyncR.Proxy.Wait()
	}

	switch rr := r.(type) {
	case result.Error:
		fmt.Fprintf(os.Stderr, "%s: %s\n", rr.Source, rr.Message)
		os.Exit(1)
	case result.Value:
		for _, v := range rr.Values {
			if *typed {
				fmt.Println(writer.PrintTyped(v))
			} else {
				fmt.Println(writer.Print(v))
			}
		}
	default:
		fatalf("unexpected top-level result %T", r)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
