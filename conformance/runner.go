// Package conformance drives TestSuite scenarios through the real parser
// and evaluator and checks their outcome against each case's Expectation.
// Grounded on the teacher's own conformance runner (load YAML, evaluate,
// compare against an expectation, accumulate pass/fail/skip counts),
// retargeted from a MOO verb-call/database harness to plain Losp source
// evaluated in a fresh root scope.
package conformance

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/chebwaplus/losp/eval"
	"github.com/chebwaplus/losp/parser"
	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/value"
)

// TestResult records the outcome of running a single TestCase.
type TestResult struct {
	Suite   string
	Test    TestCase
	Passed  bool
	Skipped bool
	Reason  string // skip reason, or failure detail when !Passed
}

// SummaryStats tallies a batch of TestResults.
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// Runner evaluates TestSuites, one fresh Evaluator and root scope per
// suite so suites can't leak bindings into each other.
type Runner struct {
	NewEvaluator func() *eval.Evaluator
}

// NewRunner builds a Runner using eval.NewEvaluator for every suite.
func NewRunner() *Runner {
	return &Runner{NewEvaluator: eval.NewEvaluator}
}

// RunAll runs every test in every suite and returns one TestResult per
// TestCase, in suite then test order.
func (r *Runner) RunAll(suites []TestSuite) []TestResult {
	var out []TestResult
	for _, suite := range suites {
		out = append(out, r.RunSuite(suite)...)
	}
	return out
}

// RunSuite runs every test in one suite, sharing a single root scope (and
// the suite's Setup, if any) across all of its tests the way the teacher's
// own per-suite fixture setup does.
func (r *Runner) RunSuite(suite TestSuite) []TestResult {
	ev := r.NewEvaluator()
	rootScope := scope.New()

	if suite.Setup != nil {
		if res := evalSource(ev, suite.Setup.Code, rootScope); isError(res) {
			results := make([]TestResult, len(suite.Tests))
			for i, tc := range suite.Tests {
				results[i] = TestResult{Suite: suite.Name, Test: tc,
					Reason: "suite setup failed: " + res.(result.Error).Error()}
			}
			return results
		}
	}

	results := make([]TestResult, 0, len(suite.Tests))
	for _, tc := range suite.Tests {
		results = append(results, r.runCase(suite.Name, ev, rootScope, tc))
	}
	return results
}

func (r *Runner) runCase(suiteName string, ev *eval.Evaluator, rootScope *scope.Context, tc TestCase) TestResult {
	if skip, reason := tc.IsSkipped(); skip {
		return TestResult{Suite: suiteName, Test: tc, Skipped: true, Reason: reason}
	}

	caseScope := scope.NewChild(rootScope)
	if tc.Setup != nil {
		if res := evalSource(ev, tc.Setup.Code, caseScope); isError(res) {
			return TestResult{Suite: suiteName, Test: tc,
				Reason: "test setup failed: " + res.(result.Error).Error()}
		}
	}

	got := evalSource(ev, tc.Code, caseScope)
	ok, reason := checkExpectation(got, tc.Expect)
	return TestResult{Suite: suiteName, Test: tc, Passed: ok, Reason: reason}
}

// evalSource parses and evaluates src in sc, waiting out any suspension so
// the caller always sees a terminal Value or Error. A single top-level
// form is evaluated on its own, not through Parse's wrapping list.
func evalSource(ev *eval.Evaluator, src string, sc *scope.Context) result.Result {
	node, err := parser.Parse(src)
	if err != nil {
		return result.NewError("PARSE", err.Error())
	}
	if root, ok := node.(*parser.ListNode); ok && root.Children().Len() == 1 {
		node = root.Children().At(0)
	}
	res := ev.Eval(node, sc)
	if asyncR, ok := res.(result.Async); ok {
		res = asyncR.Proxy.Wait()
	}
	return res
}

func isError(r result.Result) bool {
	_, ok := r.(result.Error)
	return ok
}

// checkExpectation compares got against exp, checking whichever fields exp
// sets. An Expectation with none of Value/Error/Type/Match/Contains/Range
// set is satisfied by any non-Error result.
func checkExpectation(got result.Result, exp Expectation) (bool, string) {
	if e, ok := got.(result.Error); ok {
		if exp.Error == "" {
			return false, fmt.Sprintf("evaluation failed: %s", e.Error())
		}
		if e.Source != exp.Error {
			return false, fmt.Sprintf("expected error %q, got %q (%s)", exp.Error, e.Source, e.Message)
		}
		return true, ""
	}
	if exp.Error != "" {
		return false, fmt.Sprintf("expected error %q, evaluation succeeded instead", exp.Error)
	}

	v, ok := got.(result.Value)
	if !ok {
		return false, fmt.Sprintf("unexpected result kind %s", got.Kind())
	}
	produced := v.First()

	if exp.Value != nil {
		want := value.FromHost(exp.Value)
		if !produced.Equal(want) {
			return false, fmt.Sprintf("expected value %s, got %s", want.String(), produced.String())
		}
	}

	if exp.Values != nil {
		if len(v.Values) != len(exp.Values) {
			return false, fmt.Sprintf("expected %d emitted values, got %d", len(exp.Values), len(v.Values))
		}
		for i, want := range exp.Values {
			wantV := value.FromHost(want)
			if !v.Values[i].Equal(wantV) {
				return false, fmt.Sprintf("emitted value %d: expected %s, got %s", i, wantV.String(), v.Values[i].String())
			}
		}
	}

	if exp.Type != "" && produced.Kind().String() != exp.Type {
		return false, fmt.Sprintf("expected type %s, got %s", exp.Type, produced.Kind().String())
	}

	if exp.Match != "" {
		re, err := regexp.Compile(exp.Match)
		if err != nil {
			return false, fmt.Sprintf("invalid match pattern %q: %v", exp.Match, err)
		}
		if !re.MatchString(produced.String()) {
			return false, fmt.Sprintf("value %s does not match pattern %q", produced.String(), exp.Match)
		}
	}

	if exp.Contains != nil {
		want := value.FromHost(exp.Contains)
		if !containsValue(produced, want) {
			return false, fmt.Sprintf("%s does not contain %s", produced.String(), want.String())
		}
	}

	if len(exp.Range) == 2 {
		f, ok := asFloat(produced)
		if !ok {
			return false, fmt.Sprintf("value %s is not numeric, cannot check range", produced.String())
		}
		if f < exp.Range[0] || f > exp.Range[1] {
			return false, fmt.Sprintf("value %v outside range [%v, %v]", f, exp.Range[0], exp.Range[1])
		}
	}

	return true, ""
}

func containsValue(haystack, needle value.Value) bool {
	switch h := haystack.(type) {
	case *value.List:
		for _, e := range h.Elements {
			if e.Equal(needle) {
				return true
			}
		}
		return false
	case value.String:
		n, ok := needle.(value.String)
		return ok && strings.Contains(string(h), string(n))
	default:
		return false
	}
}

func asFloat(v value.Value) (float64, bool) {
	switch t := v.(type) {
	case value.Int:
		return float64(t), true
	case value.Float:
		return float64(t), true
	default:
		return 0, false
	}
}

// ComputeStats tallies a batch of TestResults.
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Skipped:
			stats.Skipped++
		case r.Passed:
			stats.Passed++
		default:
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary.
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// FormatFailures renders every failing (non-skipped, non-passed) result as
// one line per failure, for test-output diagnostics.
func FormatFailures(results []TestResult) string {
	var b strings.Builder
	for _, r := range results {
		if r.Skipped || r.Passed {
			continue
		}
		fmt.Fprintf(&b, "%s/%s: %s\n", r.Suite, r.Test.Name, r.Reason)
	}
	return b.String()
}
