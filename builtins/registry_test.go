package builtins

import (
	"testing"

	"github.com/chebwaplus/losp/result"
	"github.com/chebwaplus/losp/scope"
	"github.com/chebwaplus/losp/value"
)

func call(t *testing.T, reg *Registry, name string, unkeyed []value.Value, keyed map[string]value.Value) result.Result {
	t.Helper()
	fn, ok := reg.Lookup(name)
	if !ok {
		t.Fatalf("no operator registered for %q", name)
	}
	cr := result.NewChildResults()
	for _, v := range unkeyed {
		cr.Add(result.NewValue(v))
	}
	for k, v := range keyed {
		cr.Add(result.NewKeyedValue(k, v))
	}
	return fn(scope.New(), cr)
}

func firstValue(t *testing.T, r result.Result) value.Value {
	t.Helper()
	v, ok := r.(result.Value)
	if !ok {
		t.Fatalf("expected a Value result, got %#v", r)
	}
	return v.First()
}

func TestConcatStringifiesAndJoinsWithDelim(t *testing.T) {
	reg := NewRegistry()
	r := call(t, reg, "CONCAT",
		[]value.Value{value.NewString("a"), value.NewInt(1), value.NewBool(true)},
		map[string]value.Value{"delim": value.NewString(",")})
	got := string(firstValue(t, r).(value.String))
	if got != "a,1,true" {
		t.Fatalf("CONCAT with delim = %q, want %q", got, "a,1,true")
	}
}

func TestConcatWithoutDelim(t *testing.T) {
	reg := NewRegistry()
	r := call(t, reg, "CONCAT", []value.Value{value.NewString("a"), value.NewString("b")}, nil)
	got := string(firstValue(t, r).(value.String))
	if got != "ab" {
		t.Fatalf("CONCAT = %q, want %q", got, "ab")
	}
}

func TestAnyAllStrictVersusTruthy(t *testing.T) {
	reg := NewRegistry()

	r := call(t, reg, "ANY", []value.Value{value.NewInt(0), value.NewString("x")}, nil)
	if bool(firstValue(t, r).(value.Bool)) {
		t.Fatal("strict ANY(0, \"x\") should be false: neither is strictly true")
	}

	r = call(t, reg, "ANY", []value.Value{value.NewInt(0), value.NewString("x")},
		map[string]value.Value{"~": value.NewBool(true)})
	if !bool(firstValue(t, r).(value.Bool)) {
		t.Fatal("truthy ANY(0, \"x\") should be true: \"x\" is truthy")
	}
}

func TestAnyRequiresAtLeastOneArgument(t *testing.T) {
	reg := NewRegistry()
	r := call(t, reg, "ANY", nil, nil)
	e, ok := r.(result.Error)
	if !ok || e.Message != "at least one argument is required" {
		t.Fatalf("ANY() = %#v, want the arity error", r)
	}
}

func TestStartsCaseInsensitiveOption(t *testing.T) {
	reg := NewRegistry()
	r := call(t, reg, "STARTS", []value.Value{value.NewString("Hello"), value.NewString("he")},
		map[string]value.Value{"i": value.NewBool(true)})
	if !bool(firstValue(t, r).(value.Bool)) {
		t.Fatal("STARTS with i=true should ignore case")
	}

	r = call(t, reg, "STARTS", []value.Value{value.NewString("Hello"), value.NewString("he")}, nil)
	if bool(firstValue(t, r).(value.Bool)) {
		t.Fatal("STARTS without the i option should be case-sensitive")
	}
}

func TestPropertyChainedLookup(t *testing.T) {
	inner := value.NewObject()
	inner.Set("y", value.NewInt(7))
	outer := value.NewObject()
	outer.Set("x", value.NewScripted(inner))

	reg := NewRegistry()
	r := call(t, reg, ".", []value.Value{
		value.NewScripted(outer), value.NewString("x"), value.NewString("y"),
	}, nil)
	got := firstValue(t, r)
	if int32(got.(value.Int)) != 7 {
		t.Fatalf(". chained lookup = %v, want 7", got)
	}
}

func TestPropertyMissingKeyErrors(t *testing.T) {
	obj := value.NewObject()
	reg := NewRegistry()
	r := call(t, reg, ".", []value.Value{value.NewScripted(obj), value.NewString("missing")}, nil)
	e, ok := r.(result.Error)
	if !ok || e.Message != "property not found: missing" {
		t.Fatalf(". on missing key = %#v, want a property-not-found error", r)
	}
}

func TestMergeRejectsNonObjects(t *testing.T) {
	reg := NewRegistry()
	r := call(t, reg, "MERGE", []value.Value{
		value.NewScripted(value.NewObject()), value.NewInt(1),
	}, nil)
	if _, ok := r.(result.Error); !ok {
		t.Fatalf("MERGE with a non-object argument = %#v, want a type error", r)
	}
}

func TestMergeCombinesKeys(t *testing.T) {
	a := value.NewObject()
	a.Set("x", value.NewInt(1))
	b := value.NewObject()
	b.Set("y", value.NewInt(2))

	reg := NewRegistry()
	r := call(t, reg, "MERGE", []value.Value{value.NewScripted(a), value.NewScripted(b)}, nil)
	merged := firstValue(t, r).(*value.Scripted)
	x, _ := merged.Object.Get("x")
	y, _ := merged.Object.Get("y")
	if int32(x.(value.Int)) != 1 || int32(y.(value.Int)) != 2 {
		t.Fatalf("MERGE result x=%v y=%v, want x=1 y=2", x, y)
	}
}

func TestExpandFlattensListsAndPassesThroughScalars(t *testing.T) {
	reg := NewRegistry()
	r := call(t, reg, "EXPAND", []value.Value{
		value.NewList([]value.Value{value.NewInt(1), value.NewInt(2), value.NewInt(3)}),
		value.NewInt(4),
	}, nil)
	v, ok := r.(result.Value)
	if !ok {
		t.Fatalf("EXPAND = %#v, want a Value result", r)
	}
	if len(v.Values) != 4 {
		t.Fatalf("EXPAND emitted %d values, want 4", len(v.Values))
	}
	for i, want := range []int32{1, 2, 3, 4} {
		if int32(v.Values[i].(value.Int)) != want {
			t.Fatalf("EXPAND value %d = %v, want %d", i, v.Values[i], want)
		}
	}
}

func TestRunEmitsAllChildValues(t *testing.T) {
	reg := NewRegistry()
	r := call(t, reg, "RUN", []value.Value{value.NewInt(1), value.NewInt(2)}, nil)
	v, ok := r.(result.Value)
	if !ok || len(v.Values) != 2 {
		t.Fatalf("RUN = %#v, want a 2-value Value result", r)
	}
}

func TestMuteEmitsNothing(t *testing.T) {
	reg := NewRegistry()
	r := call(t, reg, "MUTE", []value.Value{value.NewInt(1)}, nil)
	v, ok := r.(result.Value)
	if !ok || len(v.Values) != 0 {
		t.Fatalf("MUTE = %#v, want success-no-emit", r)
	}
}

func TestLastEmptyIsNoEmit(t *testing.T) {
	reg := NewRegistry()
	r := call(t, reg, "LAST", nil, nil)
	v, ok := r.(result.Value)
	if !ok || len(v.Values) != 0 {
		t.Fatalf("LAST() = %#v, want success-no-emit", r)
	}
}

func TestCountListAndObject(t *testing.T) {
	reg := NewRegistry()
	r := call(t, reg, "COUNT", []value.Value{
		value.NewList([]value.Value{value.NewInt(1), value.NewInt(2)}),
	}, nil)
	if int32(firstValue(t, r).(value.Int)) != 2 {
		t.Fatalf("COUNT of a 2-element list = %v, want 2", firstValue(t, r))
	}

	obj := value.NewObject()
	obj.Set("a", value.NewInt(1))
	obj.Set("b", value.NewInt(2))
	obj.Set("c", value.NewInt(3))
	r = call(t, reg, "COUNT", []value.Value{value.NewScripted(obj)}, nil)
	if int32(firstValue(t, r).(value.Int)) != 3 {
		t.Fatalf("COUNT of a 3-key object = %v, want 3", firstValue(t, r))
	}
}

func TestAddAccumulatesAcrossMoreThanTwoArguments(t *testing.T) {
	reg := NewRegistry()
	r := call(t, reg, "+", []value.Value{value.NewInt(1), value.NewInt(2), value.NewInt(3)}, nil)
	v := firstValue(t, r)
	if _, ok := v.(value.Int); !ok {
		t.Fatalf("(+ 1 2 3) = %#v, want an Int", v)
	}
	if int32(v.(value.Int)) != 6 {
		t.Fatalf("(+ 1 2 3) = %v, want 6", v)
	}
}

func TestAddPromotesToFloatWhenAnyArgumentIsFloat(t *testing.T) {
	reg := NewRegistry()
	r := call(t, reg, "+", []value.Value{value.NewInt(1), value.NewInt(2), value.NewFloat(3.5)}, nil)
	v := firstValue(t, r)
	f, ok := v.(value.Float)
	if !ok {
		t.Fatalf("(+ 1 2 3.5) = %#v, want a Float", v)
	}
	if float32(f) != 6.5 {
		t.Fatalf("(+ 1 2 3.5) = %v, want 6.5", f)
	}
}

func TestPowerOperator(t *testing.T) {
	reg := NewRegistry()
	r := call(t, reg, "^", []value.Value{value.NewInt(2), value.NewInt(10)}, nil)
	if int32(firstValue(t, r).(value.Int)) != 1024 {
		t.Fatalf("(^ 2 10) = %v, want 1024", firstValue(t, r))
	}
}

func TestPiIgnoresExtraArguments(t *testing.T) {
	reg := NewRegistry()
	r := call(t, reg, "PI", []value.Value{value.NewInt(1), value.NewInt(2)}, nil)
	if _, ok := r.(result.Error); ok {
		t.Fatalf("PI with extra arguments = %#v, want the permissive no-error behavior", r)
	}
}
