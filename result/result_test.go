package result

import (
	"testing"
	"time"

	"github.com/chebwaplus/losp/value"
)

func TestValueFirstOnEmptyIsNull(t *testing.T) {
	v := Value{}
	if _, ok := v.First().(value.Null); !ok {
		t.Fatalf("expected Null for an empty Value result, got %v", v.First())
	}
}

func TestChildResultsPreservesOrderAndKeys(t *testing.T) {
	cr := NewChildResults()
	cr.Add(NewValue(value.NewInt(1)))
	cr.Add(NewKeyedValue("name", value.NewString("alice")))
	cr.Add(NewValue(value.NewInt(3)))

	if cr.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", cr.Len())
	}
	if got := cr.At(0).(Value).First(); got.(value.Int) != 1 {
		t.Fatalf("expected first item to be 1, got %v", got)
	}
	kv, ok := cr.ByKey("name")
	if !ok || kv.First().(value.String) != "alice" {
		t.Fatalf("expected to find keyed result 'name'=alice, got %v, %v", kv, ok)
	}
	if _, ok := cr.ByKey("missing"); ok {
		t.Fatal("expected no result for an unknown key")
	}
}

func TestChildResultsAnyError(t *testing.T) {
	cr := NewChildResults()
	cr.Add(NewValue(value.NewInt(1)))
	cr.Add(NewError("DIV", "division by zero"))

	e, ok := cr.AnyError()
	if !ok || e.Message != "division by zero" {
		t.Fatalf("expected to find the error result, got %v, %v", e, ok)
	}
}

func TestAsyncProxyResolveThenWait(t *testing.T) {
	p := NewAsyncProxy()
	want := NewValue(value.NewInt(42))
	p.Resolve(want)

	got := p.Wait()
	if got.(Value).First().(value.Int) != 42 {
		t.Fatalf("expected resolved value 42, got %v", got)
	}
}

func TestAsyncProxyWaitBlocksUntilResolved(t *testing.T) {
	p := NewAsyncProxy()
	done := make(chan Result, 1)
	go func() { done <- p.Wait() }()

	select {
	case <-done:
		t.Fatal("Wait returned before Resolve was called")
	case <-time.After(20 * time.Millisecond):
	}

	p.Resolve(NewValue(value.NewBool(true)))
	select {
	case r := <-done:
		if !bool(r.(Value).First().(value.Bool)) {
			t.Fatal("expected resolved value true")
		}
	case <-time.After(time.Second):
		t.Fatal("Wait never unblocked after Resolve")
	}
}

func TestAsyncProxySecondResolveIsNoOp(t *testing.T) {
	p := NewAsyncProxy()
	p.Resolve(NewValue(value.NewInt(1)))
	p.Resolve(NewValue(value.NewInt(2)))

	if got := p.Wait().(Value).First().(value.Int); got != 1 {
		t.Fatalf("expected first resolution to win (1), got %v", got)
	}
}

func TestAsyncProxyOnCompleteFiresOnResolve(t *testing.T) {
	p := NewAsyncProxy()
	var got Result
	p.OnComplete(func(r Result) { got = r })
	if got != nil {
		t.Fatal("expected OnComplete callback not to fire before Resolve")
	}
	p.Resolve(NewValue(value.NewInt(9)))
	if got == nil || got.(Value).First().(value.Int) != 9 {
		t.Fatalf("expected callback to fire with resolved value 9, got %v", got)
	}
}

func TestAsyncProxyOnCompleteAfterResolveFiresImmediately(t *testing.T) {
	p := NewAsyncProxy()
	p.Resolve(NewValue(value.NewInt(5)))

	var got Result
	p.OnComplete(func(r Result) { got = r })
	if got == nil || got.(Value).First().(value.Int) != 5 {
		t.Fatalf("expected immediate callback with resolved value 5, got %v", got)
	}
}

func TestAsyncProxyPoll(t *testing.T) {
	p := NewAsyncProxy()
	if _, ok := p.Poll(); ok {
		t.Fatal("expected Poll to report unresolved before Resolve")
	}
	p.Resolve(NewValue(value.NewInt(7)))
	r, ok := p.Poll()
	if !ok || r.(Value).First().(value.Int) != 7 {
		t.Fatalf("expected Poll to report resolved 7, got %v, %v", r, ok)
	}
}
