package result

import "sync"

// AsyncProxy is a one-shot completion value: exactly one Resolve call ever
// succeeds, and any number of goroutines may Wait on it. Grounded on the
// teacher's task-state-machine mutex discipline (task.Task guards its
// state behind sync.RWMutex), adapted here to a single-resolution
// future since Losp's Async result models a single suspension point
// rather than a whole task's lifecycle.
type AsyncProxy struct {
	mu        sync.Mutex
	done      chan struct{}
	resolved  bool
	result    Result
	callbacks []func(Result)
}

// NewAsyncProxy creates an unresolved proxy.
func NewAsyncProxy() *AsyncProxy {
	return &AsyncProxy{done: make(chan struct{})}
}

// Resolve completes the proxy with r. A second call is a no-op: the first
// resolution wins. Every callback registered via OnComplete fires exactly
// once, in registration order, after the proxy is marked resolved and
// outside the lock so a callback may itself touch the proxy.
func (p *AsyncProxy) Resolve(r Result) {
	p.mu.Lock()
	if p.resolved {
		p.mu.Unlock()
		return
	}
	p.resolved = true
	p.result = r
	cbs := p.callbacks
	p.callbacks = nil
	close(p.done)
	p.mu.Unlock()
	for _, cb := range cbs {
		cb(r)
	}
}

// OnComplete registers a one-shot callback to run with the resolved
// Result. If the proxy is already resolved, cb runs immediately (still
// outside the lock). This is the evaluator driver's re-entry point: it
// registers here to learn when a suspended frame's terminal value or
// error has arrived.
func (p *AsyncProxy) OnComplete(cb func(Result)) {
	p.mu.Lock()
	if p.resolved {
		r := p.result
		p.mu.Unlock()
		cb(r)
		return
	}
	p.callbacks = append(p.callbacks, cb)
	p.mu.Unlock()
}

// Wait blocks until Resolve is called and returns the resolved Result.
func (p *AsyncProxy) Wait() Result {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

// Poll returns the resolved Result without blocking, and whether it was
// already resolved.
func (p *AsyncProxy) Poll() (Result, bool) {
	select {
	case <-p.done:
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.result, true
	default:
		return nil, false
	}
}

// Done returns a channel that closes once the proxy is resolved, letting
// a caller select on it alongside other events.
func (p *AsyncProxy) Done() <-chan struct{} {
	return p.done
}
