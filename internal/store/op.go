package store

import (
	"context"
	"sync"
)

// Op is the handle of one store operation. The in-memory change is already
// applied when the caller gets it; Wait reports the outcome of the
// background save.
type Op struct {
	// ID of the entity the operation created or targeted, if any.
	ID string

	mu      sync.Mutex
	pending int
	err     error
	done    chan struct{}
}

// newOp creates an operation that resolves after parts background saves.
func newOp(id string, parts int) *Op {
	op := &Op{
		ID:      id,
		pending: parts,
		done:    make(chan struct{}),
	}
	if parts <= 0 {
		close(op.done)
	}
	return op
}

// CompletedOp returns an operation that is already resolved with err. It is
// handed out for mutations that had nothing to save.
func CompletedOp(id string, err error) *Op {
	op := newOp(id, 1)
	op.resolve(err)
	return op
}

// resolve records one finished part. The first error wins.
func (o *Op) resolve(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.pending <= 0 {
		return
	}
	if err != nil && o.err == nil {
		o.err = err
	}
	o.pending--
	if o.pending == 0 {
		close(o.done)
	}
}

// Done is closed once every background save of the operation finished.
func (o *Op) Done() <-chan struct{} {
	return o.done
}

// Err returns the save outcome. Only meaningful after Done is closed.
func (o *Op) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// Wait blocks until the operation is saved or ctx is done.
func (o *Op) Wait(ctx context.Context) error {
	select {
	case <-o.done:
		return o.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
