package store

import (
	"sync"

	"github.com/2beens/gymlog/internal/gym"
	"github.com/2beens/gymlog/internal/persistence"
)

// task is one background save. Tasks run one at a time, in submission
// order, so a row is never written before the row it references.
type task struct {
	opName   string
	kind     persistence.Kind
	exercise *gym.Exercise
	log      *gym.LogEntry
	entityID string
	ops      []*Op
	// rollback reverts the in-memory change after a failed save. It runs
	// under the store lock and reports whether plan or completion changed.
	rollback func(state *gym.Snapshot) (userStateChanged bool)
	// onSaved runs after a successful save, outside the store lock.
	onSaved func()
}

// taskQueue is an unbounded FIFO feeding a single worker goroutine.
type taskQueue struct {
	mu     sync.Mutex
	tasks  []*task
	signal chan struct{}
	closed bool
}

func newTaskQueue() *taskQueue {
	return &taskQueue{signal: make(chan struct{}, 1)}
}

// push reports false when the queue is already closed.
func (q *taskQueue) push(t *task) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.tasks = append(q.tasks, t)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// close stops accepting tasks. Already queued ones are still handed out.
func (q *taskQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// pop blocks until a task is available. It returns false once the queue is
// closed and drained.
func (q *taskQueue) pop() (*task, bool) {
	for {
		q.mu.Lock()
		if len(q.tasks) > 0 {
			t := q.tasks[0]
			q.tasks[0] = nil
			q.tasks = q.tasks[1:]
			q.mu.Unlock()
			return t, true
		}
		if q.closed {
			q.mu.Unlock()
			return nil, false
		}
		q.mu.Unlock()

		<-q.signal
	}
}
