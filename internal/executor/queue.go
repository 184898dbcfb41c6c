package executor

import "sync"

// queueItem pairs a submitted task with its future
type queueItem struct {
	task   Task
	future *Future
}

// taskQueue is the FIFO of tasks awaiting a free worker.
// Submission order defines dispatch order; there is no priority.
type taskQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []queueItem
	closed bool
}

func newTaskQueue() *taskQueue {
	q := &taskQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends an item to the queue.
// It returns false if the queue has been closed.
func (q *taskQueue) push(it queueItem) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.items = append(q.items, it)
	q.cond.Signal()
	return true
}

// pop removes and returns the oldest item, blocking while the queue is
// empty. It returns false once the queue is closed and drained.
func (q *taskQueue) pop() (queueItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}

	if len(q.items) == 0 {
		return queueItem{}, false
	}

	it := q.items[0]
	q.items = q.items[1:]
	return it, true
}

// close stops intake and wakes all blocked workers.
// With discard set, items still queued are removed and returned so the
// caller can cancel their futures; otherwise workers drain them normally.
func (q *taskQueue) close(discard bool) []queueItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed && !discard {
		return nil
	}
	q.closed = true

	var drained []queueItem
	if discard {
		drained = q.items
		q.items = nil
	}

	q.cond.Broadcast()
	return drained
}

// len returns the number of tasks waiting for a worker
func (q *taskQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
