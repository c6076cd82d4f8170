// Package schedule defers work to idle points of a single-threaded frame loop.
//
// A task is queued with a deadline. It runs when the loop offers an idle
// slot, or unconditionally once its deadline has passed. Tasks are never
// cancelled and always run to completion once started.
package schedule

import "time"

// Clock abstracts time so tests can drive deadlines.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

type task struct {
	run      func()
	deadline time.Time
}

// Queue is a FIFO of deferred tasks. It is not safe for concurrent use.
type Queue struct {
	clock   Clock
	timeout time.Duration
	tasks   []task
}

// NewQueue creates a queue whose tasks are forced after timeout.
func NewQueue(clock Clock, timeout time.Duration) *Queue {
	if clock == nil {
		clock = SystemClock
	}
	return &Queue{clock: clock, timeout: timeout}
}

// Schedule appends a task. Every task shares the queue timeout, so deadlines
// are non-decreasing from front to back.
func (q *Queue) Schedule(run func()) {
	q.tasks = append(q.tasks, task{run: run, deadline: q.clock.Now().Add(q.timeout)})
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	return len(q.tasks)
}

// RunOverdue runs every task whose deadline has passed.
func (q *Queue) RunOverdue() int {
	now := q.clock.Now()
	n := 0
	for len(q.tasks) > 0 && !now.Before(q.tasks[0].deadline) {
		q.pop().run()
		n++
	}
	return n
}

// RunIdle runs overdue tasks, then keeps running queued tasks until budget
// has been spent. A task that starts inside the budget runs to completion
// even if it overruns it.
func (q *Queue) RunIdle(budget time.Duration) int {
	n := q.RunOverdue()
	start := q.clock.Now()
	for len(q.tasks) > 0 && q.clock.Now().Sub(start) < budget {
		q.pop().run()
		n++
	}
	return n
}

// Drain runs every queued task, including ones scheduled while draining.
func (q *Queue) Drain() int {
	n := 0
	for len(q.tasks) > 0 {
		q.pop().run()
		n++
	}
	return n
}

func (q *Queue) pop() task {
	t := q.tasks[0]
	q.tasks[0] = task{}
	q.tasks = q.tasks[1:]
	return t
}
