package signal

// Scheduler decides when deferred work runs.
type Scheduler interface {
	Schedule(task func())
}

// Immediate runs tasks synchronously.
var Immediate Scheduler = immediate{}

type immediate struct{}

func (immediate) Schedule(task func()) {
	if task != nil {
		task()
	}
}

// Queue holds tasks until Flush, typically called once after a frame has
// been rendered so that objects created during the frame are attached.
type Queue struct {
	tasks []func()
}

func (q *Queue) Schedule(task func()) {
	if task == nil {
		return
	}
	q.tasks = append(q.tasks, task)
}

// Flush runs queued tasks in order, including tasks queued while flushing.
// It returns the number of tasks run.
func (q *Queue) Flush() int {
	n := 0
	for len(q.tasks) > 0 {
		tasks := q.tasks
		q.tasks = nil
		for _, task := range tasks {
			task()
			n++
		}
	}
	return n
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	return len(q.tasks)
}
