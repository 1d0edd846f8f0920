package crawler

import "sync"

// frontier is the FIFO task queue shared by crawl workers. It tracks queued
// plus in-flight tasks so workers can tell an empty queue from a finished
// crawl.
type frontier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	tasks   []Task
	pending int
	closed  bool
}

func newFrontier() *frontier {
	f := &frontier{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// push queues t unless the frontier is closed.
func (f *frontier) push(t Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.tasks = append(f.tasks, t)
	f.pending++
	f.cond.Signal()
}

// next blocks until a task is available. It returns false once the frontier is
// closed or every pushed task has been marked done.
func (f *frontier) next() (Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for len(f.tasks) == 0 && f.pending > 0 && !f.closed {
		f.cond.Wait()
	}
	if f.closed || len(f.tasks) == 0 {
		return Task{}, false
	}
	t := f.tasks[0]
	f.tasks[0] = Task{}
	f.tasks = f.tasks[1:]
	return t, true
}

// done marks a task returned by next as finished.
func (f *frontier) done() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending--
	if f.pending == 0 {
		f.cond.Broadcast()
	}
}

// close releases every waiting worker and drops queued tasks.
func (f *frontier) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.tasks = nil
	f.cond.Broadcast()
}
