package worker

// Task is one unit of background work.
type Task func()

// worker drains the shared queue until it closes.
type worker struct {
	queue <-chan Task
	done  chan struct{}
}

func (w *worker) run() {
	defer close(w.done)
	for task := range w.queue {
		task()
	}
}
