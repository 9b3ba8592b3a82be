package worker

import "sync"

// WorkerPool fans tasks out to a fixed set of goroutines over one shared
// queue; whichever worker is idle picks up the next task.
type WorkerPool struct {
	queue   chan Task
	workers []*worker
	once    sync.Once
}

// NewWorkerPool starts numWorkers workers listening on the shared queue.
func NewWorkerPool(numWorkers int) *WorkerPool {
	p := &WorkerPool{
		queue:   make(chan Task),
		workers: make([]*worker, 0, numWorkers),
	}
	for i := 0; i < numWorkers; i++ {
		w := &worker{queue: p.queue, done: make(chan struct{})}
		go w.run()
		p.workers = append(p.workers, w)
	}
	return p
}

// Submit blocks until a worker accepts the task.
func (p *WorkerPool) Submit(task Task) {
	p.queue <- task
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (p *WorkerPool) Stop() {
	p.once.Do(func() {
		close(p.queue)
		for _, w := range p.workers {
			<-w.done
		}
	})
}
