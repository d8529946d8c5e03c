package systems

import (
	"runtime"
	"sync"
)

type chunkTask struct {
	start, end int
	fn         func(start, end int)
	done       *sync.WaitGroup
}

// workerPool runs chunked index ranges on persistent goroutines. Workers start on
// the first run and live until stop. run and stop must be called from one goroutine.
type workerPool struct {
	size    int
	tasks   chan chunkTask
	workers sync.WaitGroup
}

func newWorkerPool(size int) *workerPool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	return &workerPool{size: size}
}

func (p *workerPool) launch() {
	p.tasks = make(chan chunkTask, p.size)
	for range p.size {
		p.workers.Add(1)
		go func() {
			defer p.workers.Done()
			for t := range p.tasks {
				t.fn(t.start, t.end)
				t.done.Done()
			}
		}()
	}
}

// run splits [0, n) into at most size chunks and blocks until all are done.
// fn must only write to indices inside its own chunk.
func (p *workerPool) run(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if p.tasks == nil {
		p.launch()
	}

	chunk := (n + p.size - 1) / p.size
	var done sync.WaitGroup
	for start := 0; start < n; start += chunk {
		done.Add(1)
		p.tasks <- chunkTask{start: start, end: min(start+chunk, n), fn: fn, done: &done}
	}
	done.Wait()
}

// stop shuts the workers down. A later run starts a fresh set.
func (p *workerPool) stop() {
	if p.tasks == nil {
		return
	}
	close(p.tasks)
	p.workers.Wait()
	p.tasks = nil
}
