package pregel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// partitionTask is one partition's work within a superstep.
type partitionTask struct {
	partition string
	messages  []*Message
	run       func(partition string, messages []*Message) error
	done      func(err error)
}

// Scheduler fans partition tasks out over a fixed worker pool with
// round-robin queue assignment.
type Scheduler struct {
	queues     []chan partitionTask
	numWorkers int
	counter    int64
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewScheduler creates a scheduler with the given parallelism; values <= 0
// default to the CPU count.
func NewScheduler(numWorkers, queueCapacity int) *Scheduler {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
		if numWorkers < 1 {
			numWorkers = 1
		}
	}
	if queueCapacity <= 0 {
		queueCapacity = 100
	}
	queues := make([]chan partitionTask, numWorkers)
	for i := range queues {
		queues[i] = make(chan partitionTask, queueCapacity)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		queues:     queues,
		numWorkers: numWorkers,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start launches the worker goroutines.
func (s *Scheduler) Start() {
	for i := 0; i < s.numWorkers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
}

func (s *Scheduler) worker(i int) {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case task, ok := <-s.queues[i]:
			if !ok {
				return
			}
			task.done(task.run(task.partition, task.messages))
		}
	}
}

// Schedule queues a task on the next worker round-robin.
func (s *Scheduler) Schedule(task partitionTask) {
	worker := atomic.AddInt64(&s.counter, 1) % int64(s.numWorkers)
	s.queues[worker] <- task
}

// Stop terminates the workers and waits for them to drain.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}
