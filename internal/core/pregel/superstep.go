package pregel

import (
	"sync"
	"time"
)

// Superstep tracks one BSP round: the barrier over its partition tasks and
// timing/bookkeeping for logs.
type Superstep struct {
	Number     int
	StartTime  time.Time
	EndTime    time.Time
	barrier    sync.WaitGroup
	mu         sync.Mutex
	partitions int
	firstErr   error
}

// NewSuperstep begins round n.
func NewSuperstep(n int) *Superstep {
	return &Superstep{Number: n, StartTime: time.Now()}
}

// AddPartition registers one partition task with the barrier.
func (s *Superstep) AddPartition() {
	s.mu.Lock()
	s.partitions++
	s.mu.Unlock()
	s.barrier.Add(1)
}

// CompletePartition marks one partition done, recording its first error.
func (s *Superstep) CompletePartition(err error) {
	if err != nil {
		s.mu.Lock()
		if s.firstErr == nil {
			s.firstErr = err
		}
		s.mu.Unlock()
	}
	s.barrier.Done()
}

// Wait blocks until every registered partition completed and returns the
// first error observed.
func (s *Superstep) Wait() error {
	s.barrier.Wait()
	s.EndTime = time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firstErr
}

// Partitions returns the number of partitions that ran this round.
func (s *Superstep) Partitions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.partitions
}

// Duration returns the wall time of the round.
func (s *Superstep) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
