package utils

import (
	"math/rand"
	"sync"
	"time"
)

// WorkerPool manages a pool of goroutines with a randomized politeness
// interval between job starts, so target sites see a human-ish request
// cadence even when several URLs are scraped concurrently.
type WorkerPool struct {
	maxWorkers  int
	minInterval time.Duration
	maxInterval time.Duration
	semaphore   chan struct{}
	wg          sync.WaitGroup
	mu          sync.Mutex
	lastRequest time.Time
}

// NewWorkerPool creates a WorkerPool with the given concurrency. Each
// job start waits until a random duration inside [minInterval,
// maxInterval) has passed since the previous start; equal bounds give a
// fixed interval.
func NewWorkerPool(maxWorkers int, minInterval, maxInterval time.Duration) *WorkerPool {
	return &WorkerPool{
		maxWorkers:  maxWorkers,
		minInterval: minInterval,
		maxInterval: maxInterval,
		semaphore:   make(chan struct{}, maxWorkers),
		lastRequest: time.Now(),
	}
}

// Submit enqueues a job for execution in the pool.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()

		wp.enforceInterval()
		job()
	}()
}

// Wait blocks until all submitted jobs have completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) enforceInterval() {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	interval := wp.minInterval
	if wp.maxInterval > wp.minInterval {
		interval += time.Duration(rand.Int63n(int64(wp.maxInterval - wp.minInterval)))
	}

	elapsed := time.Since(wp.lastRequest)
	if elapsed < interval {
		time.Sleep(interval - elapsed)
	}
	wp.lastRequest = time.Now()
}

// URLSet is a thread-safe set for tracking already-collected URLs.
type URLSet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewURLSet creates an empty URLSet.
func NewURLSet() *URLSet {
	return &URLSet{seen: make(map[string]struct{})}
}

// Add returns true if the URL was newly added, false if already present.
func (s *URLSet) Add(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[url]; exists {
		return false
	}
	s.seen[url] = struct{}{}
	return true
}

// Contains returns true if the URL has already been collected.
func (s *URLSet) Contains(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[url]
	return exists
}

// Size returns the number of unique URLs tracked.
func (s *URLSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
