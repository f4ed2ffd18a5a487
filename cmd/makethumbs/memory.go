package main

import (
	"context"
	"runtime"
	"sync"
	"time"
)

const (
	// memoryMonitorInterval is the interval at which a [memoryObserver] is updated.
	memoryMonitorInterval = 100 * time.Millisecond
)

// memoryObserver tracks peak memory usage over a period of time.
type memoryObserver struct {
	sync.RWMutex
	maxAlloc uint64
	stopChan chan struct{}
	stopOnce sync.Once
	doneChan chan struct{}
}

// newMemoryObserver returns a pointer to a new [memoryObserver]. The tracking
// is started and needs to be stopped with [memoryObserver.Stop].
func newMemoryObserver(ctx context.Context) *memoryObserver {
	obs := &memoryObserver{
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
	go obs.monitor(ctx)

	return obs
}

// GetMaxAlloc returns the peak recorded memory allocation size.
func (o *memoryObserver) GetMaxAlloc() uint64 {
	o.RLock()
	defer o.RUnlock()

	return o.maxAlloc
}

// Stop halts the tracking of peak memory allocation. It is safe to call more
// than once.
func (o *memoryObserver) Stop() {
	o.stopOnce.Do(func() {
		close(o.stopChan)
	})
	<-o.doneChan
}

func (o *memoryObserver) sample() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	o.Lock()
	if m.Alloc > o.maxAlloc {
		o.maxAlloc = m.Alloc
	}
	o.Unlock()
}

// monitor queries the [runtime.MemStats] every [memoryMonitorInterval], and
// once more when stopped.
func (o *memoryObserver) monitor(ctx context.Context) {
	defer close(o.doneChan)

	ticker := time.NewTicker(memoryMonitorInterval)
	defer ticker.Stop()

	o.sample()

	for {
		select {
		case <-o.stopChan:
			o.sample()

			return
		case <-ctx.Done():
			o.sample()

			return
		case <-ticker.C:
			o.sample()
		}
	}
}
