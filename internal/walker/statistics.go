package walker

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics are the counters of a traversal. They are safe for concurrent
// reading while a traversal is running.
type Statistics struct {
	sync.RWMutex

	directories atomic.Uint64
	files       atomic.Uint64
	generated   atomic.Uint64
	cached      atomic.Uint64
	failed      atomic.Uint64
	skipped     atomic.Uint64
	bytes       atomic.Uint64

	current    string
	startTime  time.Time
	finishTime time.Time
	finished   bool
	err        error
}

// Progress is a point-in-time copy of [Statistics].
type Progress struct {
	Directories uint64
	Files       uint64
	Generated   uint64
	Cached      uint64
	Failed      uint64
	Skipped     uint64
	Bytes       uint64

	Current     string
	StartTime   time.Time
	FinishTime  time.Time
	HasFinished bool
	Err         error
}

// Elapsed returns the duration of the traversal so far, or in total once it
// has finished.
func (p Progress) Elapsed() time.Duration {
	if p.StartTime.IsZero() {
		return 0
	}

	if p.HasFinished {
		return p.FinishTime.Sub(p.StartTime)
	}

	return time.Since(p.StartTime)
}

func (s *Statistics) start() {
	s.Lock()
	defer s.Unlock()

	s.startTime = time.Now()
	s.finishTime = time.Time{}
	s.finished = false
	s.err = nil
}

func (s *Statistics) finish(err error) {
	s.Lock()
	defer s.Unlock()

	s.finishTime = time.Now()
	s.finished = true
	s.current = ""
	s.err = err
}

func (s *Statistics) setCurrent(path string) {
	s.Lock()
	defer s.Unlock()

	s.current = path
}

// Snapshot returns the current [Progress] of the traversal.
func (s *Statistics) Snapshot() Progress {
	s.RLock()
	defer s.RUnlock()

	return Progress{
		Directories: s.directories.Load(),
		Files:       s.files.Load(),
		Generated:   s.generated.Load(),
		Cached:      s.cached.Load(),
		Failed:      s.failed.Load(),
		Skipped:     s.skipped.Load(),
		Bytes:       s.bytes.Load(),
		Current:     s.current,
		StartTime:   s.startTime,
		FinishTime:  s.finishTime,
		HasFinished: s.finished,
		Err:         s.err,
	}
}
