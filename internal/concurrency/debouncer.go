package concurrency

import (
	"sync"
	"time"
)

// Debouncer collapses a burst of triggers into one run of the job, started
// once no trigger has arrived for the interval
type Debouncer struct {
	interval time.Duration
	job      func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func NewDebouncer(interval time.Duration, job func()) *Debouncer {
	return &Debouncer{interval: interval, job: job}
}

func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.job)
}

// Stop cancels a pending run, later triggers are ignored
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

// TimerScheduler runs functions after a delay on their own goroutine
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
