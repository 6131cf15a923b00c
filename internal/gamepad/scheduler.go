package gamepad

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Scheduler runs a task repeatedly until the returned cancel function is
// called. Cancel is idempotent.
type Scheduler interface {
	Every(interval time.Duration, task func()) (cancel func())
}

// TickerScheduler runs each task on its own goroutine driven by a
// time.Ticker. Tasks stop when the parent context ends.
type TickerScheduler struct {
	ctx context.Context
}

// NewTickerScheduler returns a scheduler bound to ctx.
func NewTickerScheduler(ctx context.Context) *TickerScheduler {
	if ctx == nil {
		ctx = context.Background()
	}
	return &TickerScheduler{ctx: ctx}
}

// Every implements Scheduler.
func (s *TickerScheduler) Every(interval time.Duration, task func()) func() {
	if interval <= 0 {
		interval = DefaultFrame
	}
	ctx, cancel := context.WithCancel(s.ctx)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				task()
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(cancel) }
}

// ManualScheduler only runs tasks when Tick is called.
type ManualScheduler struct {
	mu     sync.Mutex
	tasks  map[int]func()
	nextID int
}

// NewManualScheduler returns an empty manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: make(map[int]func())}
}

// Every implements Scheduler. The interval is ignored.
func (s *ManualScheduler) Every(_ time.Duration, task func()) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.tasks[id] = task
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.tasks, id)
		s.mu.Unlock()
	}
}

// Tick runs every active task once, in registration order.
func (s *ManualScheduler) Tick() {
	s.mu.Lock()
	ids := make([]int, 0, len(s.tasks))
	for id := range s.tasks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	tasks := make([]func(), 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, s.tasks[id])
	}
	s.mu.Unlock()
	for _, task := range tasks {
		task()
	}
}

// Active returns the number of scheduled tasks.
func (s *ManualScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
