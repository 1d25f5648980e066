package reveal

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AnatoleLucet/reveal/clock"
)

const (
	// DefaultTickPeriod is the time between two units being shown.
	DefaultTickPeriod = 50 * time.Millisecond

	// DefaultFade is how long a shown unit takes to reach full opacity.
	DefaultFade = 100 * time.Millisecond
)

// State is the phase of a Scheduler.
type State int

const (
	// Idle waits for Start.
	Idle State = iota
	// Pending was started and waits for its delay to elapse.
	Pending
	// Revealing shows one more unit every tick.
	Revealing
	// Completed shows every unit. Nothing changes afterwards.
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Revealing:
		return "revealing"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Scheduler reveals a sequence of units one tick at a time once started.
//
// The shown count never decreases and never goes past the number of units:
// a sequence of L units completes after exactly L ticks. Once disposed, no
// timer callback touches the scheduler again, even one already on its way.
type Scheduler struct {
	mu sync.Mutex

	id     string
	clock  clock.Clock
	logger *slog.Logger

	units  []string
	delay  time.Duration
	period time.Duration
	fade   time.Duration

	state   State
	started bool
	count   *Signal[int]
	shownAt []time.Time

	// the armed delay or tick timer
	timer clock.Timer

	// bumped on dispose; callbacks carry the epoch they were scheduled in
	epoch    uint64
	disposed bool
}

type SchedulerOption func(*Scheduler)

// WithDelay waits d after Start before the first unit is shown.
func WithDelay(d time.Duration) SchedulerOption {
	return func(s *Scheduler) { s.delay = max(d, 0) }
}

// WithTickPeriod sets the time between two units. Non-positive periods keep the default.
func WithTickPeriod(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.period = d
		}
	}
}

// WithFade sets the fade-in duration of a shown unit.
func WithFade(d time.Duration) SchedulerOption {
	return func(s *Scheduler) { s.fade = max(d, 0) }
}

func WithLogger(l *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewScheduler creates an idle scheduler over units. The slice is copied.
func NewScheduler(clk clock.Clock, units []string, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		id:     uuid.NewString(),
		clock:  clk,
		logger: slog.Default(),
		units:  append([]string(nil), units...),
		period: DefaultTickPeriod,
		fade:   DefaultFade,
		count:  NewSignal(0),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.shownAt = make([]time.Time, len(s.units))
	s.logger = s.logger.With("reveal", s.id)

	return s
}

// Start triggers the reveal. Only the first call counts.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.disposed {
		return
	}
	s.started = true

	s.logger.Debug("reveal started", "units", len(s.units), "delay", s.delay)

	if s.delay > 0 {
		s.state = Pending
		epoch := s.epoch
		s.timer = s.clock.AfterFunc(s.delay, func() { s.elapsed(epoch) })
		return
	}

	s.beginLocked()
}

func (s *Scheduler) elapsed(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.aliveLocked(epoch) || s.state != Pending {
		return
	}

	s.timer = nil
	s.beginLocked()
}

// beginLocked enters Revealing: one unit right away, then one per period.
func (s *Scheduler) beginLocked() {
	if len(s.units) == 0 {
		s.completeLocked()
		return
	}

	s.state = Revealing
	s.logger.Debug("reveal revealing")

	if s.advanceLocked() {
		return
	}

	epoch := s.epoch
	s.timer = s.clock.Every(s.period, func() { s.tick(epoch) })
}

func (s *Scheduler) tick(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.aliveLocked(epoch) || s.state != Revealing {
		return
	}

	s.advanceLocked()
}

// advanceLocked shows one more unit and reports whether the reveal is over.
// The last unit completes the scheduler before its count is published, so
// whoever sees the full count also sees Completed.
func (s *Scheduler) advanceLocked() bool {
	n := s.count.Peek()
	if n >= len(s.units) {
		s.completeLocked()
		return true
	}

	s.shownAt[n] = s.clock.Now()
	n++

	last := n == len(s.units)
	if last {
		s.completeLocked()
	}

	// effects reading the count may call back into the scheduler
	s.mu.Unlock()
	s.count.Write(n)
	s.mu.Lock()

	return last || s.disposed
}

func (s *Scheduler) completeLocked() {
	if s.state == Completed {
		return
	}

	s.state = Completed
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	s.logger.Debug("reveal completed", "units", len(s.units))
}

func (s *Scheduler) aliveLocked(epoch uint64) bool {
	return !s.disposed && epoch == s.epoch
}

// Dispose cancels every pending timer. Late callbacks become no-ops.
// It is safe to call more than once.
func (s *Scheduler) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}

	s.disposed = true
	s.epoch++

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	s.logger.Debug("reveal disposed", "state", s.state, "shown", s.count.Peek())
}

// Count is the observable number of shown units.
func (s *Scheduler) Count() *Signal[int] {
	return s.count
}

// VisibleCount returns the number of shown units without tracking it.
func (s *Scheduler) VisibleCount() int {
	return s.count.Peek()
}

// OnChange calls fn with the shown count each time it grows, until stop is called.
func (s *Scheduler) OnChange(fn func(count int)) (stop func()) {
	last := -1
	e := NewEffect(func() {
		n := s.count.Read()
		if n != last {
			last = n
			fn(n)
		}
	})

	return e.Dispose
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Scheduler) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.started
}

func (s *Scheduler) Completed() bool {
	return s.State() == Completed
}

func (s *Scheduler) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.disposed
}

func (s *Scheduler) Len() int {
	return len(s.units)
}

// Units returns a copy of the revealed units.
func (s *Scheduler) Units() []string {
	return append([]string(nil), s.units...)
}

// Opacity returns how visible unit i is at now: 0 until it is shown, then
// ramping up to 1 over the fade duration.
func (s *Scheduler) Opacity(i int, now time.Time) float64 {
	if i < 0 || i >= s.count.Peek() {
		return 0
	}

	s.mu.Lock()
	shown := s.shownAt[i]
	fade := s.fade
	s.mu.Unlock()

	if fade <= 0 {
		return 1
	}

	elapsed := now.Sub(shown)
	if elapsed <= 0 {
		return 0
	}

	return min(float64(elapsed)/float64(fade), 1)
}

// Delay returns the wait between Start and the first unit.
func (s *Scheduler) Delay() time.Duration {
	return s.delay
}
