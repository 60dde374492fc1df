package alarm

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
)

type entry struct {
	timer *time.Timer
	at    time.Time
	exact bool
	seq   uint64
}

// Pending describes a scheduled alarm.
type Pending struct {
	ID    string
	At    time.Time
	Exact bool
}

// Local fires alarms from in-process timers.
type Local struct {
	allowExact bool
	now        utils.Clock

	mu      sync.Mutex
	handler Handler
	timers  map[string]*entry
	seq     uint64
}

// NewLocal returns a facility that grants exact alarms only when allowExact is set.
func NewLocal(allowExact bool) *Local {
	return &Local{
		allowExact: allowExact,
		now:        utils.SystemClock,
		timers:     make(map[string]*entry),
	}
}

// Handle registers the function called when an alarm fires.
func (l *Local) Handle(h Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = h
}

func (l *Local) ScheduleExact(ctx context.Context, id string, at time.Time) error {
	if !l.allowExact {
		logger.Debug("Exact alarm denied", "id", id)
		return ErrExactDenied
	}
	l.schedule(id, at, true)
	return nil
}

func (l *Local) ScheduleInexact(ctx context.Context, id string, at time.Time) error {
	l.schedule(id, InexactTime(at), false)
	return nil
}

func (l *Local) schedule(id string, at time.Time, exact bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if old, ok := l.timers[id]; ok {
		old.timer.Stop()
	}
	l.seq++
	seq := l.seq

	delay := at.Sub(l.now())
	if delay < 0 {
		delay = 0
	}
	l.timers[id] = &entry{
		timer: time.AfterFunc(delay, func() { l.fire(id, seq) }),
		at:    at,
		exact: exact,
		seq:   seq,
	}
	logger.Debug("Alarm scheduled", "id", id, "at", at, "exact", exact)
}

func (l *Local) fire(id string, seq uint64) {
	l.mu.Lock()
	e, ok := l.timers[id]
	// A replaced or cancelled timer whose Stop lost the race must not fire.
	if !ok || e.seq != seq {
		l.mu.Unlock()
		return
	}
	delete(l.timers, id)
	h := l.handler
	l.mu.Unlock()

	logger.Debug("Alarm fired", "id", id)
	if h != nil {
		h(id)
	}
}

func (l *Local) Cancel(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.timers[id]; ok {
		e.timer.Stop()
		delete(l.timers, id)
		logger.Debug("Alarm cancelled", "id", id)
	}
	return nil
}

// Pending lists scheduled alarms ordered by fire time.
func (l *Local) Pending() []Pending {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Pending, 0, len(l.timers))
	for id, e := range l.timers {
		out = append(out, Pending{ID: id, At: e.at, Exact: e.exact})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

// Stop cancels every pending alarm.
func (l *Local) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, e := range l.timers {
		e.timer.Stop()
		delete(l.timers, id)
	}
}
