// Package alarm schedules one-shot wake-ups by identifier.
package alarm

import (
	"context"
	"errors"
	"time"
)

// ErrExactDenied is returned by ScheduleExact when exact alarms are not permitted.
var ErrExactDenied = errors.New("exact alarms are not permitted")

// Facility delivers an alarm for id at, or shortly after, the requested time.
// Scheduling an id that is already pending replaces it.
type Facility interface {
	ScheduleExact(ctx context.Context, id string, at time.Time) error
	ScheduleInexact(ctx context.Context, id string, at time.Time) error
	// Cancel is a no-op for ids that are not pending.
	Cancel(ctx context.Context, id string) error
}

// Handler receives fired alarms.
type Handler func(id string)

// InexactTime returns the delivery time of an inexact alarm requested for at:
// the first whole minute at or after at.
func InexactTime(at time.Time) time.Time {
	t := at.Truncate(time.Minute)
	if t.Before(at) {
		t = t.Add(time.Minute)
	}
	return t
}

// Nop accepts every request and never fires.
type Nop struct{}

func (Nop) ScheduleExact(context.Context, string, time.Time) error   { return nil }
func (Nop) ScheduleInexact(context.Context, string, time.Time) error { return nil }
func (Nop) Cancel(context.Context, string) error                     { return nil }
