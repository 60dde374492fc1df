package models

import "time"

// ReminderPhase tags the reminder state machine.
type ReminderPhase int

const (
	ReminderDisabled ReminderPhase = iota
	ReminderArmed
	// ReminderDue means enabled with a trigger at or before now; it needs rescheduling.
	ReminderDue
)

func (p ReminderPhase) String() string {
	switch p {
	case ReminderArmed:
		return "ARMED"
	case ReminderDue:
		return "DUE"
	default:
		return "DISABLED"
	}
}

// ReminderState is a snapshot derived from the persisted reminder keys.
type ReminderState struct {
	Phase    ReminderPhase `json:"phase"`
	Interval int           `json:"interval"`
	// TriggerAt is zero when no trigger is stored.
	TriggerAt time.Time `json:"triggerAt"`
}

// Enabled reports whether the reminder is armed or due.
func (s ReminderState) Enabled() bool {
	return s.Phase != ReminderDisabled
}
