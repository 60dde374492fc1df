package countdown

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
)

type fakeSource struct {
	state models.ReminderState
	err   error
	reads int
}

func (f *fakeSource) State() (models.ReminderState, error) {
	f.reads++
	return f.state, f.err
}

var base = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

func armedAt(trigger time.Time) models.ReminderState {
	return models.ReminderState{Phase: models.ReminderArmed, Interval: 5, TriggerAt: trigger}
}

func TestShowArmed(t *testing.T) {
	src := &fakeSource{state: armedAt(base.Add(5 * time.Minute))}
	now := base.Add(time.Second)
	m := New(src, func() time.Time { return now })

	cmd := m.Show()
	require.NotNil(t, cmd)
	assert.True(t, m.Visible())
	assert.Equal(t, "💧 Next reminder in: 04:59", stripANSI(m.View()))
}

func TestTickRecomputesFromSource(t *testing.T) {
	src := &fakeSource{state: armedAt(base.Add(5 * time.Minute))}
	now := base
	m := New(src, func() time.Time { return now })
	m.Show()

	// Skipped ticks do not matter: remaining comes from the trigger.
	now = base.Add(3 * time.Minute)
	m, cmd := m.Update(TickMsg{Gen: m.Generation(), Time: now})
	require.NotNil(t, cmd)
	assert.Equal(t, 2*time.Minute, m.Remaining())
}

func TestStaleTickIgnored(t *testing.T) {
	src := &fakeSource{state: armedAt(base.Add(time.Minute))}
	m := New(src, func() time.Time { return base })
	m.Show()
	old := m.Generation()
	m.Hide()

	reads := src.reads
	m, cmd := m.Update(TickMsg{Gen: old})
	assert.Nil(t, cmd)
	assert.Equal(t, reads, src.reads, "stale tick does not read state")

	m.Show()
	_, cmd = m.Update(TickMsg{Gen: old})
	assert.Nil(t, cmd, "tick from a previous generation is dropped after re-show")
}

func TestDueEmittedOnce(t *testing.T) {
	trigger := base.Add(time.Minute)
	src := &fakeSource{state: armedAt(trigger)}
	now := base
	m := New(src, func() time.Time { return now })
	m.Show()

	now = trigger
	src.state = models.ReminderState{Phase: models.ReminderDue, TriggerAt: trigger}
	m, cmd := m.Update(TickMsg{Gen: m.Generation()})
	require.NotNil(t, cmd)
	msg := cmd()
	due, ok := msg.(DueMsg)
	require.True(t, ok)
	assert.True(t, trigger.Equal(due.TriggerAt))
	assert.Equal(t, "💧 Reminder coming soon! 🔔", stripANSI(m.View()))

	// Showing again for the same trigger does not announce it twice.
	cmd = m.Show()
	assert.Nil(t, cmd)

	// A new trigger is announced.
	src.state = models.ReminderState{Phase: models.ReminderDue, TriggerAt: trigger.Add(time.Hour)}
	cmd = m.Show()
	require.NotNil(t, cmd)
	_, ok = cmd().(DueMsg)
	assert.True(t, ok)
}

func TestDisabledKeepsTicking(t *testing.T) {
	src := &fakeSource{state: models.ReminderState{Phase: models.ReminderDisabled}}
	m := New(src, func() time.Time { return base })
	m.Show()
	assert.Equal(t, "💧 Water reminders are off", stripANSI(m.View()))

	m, cmd := m.Update(TickMsg{Gen: m.Generation()})
	assert.NotNil(t, cmd)
	assert.Equal(t, models.ReminderDisabled, m.Phase())
}

func TestSourceErrorKeepsLastState(t *testing.T) {
	src := &fakeSource{state: armedAt(base.Add(time.Minute))}
	m := New(src, func() time.Time { return base })
	m.Show()

	src.err = errors.New("store closed")
	m, cmd := m.Update(TickMsg{Gen: m.Generation()})
	assert.NotNil(t, cmd)
	assert.Equal(t, models.ReminderArmed, m.Phase())
}

// stripANSI removes escape sequences so assertions do not depend on the terminal profile.
func stripANSI(s string) string {
	out := make([]rune, 0, len(s))
	esc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			esc = true
		case esc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			esc = false
		case !esc:
			out = append(out, r)
		}
	}
	return string(out)
}
