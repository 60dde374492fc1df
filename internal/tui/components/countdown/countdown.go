// Package countdown renders the time left until the hydration reminder.
//
// Screens embed one Model each and call Show when they become visible and Hide
// when they are replaced. Every tick re-reads the reminder state, so the display
// never drifts from the stored trigger.
package countdown

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/reminder"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
)

var (
	offStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	dueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

// Source reports the current reminder state.
type Source interface {
	State() (models.ReminderState, error)
}

// TickMsg drives the countdown. Ticks from an older generation are dropped.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// DueMsg is emitted once per trigger when the countdown reaches zero while visible.
type DueMsg struct {
	TriggerAt time.Time
}

type Model struct {
	src     Source
	now     utils.Clock
	gen     int
	visible bool
	state   models.ReminderState
	left    time.Duration
	dueFor  int64
	dueSent bool
}

func New(src Source, now utils.Clock) Model {
	if now == nil {
		now = utils.SystemClock
	}
	return Model{src: src, now: now}
}

func tick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// Show starts a new tick generation and returns its first tick.
func (m *Model) Show() tea.Cmd {
	m.gen++
	m.visible = true
	if due, cmd := m.refresh(); due {
		return cmd
	}
	return tick(m.gen)
}

// Hide discards the outstanding tick.
func (m *Model) Hide() {
	m.gen++
	m.visible = false
}

// Visible reports whether the owning screen is showing the countdown.
func (m Model) Visible() bool { return m.visible }

// Generation identifies the live tick chain.
func (m Model) Generation() int { return m.gen }

// refresh re-reads the state and reports whether the reminder is due. The
// returned command carries a DueMsg the first time a trigger is seen due.
func (m *Model) refresh() (bool, tea.Cmd) {
	st, err := m.src.State()
	if err != nil {
		logger.Warn("Failed to read reminder state", "error", err)
		return false, nil
	}
	m.state = st
	m.left = 0
	if st.Phase == models.ReminderArmed {
		m.left = st.TriggerAt.Sub(m.now())
	}
	if st.Phase != models.ReminderDue {
		return false, nil
	}

	trigger := int64(0)
	if !st.TriggerAt.IsZero() {
		trigger = st.TriggerAt.UnixMilli()
	}
	if m.dueSent && m.dueFor == trigger {
		return true, nil
	}
	m.dueSent = true
	m.dueFor = trigger
	due := DueMsg{TriggerAt: st.TriggerAt}
	return true, func() tea.Msg { return due }
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.Gen != m.gen || !m.visible {
			return m, nil
		}
		if due, cmd := m.refresh(); due {
			return m, cmd
		}
		return m, tick(m.gen)
	}
	return m, nil
}

// Remaining is the time left as of the last tick.
func (m Model) Remaining() time.Duration { return m.left }

// Phase is the reminder phase as of the last tick.
func (m Model) Phase() models.ReminderPhase { return m.state.Phase }

func (m Model) View() string {
	switch m.state.Phase {
	case models.ReminderArmed:
		return activeStyle.Render("💧 Next reminder in: " + reminder.FormatRemaining(m.left))
	case models.ReminderDue:
		return dueStyle.Render("💧 Reminder coming soon! 🔔")
	default:
		return offStyle.Render("💧 Water reminders are off")
	}
}
