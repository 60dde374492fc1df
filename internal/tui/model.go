package tui

import (
	"math/rand/v2"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/habits"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/mood"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/reminder"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/settings"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/share"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/tui/components/countdown"
	habitlist "github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/tui/components/habits"
	moodlist "github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/tui/components/mood"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/water"
)

// Deps are the services the interface drives.
type Deps struct {
	Habits   *habits.Tracker
	Moods    *mood.Journal
	Water    *water.Tracker
	Reminder *reminder.Scheduler
	Settings *settings.Service
	// Share receives shared mood text. Nil when no clipboard is available.
	Share share.Sink
	Now   utils.Clock
	// OnChange runs after every write, e.g. to refresh the widget.
	OnChange func()
}

type HabitFormModel struct {
	Name        string
	Target      string
	Description string
	Category    models.Category
}

type MoodFormModel struct {
	Label string
	Notes string
}

type SettingsFormModel struct {
	WaterReminderEnabled  bool
	WaterReminderInterval int
	EnableShakeDetection  bool
	Theme                 string
	NotificationEnabled   bool
	Timezone              string
}

type WaterFormModel struct {
	Goal string
}

type Model struct {
	deps              Deps
	now               utils.Clock
	state             constants.SessionState
	keys              KeyMap
	help              help.Model
	habitsModel       habitlist.Model
	moodModel         moodlist.Model
	homeCountdown     countdown.Model
	settingsCountdown countdown.Model
	form              *huh.Form
	habitForm         *HabitFormModel
	moodForm          *MoodFormModel
	settingsForm      *SettingsFormModel
	waterForm         *WaterFormModel
	editingHabitID    string
	habitToDeleteID   string
	stats             HomeStats
	settings          models.Settings
	quote             int
	notice            string
	formError         string
	quitting          bool
	width             int
	height            int
	startCmd          tea.Cmd
}

func NewModel(deps Deps) Model {
	now := deps.Now
	if now == nil {
		now = utils.SystemClock
	}
	m := Model{
		deps:              deps,
		now:               now,
		state:             constants.StateHome,
		keys:              DefaultKeyMap(),
		help:              help.New(),
		habitsModel:       habitlist.New(nil, 0, 0),
		moodModel:         moodlist.New(nil, now(), deps.Moods.Location(), 0, 0),
		homeCountdown:     countdown.New(deps.Reminder, now),
		settingsCountdown: countdown.New(deps.Reminder, now),
		quote:             rand.IntN(len(Quotes)),
	}
	m.reload()
	m.startCmd = m.homeCountdown.Show()
	return m
}

// reload re-reads every tracker. Read errors keep the previous values.
func (m *Model) reload() {
	if list, err := m.deps.Habits.List(); err == nil {
		m.habitsModel.SetHabits(list)
	} else {
		logger.Warn("Failed to load habits", "error", err)
	}
	if entries, err := m.deps.Moods.List(); err == nil {
		m.moodModel.SetEntries(entries, m.now())
	} else {
		logger.Warn("Failed to load moods", "error", err)
	}
	if s, err := m.deps.Habits.Stats(); err == nil {
		m.stats.Habits = s
	}
	if s, err := m.deps.Water.Status(); err == nil {
		m.stats.Water = s
	}
	if n, err := m.deps.Moods.CountForDate(m.deps.Moods.Today()); err == nil {
		m.stats.Moods = n
	}
	if s, err := m.deps.Settings.Get(); err == nil {
		m.settings = s
	}
}

// changed reloads and notifies the owner after a write.
func (m *Model) changed() {
	m.reload()
	if m.deps.OnChange != nil {
		m.deps.OnChange()
	}
}

// State is the active screen.
func (m Model) State() constants.SessionState { return m.state }

// Notice is the last status message shown under the tabs.
func (m Model) Notice() string { return m.notice }

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateHome:
		keys = append(keys, m.keys.AddWater, m.keys.Rearm)
	case constants.StateHabits:
		keys = append(keys, m.keys.Add, m.keys.Progress)
	case constants.StateMood:
		keys = append(keys, m.keys.Add, m.keys.Share)
	case constants.StateSettings:
		keys = append(keys, m.keys.Edit, m.keys.Rearm)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case constants.StateHome:
		actions = []key.Binding{m.keys.AddWater, m.keys.WaterGoal, m.keys.Rearm}
	case constants.StateHabits:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Progress, m.keys.Undo, m.keys.Delete}
	case constants.StateMood:
		actions = []key.Binding{m.keys.Add, m.keys.Share, m.keys.Clear}
	case constants.StateSettings:
		actions = []key.Binding{m.keys.Edit, m.keys.Rearm}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return m.startCmd
}
