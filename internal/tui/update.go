package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/mood"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/share"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/tui/components/countdown"
	habitlist "github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/tui/components/habits"
	moodlist "github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/tui/components/mood"
)

// percentStep is how far +/- move a percentage habit.
const percentStep = 10

const recheckInterval = 5 * time.Second

// recheckMsg re-reads a due reminder so the screen notices when it is delivered or re-armed.
type recheckMsg struct{}

func recheck() tea.Cmd {
	return tea.Tick(recheckInterval, func(time.Time) tea.Msg { return recheckMsg{} })
}

var tabs = []constants.SessionState{
	constants.StateHome,
	constants.StateHabits,
	constants.StateMood,
	constants.StateSettings,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitsModel.SetSize(msg.Width-4, msg.Height-8)
		m.moodModel.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	case countdown.TickMsg:
		var homeCmd, settingsCmd tea.Cmd
		m.homeCountdown, homeCmd = m.homeCountdown.Update(msg)
		m.settingsCountdown, settingsCmd = m.settingsCountdown.Update(msg)
		return m, tea.Batch(homeCmd, settingsCmd)
	case countdown.DueMsg:
		m.notice = "🔔 Time to drink water! Press r to restart the reminder."
		return m, recheck()
	case recheckMsg:
		cmd := m.recheckDue()
		return m, cmd
	}

	switch m.state {
	case constants.StateAddHabit, constants.StateEditHabit:
		return m.updateHabitForm(msg)
	case constants.StateAddMood:
		return m.updateMoodForm(msg)
	case constants.StateEditSettings:
		return m.updateSettingsForm(msg)
	case constants.StateWaterGoal:
		return m.updateWaterForm(msg)
	case constants.StateConfirmDelete, constants.StateConfirmClear:
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{Target: strconv.Itoa(constants.DefaultHabitTarget), Category: models.CategoryCount}
		m.editingHabitID = ""
		return m.open(NewHabitForm(m.habitForm), constants.StateAddHabit)
	case habitlist.EditHabitMsg:
		h, err := m.deps.Habits.Get(msg.ID)
		if err != nil {
			m.notice = warningStyle.Render("Habit not found")
			return m, nil
		}
		m.habitForm = &HabitFormModel{
			Name:        h.Name,
			Target:      strconv.Itoa(h.TargetCount),
			Description: h.Description,
			Category:    h.Category.Normalize(),
		}
		m.editingHabitID = h.ID
		return m.open(NewHabitForm(m.habitForm), constants.StateEditHabit)
	case habitlist.IncrementHabitMsg:
		m.stepHabit(msg.ID, 1)
		return m, nil
	case habitlist.DecrementHabitMsg:
		m.stepHabit(msg.ID, -1)
		return m, nil
	case habitlist.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.state = constants.StateConfirmDelete
		return m, nil
	case moodlist.AddMoodMsg:
		m.moodForm = &MoodFormModel{Label: mood.Palette[0].Label}
		return m.open(NewMoodForm(m.moodForm), constants.StateAddMood)
	case moodlist.ShareMoodMsg:
		m.shareMood(msg.Entry)
		return m, nil
	case moodlist.ClearMoodsMsg:
		m.state = constants.StateConfirmClear
		return m, nil
	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case constants.StateMood:
		m.moodModel, cmd = m.moodModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) filtering() bool {
	switch m.state {
	case constants.StateHabits:
		return m.habitsModel.Filtering()
	case constants.StateMood:
		return m.moodModel.Filtering()
	}
	return false
}

func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return true, tea.Quit
	}
	if m.filtering() {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, nil
	case key.Matches(msg, m.keys.Tab):
		return true, m.switchTo(m.nextTab(1))
	case key.Matches(msg, m.keys.ShiftTab):
		return true, m.switchTo(m.nextTab(-1))
	}

	switch m.state {
	case constants.StateHome:
		switch {
		case key.Matches(msg, m.keys.AddWater):
			m.addGlass()
			return true, nil
		case key.Matches(msg, m.keys.WaterGoal):
			m.waterForm = &WaterFormModel{Goal: strconv.Itoa(m.stats.Water.Goal)}
			return true, m.openForm(NewWaterGoalForm(m.waterForm), constants.StateWaterGoal)
		case key.Matches(msg, m.keys.Rearm):
			return true, m.rearm()
		}
	case constants.StateSettings:
		switch {
		case key.Matches(msg, m.keys.Edit):
			s := m.settings
			m.settingsForm = &SettingsFormModel{
				WaterReminderEnabled:  s.WaterReminderEnabled,
				WaterReminderInterval: s.WaterReminderInterval,
				EnableShakeDetection:  s.EnableShakeDetection,
				Theme:                 s.Theme,
				NotificationEnabled:   s.NotificationEnabled,
				Timezone:              s.Timezone,
			}
			return true, m.openForm(NewSettingsForm(m.settingsForm), constants.StateEditSettings)
		case key.Matches(msg, m.keys.Rearm):
			return true, m.rearm()
		}
	}
	return false, nil
}

func (m *Model) nextTab(dir int) constants.SessionState {
	for i, t := range tabs {
		if t == m.state {
			return tabs[(i+dir+len(tabs))%len(tabs)]
		}
	}
	return constants.StateHome
}

// switchTo makes s the active screen. Only the visible screen's countdown ticks.
func (m *Model) switchTo(s constants.SessionState) tea.Cmd {
	m.homeCountdown.Hide()
	m.settingsCountdown.Hide()
	m.state = s
	switch s {
	case constants.StateHome:
		return m.homeCountdown.Show()
	case constants.StateSettings:
		return m.settingsCountdown.Show()
	}
	return nil
}

func (m *Model) visibleCountdown() *countdown.Model {
	switch {
	case m.homeCountdown.Visible():
		return &m.homeCountdown
	case m.settingsCountdown.Visible():
		return &m.settingsCountdown
	}
	return nil
}

func (m *Model) recheckDue() tea.Cmd {
	c := m.visibleCountdown()
	if c == nil || c.Phase() != models.ReminderDue {
		return nil
	}
	cmd := c.Show()
	if c.Phase() == models.ReminderDue {
		return tea.Batch(cmd, recheck())
	}
	m.notice = ""
	return cmd
}

func (m *Model) openForm(form *huh.Form, s constants.SessionState) tea.Cmd {
	m.homeCountdown.Hide()
	m.settingsCountdown.Hide()
	m.formError = ""
	m.form = form
	m.state = s
	return m.form.Init()
}

// stepForm feeds msg to the open form. Esc aborts it.
func (m *Model) stepForm(msg tea.Msg) (huh.FormState, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.formError = ""
		return huh.StateAborted, nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return m.form.State, cmd
}

// retry keeps the form open after a failed save.
func (m *Model) retry(err error, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.formError = err.Error()
	m.form.State = huh.StateNormal
	return *m, cmd
}

func (m *Model) open(form *huh.Form, s constants.SessionState) (tea.Model, tea.Cmd) {
	cmd := m.openForm(form, s)
	return *m, cmd
}

// leave closes the current screen and shows back.
func (m *Model) leave(back constants.SessionState, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	next := m.switchTo(back)
	return *m, tea.Batch(cmd, next)
}

func (m Model) updateHabitForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	st, cmd := m.stepForm(msg)
	switch st {
	case huh.StateCompleted:
		fm := m.habitForm
		target, _ := strconv.Atoi(strings.TrimSpace(fm.Target))
		var err error
		if m.editingHabitID == "" {
			_, err = m.deps.Habits.Add(fm.Name, target, fm.Description, fm.Category)
		} else {
			var found bool
			_, found, err = m.deps.Habits.Edit(m.editingHabitID, fm.Name, target, fm.Description, fm.Category)
			if err == nil && !found {
				m.notice = warningStyle.Render("Habit no longer exists")
			}
		}
		if err != nil {
			return m.retry(err, cmd)
		}
		m.changed()
		return m.leave(constants.StateHabits, cmd)
	case huh.StateAborted:
		return m.leave(constants.StateHabits, cmd)
	}
	return m, cmd
}

func (m Model) updateMoodForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	st, cmd := m.stepForm(msg)
	switch st {
	case huh.StateCompleted:
		p, _ := mood.Lookup(m.moodForm.Label)
		if _, err := m.deps.Moods.Add(p.Emoji, p.Label, m.moodForm.Notes); err != nil {
			return m.retry(err, cmd)
		}
		m.notice = noticeStyle.Render("Mood saved!")
		m.changed()
		return m.leave(constants.StateMood, cmd)
	case huh.StateAborted:
		return m.leave(constants.StateMood, cmd)
	}
	return m, cmd
}

func (m Model) updateSettingsForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	st, cmd := m.stepForm(msg)
	switch st {
	case huh.StateCompleted:
		fm := m.settingsForm
		next := models.Settings{
			WaterReminderEnabled:  fm.WaterReminderEnabled,
			WaterReminderInterval: fm.WaterReminderInterval,
			EnableShakeDetection:  fm.EnableShakeDetection,
			Theme:                 fm.Theme,
			NotificationEnabled:   fm.NotificationEnabled,
			Timezone:              strings.TrimSpace(fm.Timezone),
		}
		if err := m.deps.Settings.Save(context.Background(), next); err != nil {
			return m.retry(err, cmd)
		}
		m.notice = noticeStyle.Render("Settings saved")
		if next.Timezone != m.settings.Timezone {
			m.notice += subtleStyle.Render(" · timezone applies on next launch")
		}
		m.changed()
		return m.leave(constants.StateSettings, cmd)
	case huh.StateAborted:
		return m.leave(constants.StateSettings, cmd)
	}
	return m, cmd
}

func (m Model) updateWaterForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	st, cmd := m.stepForm(msg)
	switch st {
	case huh.StateCompleted:
		goal, _ := strconv.Atoi(strings.TrimSpace(m.waterForm.Goal))
		if err := m.deps.Water.SetGoal(goal); err != nil {
			return m.retry(err, cmd)
		}
		m.changed()
		return m.leave(constants.StateHome, cmd)
	case huh.StateAborted:
		return m.leave(constants.StateHome, cmd)
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	back := constants.StateHabits
	if m.state == constants.StateConfirmClear {
		back = constants.StateMood
	}
	switch k.String() {
	case "y", "Y":
		var err error
		if m.state == constants.StateConfirmDelete {
			err = m.deps.Habits.Delete(m.habitToDeleteID)
			m.habitToDeleteID = ""
		} else {
			err = m.deps.Moods.Clear()
		}
		if err != nil {
			m.notice = warningStyle.Render("Failed: " + err.Error())
		} else {
			m.changed()
		}
		return m.leave(back, nil)
	case "n", "N", "esc", "q":
		m.habitToDeleteID = ""
		return m.leave(back, nil)
	}
	return m, nil
}

// stepHabit moves a habit one step. Percentage habits move by percentStep.
func (m *Model) stepHabit(id string, dir int) {
	h, err := m.deps.Habits.Get(id)
	if err != nil {
		return
	}
	if h.Category.Normalize() == models.CategoryPercentage {
		cur, cerr := m.deps.Habits.Count(id)
		if cerr != nil {
			return
		}
		err = m.deps.Habits.RecordProgress(id, cur+dir*percentStep)
	} else {
		err = m.deps.Habits.RecordProgress(id, dir)
	}
	if err != nil {
		m.notice = warningStyle.Render("Failed to update habit: " + err.Error())
		return
	}
	m.changed()
}

func (m *Model) addGlass() {
	st, added, err := m.deps.Water.AddGlass()
	if err != nil {
		m.notice = warningStyle.Render("Failed to add water: " + err.Error())
		return
	}
	if !added {
		m.notice = noticeStyle.Render("🎉 You've reached your water goal!")
		return
	}
	m.notice = noticeStyle.Render("💧 " + st.Message)
	m.changed()
}

// rearm starts a new reminder cycle with the stored interval.
func (m *Model) rearm() tea.Cmd {
	interval := m.settings.WaterReminderInterval
	if err := m.deps.Reminder.Arm(context.Background(), interval); err != nil {
		m.notice = warningStyle.Render("Failed to arm reminder: " + err.Error())
		return nil
	}
	if err := m.deps.Settings.RecordReminder(true, interval); err != nil {
		m.notice = warningStyle.Render("Reminder armed but settings not saved: " + err.Error())
	} else {
		m.notice = noticeStyle.Render("Water reminder set: next glass in " + intervalLabel(interval))
	}
	m.changed()
	return m.switchTo(m.state)
}

func (m *Model) shareMood(e models.MoodEntry) {
	if m.deps.Share == nil {
		m.notice = warningStyle.Render("Clipboard unavailable; use 'wellnest mood share --stdout'")
		return
	}
	if err := m.deps.Share.Share(share.Text(e, m.deps.Moods.Location())); err != nil {
		m.notice = warningStyle.Render("Share failed: " + err.Error())
		return
	}
	m.notice = noticeStyle.Render("Mood copied to clipboard")
}
