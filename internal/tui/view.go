package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
)

var tabTitles = []string{"Home", "Habits", "Mood", "Settings"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateHome:
		content = docStyle.Render(m.viewHome())
	case constants.StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case constants.StateMood:
		content = docStyle.Render(m.moodModel.View())
	case constants.StateSettings:
		content = docStyle.Render(m.viewSettings())
	case constants.StateAddHabit, constants.StateEditHabit, constants.StateAddMood,
		constants.StateEditSettings, constants.StateWaterGoal:
		content = m.form.View()
		if m.formError != "" {
			content = lipgloss.JoinVertical(lipgloss.Left, content, dangerStyle.Render(m.formError))
		}
	case constants.StateConfirmDelete:
		content = m.viewConfirm("Delete this habit and today's progress?")
	case constants.StateConfirmClear:
		content = m.viewConfirm("Delete every mood entry?")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.notice,
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var rendered []string
	for i, title := range tabTitles {
		if m.state == tabs[i] {
			rendered = append(rendered, activeTabStyle.Render(title))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

func (m Model) viewSettings() string {
	s := m.settings
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Settings"),
		"",
		row("Water Reminders:", onOff(s.WaterReminderEnabled)),
		row("Reminder Interval:", intervalLabel(s.WaterReminderInterval)),
		row("Notifications:", onOff(s.NotificationEnabled)),
		row("Shake Detection:", onOff(s.EnableShakeDetection)),
		row("Theme:", s.Theme),
		row("Timezone:", s.Timezone),
		"",
		m.settingsCountdown.View(),
		"",
		subtleStyle.Render(fmt.Sprintf("[e] edit  [r] restart reminder  · water goal %d glasses", m.stats.Water.Goal)),
	)
}

func (m Model) viewConfirm(question string) string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(question),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
