package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
)

const headerDateLayout = "Monday, January 2"

// Quotes are shown one at a time on the home screen.
var Quotes = []string{
	"Small daily improvements are the key to staggering long-term results.",
	"The only bad workout is the one that didn't happen.",
	"Your body can stand almost anything. It's your mind you have to convince.",
	"Don't stop when you're tired. Stop when you're done.",
	"Success is the sum of small efforts repeated day in and day out.",
	"The hardest part is getting started. You're already here!",
	"Every day is a new opportunity to become a better version of yourself.",
	"Progress, not perfection. Every step counts!",
	"Your future self will thank you for the choices you make today.",
	"Wellness is not a destination, it's a journey of small consistent steps.",
}

// Greeting picks the salutation for the hour of day.
func Greeting(hour int) string {
	switch {
	case hour >= 5 && hour <= 11:
		return "Good Morning"
	case hour >= 12 && hour <= 17:
		return "Good Afternoon"
	case hour >= 18 && hour <= 21:
		return "Good Evening"
	default:
		return "Hello"
	}
}

// HeaderDate renders t as "Monday, January 2".
func HeaderDate(t time.Time) string {
	return t.Format(headerDateLayout)
}

// Quote returns quote n, wrapping around the list.
func Quote(n int) string {
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("💫 \"%s\"", Quotes[n%len(Quotes)])
}

// HomeStats is what the home screen summarizes.
type HomeStats struct {
	Habits models.HabitStats
	Water  models.WaterStatus
	Moods  int
}

// Lines renders the three progress rows.
func (s HomeStats) Lines() []string {
	return []string{
		fmt.Sprintf("✅ %d/%d habits · %d pending · %d%%",
			s.Habits.Completed, s.Habits.Total, s.Habits.Pending, s.Habits.CompletionRate),
		fmt.Sprintf("💧 %d/%d glasses", s.Water.Current, s.Water.Goal),
		fmt.Sprintf("😊 %d moods logged", s.Moods),
	}
}

func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

func (m Model) viewHome() string {
	now := m.now().In(m.deps.Moods.Location())
	lines := m.stats.Lines()
	rows := []string{
		titleStyle.Render(Greeting(now.Hour())),
		subtleStyle.Render(HeaderDate(now)),
		"",
		lines[0] + "  " + progressBar(m.stats.Habits.CompletionRate, 20),
		lines[1] + "  " + progressBar(m.stats.Water.Percentage, 20),
		subtleStyle.Render("   " + m.stats.Water.Message),
		lines[2],
		"",
		m.homeCountdown.View(),
		"",
		quoteStyle.Render(Quote(m.quote)),
		"",
		subtleStyle.Render("[w] add glass  [g] water goal"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
