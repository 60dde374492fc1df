package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
)

type AddHabitMsg struct{}

type EditHabitMsg struct {
	ID string
}

type IncrementHabitMsg struct {
	ID string
}

type DecrementHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type Item struct {
	Progress models.HabitProgress
}

func (i Item) Title() string {
	if i.Progress.Completed {
		return "✓ " + i.Progress.Name
	}
	return "○ " + i.Progress.Name
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s (%d%%)", i.Progress.Display, i.Progress.Percentage)
	if i.Progress.Habit.Description != "" {
		desc += " · " + i.Progress.Habit.Description
	}
	return desc
}

func (i Item) FilterValue() string { return i.Progress.Name }

type KeyMap struct {
	Add       key.Binding
	Edit      key.Binding
	Increment key.Binding
	Decrement key.Binding
	Delete    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Increment: key.NewBinding(
			key.WithKeys("+", "=", " "),
			key.WithHelp("+", "progress"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "undo"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(progress []models.HabitProgress, width, height int) Model {
	l := list.New(items(progress), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Increment, keys.Decrement}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Increment, keys.Decrement, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func items(progress []models.HabitProgress) []list.Item {
	out := make([]list.Item, len(progress))
	for i, p := range progress {
		out[i] = Item{Progress: p}
	}
	return out
}

func (m *Model) SetHabits(progress []models.HabitProgress) {
	m.list.SetItems(items(progress))
}

// Selected returns the highlighted habit.
func (m Model) Selected() (models.HabitProgress, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Progress, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditHabitMsg{ID: i.Progress.ID} }
			}
		case key.Matches(msg, m.keys.Increment):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return IncrementHabitMsg{ID: i.Progress.ID} }
			}
		case key.Matches(msg, m.keys.Decrement):
			if i, ok := m.list.SelectedItem().(Item); ok && i.Progress.CurrentCount > 0 {
				return m, func() tea.Msg { return DecrementHabitMsg{ID: i.Progress.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Progress.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
