package mood

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	journal "github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/mood"
)

type AddMoodMsg struct{}

type ShareMoodMsg struct {
	Entry models.MoodEntry
}

type ClearMoodsMsg struct{}

type Item struct {
	Entry models.MoodEntry
	when  string
}

func (i Item) Title() string { return i.Entry.Emoji + " " + i.Entry.MoodType }

func (i Item) Description() string {
	if i.Entry.Notes == "" {
		return i.when
	}
	return i.when + " · " + i.Entry.Notes
}

func (i Item) FilterValue() string { return i.Entry.MoodType + " " + i.Entry.Notes }

type KeyMap struct {
	Add   key.Binding
	Share key.Binding
	Clear key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "log mood"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear all"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
	loc  *time.Location
}

func New(entries []models.MoodEntry, now time.Time, loc *time.Location, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Mood Journal"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Share}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Share, keys.Clear}
	}

	m := Model{list: l, keys: keys, loc: loc}
	m.SetEntries(entries, now)
	return m
}

// SetEntries replaces the list. now picks the "Today"/"Yesterday" labels.
func (m *Model) SetEntries(entries []models.MoodEntry, now time.Time) {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{
			Entry: e,
			when:  journal.DisplayDate(e, now, m.loc),
		}
	}
	m.list.SetItems(items)
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
			return m, func() tea.Msg { return AddMoodMsg{} }
		case key.Matches(msg, m.keys.Share):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ShareMoodMsg{Entry: i.Entry} }
			}
		case key.Matches(msg, m.keys.Clear):
			if len(m.list.Items()) > 0 {
				return m, func() tea.Msg { return ClearMoodsMsg{} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No moods logged yet.\n  Press 'a' to record how you feel."
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
