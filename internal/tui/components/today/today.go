package today

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nutrilog/nutrilog/internal/tracker"
)

type AddNutrientMsg struct{}

type ToggleIntakeMsg struct {
	NutrientID string
}

type UntrackNutrientMsg struct {
	NutrientID string
}

type Item struct {
	Entry tracker.ChecklistItem
}

func (i Item) Title() string {
	mark := "○"
	if i.Entry.Taken {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s", mark, i.Entry.Nutrient.Name)
}

func (i Item) Description() string {
	desc := "not taken today"
	if i.Entry.Taken {
		desc = "taken today"
	}
	if i.Entry.Nutrient.Dosage != "" {
		desc += " · " + i.Entry.Nutrient.Dosage
	}
	return desc
}

func (i Item) FilterValue() string { return i.Entry.Nutrient.Name }

type KeyMap struct {
	Add     key.Binding
	Toggle  key.Binding
	Untrack key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add nutrient"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle taken"),
		),
		Untrack: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "untrack"),
		),
	}
}

type Model struct {
	list      list.Model
	keys      KeyMap
	checklist tracker.TodayChecklist
	streak    int
}

func New(checklist tracker.TodayChecklist, streak, width, height int) Model {
	items := make([]list.Item, len(checklist.Items))
	for i, entry := range checklist.Items {
		items[i] = Item{Entry: entry}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Untrack}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Untrack}
	}

	return Model{
		list:      l,
		keys:      keys,
		checklist: checklist,
		streak:    streak,
	}
}

// SetChecklist replaces the list contents, keeping the cursor position stable
// so a toggle does not jump the selection back to the top.
func (m *Model) SetChecklist(checklist tracker.TodayChecklist, streak int) {
	selected := m.list.Index()

	items := make([]list.Item, len(checklist.Items))
	for i, entry := range checklist.Items {
		items[i] = Item{Entry: entry}
	}
	m.list.SetItems(items)
	if selected < len(items) {
		m.list.Select(selected)
	}
	m.checklist = checklist
	m.streak = streak
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
			return m, func() tea.Msg { return AddNutrientMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleIntakeMsg{NutrientID: i.Entry.Nutrient.ID} }
			}
		case key.Matches(msg, m.keys.Untrack):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return UntrackNutrientMsg{NutrientID: i.Entry.Nutrient.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No nutrients tracked yet.\n  Press 'a' to add one."
	}

	header := fmt.Sprintf("  Recorded: %d/%d", m.checklist.Taken, m.checklist.Total)
	if m.checklist.Complete {
		header += fmt.Sprintf("  ·  all done, streak %d day(s)", m.streak)
	} else if m.streak > 0 {
		header += fmt.Sprintf("  ·  streak %d day(s)", m.streak)
	}

	return header + "\n\n" + m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
