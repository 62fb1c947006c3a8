package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nutrilog/nutrilog/internal/calendar"
	"github.com/nutrilog/nutrilog/internal/constants"
	"github.com/nutrilog/nutrilog/internal/storage"
	"github.com/nutrilog/nutrilog/internal/tracker"
	"github.com/nutrilog/nutrilog/internal/tui/components/heatmap"
	"github.com/nutrilog/nutrilog/internal/tui/components/today"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateHistory
	StateAddNutrient
	StateConfirmUntrack
)

type NutrientFormModel struct {
	Name   string
	Unit   string
	Dosage string
}

type Model struct {
	store   storage.Provider
	tracker *tracker.Tracker

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	profileID string
	day       calendar.Day

	todayModel   today.Model
	heatmapModel heatmap.Model
	historyDays  int

	form         *huh.Form
	nutrientForm *NutrientFormModel

	nutrientToUntrackID string
	funFact             string
	statusMsg           string
	quitting            bool
	width               int
	height              int
}

// NewModel builds the session model. The caller resolves day in the
// configured timezone so the TUI and the CLI agree on where today's
// boundary falls.
func NewModel(store storage.Provider, trk *tracker.Tracker, day calendar.Day) Model {
	m := Model{
		store:       store,
		tracker:     trk,
		state:       StateToday,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		historyDays: constants.DefaultLogDays,
	}

	settings, err := store.GetSettings()
	if err == nil {
		m.profileID = settings.ActiveProfileID
	}
	m.day = day

	checklist, _ := trk.BuildTodayChecklist(m.profileID, m.day)
	summary, _ := trk.BuildSummary(m.profileID, m.day, m.historyDays)

	m.todayModel = today.New(checklist, summary.CurrentStreak, 0, 0)
	m.heatmapModel = heatmap.New(summary, m.historyDays)

	if fact, err := store.GetRandomFunFact(); err == nil {
		m.funFact = fact.Text
	}

	return m
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}
	return [][]key.Binding{global, navigation}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh re-reads the checklist and summary from storage. Every mutation
// goes through here so the view always reflects fresh derivations.
func (m *Model) refresh() {
	checklist, err := m.tracker.BuildTodayChecklist(m.profileID, m.day)
	if err != nil {
		m.statusMsg = "⚠ " + err.Error()
		return
	}
	summary, err := m.tracker.BuildSummary(m.profileID, m.day, m.historyDays)
	if err != nil {
		m.statusMsg = "⚠ " + err.Error()
		return
	}
	m.todayModel.SetChecklist(checklist, summary.CurrentStreak)
	m.heatmapModel.SetSummary(summary, m.historyDays)
}
