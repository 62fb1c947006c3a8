package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/nutrilog/nutrilog/internal/models"
	"github.com/nutrilog/nutrilog/internal/tui/components/today"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle Add Nutrient form state
	if m.state == StateAddNutrient {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = m.previousState
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			nutrient := models.Nutrient{
				ID:        uuid.New().String(),
				Name:      m.nutrientForm.Name,
				Unit:      m.nutrientForm.Unit,
				Dosage:    m.nutrientForm.Dosage,
				CreatedAt: time.Now(),
			}
			if err := m.store.AddNutrient(nutrient); err != nil {
				m.statusMsg = "⚠ " + err.Error()
			} else if err := m.store.TrackNutrient(m.profileID, nutrient.ID); err != nil {
				m.statusMsg = "⚠ " + err.Error()
			} else {
				m.statusMsg = fmt.Sprintf("Tracking %q", nutrient.Name)
				m.refresh()
			}
			m.state = StateToday
		case huh.StateAborted:
			m.state = m.previousState
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Confirm Untrack state
	if m.state == StateConfirmUntrack {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if err := m.store.UntrackNutrient(m.profileID, m.nutrientToUntrackID); err != nil {
					m.statusMsg = "⚠ " + err.Error()
				} else if _, err := m.tracker.RecomputeCompletedDay(m.profileID, m.day); err != nil {
					m.statusMsg = "⚠ " + err.Error()
				} else {
					m.statusMsg = "Stopped tracking"
					m.refresh()
				}
				m.nutrientToUntrackID = ""
				m.state = StateToday
			case "n", "N", "esc", "q":
				m.nutrientToUntrackID = ""
				m.state = StateToday
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.todayModel.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
			if m.state == StateToday {
				m.state = StateHistory
			} else {
				m.state = StateToday
			}
			m.statusMsg = ""
			return m, nil
		}

	case today.AddNutrientMsg:
		m.previousState = m.state
		m.nutrientForm = &NutrientFormModel{}
		m.form = newNutrientForm(m.nutrientForm)
		m.state = StateAddNutrient
		return m, m.form.Init()

	case today.ToggleIntakeMsg:
		res, err := m.tracker.ToggleIntake(m.profileID, msg.NutrientID, m.day, m.day)
		if err != nil {
			m.statusMsg = "⚠ " + err.Error()
			return m, nil
		}
		m.statusMsg = ""
		if res.Milestone != 0 {
			m.statusMsg = fmt.Sprintf("🎉 Milestone reached: %d-day streak!", res.Milestone)
		}
		m.refresh()
		return m, nil

	case today.UntrackNutrientMsg:
		m.nutrientToUntrackID = msg.NutrientID
		m.state = StateConfirmUntrack
		return m, nil
	}

	if m.state == StateToday {
		var cmd tea.Cmd
		m.todayModel, cmd = m.todayModel.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func newNutrientForm(f *NutrientFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}).
				Value(&f.Name),
			huh.NewInput().
				Title("Unit (optional, e.g. mg, IU)").
				Value(&f.Unit),
			huh.NewInput().
				Title("Dosage (optional, e.g. 400 IU daily)").
				Value(&f.Dosage),
		),
	)
}
