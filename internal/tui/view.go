package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = docStyle.Render(m.todayModel.View())
	case StateHistory:
		content = docStyle.Render(m.heatmapModel.View())
	case StateAddNutrient:
		content = m.form.View()
	case StateConfirmUntrack:
		content = m.viewConfirmUntrack()
	}

	var status string
	if m.statusMsg != "" {
		status = statusStyle.Render(m.statusMsg)
	}

	var fact string
	if m.funFact != "" && m.state == StateToday {
		fact = factStyle.Render("Did you know? " + m.funFact)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		fact,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Today", "History"}
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmUntrack() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Stop tracking this nutrient?"),
			"Intake history is kept; the day completion denominator shrinks.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
