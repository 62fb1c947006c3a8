// Package heatmap renders an adherence summary as a week-per-row grid with
// rate and streak annotations. It is a pure view component; the parent model
// feeds it fresh summaries.
package heatmap

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nutrilog/nutrilog/internal/constants"
	"github.com/nutrilog/nutrilog/internal/tracker"
)

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	percentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

type Model struct {
	summary tracker.Summary
	days    int
}

func New(summary tracker.Summary, days int) Model {
	return Model{summary: summary, days: days}
}

func (m *Model) SetSummary(summary tracker.Summary, days int) {
	m.summary = summary
	m.days = days
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(labelStyle.Render(fmt.Sprintf("Last %d days", m.days)))
	sb.WriteString("\n\n")

	cells := m.summary.Grid
	lead := len(cells) % constants.DaysPerWeek
	writeRow := func(start, end int) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  %s  ", cells[start].Day)))
		for i := start; i < end; i++ {
			if cells[i].Count > 0 {
				sb.WriteString(doneStyle.Render("■ "))
			} else {
				sb.WriteString(missedStyle.Render("· "))
			}
		}
		sb.WriteString("\n")
	}
	if lead > 0 {
		writeRow(0, lead)
	}
	for row := lead; row < len(cells); row += constants.DaysPerWeek {
		writeRow(row, row+constants.DaysPerWeek)
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Adherence: %s", percentStyle.Render(fmt.Sprintf("%d%%", m.summary.Rate))))

	if len(m.summary.WeekBlocks) > 1 {
		var weeks []string
		for _, pct := range m.summary.WeekBlocks {
			weeks = append(weeks, fmt.Sprintf("%d%%", pct))
		}
		sb.WriteString(labelStyle.Render(fmt.Sprintf("   by week: %s", strings.Join(weeks, " "))))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Streak: %d day(s), best %d day(s)\n", m.summary.CurrentStreak, m.summary.BestStreak))

	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("By weekday:"))
	sb.WriteString("\n")
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		count := m.summary.Histogram[wd]
		bar := doneStyle.Render(strings.Repeat("■", count))
		sb.WriteString(fmt.Sprintf("  %-4s %s %d\n", wd.String()[:3], bar, count))
	}

	return sb.String()
}
