// Package tracker ties the storage layer to the adherence engine. It owns the
// derivation of completed days from intake records: every mutation re-reads
// the tracked set and the day's intake fresh from storage before deciding
// whether the day is complete, so a stale cached flag can never leak into the
// streak math.
package tracker

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nutrilog/nutrilog/internal/adherence"
	"github.com/nutrilog/nutrilog/internal/calendar"
	"github.com/nutrilog/nutrilog/internal/constants"
	"github.com/nutrilog/nutrilog/internal/models"
	"github.com/nutrilog/nutrilog/internal/storage"
)

// minDay is the lower bound used when a query needs the full history.
const minDay = "0001-01-01"

type Tracker struct {
	store storage.Provider
}

func New(store storage.Provider) *Tracker {
	return &Tracker{store: store}
}

// ToggleResult describes the outcome of a single intake toggle.
type ToggleResult struct {
	Marked      bool // true when the toggle recorded the intake, false when it unmarked it
	DayComplete bool // whether every tracked nutrient is now taken for the day
	Streak      int  // current streak after the toggle
	Milestone   int  // newly reached milestone, 0 if none
}

// ToggleIntake marks the nutrient as taken for the day, or unmarks it when a
// record already exists, then re-derives the day's completion state and the
// resulting streak from fresh reads. The streak and milestone check are
// anchored at today, not at the toggled day, so backfilling a past date can
// never celebrate a streak that has since been broken.
func (t *Tracker) ToggleIntake(profileID, nutrientID string, day, today calendar.Day) (ToggleResult, error) {
	var res ToggleResult

	_, err := t.store.GetIntake(profileID, nutrientID, day.String())
	switch {
	case err == nil:
		if err := t.store.DeleteIntake(profileID, nutrientID, day.String()); err != nil {
			return res, fmt.Errorf("failed to unmark intake: %w", err)
		}
		res.Marked = false
	case errors.Is(err, sql.ErrNoRows):
		record := models.IntakeRecord{
			ID:         uuid.NewString(),
			ProfileID:  profileID,
			NutrientID: nutrientID,
			Day:        day.String(),
			CreatedAt:  time.Now(),
		}
		if err := t.store.AddIntake(record); err != nil {
			return res, fmt.Errorf("failed to mark intake: %w", err)
		}
		res.Marked = true
	default:
		return res, fmt.Errorf("failed to read intake: %w", err)
	}

	complete, err := t.RecomputeCompletedDay(profileID, day)
	if err != nil {
		return res, err
	}
	res.DayComplete = complete

	streak, err := t.currentStreak(profileID, today)
	if err != nil {
		return res, err
	}
	res.Streak = streak

	milestone, err := t.checkMilestone(streak)
	if err != nil {
		return res, err
	}
	res.Milestone = milestone

	return res, nil
}

// RecomputeCompletedDay re-derives whether the day is complete from fresh
// reads of the tracked set and the day's intake records, and reconciles the
// completed_days row. Used after every toggle and by doctor for repair.
// A day with zero tracked nutrients is never complete.
func (t *Tracker) RecomputeCompletedDay(profileID string, day calendar.Day) (bool, error) {
	tracked, err := t.store.GetTrackedNutrients(profileID)
	if err != nil {
		return false, fmt.Errorf("failed to read tracked nutrients: %w", err)
	}

	records, err := t.store.ListIntakeForDay(profileID, day.String())
	if err != nil {
		return false, fmt.Errorf("failed to read intake for %s: %w", day, err)
	}
	taken := make(map[string]struct{}, len(records))
	for _, r := range records {
		taken[r.NutrientID] = struct{}{}
	}

	complete := len(tracked) > 0
	for _, n := range tracked {
		if _, ok := taken[n.ID]; !ok {
			complete = false
			break
		}
	}

	// Both writes are idempotent, so reconciling unconditionally is safe.
	if complete {
		if err := t.store.UpsertCompletedDay(profileID, day.String()); err != nil {
			return false, fmt.Errorf("failed to record completed day: %w", err)
		}
	} else {
		if err := t.store.DeleteCompletedDay(profileID, day.String()); err != nil {
			return false, fmt.Errorf("failed to clear completed day: %w", err)
		}
	}

	return complete, nil
}

// Summary is the full adherence picture for one profile, built from the
// completed-day history in storage.
type Summary struct {
	CurrentStreak int
	BestStreak    int
	WeekRow       [7]bool // last 7 days ending today, oldest first
	Grid          []adherence.Cell
	Rate          int
	WeekBlocks    []int
	Histogram     [7]int
}

// BuildSummary computes streaks and the numDays-wide adherence view ending at
// today for the profile's completed days.
func (t *Tracker) BuildSummary(profileID string, today calendar.Day, numDays int) (Summary, error) {
	days, err := t.store.ListCompletedDays(profileID, minDay, today.String())
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list completed days: %w", err)
	}
	return t.summarize(days, today, numDays)
}

// BuildNutrientSummary computes the same view over a single nutrient's intake
// days, so a per-nutrient streak counts days that nutrient was taken
// regardless of the rest of the stack.
func (t *Tracker) BuildNutrientSummary(profileID, nutrientID string, today calendar.Day, numDays int) (Summary, error) {
	days, err := t.store.ListIntakeDays(profileID, nutrientID, minDay, today.String())
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list intake days: %w", err)
	}
	return t.summarize(days, today, numDays)
}

func (t *Tracker) summarize(days []string, today calendar.Day, numDays int) (Summary, error) {
	set, err := calendar.ParseDaySet(days)
	if err != nil {
		return Summary{}, fmt.Errorf("stored day is malformed: %w", err)
	}

	grid, err := adherence.BuildGrid(set, today, numDays)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		CurrentStreak: adherence.CurrentStreak(set, today),
		BestStreak:    adherence.BestStreak(set),
		Grid:          grid,
		Rate:          adherence.Rate(grid),
		WeekBlocks:    adherence.WeekBlocks(grid),
		Histogram:     adherence.WeekdayHistogram(grid),
	}

	weekCells, err := adherence.BuildGrid(set, today, constants.DaysPerWeek)
	if err != nil {
		return Summary{}, err
	}
	for i, c := range weekCells {
		s.WeekRow[i] = c.Count > 0
	}

	return s, nil
}

// TodayChecklist pairs each tracked nutrient with its taken flag for the day.
type TodayChecklist struct {
	Items    []ChecklistItem
	Taken    int
	Total    int
	Complete bool
}

type ChecklistItem struct {
	Nutrient models.Nutrient
	Taken    bool
}

// BuildTodayChecklist reads the tracked set and the day's intake and returns
// them joined, in the tracked set's order.
func (t *Tracker) BuildTodayChecklist(profileID string, day calendar.Day) (TodayChecklist, error) {
	tracked, err := t.store.GetTrackedNutrients(profileID)
	if err != nil {
		return TodayChecklist{}, fmt.Errorf("failed to read tracked nutrients: %w", err)
	}

	records, err := t.store.ListIntakeForDay(profileID, day.String())
	if err != nil {
		return TodayChecklist{}, fmt.Errorf("failed to read intake for %s: %w", day, err)
	}
	taken := make(map[string]struct{}, len(records))
	for _, r := range records {
		taken[r.NutrientID] = struct{}{}
	}

	list := TodayChecklist{Total: len(tracked)}
	for _, n := range tracked {
		_, ok := taken[n.ID]
		if ok {
			list.Taken++
		}
		list.Items = append(list.Items, ChecklistItem{Nutrient: n, Taken: ok})
	}
	list.Complete = list.Total > 0 && list.Taken == list.Total

	return list, nil
}

// checkMilestone records a newly reached streak milestone in settings and
// returns it, or 0 when the streak is not at an uncelebrated milestone. A
// broken streak clears the celebrated list so the next run celebrates again.
func (t *Tracker) checkMilestone(streak int) (int, error) {
	settings, err := t.store.GetSettings()
	if err != nil {
		return 0, fmt.Errorf("failed to read settings: %w", err)
	}

	if streak == 0 {
		if len(settings.CelebratedMilestones) == 0 {
			return 0, nil
		}
		settings.CelebratedMilestones = nil
		return 0, t.store.SaveSettings(settings)
	}

	if !adherence.IsMilestone(streak) || settings.HasCelebrated(streak) {
		return 0, nil
	}

	settings.CelebratedMilestones = append(settings.CelebratedMilestones, streak)
	if err := t.store.SaveSettings(settings); err != nil {
		return 0, fmt.Errorf("failed to save settings: %w", err)
	}
	return streak, nil
}

func (t *Tracker) currentStreak(profileID string, today calendar.Day) (int, error) {
	days, err := t.store.ListCompletedDays(profileID, minDay, today.String())
	if err != nil {
		return 0, fmt.Errorf("failed to list completed days: %w", err)
	}
	set, err := calendar.ParseDaySet(days)
	if err != nil {
		return 0, fmt.Errorf("stored day is malformed: %w", err)
	}
	return adherence.CurrentStreak(set, today), nil
}
