package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nutrilog/nutrilog/internal/backup"
	"github.com/nutrilog/nutrilog/internal/calendar"
	"github.com/nutrilog/nutrilog/internal/logger"
	"github.com/nutrilog/nutrilog/internal/models"
	"github.com/nutrilog/nutrilog/internal/storage"
	"github.com/nutrilog/nutrilog/internal/tracker"
	"github.com/nutrilog/nutrilog/internal/validation"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
}

// ActiveProfile resolves the profile commands operate on: the one named by
// settings.active_profile_id.
func (c *Context) ActiveProfile() (models.Profile, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Profile{}, err
	}
	if settings.ActiveProfileID == "" {
		return models.Profile{}, fmt.Errorf("no active profile set, run 'nutrilog profile switch <name>'")
	}
	profile, err := c.Store.GetProfile(settings.ActiveProfileID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("active profile not found: %w", err)
	}
	return profile, nil
}

// Today returns the current calendar day in the configured timezone.
func (c *Context) Today() (calendar.Day, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return calendar.Day{}, err
	}
	loc, err := validation.LoadTimezone(settings.Timezone)
	if err != nil {
		// A stale timezone setting should not brick every command.
		logger.Warn("Invalid timezone in settings, falling back to local", "timezone", settings.Timezone)
		loc = time.Local
	}
	return calendar.Today(loc), nil
}

// ResolveDay parses a --date flag value, defaulting to today when empty.
func (c *Context) ResolveDay(date string) (calendar.Day, error) {
	if date == "" {
		return c.Today()
	}
	day, err := calendar.Parse(date)
	if err != nil {
		return calendar.Day{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", date)
	}
	return day, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

// FormatSchedule formats a reminder's frequency and weekdays into a
// human-readable string.
func FormatSchedule(r models.Reminder) string {
	if r.Frequency == "weekly" && len(r.Weekdays) > 0 {
		var days []string
		for _, wd := range r.Weekdays {
			days = append(days, wd.String()[:3])
		}
		return fmt.Sprintf("weekly on %s at %s", strings.Join(days, ","), r.Time)
	}
	return fmt.Sprintf("%s at %s", r.Frequency, r.Time)
}

// FormatNutrient renders a one-line catalog entry.
func FormatNutrient(n models.Nutrient) string {
	var sb strings.Builder
	sb.WriteString(n.Name)
	if n.Dosage != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", n.Dosage))
	} else if n.Unit != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", n.Unit))
	}
	if n.DeletedAt != nil {
		sb.WriteString(" [DELETED]")
	}
	return sb.String()
}
