package validation

import (
	"fmt"
	"time"

	"github.com/nutrilog/nutrilog/internal/constants"
	"github.com/nutrilog/nutrilog/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateNutrientName ConflictType = "duplicate_nutrient_name"
	ConflictInvalidReminderTime   ConflictType = "invalid_reminder_time"
	ConflictInvalidWeekday        ConflictType = "invalid_weekday"
	ConflictEmptyWeeklySchedule   ConflictType = "empty_weekly_schedule"
	ConflictUnknownFrequency      ConflictType = "unknown_frequency"
	ConflictOrphanedReminder      ConflictType = "orphaned_reminder"
	ConflictInvalidTimezone       ConflictType = "invalid_timezone"
)

// Conflict represents a detected inconsistency in stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // nutrient/reminder names involved
	IDs         []string // record IDs involved (for repair)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks stored nutrients, reminders, and settings for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateNutrients checks the catalog for duplicate active names. Soft-deleted
// entries are skipped; they may legitimately share a name with a live one.
func (v *Validator) ValidateNutrients(nutrients []models.Nutrient) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	nameCount := make(map[string][]string)
	for _, n := range nutrients {
		if n.DeletedAt != nil {
			continue
		}
		if n.Name == "" {
			continue
		}
		nameCount[n.Name] = append(nameCount[n.Name], n.ID)
	}

	for name, ids := range nameCount {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateNutrientName,
				Description: fmt.Sprintf("Duplicate nutrient name: %q (IDs: %v)", name, ids),
				Items:       []string{name},
				IDs:         ids,
			})
		}
	}

	return result
}

// ValidateReminders checks reminders against the nutrient catalog.
func (v *Validator) ValidateReminders(reminders []models.Reminder, nutrients []models.Nutrient) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[string]string, len(nutrients))
	for _, n := range nutrients {
		known[n.ID] = n.Name
	}

	for _, r := range reminders {
		name, ok := known[r.NutrientID]
		if !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanedReminder,
				Description: fmt.Sprintf("Reminder %s references unknown nutrient %s", r.ID, r.NutrientID),
				IDs:         []string{r.ID},
			})
			name = r.NutrientID
		}

		if !IsValidTimeFormat(r.Time) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidReminderTime,
				Description: fmt.Sprintf("Reminder for %q has invalid time: %s", name, r.Time),
				Items:       []string{name},
				IDs:         []string{r.ID},
			})
		}

		switch r.Frequency {
		case constants.FrequencyDaily:
		case constants.FrequencyWeekly:
			if len(r.Weekdays) == 0 {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictEmptyWeeklySchedule,
					Description: fmt.Sprintf("Weekly reminder for %q has no weekdays", name),
					Items:       []string{name},
					IDs:         []string{r.ID},
				})
			}
		default:
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownFrequency,
				Description: fmt.Sprintf("Reminder for %q has unknown frequency: %s", name, r.Frequency),
				Items:       []string{name},
				IDs:         []string{r.ID},
			})
		}

		for _, wd := range r.Weekdays {
			if wd < time.Sunday || wd > time.Saturday {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidWeekday,
					Description: fmt.Sprintf("Reminder for %q has invalid weekday: %d", name, wd),
					Items:       []string{name},
					IDs:         []string{r.ID},
				})
			}
		}
	}

	return result
}

// ValidateSettings checks settings values that can go stale out-of-band, like
// a timezone renamed or removed from the IANA database.
func (v *Validator) ValidateSettings(settings models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if _, err := LoadTimezone(settings.Timezone); err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidTimezone,
			Description: fmt.Sprintf("Settings timezone %q is not a valid IANA zone", settings.Timezone),
			Items:       []string{settings.Timezone},
		})
	}

	return result
}

// IsValidTimeFormat reports whether the string is a valid HH:MM clock time.
func IsValidTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

// LoadTimezone resolves a settings timezone value to a *time.Location. The
// sentinel "Local" (or an empty value) maps to the system timezone.
func LoadTimezone(name string) (*time.Location, error) {
	if name == "" || name == constants.DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}
