package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nutrilog/nutrilog/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingActiveProfileID:
			settings.ActiveProfileID = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingReminderHash:
			settings.ReminderHash = value
		case constants.SettingCelebratedMilestones:
			if value == "" {
				continue
			}
			for _, part := range strings.Split(value, ",") {
				n, err := strconv.Atoi(strings.TrimSpace(part))
				if err != nil {
					return Settings{}, fmt.Errorf("parsing celebrated_milestones: %w", err)
				}
				settings.CelebratedMilestones = append(settings.CelebratedMilestones, n)
			}
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	milestones := make([]string, len(settings.CelebratedMilestones))
	for i, m := range settings.CelebratedMilestones {
		milestones[i] = strconv.Itoa(m)
	}

	return map[string]string{
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingActiveProfileID:      settings.ActiveProfileID,
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingReminderHash:         settings.ReminderHash,
		constants.SettingCelebratedMilestones: strings.Join(milestones, ","),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}

// HasCelebrated reports whether the given milestone was already celebrated.
func (s Settings) HasCelebrated(milestone int) bool {
	for _, m := range s.CelebratedMilestones {
		if m == milestone {
			return true
		}
	}
	return false
}
