package models

import (
	"testing"

	"github.com/nutrilog/nutrilog/internal/constants"
)

func TestSettingsMapRoundTrip(t *testing.T) {
	original := Settings{
		Timezone:             "Europe/Berlin",
		ActiveProfileID:      "profile-1",
		NotificationsEnabled: true,
		ReminderHash:         "abc123",
		CelebratedMilestones: []int{5, 10, 15},
	}

	data := SettingsToMap(original)
	restored, err := MapToSettings(data)
	if err != nil {
		t.Fatalf("MapToSettings returned unexpected error: %v", err)
	}

	if restored.Timezone != original.Timezone {
		t.Errorf("timezone: got %q, want %q", restored.Timezone, original.Timezone)
	}
	if restored.ActiveProfileID != original.ActiveProfileID {
		t.Errorf("active profile: got %q, want %q", restored.ActiveProfileID, original.ActiveProfileID)
	}
	if !restored.NotificationsEnabled {
		t.Error("notifications flag lost in round trip")
	}
	if restored.ReminderHash != original.ReminderHash {
		t.Errorf("reminder hash: got %q, want %q", restored.ReminderHash, original.ReminderHash)
	}
	if len(restored.CelebratedMilestones) != 3 {
		t.Fatalf("expected 3 milestones, got %v", restored.CelebratedMilestones)
	}
	for i, m := range original.CelebratedMilestones {
		if restored.CelebratedMilestones[i] != m {
			t.Errorf("milestone[%d]: got %d, want %d", i, restored.CelebratedMilestones[i], m)
		}
	}
}

func TestMapToSettingsEmptyMilestones(t *testing.T) {
	settings, err := MapToSettings(map[string]string{
		constants.SettingTimezone:             "Local",
		constants.SettingCelebratedMilestones: "",
	})
	if err != nil {
		t.Fatalf("MapToSettings returned unexpected error: %v", err)
	}
	if len(settings.CelebratedMilestones) != 0 {
		t.Errorf("expected no milestones for empty value, got %v", settings.CelebratedMilestones)
	}
}

func TestMapToSettingsBadMilestones(t *testing.T) {
	_, err := MapToSettings(map[string]string{
		constants.SettingCelebratedMilestones: "5,abc",
	})
	if err == nil {
		t.Error("expected error for non-numeric milestone value")
	}
}

func TestMapToSettingsIgnoresUnknownKeys(t *testing.T) {
	settings, err := MapToSettings(map[string]string{
		constants.SettingTimezone: "UTC",
		"schema_version":          "2",
	})
	if err != nil {
		t.Fatalf("MapToSettings returned unexpected error: %v", err)
	}
	if settings.Timezone != "UTC" {
		t.Errorf("expected timezone UTC, got %q", settings.Timezone)
	}
}

func TestApplyDefaultSettings(t *testing.T) {
	settings := Settings{}
	ApplyDefaultSettings(&settings)
	if settings.Timezone != constants.DefaultTimezone {
		t.Errorf("expected default timezone %q, got %q", constants.DefaultTimezone, settings.Timezone)
	}

	settings = Settings{Timezone: "Asia/Tokyo"}
	ApplyDefaultSettings(&settings)
	if settings.Timezone != "Asia/Tokyo" {
		t.Errorf("explicit timezone should be kept, got %q", settings.Timezone)
	}
}

func TestHasCelebrated(t *testing.T) {
	settings := Settings{CelebratedMilestones: []int{5, 10}}
	if !settings.HasCelebrated(5) {
		t.Error("HasCelebrated(5) = false, want true")
	}
	if settings.HasCelebrated(15) {
		t.Error("HasCelebrated(15) = true, want false")
	}
}
