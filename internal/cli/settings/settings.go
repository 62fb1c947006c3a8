package settings

import (
	"fmt"

	"github.com/nutrilog/nutrilog/internal/cli"
	"github.com/nutrilog/nutrilog/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone             *string `help:"IANA timezone for day boundaries (or 'Local')."`
	NotificationsEnabled *bool   `help:"Enable or disable notifications."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		activeProfile := settings.ActiveProfileID
		if profile, err := ctx.Store.GetProfile(settings.ActiveProfileID); err == nil {
			activeProfile = profile.Name
		}
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Active Profile:        %s\n", activeProfile)
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if _, err := validation.LoadTimezone(*c.Timezone); err != nil {
			return err
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
