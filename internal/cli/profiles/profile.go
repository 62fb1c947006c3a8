package profiles

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nutrilog/nutrilog/internal/cli"
	"github.com/nutrilog/nutrilog/internal/models"
)

type ProfileCmd struct {
	Add    ProfileAddCmd    `cmd:"" help:"Add a new profile."`
	List   ProfileListCmd   `cmd:"" help:"List profiles."`
	Switch ProfileSwitchCmd `cmd:"" help:"Switch the active profile."`
}

type ProfileAddCmd struct {
	Name   string `arg:"" help:"Profile name."`
	Switch bool   `short:"s" help:"Make the new profile active."`
}

func (c *ProfileAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if _, err := ctx.Store.GetProfileByName(c.Name); err == nil {
		return fmt.Errorf("profile with name %q already exists", c.Name)
	}

	profile := models.Profile{
		ID:        uuid.New().String(),
		Name:      c.Name,
		CreatedAt: time.Now(),
	}

	if err := ctx.Store.AddProfile(profile); err != nil {
		return err
	}
	fmt.Printf("Added profile: %s\n", c.Name)

	if c.Switch {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return err
		}
		settings.ActiveProfileID = profile.ID
		// A fresh profile starts with a clean milestone slate.
		settings.CelebratedMilestones = nil
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return err
		}
		fmt.Printf("Active profile is now %q\n", c.Name)
	}

	return nil
}

type ProfileListCmd struct{}

func (c *ProfileListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	profiles, err := ctx.Store.GetAllProfiles()
	if err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	for _, p := range profiles {
		marker := "  "
		if p.ID == settings.ActiveProfileID {
			marker = "* "
		}
		fmt.Printf("%s%s\n", marker, p.Name)
	}

	return nil
}

type ProfileSwitchCmd struct {
	Name string `arg:"" help:"Profile name."`
}

func (c *ProfileSwitchCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	profile, err := ctx.Store.GetProfileByName(c.Name)
	if err != nil {
		return fmt.Errorf("profile %q not found", c.Name)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if settings.ActiveProfileID == profile.ID {
		fmt.Printf("Profile %q is already active\n", c.Name)
		return nil
	}

	settings.ActiveProfileID = profile.ID
	// Celebrated milestones are per-streak, and streaks are per-profile.
	settings.CelebratedMilestones = nil
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Active profile is now %q\n", c.Name)
	return nil
}
