package nutrients

import (
	"fmt"

	"github.com/nutrilog/nutrilog/internal/adherence"
	"github.com/nutrilog/nutrilog/internal/cli"
	"github.com/nutrilog/nutrilog/internal/logger"
	"github.com/nutrilog/nutrilog/internal/notifier"
)

type TrackCmd struct {
	Name string `arg:"" help:"Nutrient name."`
}

func (c *TrackCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	nutrient, err := ctx.Store.GetNutrientByName(c.Name)
	if err != nil {
		return fmt.Errorf("nutrient %q not found (add it with 'nutrilog nutrient add')", c.Name)
	}

	profile, err := ctx.ActiveProfile()
	if err != nil {
		return err
	}

	if err := ctx.Store.TrackNutrient(profile.ID, nutrient.ID); err != nil {
		return err
	}

	// The tracked set is the completion denominator, so growing it can
	// retract already-derived completed days.
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	if _, err := ctx.Tracker.RecomputeCompletedDay(profile.ID, today); err != nil {
		return err
	}

	fmt.Printf("Tracking %q for profile %s\n", c.Name, profile.Name)
	return nil
}

type UntrackCmd struct {
	Name string `arg:"" help:"Nutrient name."`
}

func (c *UntrackCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	nutrient, err := ctx.Store.GetNutrientByName(c.Name)
	if err != nil {
		return fmt.Errorf("nutrient %q not found", c.Name)
	}

	profile, err := ctx.ActiveProfile()
	if err != nil {
		return err
	}

	if err := ctx.Store.UntrackNutrient(profile.ID, nutrient.ID); err != nil {
		return err
	}

	today, err := ctx.Today()
	if err != nil {
		return err
	}
	if _, err := ctx.Tracker.RecomputeCompletedDay(profile.ID, today); err != nil {
		return err
	}

	fmt.Printf("Stopped tracking %q for profile %s\n", c.Name, profile.Name)
	return nil
}

type TakeCmd struct {
	Name string `arg:"" help:"Nutrient name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *TakeCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	nutrient, err := ctx.Store.GetNutrientByName(c.Name)
	if err != nil {
		return fmt.Errorf("nutrient %q not found", c.Name)
	}

	profile, err := ctx.ActiveProfile()
	if err != nil {
		return err
	}

	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	res, err := ctx.Tracker.ToggleIntake(profile.ID, nutrient.ID, day, today)
	if err != nil {
		return err
	}

	if res.Marked {
		fmt.Printf("Marked %q as taken for %s\n", c.Name, day)
	} else {
		fmt.Printf("Unmarked %q for %s\n", c.Name, day)
	}

	if res.DayComplete {
		fmt.Printf("All tracked nutrients taken for %s. Streak: %d day(s)\n", day, res.Streak)
	}

	if res.Milestone != 0 {
		celebrate(ctx, res.Milestone)
	}

	return nil
}

// celebrate announces a reached milestone and forwards it to the tray app if
// notifications are enabled. Notification failures only log; the milestone is
// already recorded.
func celebrate(ctx *cli.Context, milestone int) {
	fmt.Printf("🎉 Milestone reached: %d-day streak!\n", milestone)

	settings, err := ctx.Store.GetSettings()
	if err != nil || !settings.NotificationsEnabled {
		return
	}
	if !adherence.IsMilestone(milestone) {
		return
	}
	if err := notifier.New().Notify(fmt.Sprintf("Milestone reached: %d-day streak!", milestone)); err != nil {
		logger.Debug("Milestone notification not delivered", "error", err)
	}
}
