package system

import (
	"fmt"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/nutrilog/nutrilog/internal/cli"
	"github.com/nutrilog/nutrilog/internal/constants"
	"github.com/nutrilog/nutrilog/internal/logger"
	"github.com/nutrilog/nutrilog/internal/notifier"
	"github.com/nutrilog/nutrilog/internal/validation"
)

// NotifyCmd dispatches due reminders. It is meant to be run once a minute by
// the tray app or a cron entry; a reminder fires when its HH:MM matches the
// current minute and its nutrient has not been taken today.
type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	profile, err := ctx.ActiveProfile()
	if err != nil {
		return err
	}

	reminders, err := ctx.Store.GetAllReminders(profile.ID)
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}
	if len(reminders) == 0 {
		if c.DryRun {
			fmt.Println("No reminders set.")
		}
		return nil
	}

	// Detect reminder-set drift so external schedulers (cron, tray app) can
	// notice when their cached schedule is stale.
	hash, err := hashstructure.Hash(reminders, hashstructure.FormatV2, nil)
	if err == nil {
		hashStr := fmt.Sprintf("%d", hash)
		if settings.ReminderHash != "" && settings.ReminderHash != hashStr {
			logger.Info("Reminder schedule changed since last run")
		}
		if settings.ReminderHash != hashStr {
			settings.ReminderHash = hashStr
			if err := ctx.Store.SaveSettings(settings); err != nil {
				logger.Warn("Failed to persist reminder hash", "error", err)
			}
		}
	}

	loc, err := validation.LoadTimezone(settings.Timezone)
	if err != nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	currentTime := now.Format(constants.TimeFormat)
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	n := notifier.New()

	for _, r := range reminders {
		if r.Time != currentTime || !r.DueOn(now.Weekday()) {
			continue
		}

		nutrient, err := ctx.Store.GetNutrient(r.NutrientID)
		if err != nil {
			continue
		}

		// Already taken today means nothing to nag about.
		if _, err := ctx.Store.GetIntake(profile.ID, r.NutrientID, today.String()); err == nil {
			continue
		}

		msg := fmt.Sprintf("Time to take %s", nutrient.Name)
		if nutrient.Dosage != "" {
			msg = fmt.Sprintf("Time to take %s (%s)", nutrient.Name, nutrient.Dosage)
		}

		if c.DryRun {
			fmt.Println("[DryRun] " + msg)
			continue
		}

		if err := sendWithRetry(n, msg); err != nil {
			// Log and keep going; one dead tray connection should not
			// swallow the remaining reminders.
			fmt.Printf("Failed to send notification: %v\n", err)
		}
	}

	return nil
}

func sendWithRetry(n *notifier.Notifier, msg string) error {
	var err error
	for attempt := 0; attempt < constants.NotifyMaxRetries; attempt++ {
		if err = n.Notify(msg); err == nil {
			return nil
		}
		time.Sleep(constants.NotifyRetryDelay)
	}
	return err
}
