package reminders

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nutrilog/nutrilog/internal/cli"
	"github.com/nutrilog/nutrilog/internal/constants"
	"github.com/nutrilog/nutrilog/internal/models"
	"github.com/nutrilog/nutrilog/internal/validation"
)

type ReminderCmd struct {
	Add    ReminderAddCmd    `cmd:"" help:"Add or replace a nutrient reminder."`
	List   ReminderListCmd   `cmd:"" help:"List reminders."`
	Delete ReminderDeleteCmd `cmd:"" help:"Delete a reminder."`
}

type ReminderAddCmd struct {
	Nutrient  string `arg:"" help:"Nutrient name."`
	Time      string `arg:"" help:"Time of day in HH:MM format."`
	Frequency string `short:"f" help:"Frequency (daily|weekly)." default:"daily"`
	Weekdays  string `short:"w" help:"Comma-separated weekdays for weekly reminders."`
}

func (c *ReminderAddCmd) Validate() error {
	if !validation.IsValidTimeFormat(c.Time) {
		return fmt.Errorf("invalid time: %s (expected HH:MM)", c.Time)
	}
	switch c.Frequency {
	case constants.FrequencyDaily:
	case constants.FrequencyWeekly:
		if c.Weekdays == "" {
			return fmt.Errorf("weekdays must be specified for weekly reminders")
		}
	default:
		return fmt.Errorf("frequency must be daily or weekly, got %q", c.Frequency)
	}
	return nil
}

func (c *ReminderAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	nutrient, err := ctx.Store.GetNutrientByName(c.Nutrient)
	if err != nil {
		return fmt.Errorf("nutrient %q not found", c.Nutrient)
	}

	profile, err := ctx.ActiveProfile()
	if err != nil {
		return err
	}

	var weekdays []time.Weekday
	if c.Weekdays != "" {
		weekdays, err = cli.ParseWeekdays(c.Weekdays)
		if err != nil {
			return err
		}
	}

	reminder := models.Reminder{
		ID:         uuid.New().String(),
		ProfileID:  profile.ID,
		NutrientID: nutrient.ID,
		Time:       c.Time,
		Frequency:  c.Frequency,
		Weekdays:   weekdays,
		CreatedAt:  time.Now(),
	}

	// One reminder per (profile, nutrient); adding again replaces it.
	if err := ctx.Store.AddReminder(reminder); err != nil {
		return err
	}

	fmt.Printf("Reminder for %q set: %s\n", c.Nutrient, cli.FormatSchedule(reminder))
	return nil
}

type ReminderListCmd struct{}

func (c *ReminderListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	profile, err := ctx.ActiveProfile()
	if err != nil {
		return err
	}

	reminders, err := ctx.Store.GetAllReminders(profile.ID)
	if err != nil {
		return err
	}

	if len(reminders) == 0 {
		fmt.Println("No reminders set.")
		return nil
	}

	for _, r := range reminders {
		name := r.NutrientID
		if nutrient, err := ctx.Store.GetNutrient(r.NutrientID); err == nil {
			name = nutrient.Name
		}
		fmt.Printf("%-20s %s\n", name, cli.FormatSchedule(r))
	}

	return nil
}

type ReminderDeleteCmd struct {
	Nutrient string `arg:"" help:"Nutrient name."`
}

func (c *ReminderDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	nutrient, err := ctx.Store.GetNutrientByName(c.Nutrient)
	if err != nil {
		return fmt.Errorf("nutrient %q not found", c.Nutrient)
	}

	profile, err := ctx.ActiveProfile()
	if err != nil {
		return err
	}

	reminder, err := ctx.Store.GetReminderForNutrient(profile.ID, nutrient.ID)
	if err != nil {
		return fmt.Errorf("no reminder set for %q", c.Nutrient)
	}

	if err := ctx.Store.DeleteReminder(reminder.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted reminder for %q\n", c.Nutrient)
	return nil
}
