package nutrients

import (
	"fmt"
	"strings"
	"time"

	"github.com/nutrilog/nutrilog/internal/cli"
	"github.com/nutrilog/nutrilog/internal/constants"
	"github.com/nutrilog/nutrilog/internal/tracker"
)

type TodayCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	profile, err := ctx.ActiveProfile()
	if err != nil {
		return err
	}

	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	list, err := ctx.Tracker.BuildTodayChecklist(profile.ID, day)
	if err != nil {
		return err
	}

	if list.Total == 0 {
		fmt.Println("No nutrients tracked. Start with 'nutrilog track <name>'.")
		return nil
	}

	fmt.Printf("Nutrients for %s:\n\n", day)
	for _, item := range list.Items {
		status := "[ ]"
		if item.Taken {
			status = "[x]"
		}
		fmt.Printf("%s %s\n", status, cli.FormatNutrient(item.Nutrient))
	}

	fmt.Printf("\nRecorded: %d/%d\n", list.Taken, list.Total)
	if list.Complete {
		fmt.Println("All done for the day!")
	}

	// A fun fact keeps the view from being pure bookkeeping. Absence of
	// facts is not an error worth surfacing.
	if fact, err := ctx.Store.GetRandomFunFact(); err == nil && fact.Text != "" {
		fmt.Printf("\nDid you know? %s\n", fact.Text)
	}

	return nil
}

type StreakCmd struct {
	Nutrient string `help:"Show the streak for a single nutrient."`
}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	profile, err := ctx.ActiveProfile()
	if err != nil {
		return err
	}

	today, err := ctx.Today()
	if err != nil {
		return err
	}

	var summary tracker.Summary
	if c.Nutrient != "" {
		nutrient, err := ctx.Store.GetNutrientByName(c.Nutrient)
		if err != nil {
			return fmt.Errorf("nutrient %q not found", c.Nutrient)
		}
		summary, err = ctx.Tracker.BuildNutrientSummary(profile.ID, nutrient.ID, today, constants.DaysPerWeek)
		if err != nil {
			return err
		}
		fmt.Printf("Streak for %q:\n\n", c.Nutrient)
	} else {
		summary, err = ctx.Tracker.BuildSummary(profile.ID, today, constants.DaysPerWeek)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Current streak: %d day(s)\n", summary.CurrentStreak)
	fmt.Printf("Best streak:    %d day(s)\n", summary.BestStreak)

	// Last seven days, oldest first.
	fmt.Print("\nThis week:  ")
	weekStart := today.AddDays(-(constants.DaysPerWeek - 1))
	for _, done := range summary.WeekRow {
		mark := "."
		if done {
			mark = "#"
		}
		fmt.Printf("%s ", mark)
	}
	fmt.Println()
	fmt.Print("            ")
	for i := 0; i < constants.DaysPerWeek; i++ {
		fmt.Printf("%s ", strings.ToLower(weekStart.AddDays(i).Weekday().String()[:1]))
	}
	fmt.Println()

	return nil
}

type LogCmd struct {
	Days     int    `help:"Number of days to show." default:"28"`
	Nutrient string `help:"Show log for a single nutrient only."`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if c.Days <= 0 {
		return fmt.Errorf("--days must be positive")
	}

	profile, err := ctx.ActiveProfile()
	if err != nil {
		return err
	}

	today, err := ctx.Today()
	if err != nil {
		return err
	}

	var summary tracker.Summary
	label := "all tracked nutrients"
	if c.Nutrient != "" {
		nutrient, err := ctx.Store.GetNutrientByName(c.Nutrient)
		if err != nil {
			return fmt.Errorf("nutrient %q not found", c.Nutrient)
		}
		label = fmt.Sprintf("nutrient %q", c.Nutrient)
		summary, err = ctx.Tracker.BuildNutrientSummary(profile.ID, nutrient.ID, today, c.Days)
		if err != nil {
			return err
		}
	} else {
		summary, err = ctx.Tracker.BuildSummary(profile.ID, today, c.Days)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Adherence log for %s (last %d days):\n\n", label, c.Days)

	// Heatmap rows of one week each, oldest week first. The oldest row may
	// be shorter when the window is not week-aligned.
	cells := summary.Grid
	lead := len(cells) % constants.DaysPerWeek
	row := 0
	printWeek := func(start, end int) {
		fmt.Printf("  %s  ", cells[start].Day)
		for i := start; i < end; i++ {
			mark := "."
			if cells[i].Count > 0 {
				mark = "#"
			}
			fmt.Printf("%s ", mark)
		}
		fmt.Println()
	}
	if lead > 0 {
		printWeek(0, lead)
		row = lead
	}
	for ; row < len(cells); row += constants.DaysPerWeek {
		printWeek(row, row+constants.DaysPerWeek)
	}

	fmt.Printf("\nAdherence rate: %d%%\n", summary.Rate)

	if len(summary.WeekBlocks) > 1 {
		fmt.Print("By week:        ")
		for _, pct := range summary.WeekBlocks {
			fmt.Printf("%d%% ", pct)
		}
		fmt.Println()
	}

	fmt.Println("\nBy weekday:")
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		count := summary.Histogram[wd]
		fmt.Printf("  %-9s %s (%d)\n", wd.String(), strings.Repeat("#", count), count)
	}

	fmt.Printf("\nCurrent streak: %d day(s), best: %d day(s)\n", summary.CurrentStreak, summary.BestStreak)
	return nil
}
