package system

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nutrilog/nutrilog/internal/cli"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpNutrient *DebugDumpNutrientCmd `cmd:"" help:"Dump nutrient data as JSON."`
	DumpIntake   *DebugDumpIntakeCmd   `cmd:"" help:"Dump a day's intake records as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings data as JSON."`
	DumpSummary  *DebugDumpSummaryCmd  `cmd:"" help:"Dump the adherence summary as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpNutrientCmd struct {
	Name string `arg:"" help:"Name of the nutrient to dump."`
}

func (cmd *DebugDumpNutrientCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	nutrient, err := ctx.Store.GetNutrientByName(cmd.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("nutrient not found: %s", cmd.Name)
		}
		return fmt.Errorf("failed to get nutrient: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(nutrient, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal nutrient: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpIntakeCmd struct {
	Date string `arg:"" help:"Day to dump (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpIntakeCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	date := cmd.Date
	if date == "today" {
		date = ""
	}
	day, err := ctx.ResolveDay(date)
	if err != nil {
		return err
	}

	profile, err := ctx.ActiveProfile()
	if err != nil {
		return err
	}

	records, err := ctx.Store.ListIntakeForDay(profile.ID, day.String())
	if err != nil {
		return fmt.Errorf("failed to get intake records: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal intake records: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpSummaryCmd struct {
	Days int `help:"Window size in days." default:"28"`
}

func (cmd *DebugDumpSummaryCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	profile, err := ctx.ActiveProfile()
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	summary, err := ctx.Tracker.BuildSummary(profile.ID, today, cmd.Days)
	if err != nil {
		return fmt.Errorf("failed to build summary: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
