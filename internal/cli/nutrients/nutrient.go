package nutrients

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nutrilog/nutrilog/internal/cli"
	"github.com/nutrilog/nutrilog/internal/models"
)

type NutrientCmd struct {
	Add     NutrientAddCmd     `cmd:"" help:"Add a nutrient to the catalog."`
	List    NutrientListCmd    `cmd:"" help:"List nutrients."`
	Edit    NutrientEditCmd    `cmd:"" help:"Edit a nutrient."`
	Delete  NutrientDeleteCmd  `cmd:"" help:"Delete a nutrient (soft delete)."`
	Restore NutrientRestoreCmd `cmd:"" help:"Restore a deleted nutrient."`
}

type NutrientAddCmd struct {
	Name        string `arg:"" help:"Nutrient name."`
	Unit        string `short:"u" help:"Measurement unit (e.g. mg, IU)."`
	Dosage      string `short:"d" help:"Dosage description (e.g. '400 IU daily')."`
	Description string `help:"Free-form description."`
	Track       bool   `short:"t" help:"Start tracking the nutrient for the active profile."`
}

func (c *NutrientAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Check if nutrient with same name already exists
	_, err := ctx.Store.GetNutrientByName(c.Name)
	if err == nil {
		return fmt.Errorf("nutrient with name %q already exists", c.Name)
	}

	nutrient := models.Nutrient{
		ID:          uuid.New().String(),
		Name:        c.Name,
		Unit:        c.Unit,
		Dosage:      c.Dosage,
		Description: c.Description,
		CreatedAt:   time.Now(),
	}

	if err := ctx.Store.AddNutrient(nutrient); err != nil {
		return err
	}
	fmt.Printf("Added nutrient: %s\n", c.Name)

	if c.Track {
		profile, err := ctx.ActiveProfile()
		if err != nil {
			return err
		}
		if err := ctx.Store.TrackNutrient(profile.ID, nutrient.ID); err != nil {
			return err
		}
		fmt.Printf("Tracking %q for profile %s\n", c.Name, profile.Name)
	}

	return nil
}

type NutrientListCmd struct {
	Deleted bool `help:"Include deleted nutrients."`
}

func (c *NutrientListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	nutrients, err := ctx.Store.GetAllNutrients(c.Deleted)
	if err != nil {
		return err
	}

	if len(nutrients) == 0 {
		fmt.Println("No nutrients found.")
		return nil
	}

	profile, err := ctx.ActiveProfile()
	if err != nil {
		return err
	}
	tracked, err := ctx.Store.GetTrackedNutrients(profile.ID)
	if err != nil {
		return err
	}
	trackedSet := make(map[string]struct{}, len(tracked))
	for _, n := range tracked {
		trackedSet[n.ID] = struct{}{}
	}

	for _, n := range nutrients {
		marker := "  "
		if _, ok := trackedSet[n.ID]; ok {
			marker = "* "
		}
		fmt.Printf("%s%s\n", marker, cli.FormatNutrient(n))
	}
	fmt.Println("\n* tracked for the active profile")

	return nil
}

type NutrientEditCmd struct {
	Name        string  `arg:"" help:"Nutrient name."`
	NewName     *string `help:"New name."`
	Unit        *string `short:"u" help:"New measurement unit."`
	Dosage      *string `short:"d" help:"New dosage description."`
	Description *string `help:"New description."`
}

func (c *NutrientEditCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	nutrient, err := ctx.Store.GetNutrientByName(c.Name)
	if err != nil {
		return fmt.Errorf("nutrient %q not found", c.Name)
	}

	if c.NewName != nil {
		if existing, err := ctx.Store.GetNutrientByName(*c.NewName); err == nil && existing.ID != nutrient.ID {
			return fmt.Errorf("nutrient with name %q already exists", *c.NewName)
		}
		nutrient.Name = *c.NewName
	}
	if c.Unit != nil {
		nutrient.Unit = *c.Unit
	}
	if c.Dosage != nil {
		nutrient.Dosage = *c.Dosage
	}
	if c.Description != nil {
		nutrient.Description = *c.Description
	}

	if err := ctx.Store.UpdateNutrient(nutrient); err != nil {
		return err
	}

	fmt.Printf("Updated nutrient: %s\n", nutrient.Name)
	return nil
}

type NutrientDeleteCmd struct {
	Name string `arg:"" help:"Nutrient name."`
}

func (c *NutrientDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	nutrient, err := ctx.Store.GetNutrientByName(c.Name)
	if err != nil {
		return fmt.Errorf("nutrient %q not found", c.Name)
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteNutrient(nutrient.ID); err != nil {
		return err
	}

	// Deleting shrinks the tracked set, which can make today complete.
	if err := recomputeToday(ctx); err != nil {
		return err
	}

	fmt.Printf("Deleted nutrient: %s (restore with 'nutrilog nutrient restore %s')\n", c.Name, c.Name)
	return nil
}

type NutrientRestoreCmd struct {
	Name string `arg:"" help:"Nutrient name."`
}

func (c *NutrientRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	nutrients, err := ctx.Store.GetAllNutrients(true)
	if err != nil {
		return err
	}

	for _, n := range nutrients {
		if n.Name == c.Name && n.DeletedAt != nil {
			if err := ctx.Store.RestoreNutrient(n.ID); err != nil {
				return err
			}
			// Restoring grows the tracked set again, which can retract
			// today's completion.
			if err := recomputeToday(ctx); err != nil {
				return err
			}
			fmt.Printf("Restored nutrient: %s\n", c.Name)
			return nil
		}
	}

	return fmt.Errorf("no deleted nutrient named %q found", c.Name)
}

// recomputeToday re-derives today's completed-day row for the active profile.
// Delete and restore change the tracked set out from under the derivation,
// just like track and untrack do.
func recomputeToday(ctx *cli.Context) error {
	profile, err := ctx.ActiveProfile()
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	_, err = ctx.Tracker.RecomputeCompletedDay(profile.ID, today)
	return err
}
