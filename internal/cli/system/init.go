package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nutrilog/nutrilog/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if abs, err := filepath.Abs(dbPath); err == nil {
			dbPath = abs
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to prevent file locking issues on delete.
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized nutrilog storage at: %s\n", ctx.Store.GetConfigPath())
	fmt.Println("Add a nutrient with 'nutrilog nutrient add <name> --track'.")

	return nil
}
