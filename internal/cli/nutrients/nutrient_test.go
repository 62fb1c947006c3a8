package nutrients

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nutrilog/nutrilog/internal/calendar"
	"github.com/nutrilog/nutrilog/internal/cli"
	"github.com/nutrilog/nutrilog/internal/models"
	"github.com/nutrilog/nutrilog/internal/storage"
	"github.com/nutrilog/nutrilog/internal/tracker"
)

func setupContext(t *testing.T) (*cli.Context, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to read settings: %v", err)
	}

	return &cli.Context{Store: store, Tracker: tracker.New(store)}, settings.ActiveProfileID
}

func addTracked(t *testing.T, ctx *cli.Context, profileID, name string) models.Nutrient {
	t.Helper()

	n := models.Nutrient{
		ID:        uuid.NewString(),
		Name:      name,
		Unit:      "mg",
		CreatedAt: time.Now(),
	}
	if err := ctx.Store.AddNutrient(n); err != nil {
		t.Fatalf("failed to add nutrient %s: %v", name, err)
	}
	if err := ctx.Store.TrackNutrient(profileID, n.ID); err != nil {
		t.Fatalf("failed to track nutrient %s: %v", name, err)
	}
	return n
}

// Deleting a nutrient shrinks the completion denominator, so a day that was
// incomplete only because the deleted nutrient was untaken must become
// complete without waiting for the next toggle or a doctor repair.
func TestDeleteNutrientRecomputesToday(t *testing.T) {
	ctx, profileID := setupContext(t)
	taken := addTracked(t, ctx, profileID, "Vitamin D")
	missed := addTracked(t, ctx, profileID, "Magnesium")

	today := calendar.Today(nil)
	if _, err := ctx.Tracker.ToggleIntake(profileID, taken.ID, today, today); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	complete, err := ctx.Store.IsDayComplete(profileID, today.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if complete {
		t.Fatal("day should start incomplete with one of two nutrients taken")
	}

	cmd := &NutrientDeleteCmd{Name: missed.Name}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	complete, err = ctx.Store.IsDayComplete(profileID, today.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !complete {
		t.Error("deleting the only untaken nutrient should derive today complete")
	}
}

func TestRestoreNutrientRecomputesToday(t *testing.T) {
	ctx, profileID := setupContext(t)
	taken := addTracked(t, ctx, profileID, "Vitamin D")
	missed := addTracked(t, ctx, profileID, "Magnesium")

	today := calendar.Today(nil)
	if _, err := ctx.Tracker.ToggleIntake(profileID, taken.ID, today, today); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	del := &NutrientDeleteCmd{Name: missed.Name}
	if err := del.Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// Restoring puts the untaken nutrient back in the tracked set, which
	// must retract today's derived completion.
	res := &NutrientRestoreCmd{Name: missed.Name}
	if err := res.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	complete, err := ctx.Store.IsDayComplete(profileID, today.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if complete {
		t.Error("restoring an untaken nutrient should retract today's completion")
	}
}
