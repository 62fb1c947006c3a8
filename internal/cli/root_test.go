package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nutrilog/nutrilog/internal/calendar"
	"github.com/nutrilog/nutrilog/internal/storage"
	"github.com/nutrilog/nutrilog/internal/tracker"
)

func setupTestContext(t *testing.T) *Context {
	t.Helper()

	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &Context{Store: store, Tracker: tracker.New(store)}
}

func setTimezone(t *testing.T, ctx *Context, tz string) {
	t.Helper()

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to read settings: %v", err)
	}
	settings.Timezone = tz
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}
}

// Every day-resolving path hangs off Context.Today, so it must follow the
// configured timezone rather than wherever the process happens to run.
func TestTodayHonorsTimezoneSetting(t *testing.T) {
	ctx := setupTestContext(t)
	setTimezone(t, ctx, "Pacific/Kiritimati")

	loc, err := time.LoadLocation("Pacific/Kiritimati")
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}

	// Sample the expected day on both sides of the call so a midnight
	// rollover mid-test cannot produce a false failure.
	before := calendar.Today(loc)
	got, err := ctx.Today()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := calendar.Today(loc)

	if !got.Equal(before) && !got.Equal(after) {
		t.Errorf("Today() = %s, want %s (configured zone)", got, before)
	}
}

func TestTodayFallsBackToLocalOnBadTimezone(t *testing.T) {
	ctx := setupTestContext(t)
	setTimezone(t, ctx, "Not/AZone")

	before := calendar.Today(nil)
	got, err := ctx.Today()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := calendar.Today(nil)

	if !got.Equal(before) && !got.Equal(after) {
		t.Errorf("Today() = %s, want local fallback %s", got, before)
	}
}
