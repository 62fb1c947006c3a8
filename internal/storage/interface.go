package storage

import (
	"net/url"
	"strings"

	"github.com/nutrilog/nutrilog/internal/models"
)

// Provider is the storage contract shared by the SQLite and PostgreSQL
// backends. All day parameters and range bounds are YYYY-MM-DD strings,
// inclusive on both ends.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Profiles
	AddProfile(models.Profile) error
	GetProfile(id string) (models.Profile, error)
	GetProfileByName(name string) (models.Profile, error)
	GetAllProfiles() ([]models.Profile, error)

	// Nutrient catalog
	AddNutrient(models.Nutrient) error
	GetNutrient(id string) (models.Nutrient, error)
	GetNutrientByName(name string) (models.Nutrient, error)
	GetAllNutrients(includeDeleted bool) ([]models.Nutrient, error)
	UpdateNutrient(models.Nutrient) error
	DeleteNutrient(id string) error
	RestoreNutrient(id string) error

	// Tracked nutrients (the denominator for completed-day derivation)
	TrackNutrient(profileID, nutrientID string) error
	UntrackNutrient(profileID, nutrientID string) error
	GetTrackedNutrients(profileID string) ([]models.Nutrient, error)

	// Intake records. AddIntake on an existing (profile, nutrient, day) key is
	// a no-op; DeleteIntake on a missing key is a no-op.
	AddIntake(models.IntakeRecord) error
	GetIntake(profileID, nutrientID, day string) (models.IntakeRecord, error)
	DeleteIntake(profileID, nutrientID, day string) error
	ListIntakeForDay(profileID, day string) ([]models.IntakeRecord, error)
	ListIntakeDays(profileID, nutrientID, from, to string) ([]string, error)

	// Completed days (derived). Upsert twice for the same key is a no-op on
	// the second call; delete on a non-existent key is a no-op, not an error.
	UpsertCompletedDay(profileID, day string) error
	DeleteCompletedDay(profileID, day string) error
	IsDayComplete(profileID, day string) (bool, error)
	ListCompletedDays(profileID, from, to string) ([]string, error)

	// Reminders
	AddReminder(models.Reminder) error
	GetReminderForNutrient(profileID, nutrientID string) (models.Reminder, error)
	GetAllReminders(profileID string) ([]models.Reminder, error)
	DeleteReminder(id string) error

	// Fun facts
	GetRandomFunFact() (models.FunFact, error)

	// Utils
	GetConfigPath() string
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string embeds
// a password. Credentials belong in the OS keyring, the environment, or
// .pgpass, never on the command line.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		// Unparsable strings are handled later by the driver; a quick scan
		// still catches the user:password@ form.
		return strings.Contains(connStr, ":") && strings.Contains(connStr, "@")
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}
