package constants

import "time"

const (
	AppName            = "nutrilog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/nutrilog/nutrilog.db"
	EnvDBConnection    = "NUTRILOG_DB_CONNECTION"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "nutrilog-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "nutrilog-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.nutrilog.tray"

	// DaysPerWeek is the chunk size for week-aligned adherence views
	DaysPerWeek = 7

	// DefaultLogDays is the default window for the adherence log/heatmap
	DefaultLogDays = 28
)

const (
	// Reminder frequencies
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

const (
	DefaultTimezone             = "Local"
	DefaultNotificationsEnabled = true
	DefaultProfileName          = "default"
)
