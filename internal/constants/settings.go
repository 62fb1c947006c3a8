package constants

// Setting keys as stored in the settings table.
const (
	SettingTimezone             = "timezone"
	SettingActiveProfileID      = "active_profile_id"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingReminderHash         = "reminder_hash"
	SettingCelebratedMilestones = "celebrated_milestones"
)
