package models

// Settings represents application-wide settings
type Settings struct {
	Timezone             string `json:"timezone"`               // IANA timezone name, or "Local" for the system timezone
	ActiveProfileID      string `json:"active_profile_id"`      // profile commands operate on by default
	NotificationsEnabled bool   `json:"notifications_enabled"`  // whether reminder/milestone notifications are dispatched
	ReminderHash         string `json:"reminder_hash"`          // hash of the reminder set at last notify run, for drift detection
	CelebratedMilestones []int  `json:"celebrated_milestones"`  // streak milestones already celebrated for the active streak
}
