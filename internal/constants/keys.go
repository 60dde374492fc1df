package constants

// Preference store keys. The layout is shared by every backend.
const (
	KeyHabits             = "habits"
	KeyTodayCompletions   = "today_completions"
	KeyMoods              = "moods"
	KeySettings           = "settings"
	KeyWaterGoal          = "water_goal"
	KeyCurrentWaterIntake = "current_water_intake"
	KeyLastResetDate      = "last_reset_date"
	KeyReminderEnabled    = "reminder_enabled"
	KeyReminderInterval   = "reminder_interval"
	KeyNextReminderTime   = "next_reminder_time"
)

// AllKeys lists every key the application writes.
var AllKeys = []string{
	KeyHabits,
	KeyTodayCompletions,
	KeyMoods,
	KeySettings,
	KeyWaterGoal,
	KeyCurrentWaterIntake,
	KeyLastResetDate,
	KeyReminderEnabled,
	KeyReminderInterval,
	KeyNextReminderTime,
}
