package constants

const (
	// Water defaults
	DefaultWaterGoal = 8
	MinWaterGoal     = 1
	MaxWaterGoal     = 20

	// Reminder defaults
	DefaultReminderInterval = 30
	ReminderAlarmID         = "water_reminder"
	ReminderNotificationID  = 1001
	ReminderChannelID       = "water_reminder_channel"

	// Settings defaults
	DefaultWaterReminderEnabled  = false
	DefaultWaterReminderInterval = 60
	DefaultShakeDetection        = true
	DefaultTheme                 = "light"
	DefaultNotificationsEnabled  = true
	DefaultTimezone              = "Local"

	// Habit defaults
	DefaultHabitTarget = 1
	CalorieStep        = 50
	MaxPercentage      = 100

	// Widget defaults
	DefaultMoodEmoji   = "😐"
	DefaultNATSSubject = "wellnest.widget.summary"
	DefaultWidgetAddr  = "127.0.0.1:8787"
)

// ReminderIntervals are the only intervals, in minutes, a reminder can be armed with.
var ReminderIntervals = []int{1, 5, 15, 30, 60, 90, 120}

// Themes are the accepted values for the theme setting.
var Themes = []string{"light", "dark", "system"}
