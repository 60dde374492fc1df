package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "wellnest"
	DefaultKeyringUser = "database-connection"
	DefaultStorePath   = "~/.config/wellnest/wellnest.db"
	DefaultConfigFile  = "~/.config/wellnest/config.yaml"
	EnvPrefix          = "WELLNEST_"
	Version            = "v0.3.0"

	// DateFormat is the calendar date format used for mood entries and rollover (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the 24h clock format shown on the widget (HH:MM)
	TimeFormat = "15:04"

	// Log rotation
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "wellnest-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "wellnest-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.wellnest.tray"
	TrayExecutablePrefix   = "wellnest-tray"
	NotifyTimeout          = 3 * time.Second
)

// Session States. The first four are the tabs, in display order.
const (
	StateHome SessionState = iota
	StateHabits
	StateMood
	StateSettings
	StateAddHabit
	StateEditHabit
	StateAddMood
	StateEditSettings
	StateWaterGoal
	StateConfirmDelete
	StateConfirmClear
)
