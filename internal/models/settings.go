package models

import "github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"

// Settings is the user preferences record stored under the "settings" key.
// ShakeDetection and Theme are stored for the UI layer; nothing in this module acts on them.
type Settings struct {
	WaterReminderEnabled  bool   `json:"waterReminderEnabled"`
	WaterReminderInterval int    `json:"waterReminderInterval" validate:"reminder_interval"`
	EnableShakeDetection  bool   `json:"enableShakeDetection"`
	Theme                 string `json:"theme" validate:"oneof=light dark system"`
	NotificationEnabled   bool   `json:"notificationEnabled"`
	Timezone              string `json:"timezone,omitempty" validate:"omitempty,timezone"`
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() Settings {
	return Settings{
		WaterReminderEnabled:  constants.DefaultWaterReminderEnabled,
		WaterReminderInterval: constants.DefaultWaterReminderInterval,
		EnableShakeDetection:  constants.DefaultShakeDetection,
		Theme:                 constants.DefaultTheme,
		NotificationEnabled:   constants.DefaultNotificationsEnabled,
		Timezone:              constants.DefaultTimezone,
	}
}
