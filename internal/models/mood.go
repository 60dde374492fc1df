package models

// MoodEntry is an immutable journal record.
type MoodEntry struct {
	ID        int64  `json:"id"`
	Emoji     string `json:"emoji" validate:"notblank"`
	MoodType  string `json:"moodType" validate:"notblank"`
	Notes     string `json:"notes"`
	Timestamp int64  `json:"timestamp"`
	Date      string `json:"date"`
}

// Mood is one entry of the mood palette offered by the UI.
type Mood struct {
	Emoji string
	Label string
}

// MoodStats summarizes the journal for one day.
type MoodStats struct {
	Date        string `json:"date"`
	Count       int    `json:"count"`
	UniqueTypes int    `json:"uniqueTypes"`
	Total       int    `json:"total"`
}
