package mood

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	apperrors "github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/errors"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/prefs"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newJournal(t *testing.T, start time.Time) (*Journal, *fakeClock, *prefs.Memory) {
	t.Helper()
	clock := &fakeClock{t: start}
	store := prefs.NewMemory()
	return New(store, clock.Now, time.UTC), clock, store
}

func TestAddValidation(t *testing.T) {
	j, _, store := newJournal(t, time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		emoji string
		label string
		field string
	}{
		{name: "missing emoji", emoji: "", label: "Happy", field: "emoji"},
		{name: "missing label", emoji: "😊", label: "  ", field: "moodType"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := j.Add(tt.emoji, tt.label, "")
			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	keys, _ := store.Keys()
	assert.Empty(t, keys)
}

func TestAddPrependsNewestFirst(t *testing.T) {
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	j, clock, _ := newJournal(t, start)

	first, err := j.Add("😊", "Happy", "sunny")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", first.Date)
	assert.Equal(t, start.UnixMilli(), first.Timestamp)

	clock.t = start.Add(time.Hour)
	second, err := j.Add("😴", "Tired", "")
	require.NoError(t, err)

	list, err := j.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestAddSameMillisecondKeepsIDsUnique(t *testing.T) {
	j, _, _ := newJournal(t, time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))

	a, err := j.Add("😊", "Happy", "")
	require.NoError(t, err)
	b, err := j.Add("😊", "Happy", "")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAddAcceptsLabelsOutsidePalette(t *testing.T) {
	j, _, _ := newJournal(t, time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	e, err := j.Add("🥳", "Celebrating", "")
	require.NoError(t, err)
	assert.Equal(t, "Celebrating", e.MoodType)

	_, ok := Lookup("celebrating")
	assert.False(t, ok)
	m, ok := Lookup("calm")
	assert.True(t, ok)
	assert.Equal(t, "😌", m.Emoji)
}

func TestDayQueries(t *testing.T) {
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	j, clock, _ := newJournal(t, start)

	clock.t = start.AddDate(0, 0, -1)
	_, err := j.Add("😢", "Sad", "")
	require.NoError(t, err)
	clock.t = start
	_, err = j.Add("😊", "Happy", "")
	require.NoError(t, err)
	clock.t = start.Add(time.Minute)
	_, err = j.Add("😊", "Happy", "")
	require.NoError(t, err)
	clock.t = start.Add(2 * time.Minute)
	latest, err := j.Add("😌", "Calm", "")
	require.NoError(t, err)

	count, err := j.CountForDate("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	unique, err := j.UniqueTypesForDate("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, 2, unique)

	got, ok, err := j.LatestForDate("2024-03-10")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, latest.ID, got.ID)

	_, ok, err = j.LatestForDate("2024-01-01")
	require.NoError(t, err)
	assert.False(t, ok)

	stats, err := j.Stats("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, models.MoodStats{Date: "2024-03-10", Count: 3, UniqueTypes: 2, Total: 4}, stats)
}

func TestListResortsStoredHistory(t *testing.T) {
	j, _, store := newJournal(t, time.Now())
	require.NoError(t, prefs.SetJSON(store, constants.KeyMoods, []models.MoodEntry{
		{ID: 1, Emoji: "😊", MoodType: "Happy", Timestamp: 100},
		{ID: 2, Emoji: "😢", MoodType: "Sad", Timestamp: 300},
		{ID: 3, Emoji: "😌", MoodType: "Calm", Timestamp: 200},
	}))

	list, err := j.List()
	require.NoError(t, err)
	var ids []int64
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int64{2, 3, 1}, ids)
}

func TestClearAndMalformed(t *testing.T) {
	j, _, store := newJournal(t, time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	_, err := j.Add("😊", "Happy", "")
	require.NoError(t, err)

	require.NoError(t, j.Clear())
	list, err := j.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, store.Set(constants.KeyMoods, []byte("{oops")))
	list, err = j.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFormatting(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	at := func(t time.Time) models.MoodEntry { return models.MoodEntry{Timestamp: t.UnixMilli()} }

	today := at(time.Date(2024, 3, 10, 9, 5, 0, 0, time.UTC))
	yesterday := at(time.Date(2024, 3, 9, 21, 30, 0, 0, time.UTC))
	older := at(time.Date(2024, 3, 2, 14, 45, 0, 0, time.UTC))

	assert.Equal(t, "09:05 AM", FormattedTime(today, time.UTC))
	assert.Equal(t, "Today, 09:05 AM", DisplayDate(today, now, time.UTC))
	assert.Equal(t, "Yesterday, 09:30 PM", DisplayDate(yesterday, now, time.UTC))
	assert.Equal(t, "Mar 02, 2024, 02:45 PM", DisplayDate(older, now, time.UTC))
	assert.Equal(t, "Mar 02, 2024 at 02:45 PM", FullDateTime(older, time.UTC))
}

func TestAvailableMoodsIsACopy(t *testing.T) {
	moods := AvailableMoods()
	require.Len(t, moods, 8)
	moods[0].Label = "changed"
	assert.Equal(t, "Happy", Palette[0].Label)
}
