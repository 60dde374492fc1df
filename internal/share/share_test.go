package share

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
)

var stamp = time.Date(2024, 3, 10, 14, 5, 0, 0, time.UTC)

func entry(notes string) models.MoodEntry {
	return models.MoodEntry{
		ID:        stamp.UnixMilli(),
		Emoji:     "😊",
		MoodType:  "Happy",
		Notes:     notes,
		Timestamp: stamp.UnixMilli(),
		Date:      "2024-03-10",
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		notes string
		want  string
	}{
		{
			name:  "with notes",
			notes: "Great run this morning",
			want:  "My Mood Entry:\n😊 Happy\nGreat run this morning\nRecorded on: Mar 10, 2024 at 02:05 PM",
		},
		{
			name:  "blank notes",
			notes: "  ",
			want:  "My Mood Entry:\n😊 Happy\nNo additional notes\nRecorded on: Mar 10, 2024 at 02:05 PM",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(entry(tt.notes), time.UTC))
		})
	}
}

func TestExportMoods(t *testing.T) {
	assert.Empty(t, ExportMoods(nil, time.UTC))

	out := ExportMoods([]models.MoodEntry{entry("one"), entry("two")}, time.UTC)
	assert.Contains(t, out, "one\nRecorded on")
	assert.Contains(t, out, "PM\n\nMy Mood Entry:")
}

func TestClipboard(t *testing.T) {
	orig := writeAll
	defer func() { writeAll = orig }()

	var got string
	writeAll = func(text string) error {
		got = text
		return nil
	}
	require.NoError(t, Clipboard{}.Share("hello"))
	assert.Equal(t, "hello", got)

	writeAll = func(string) error { return errors.New("no xclip") }
	err := Clipboard{}.Share("hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clipboard")
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Writer{W: &buf}.Share("hello"))
	assert.Equal(t, "hello\n", buf.String())

	assert.IsType(t, Writer{}, NewSink(true, &buf))
}
