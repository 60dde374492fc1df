// Package share renders mood entries as plain text and hands them to a sink.
package share

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/mood"
)

const noNotes = "No additional notes"

// Text renders one entry the way it is shared.
func Text(e models.MoodEntry, loc *time.Location) string {
	notes := strings.TrimSpace(e.Notes)
	if notes == "" {
		notes = noNotes
	}
	return fmt.Sprintf("My Mood Entry:\n%s %s\n%s\nRecorded on: %s",
		e.Emoji, e.MoodType, notes, mood.FullDateTime(e, loc))
}

// ExportMoods renders every entry, newest first, separated by blank lines.
func ExportMoods(entries []models.MoodEntry, loc *time.Location) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, Text(e, loc))
	}
	return strings.Join(parts, "\n\n")
}

// Sink receives shared text.
type Sink interface {
	Share(text string) error
}

// writeAll is swapped in tests.
var writeAll = clipboard.WriteAll

// Clipboard copies shared text to the system clipboard.
type Clipboard struct{}

func (Clipboard) Share(text string) error {
	if err := writeAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// Writer prints shared text to W.
type Writer struct {
	W io.Writer
}

func (s Writer) Share(text string) error {
	_, err := fmt.Fprintln(s.W, text)
	return err
}

// NewSink returns the clipboard sink, or a writer sink when toStdout is set or
// no clipboard utility is available.
func NewSink(toStdout bool, w io.Writer) Sink {
	if toStdout || clipboard.Unsupported {
		return Writer{W: w}
	}
	return Clipboard{}
}
