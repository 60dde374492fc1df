package mood

import (
	"time"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
)

const (
	timeLayout     = "03:04 PM"
	dateLayout     = "Jan 02, 2006"
	dateTimeLayout = "Jan 02, 2006 at 03:04 PM"
)

func stamp(e models.MoodEntry, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return utils.FromMillis(e.Timestamp).In(loc)
}

// FormattedTime renders the entry's time of day, e.g. "09:15 AM".
func FormattedTime(e models.MoodEntry, loc *time.Location) string {
	return stamp(e, loc).Format(timeLayout)
}

// FullDateTime renders "Jan 02, 2006 at 03:04 PM".
func FullDateTime(e models.MoodEntry, loc *time.Location) string {
	return stamp(e, loc).Format(dateTimeLayout)
}

// DisplayDate renders "Today, 09:15 AM", "Yesterday, 09:15 AM" or
// "Mar 08, 2024, 09:15 AM" relative to now.
func DisplayDate(e models.MoodEntry, now time.Time, loc *time.Location) string {
	t := stamp(e, loc)
	switch {
	case utils.SameDay(t, now, loc):
		return "Today, " + t.Format(timeLayout)
	case utils.SameDay(t, now.In(t.Location()).AddDate(0, 0, -1), loc):
		return "Yesterday, " + t.Format(timeLayout)
	default:
		return t.Format(dateLayout) + ", " + t.Format(timeLayout)
	}
}
