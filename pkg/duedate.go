package welearn

import (
	"fmt"
	"time"
)

// DueDateLayout renders due dates like "Mon 02 Jan, 2006, 15:04:05"
const DueDateLayout = "Mon 02 Jan, 2006, 15:04:05"

const day = 24 * time.Hour

// Remaining is the whole number of days and hours between now and a due
// date. Past is set when the due date is not in the future.
type Remaining struct {
	Days  int
	Hours int
	Past  bool
}

// TimeRemaining splits the distance between now and due into whole days and
// whole hours, truncating anything smaller than an hour.
func TimeRemaining(due, now time.Time) Remaining {
	delta := due.Sub(now)
	past := delta <= 0
	if delta < 0 {
		delta = -delta
	}
	return Remaining{
		Days:  int(delta / day),
		Hours: int((delta % day) / time.Hour),
		Past:  past,
	}
}

func (r Remaining) String() string {
	return fmt.Sprintf("%d days, %d hours", r.Days, r.Hours)
}

// IsDue reports whether the assignment's due date is strictly after now.
// Assignments without a due date are never due.
func (a Assignment) IsDue(now time.Time) bool {
	if a.DueDate == 0 {
		return false
	}
	return time.Unix(a.DueDate, 0).After(now)
}

// Due returns the due date, and false when the assignment has none
func (a Assignment) Due() (time.Time, bool) {
	if a.DueDate == 0 {
		return time.Time{}, false
	}
	return time.Unix(a.DueDate, 0), true
}
