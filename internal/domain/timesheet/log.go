package timesheet

import (
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/pkg/validator"
)

// MaxEntries caps the retained log per employee. Inserts past the cap evict
// the oldest entry; dates older than the retention window are rejected
// outright since they would be evicted immediately.
const MaxEntries = 319

// Hours computes the worked hours between two "HH:MM" times. Returns false
// when either time is malformed.
func Hours(startTime, endTime string) (float64, bool) {
	start, ok := validator.ParseTimeOfDay(startTime)
	if !ok {
		return 0, false
	}
	end, ok := validator.ParseTimeOfDay(endTime)
	if !ok {
		return 0, false
	}
	return end - start, true
}

// ValidateEntry checks an entry before insertion: well-formed times with a
// strictly positive interval, and a date within the retention window.
func ValidateEntry(e Entry, now time.Time) error {
	var errs validator.ValidationErrors

	hours, ok := Hours(e.StartTime, e.EndTime)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "start_time and end_time must be in HH:MM format",
		})
	} else if hours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be after start_time",
		})
	}

	if e.Date.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if now.Sub(e.Date) > time.Duration(MaxEntries)*24*time.Hour {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is too far in the past",
		})
	}

	if validator.IsEmpty(e.Project) {
		errs = append(errs, validator.ValidationError{
			Field:   "project",
			Message: "project is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Add inserts the entry into a log sorted by date descending, keeping the
// sort and dropping the oldest entries past MaxEntries. The input slice is
// not modified. Fails with ErrDuplicateDate when the date is already logged.
func Add(entries []Entry, e Entry, now time.Time) ([]Entry, error) {
	if err := ValidateEntry(e, now); err != nil {
		return nil, err
	}

	for _, existing := range entries {
		if sameDay(existing.Date, e.Date) {
			return nil, ErrDuplicateDate
		}
	}

	e.TotalHours, _ = Hours(e.StartTime, e.EndTime)

	// First position whose date is earlier than the new date; append if none.
	pos := len(entries)
	for i, existing := range entries {
		if existing.Date.Before(e.Date) {
			pos = i
			break
		}
	}

	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entries[:pos]...)
	out = append(out, e)
	out = append(out, entries[pos:]...)

	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}

	return out, nil
}

// Remove drops the entry with the given date. Removing an absent date is a
// no-op; ordering cannot break on removal.
func Remove(entries []Entry, date time.Time) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if sameDay(e.Date, date) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// TotalHours sums the most recent window entries. The log is sorted
// descending, so the first window entries are the newest; a window larger
// than the log sums everything, and a negative window sums nothing.
func TotalHours(entries []Entry, window int) float64 {
	if window < 0 {
		window = 0
	}
	if window > len(entries) {
		window = len(entries)
	}
	var total float64
	for _, e := range entries[:window] {
		total += e.TotalHours
	}
	return total
}

// IsSorted reports whether the log is strictly descending by date.
func IsSorted(entries []Entry) bool {
	for i := 1; i < len(entries); i++ {
		if !entries[i].Date.Before(entries[i-1].Date) {
			return false
		}
	}
	return true
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
