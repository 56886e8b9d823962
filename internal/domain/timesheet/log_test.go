package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(date time.Time, start, end string) Entry {
	return Entry{
		Date:      date,
		Project:   "Atlas",
		Reporter:  "Jane Doe",
		StartTime: start,
		EndTime:   end,
	}
}

func TestHours(t *testing.T) {
	h, ok := Hours("09:00", "17:00")
	require.True(t, ok)
	assert.Equal(t, 8.0, h)

	h, ok = Hours("09:00", "17:30")
	require.True(t, ok)
	assert.Equal(t, 8.5, h)

	h, ok = Hours("17:00", "09:00")
	require.True(t, ok)
	assert.Equal(t, -8.0, h)

	_, ok = Hours("9am", "17:00")
	assert.False(t, ok)
}

func TestAdd_KeepsDescendingOrder(t *testing.T) {
	now := day(2024, 6, 15)

	var log []Entry
	var err error

	// Insert out of order.
	for _, d := range []time.Time{
		day(2024, 6, 9),
		day(2024, 6, 11),
		day(2024, 6, 8),
		day(2024, 6, 10),
	} {
		log, err = Add(log, entry(d, "09:00", "17:00"), now)
		require.NoError(t, err)
		assert.True(t, IsSorted(log))
	}

	require.Len(t, log, 4)
	assert.Equal(t, day(2024, 6, 11), log[0].Date)
	assert.Equal(t, day(2024, 6, 8), log[3].Date)
}

func TestAdd_DuplicateDate(t *testing.T) {
	now := day(2024, 6, 15)

	log, err := Add(nil, entry(day(2024, 6, 10), "09:00", "17:00"), now)
	require.NoError(t, err)

	_, err = Add(log, entry(day(2024, 6, 10), "10:00", "16:00"), now)
	assert.ErrorIs(t, err, ErrDuplicateDate)
	assert.Len(t, log, 1)
}

func TestAdd_InvalidInterval(t *testing.T) {
	now := day(2024, 6, 15)

	// 17:00 -> 09:00 gives non-positive hours; log unchanged.
	_, err := Add(nil, entry(day(2024, 6, 10), "17:00", "09:00"), now)
	assert.Error(t, err)

	_, err = Add(nil, entry(day(2024, 6, 10), "09:00", "09:00"), now)
	assert.Error(t, err)
}

func TestAdd_DateTooOld(t *testing.T) {
	now := day(2024, 12, 31)
	tooOld := now.AddDate(0, 0, -(MaxEntries + 1))

	_, err := Add(nil, entry(tooOld, "09:00", "17:00"), now)
	assert.Error(t, err)

	// Exactly at the edge of the window is accepted.
	edge := now.AddDate(0, 0, -MaxEntries)
	_, err = Add(nil, entry(edge, "09:00", "17:00"), now)
	assert.NoError(t, err)
}

func TestAdd_ComputesTotalHours(t *testing.T) {
	now := day(2024, 6, 15)

	log, err := Add(nil, entry(day(2024, 6, 10), "09:00", "17:30"), now)
	require.NoError(t, err)
	assert.Equal(t, 8.5, log[0].TotalHours)
}

func TestAdd_EvictsOldestPastCap(t *testing.T) {
	now := day(2024, 12, 31)

	// Build a log at exactly MaxEntries going back from Dec 30.
	log := make([]Entry, 0, MaxEntries)
	for i := 0; i < MaxEntries; i++ {
		e := entry(day(2024, 12, 30).AddDate(0, 0, -i), "09:00", "17:00")
		e.TotalHours = 8
		log = append(log, e)
	}
	require.Len(t, log, MaxEntries)
	oldest := log[MaxEntries-1].Date

	out, err := Add(log, entry(day(2024, 12, 31), "09:00", "17:00"), now)
	require.NoError(t, err)

	assert.Len(t, out, MaxEntries)
	assert.True(t, IsSorted(out))
	assert.Equal(t, day(2024, 12, 31), out[0].Date)

	// The single oldest entry was evicted.
	for _, e := range out {
		assert.NotEqual(t, oldest, e.Date)
	}
}

func TestRemove(t *testing.T) {
	now := day(2024, 6, 15)

	var log []Entry
	var err error
	for _, d := range []time.Time{day(2024, 6, 10), day(2024, 6, 9), day(2024, 6, 8)} {
		log, err = Add(log, entry(d, "09:00", "17:00"), now)
		require.NoError(t, err)
	}

	out := Remove(log, day(2024, 6, 9))
	assert.Len(t, out, 2)
	assert.True(t, IsSorted(out))

	// Removing a missing date is a no-op.
	out = Remove(out, day(2024, 6, 1))
	assert.Len(t, out, 2)
}

func TestTotalHours(t *testing.T) {
	log := []Entry{
		{Date: day(2024, 6, 10), TotalHours: 8},
		{Date: day(2024, 6, 9), TotalHours: 7.5},
		{Date: day(2024, 6, 8), TotalHours: 8},
	}

	assert.Equal(t, 15.5, TotalHours(log, 2))
	assert.Equal(t, 23.5, TotalHours(log, 100))
	assert.Equal(t, 0.0, TotalHours(log, 0))
	assert.Equal(t, 0.0, TotalHours(log, -7))
	assert.Equal(t, 0.0, TotalHours(nil, 5))
}
