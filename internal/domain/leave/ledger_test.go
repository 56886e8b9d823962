package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayCount(t *testing.T) {
	// 01-07 -> 06-07 is a 5-day request, weekends included.
	assert.Equal(t, 5, DayCount(date(2024, 7, 1), date(2024, 7, 6)))
	assert.Equal(t, 1, DayCount(date(2024, 7, 1), date(2024, 7, 2)))

	// Spans a full weekend.
	assert.Equal(t, 7, DayCount(date(2024, 7, 5), date(2024, 7, 12)))
}

func TestEntitlementWindow(t *testing.T) {
	start, end := EntitlementWindow(date(2024, 3, 15))
	assert.Equal(t, date(2024, 3, 15), start)
	assert.Equal(t, date(2025, 3, 15), end)
}

func TestValidateSubmission(t *testing.T) {
	reason := "family holiday abroad"

	tests := []struct {
		name      string
		leaveType LeaveType
		start     time.Time
		end       time.Time
		reason    string
		wantErr   bool
	}{
		{"valid annual", TypeAnnual, date(2024, 7, 1), date(2024, 7, 6), reason, false},
		{"valid sick", TypeSick, date(2024, 7, 1), date(2024, 7, 2), reason, false},
		{"no type", LeaveType(""), date(2024, 7, 1), date(2024, 7, 6), reason, true},
		{"unknown type", LeaveType("unpaid"), date(2024, 7, 1), date(2024, 7, 6), reason, true},
		{"equal dates rejected", TypeAnnual, date(2024, 7, 1), date(2024, 7, 1), reason, true},
		{"end before start", TypeAnnual, date(2024, 7, 6), date(2024, 7, 1), reason, true},
		{"zero dates", TypeAnnual, time.Time{}, time.Time{}, reason, true},
		{"reason too short", TypeAnnual, date(2024, 7, 1), date(2024, 7, 6), "short", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmission(tt.leaveType, tt.start, tt.end, tt.reason)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDebitCredit_Conservation(t *testing.T) {
	balance := LeaveBalance{AnnualRemaining: 20, SickRemaining: 10}

	// approve debits by dayCount
	debited := Debit(balance, TypeAnnual, 3)
	assert.Equal(t, 17, debited.AnnualRemaining)
	assert.Equal(t, 10, debited.SickRemaining)

	// delete credits it back exactly
	restored := Credit(debited, TypeAnnual, 3)
	assert.Equal(t, balance, restored)
}

func TestDebitCredit_SickIndependent(t *testing.T) {
	balance := LeaveBalance{AnnualRemaining: 20, SickRemaining: 10}

	debited := Debit(balance, TypeSick, 4)
	assert.Equal(t, 20, debited.AnnualRemaining)
	assert.Equal(t, 6, debited.SickRemaining)
}

func TestValidateAllowanceOverride(t *testing.T) {
	assert.NoError(t, ValidateAllowanceOverride(20, 10, 25, 10))
	assert.NoError(t, ValidateAllowanceOverride(0, 0, 25, 10))

	assert.Error(t, ValidateAllowanceOverride(26, 10, 25, 10))
	assert.Error(t, ValidateAllowanceOverride(20, 11, 25, 10))
	assert.Error(t, ValidateAllowanceOverride(-1, 10, 25, 10))
	assert.Error(t, ValidateAllowanceOverride(20, -1, 25, 10))
}
