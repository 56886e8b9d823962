package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"jane@acme.com", "j.doe+hr@sub.acme.co.uk", "a_b%c@x.io"}
	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}

	invalid := []string{"", "jane", "jane@", "@acme.com", "jane@acme"}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestIsValidReason(t *testing.T) {
	assert.False(t, IsValidReason("short"))
	assert.False(t, IsValidReason("         "))
	assert.True(t, IsValidReason("family holiday abroad"))

	long := make([]byte, MaxReasonLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, IsValidReason(string(long)))
	assert.True(t, IsValidReason(string(long[:MaxReasonLength])))
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in    string
		hours float64
		ok    bool
	}{
		{"09:00", 9.0, true},
		{"17:30", 17.5, true},
		{"00:00", 0.0, true},
		{"23:59", 23.0 + 59.0/60.0, true},
		{"24:00", 0, false},
		{"9:00", 0, false},
		{"09:60", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseTimeOfDay(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.InDelta(t, tt.hours, got, 1e-9, tt.in)
		}
	}
}

func TestIsValidAccountNumber(t *testing.T) {
	assert.True(t, IsValidAccountNumber("12345678"))
	assert.False(t, IsValidAccountNumber("12345"))
	assert.False(t, IsValidAccountNumber("12345678901234567890123"))
	assert.False(t, IsValidAccountNumber("1234567a"))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2024-07-01")
	assert.True(t, ok)
	_, ok = IsValidDate("01-07-2024")
	assert.False(t, ok)
}
