package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreGroupChange_EmptyChangeSetIsIdentity(t *testing.T) {
	groups := []map[string]string{
		nil,
		{},
		{"nationality": "British"},
		{"nationality": "British", "marital_status": ""},
	}

	for _, g := range groups {
		assert.Equal(t, 12.0, ScoreGroupChange(g, nil, 12.0))
		assert.Equal(t, 12.0, ScoreGroupChange(g, map[string]string{}, 12.0))
	}
}

func TestScoreGroupChange_Deltas(t *testing.T) {
	prev := map[string]string{
		"nationality":    "British",
		"marital_status": "",
		"dob":            "1990-01-02",
	}

	tests := []struct {
		name   string
		change map[string]string
		want   float64
	}{
		{"fill empty field", map[string]string{"marital_status": "Married"}, 11},
		{"clear filled field", map[string]string{"nationality": ""}, 9},
		{"overwrite filled field", map[string]string{"nationality": "Irish"}, 10},
		{"brand new key", map[string]string{"gender": "F"}, 11},
		{"whitespace counts as empty", map[string]string{"marital_status": "   "}, 10},
		{"mixed fill and clear", map[string]string{"marital_status": "Married", "dob": ""}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreGroupChange(prev, tt.change, 10))
		})
	}
}

func TestScoreGroupChange_FirstTimeCreation(t *testing.T) {
	// A group with no prior keys counts every non-empty key once.
	change := map[string]string{
		"contact_name":  "Ann Lee",
		"contact_phone": "07700900000",
		"relationship":  "",
	}

	assert.Equal(t, 6.0, ScoreGroupChange(nil, change, 4))
	assert.Equal(t, 6.0, ScoreGroupChange(map[string]string{}, change, 4))
}

func TestScoreGroupChange_DoesNotMutateInputs(t *testing.T) {
	prev := map[string]string{"nationality": "British"}
	change := map[string]string{"nationality": ""}

	ScoreGroupChange(prev, change, 5)

	assert.Equal(t, "British", prev["nationality"])
	assert.Equal(t, "", change["nationality"])
}

func TestScoreGroupChange_Monotonicity(t *testing.T) {
	prev := map[string]string{"a": "", "b": "filled"}

	// Filling never decreases the percentage.
	filled := ScoreGroupChange(prev, map[string]string{"a": "x"}, 20)
	assert.GreaterOrEqual(t, Percentage(filled), Percentage(20))

	// Clearing never increases it.
	cleared := ScoreGroupChange(prev, map[string]string{"b": ""}, 20)
	assert.LessOrEqual(t, Percentage(cleared), Percentage(20))
}

func TestScoreBinaryPresence(t *testing.T) {
	assert.Equal(t, 11.0, ScoreBinaryPresence(10, false, true))
	assert.Equal(t, 9.0, ScoreBinaryPresence(10, true, false))
	assert.Equal(t, 10.0, ScoreBinaryPresence(10, true, true))
	assert.Equal(t, 10.0, ScoreBinaryPresence(10, false, false))
}

func TestScoreSponsorshipToggle(t *testing.T) {
	units := 20.0

	waived := ScoreSponsorshipToggle(units, true, false)
	assert.Equal(t, units+SponsorshipWaiverUnits, waived)

	// Toggling back removes the waiver exactly.
	assert.Equal(t, units, ScoreSponsorshipToggle(waived, false, true))

	// No change when the flag is unchanged.
	assert.Equal(t, units, ScoreSponsorshipToggle(units, true, true))
	assert.Equal(t, units, ScoreSponsorshipToggle(units, false, false))
}

func TestScoreSponsorshipToggle_AgreesWithRebuild(t *testing.T) {
	// Full profile updates rebuild the count instead of applying the
	// incremental toggle; both paths must move by the same delta while no
	// sponsorship detail fields are filled.
	e := &Employee{
		FullName:    "Jane Doe",
		Email:       "jane@acme.com",
		Position:    "Engineer",
		IsSponsored: true,
	}
	sponsored := RecomputeUnits(e)

	e.IsSponsored = false
	assert.Equal(t, RecomputeUnits(e), ScoreSponsorshipToggle(sponsored, true, false))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(0))
	assert.Equal(t, 100, Percentage(TotalCompletenessUnits))

	// One unit is worth ~2.06 points.
	assert.Equal(t, 2, Percentage(1))

	// The waiver alone is worth ~13.51 points, rounded to 14.
	assert.Equal(t, 14, Percentage(SponsorshipWaiverUnits))

	// Internal count may exceed the total; Percentage does not clamp.
	assert.Greater(t, Percentage(TotalCompletenessUnits+2), 100)
	assert.Equal(t, 100, DisplayPercentage(TotalCompletenessUnits+2))
}

func TestRecomputeUnits(t *testing.T) {
	contact := "07700900000"
	hours := 37

	e := &Employee{
		FullName:           "Jane Doe",
		Email:              "jane@acme.com",
		Position:           "Engineer",
		ContactNumber:      &contact,
		WeeklyWorkingHours: &hours,
		IsSponsored:        false,
		Details: map[DetailGroup]map[string]string{
			GroupPersonalDetails:  {"nationality": "British", "dob": "1990-01-02"},
			GroupEmergencyContact: {"contact_name": "Ann Lee", "contact_phone": ""},
			// Sponsorship fields ignored while not sponsored.
			GroupSponsorshipDetails: {"cos_number": "C2G7X11223"},
		},
		BankAccounts: []BankAccount{{AccountNumber: "12345678"}},
	}

	// 4 mandatory + contact + hours + bank + 2 personal + 1 emergency + waiver
	want := MandatoryUnits + 1 + 1 + 1 + 2 + 1 + SponsorshipWaiverUnits
	assert.Equal(t, want, RecomputeUnits(e))

	// Becoming sponsored drops the waiver and counts sponsorship fields.
	e.IsSponsored = true
	want = MandatoryUnits + 1 + 1 + 1 + 2 + 1 + 1
	assert.Equal(t, want, RecomputeUnits(e))
}
