package employee

import (
	"math"
	"strings"
)

// Profile completeness is tracked as an unclamped unit count. Every counted
// field contributes one unit; the stored percentage is always
// round(units * UnitWeight). Display clamps at 100, the unit count does not.
const (
	// TotalCompletenessUnits is the number of units a fully filled,
	// sponsored profile carries.
	TotalCompletenessUnits = 48.5

	// UnitWeight is the percentage contribution of a single unit (~2.06).
	UnitWeight = 100.0 / TotalCompletenessUnits

	// MandatoryUnits are granted at account creation for the always-present
	// fields (name, email, position, start date).
	MandatoryUnits = 4.0

	// SponsorshipWaiverUnits are granted while a profile is not sponsored,
	// in lieu of the sponsorship/COS detail fields (13.51% at UnitWeight).
	SponsorshipWaiverUnits = 6.55
)

func isFilled(v string) bool {
	return strings.TrimSpace(v) != ""
}

// ScoreGroupChange returns the unit count after applying changeSet to a
// structured field group whose prior snapshot is prev. For each changed key:
// empty -> non-empty adds a unit, non-empty -> empty removes one, a key
// changing between two filled values contributes nothing. When prev has no
// keys the group is being created for the first time and every non-empty
// key in changeSet counts as one unit.
//
// Pure: neither map is mutated, absent keys are treated as empty, and the
// same inputs always produce the same result.
func ScoreGroupChange(prev, changeSet map[string]string, units float64) float64 {
	if len(changeSet) == 0 {
		return units
	}

	if len(prev) == 0 {
		for _, v := range changeSet {
			if isFilled(v) {
				units++
			}
		}
		return units
	}

	for key, next := range changeSet {
		was := isFilled(prev[key])
		now := isFilled(next)
		switch {
		case !was && now:
			units++
		case was && !now:
			units--
		}
	}
	return units
}

// ScoreBinaryPresence applies the 0<->1 unit contribution of a field whose
// count beyond one does not matter: the first bank record and the first
// profile picture.
func ScoreBinaryPresence(units float64, had, has bool) float64 {
	switch {
	case !had && has:
		return units + 1
	case had && !has:
		return units - 1
	default:
		return units
	}
}

// ScoreSponsorshipToggle adjusts the unit count when the sponsored flag
// changes. Non-sponsored profiles carry a fixed waiver in place of the
// sponsorship detail fields. The flag is only flipped through full profile
// updates, which rebuild the count with RecomputeUnits; this keeps the
// incremental contract for callers that track the running count instead.
func ScoreSponsorshipToggle(units float64, was, now bool) float64 {
	switch {
	case was && !now:
		return units + SponsorshipWaiverUnits
	case !was && now:
		return units - SponsorshipWaiverUnits
	default:
		return units
	}
}

// Percentage converts a unit count to the stored completion percentage.
func Percentage(units float64) int {
	return int(math.Round(units * UnitWeight))
}

// DisplayPercentage clamps the stored percentage to [0, 100] for rendering.
func DisplayPercentage(units float64) int {
	p := Percentage(units)
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// CountGroupUnits counts the filled sub-fields of a group snapshot. Used to
// rebuild a profile's unit count from scratch.
func CountGroupUnits(group map[string]string) float64 {
	var units float64
	for _, v := range group {
		if isFilled(v) {
			units++
		}
	}
	return units
}

// RecomputeUnits rebuilds the full unit count of a profile from its current
// state. The incremental scorers above keep the running count consistent;
// this exists for repair and for seeding profiles imported without one.
func RecomputeUnits(e *Employee) float64 {
	units := MandatoryUnits

	for _, scalar := range []*string{e.ContactNumber, e.Location, e.Project, e.SocNumber} {
		if scalar != nil && isFilled(*scalar) {
			units++
		}
	}
	if e.WeeklyWorkingHours != nil && *e.WeeklyWorkingHours > 0 {
		units++
	}
	if e.AvatarURL != nil && isFilled(*e.AvatarURL) {
		units++
	}
	if e.HasBankAccount() {
		units++
	}

	for _, name := range DetailGroups {
		if name == GroupSponsorshipDetails && !e.IsSponsored {
			continue
		}
		units += CountGroupUnits(e.Group(name))
	}

	if !e.IsSponsored {
		units += SponsorshipWaiverUnits
	}

	return units
}
