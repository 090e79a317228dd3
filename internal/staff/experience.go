package staff

import (
	"fmt"
	"time"

	"school-cms-api/internal/util"
)

// YearsOfExperience counts whole years since joined_at, nil when the join date is unknown.
func (s Staff) YearsOfExperience(now time.Time) *int {
	if s.JoinedAt == nil {
		return nil
	}
	years := util.WholeYearsBetween(*s.JoinedAt, now)
	if years < 0 {
		years = 0
	}
	return &years
}

func ExperienceLabel(years *int) *string {
	if years == nil {
		return nil
	}
	var label string
	switch {
	case *years < 1:
		label = "< 1 year"
	case *years == 1:
		label = "1 year"
	default:
		label = fmt.Sprintf("%d years", *years)
	}
	return &label
}
