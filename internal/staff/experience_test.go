package staff

import (
	"testing"
	"time"
)

func TestYearsOfExperienceAndLabel(t *testing.T) {
	now := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)

	if (Staff{}).YearsOfExperience(now) != nil || ExperienceLabel(nil) != nil {
		t.Fatalf("unknown join date must give nil")
	}

	tests := []struct {
		joined time.Time
		years  int
		label  string
	}{
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0, "< 1 year"},
		{time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), 1, "1 year"},
		{time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC), 0, "< 1 year"},
		{time.Date(2014, 3, 1, 0, 0, 0, 0, time.UTC), 12, "12 years"},
		{time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), 0, "< 1 year"},
	}
	for _, tt := range tests {
		j := tt.joined
		years := Staff{JoinedAt: &j}.YearsOfExperience(now)
		if years == nil || *years != tt.years {
			t.Fatalf("joined %s: years=%v want %d", j.Format("2006-01-02"), years, tt.years)
		}
		if label := ExperienceLabel(years); *label != tt.label {
			t.Fatalf("joined %s: label=%q want %q", j.Format("2006-01-02"), *label, tt.label)
		}
	}
}
