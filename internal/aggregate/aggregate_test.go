package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type room struct {
	kind string
	area float64
	name string
}

func TestGroupBy_TieBreaks(t *testing.T) {
	rooms := []room{
		{"lab", 40, "Chemistry"},
		{"classroom", 60, "X-A"},
		{"lab", 50, "Physics"},
		{"classroom", 60, "X-B"},
		{"sports", 800, "Field"},
		{"library", 120, "Library"},
		{"", 10, "Storage"},
	}

	got := GroupBy(rooms, func(r room) string { return r.kind }, func(r room) float64 { return r.area }, "other")

	assert.Equal(t, []Group{
		{Label: "classroom", Count: 2, Weight: 120},
		{Label: "lab", Count: 2, Weight: 90},
		{Label: "sports", Count: 1, Weight: 800},
		{Label: "library", Count: 1, Weight: 120},
		{Label: "other", Count: 1, Weight: 10},
	}, got)
}

func TestGroupBy_LabelBreaksFullTies(t *testing.T) {
	got := CountBy([]string{"b", "a", "c", "a", "b", "c"}, func(s string) string { return s }, "")
	assert.Equal(t, []Group{{Label: "a", Count: 2}, {Label: "b", Count: 2}, {Label: "c", Count: 2}}, got)
}

func TestGroupBy_Empty(t *testing.T) {
	got := CountBy([]string{}, func(s string) string { return s }, "x")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTopN(t *testing.T) {
	in := []int{3, 9, 1, 9, 4}
	got := TopN(in, 3, func(a, b int) bool { return a > b })
	assert.Equal(t, []int{9, 9, 4}, got)
	assert.Equal(t, []int{3, 9, 1, 9, 4}, in, "input must stay untouched")

	assert.Len(t, TopN(in, 10, func(a, b int) bool { return a < b }), 5)
}

func TestCountSumRound(t *testing.T) {
	in := []float64{1.005, 2.5, 3}
	assert.Equal(t, 2, Count(in, func(v float64) bool { return v > 2 }))
	assert.InDelta(t, 6.505, Sum(in, func(v float64) float64 { return v }), 1e-9)
	assert.Equal(t, 6.5, Round(6.4999, 1))
}
