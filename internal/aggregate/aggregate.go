// Package aggregate computes the grouped counts shown next to content listings.
package aggregate

import (
	"math"
	"sort"
	"strings"
)

type Group struct {
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight,omitempty"`
}

// GroupBy buckets items by key, summing weight per bucket. Groups are ordered by count,
// then weight (both descending), then label. Blank keys fall into fallback.
func GroupBy[T any](items []T, key func(T) string, weight func(T) float64, fallback string) []Group {
	index := map[string]int{}
	groups := []Group{}
	for _, it := range items {
		label := strings.TrimSpace(key(it))
		if label == "" {
			label = fallback
		}
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, Group{Label: label})
		}
		groups[i].Count++
		if weight != nil {
			groups[i].Weight += weight(it)
		}
	}
	for i := range groups {
		groups[i].Weight = Round(groups[i].Weight, 2)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		return a.Label < b.Label
	})
	return groups
}

// CountBy is GroupBy without a weight.
func CountBy[T any](items []T, key func(T) string, fallback string) []Group {
	return GroupBy(items, key, nil, fallback)
}

// TopN returns the first n items under less without modifying the input.
func TopN[T any](items []T, n int, less func(a, b T) bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func Count[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, it := range items {
		if pred(it) {
			n++
		}
	}
	return n
}

func Sum[T any](items []T, value func(T) float64) float64 {
	total := 0.0
	for _, it := range items {
		total += value(it)
	}
	return total
}

func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
