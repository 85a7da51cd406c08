package ui

import (
	"reflect"
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"posts", "posts", 0},
		{"café", "cafe", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := LevenshteinDistance(tt.a, tt.b); got != tt.want {
				t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"posts", "people", "comments", "tags"}

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{name: "missing plural", target: "post", want: []string{"posts"}},
		{name: "case insensitive", target: "TAGS", want: []string{"tags"}},
		{name: "nothing close", target: "organizations", want: []string{}},
		{name: "closest first", target: "pags", want: []string{"tags", "posts"}},
		{name: "ordered by distance", target: "pots", want: []string{"posts", "tags"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindSimilar(tt.target, candidates)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindSimilar(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}
