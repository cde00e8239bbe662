// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"testing"

	"github.com/danielhkuo/askflow/models"
)

func answersFrom(m map[string]string) func(string) (string, bool) {
	return func(label string) (string, bool) {
		v, ok := m[label]
		return v, ok
	}
}

func TestNextPosition(t *testing.T) {
	qs := []models.Question{
		{Text: "age", Type: models.TypeText},
		{Text: "experience?", Type: models.TypeChoice, Choices: []string{"Yes", "No"}},
		{Text: "details 1", Type: models.TypeText,
			DependsOn: &models.Dependency{QuestionIdx: 1, Values: []string{"Yes"}}},
		{Text: "details 2", Type: models.TypeText,
			DependsOn: &models.Dependency{QuestionIdx: 1, Values: []string{"Yes"}}},
		{Text: "name", Type: models.TypeText},
	}

	tests := []struct {
		name    string
		answers map[string]string
		pos     int
		want    int
	}{
		{"no dependency stays put", map[string]string{}, 0, 0},
		{"met dependency stays put", map[string]string{"q2": "Yes"}, 2, 2},
		{"unmet dependency skips the run", map[string]string{"q2": "No"}, 2, 4},
		{"missing answer fails the dependency", map[string]string{}, 2, 4},
		{"case-insensitive match", map[string]string{"q2": "yes"}, 2, 2},
		{"padded answer matches", map[string]string{"q2": "  Yes  "}, 2, 2},
		{"past the end means complete", map[string]string{}, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextPosition(qs, answersFrom(tt.answers), tt.pos)
			if got != tt.want {
				t.Errorf("nextPosition(pos=%d) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestNextPosition_SkippedReferenceFailsDependents(t *testing.T) {
	// q2 depends on q1, q3 depends on q2. With q1 answered "No", q2 is
	// skipped and q3's reference has no recorded answer, so it skips too.
	qs := []models.Question{
		{Text: "gate", Type: models.TypeChoice, Choices: []string{"Yes", "No"}},
		{Text: "first follow-up", Type: models.TypeText,
			DependsOn: &models.Dependency{QuestionIdx: 0, Values: []string{"Yes"}}},
		{Text: "second follow-up", Type: models.TypeText,
			DependsOn: &models.Dependency{QuestionIdx: 1, Values: []string{"anything"}}},
	}

	got := nextPosition(qs, answersFrom(map[string]string{"q1": "No"}), 1)
	if got != 3 {
		t.Errorf("nextPosition = %d, want 3 (both dependents skipped)", got)
	}
}
