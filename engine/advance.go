// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"strings"

	"github.com/danielhkuo/askflow/models"
)

// nextPosition scans forward from pos and returns the index of the first
// question that either has no dependency or whose dependency is satisfied
// by the answers collected so far. Skipped questions are never prompted and
// never get an answer recorded. A return of len(qs) means the survey is
// complete.
//
// A "no" on the prior-experience question skips the whole contiguous run of
// questions that depend on it in this same scan; there is no separate jump
// mechanism.
func nextPosition(qs []models.Question, answer func(string) (string, bool), pos int) int {
	for pos < len(qs) {
		dep := qs[pos].DependsOn
		if dep == nil || dependencyMet(dep, answer) {
			return pos
		}
		pos++
	}
	return pos
}

// dependencyMet compares the recorded answer at the dependency's referenced
// position against its accepted values, case-insensitively. A question
// whose referenced position was itself skipped has no recorded answer and
// the dependency fails.
func dependencyMet(dep *models.Dependency, answer func(string) (string, bool)) bool {
	prev, ok := answer(models.Label(dep.QuestionIdx))
	if !ok {
		return false
	}
	prev = strings.TrimSpace(prev)
	for _, v := range dep.Values {
		if strings.EqualFold(prev, v) {
			return true
		}
	}
	return false
}
