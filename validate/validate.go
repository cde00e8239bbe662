// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/danielhkuo/askflow/models"
)

// Thresholds for the answer rules. The ratio tiers are the two observed in
// production documents: strict for plain free text, loose where digits are
// semantically expected (monetary figures).
const (
	MinAge            = 18
	StrictLetterRatio = 0.7
	LooseLetterRatio  = 0.5
	MinOverrideLen    = 5
)

// otherTokens are the reserved "other" answers on the discovery-source
// choice question. Matching one triggers free-form override capture instead
// of normal acceptance.
var otherTokens = []string{"другое", "other"}

// Verdict classifies a raw answer against a question.
type Verdict int

const (
	// Accepted: record the answer and advance.
	Accepted Verdict = iota
	// Rejected: re-prompt the same question, no state change.
	Rejected
	// Underage: terminal; ban the user and end the session.
	Underage
	// OtherToken: hold the position and capture a free-form replacement.
	OtherToken
)

// Answer classifies one raw answer. It is pure: no state is read or
// written, and the engine decides what each verdict means for the session.
func Answer(q models.Question, raw string) Verdict {
	text := strings.TrimSpace(raw)

	switch {
	case q.Role == models.RoleAge:
		if !IsDigits(text) {
			return Rejected
		}
		age, err := strconv.Atoi(text)
		if err != nil {
			return Rejected
		}
		if age < MinAge {
			return Underage
		}
		return Accepted

	case q.Type == models.TypeChoice:
		if q.Role == models.RoleSource && IsOtherToken(text) {
			return OtherToken
		}
		if MatchesChoice(q.Choices, text) {
			return Accepted
		}
		return Rejected

	case q.Role == models.RoleIncome:
		if HasLetterRatio(text, LooseLetterRatio) {
			return Accepted
		}
		return Rejected

	case q.Role == models.RoleName:
		if IsNameLike(text) {
			return Accepted
		}
		return Rejected

	default:
		if HasLetterRatio(text, StrictLetterRatio) {
			return Accepted
		}
		return Rejected
	}
}

// Override reports whether a free-form replacement for an "other" choice is
// long enough: at least MinOverrideLen characters after trimming.
func Override(raw string) bool {
	return len([]rune(strings.TrimSpace(raw))) >= MinOverrideLen
}

// IsDigits reports whether text is non-empty and entirely decimal digits.
func IsDigits(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// HasLetterRatio reports whether the share of alphabetic characters among
// all non-space characters reaches min. Letters are counted across the
// deployment alphabets (Latin and Cyrillic). Empty text never passes.
func HasLetterRatio(text string, min float64) bool {
	letters, total := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.Is(unicode.Latin, r) || unicode.Is(unicode.Cyrillic, r) {
			letters++
		}
	}
	if total == 0 {
		return false
	}
	return float64(letters)/float64(total) >= min
}

// IsNameLike accepts letters, spaces and hyphens only; digits and
// punctuation reject outright. Applied to identity and location questions.
func IsNameLike(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsSpace(r) || r == '-' {
			continue
		}
		return false
	}
	return true
}

// MatchesChoice reports a trimmed exact match against the choice list.
func MatchesChoice(choices []string, text string) bool {
	for _, c := range choices {
		if strings.TrimSpace(c) == text {
			return true
		}
	}
	return false
}

// IsOtherToken reports whether text is one of the reserved "other" answers,
// case-insensitively.
func IsOtherToken(text string) bool {
	for _, tok := range otherTokens {
		if strings.EqualFold(text, tok) {
			return true
		}
	}
	return false
}
