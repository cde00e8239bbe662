// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validate classifies raw survey answers.

All functions are stateless: they take the raw text and the active question
and return a verdict, never touching session state.

# Verdicts

	Accepted   record the answer, advance the cursor
	Rejected   recoverable; re-prompt the same question
	Underage   terminal; the engine bans the user and ends the session
	OtherToken the reserved "other" choice; capture a free-form override

# Rules

  - Age (RoleAge): decimal digits only; an accepted value below 18 is the
    one terminal verdict in the system.
  - Letter ratio: alphabetic characters (Latin + Cyrillic) over all
    non-space characters. Plain free text uses the 0.7 tier; RoleIncome
    answers, where digits are expected, use the 0.5 tier. Empty text after
    trimming always rejects.
  - Choice membership: trimmed exact match against the question's choices.
    On a RoleSource question the reserved tokens ("другое"/"other") yield
    OtherToken instead.
  - Name (RoleName): letters, spaces and hyphens only.
  - Override: replacements for an "other" choice need at least 5 characters
    after trimming.
*/
package validate
