// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the question document, wire types, and domain types
shared across the bot.

# Question Document

The persisted document is one JSON object. Its contact_link and final_phrase
keys are scalars; every other key is a locale code mapping to an ordered
question list:

	{
	  "ru": [ {"question": "...", "type": "choice", "choices": ["Да", "Нет"]} ],
	  "en": [ {"question": "...", "type": "text", "role": "age"} ],
	  "contact_link": "@manager",
	  "final_phrase": {"ru": "...", "en": "..."}
	}

final_phrase may be a flat string or a per-language map; LocalizedText
accepts both. Question order is identity: depends_on.question_idx refers to
an earlier index in the same list, and live documents are never reordered.

# Semantic Roles

Validator selection is driven by the role tag on each question:

	RoleAge    digits only; values below 18 end the survey and ban the user
	RoleIncome free text validated with the looser letter-ratio tier
	RoleName   letters, spaces and hyphens only
	RoleSource choice question offering the "other" free-form escape

Documents without role tags still work: the store resolves roles from the
known localized phrasings once at load time.

# Domain Types

  - Inbound: one user turn (identity + text)
  - Keyboard: suggested-replies markup (rows, or an explicit remove)
  - Answer / Submission: ordered collected answers and the completed set
  - ErrorResponse: JSON error body for the webhook surface

# Labels

Answers are keyed by position label, Label(i) = "q<i+1>". Labels are
assigned when a question is answered and never overwritten once the cursor
has moved past the position.
*/
package models
