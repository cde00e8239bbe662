// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package admin is the operator's runtime editing panel, driven over the same
chat channel as the survey.

/admin opens a keyboard menu for the single configured operator id (anyone
else is refused). From there the operator can edit question text and
choices per language, the contact link, and the final phrase, all without a
redeploy.

Every edit goes through docstore.Save, which verifies the write by
re-reading the file. On failure the operator gets an explicit notice and
the edited document is held in the panel session until they choose Retry or
Discard; a failed save is never retried automatically and never loses the
edit.
*/
package admin
