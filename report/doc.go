// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package report renders delivery content: the user-facing closing message
and the operator report.

The closing template may contain the literal token {contact_link}, replaced
at render time with the canonicalized contact reference (leading "@" added
if missing). The operator report is plain structured text: respondent
identity and name fields, every answer in traversal order, the resolved
contact, and the closing message exactly as rendered for the user.
*/
package report
