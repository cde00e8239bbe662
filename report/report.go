// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/askflow/models"
)

// contactPlaceholder is the literal token operators may embed in the
// closing template.
const contactPlaceholder = "{contact_link}"

// CanonicalContact trims the stored contact reference and ensures the "@"
// prefix. Canonicalization happens at render time only; the stored value is
// left however the operator entered it.
func CanonicalContact(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return link
	}
	if !strings.HasPrefix(link, "@") {
		link = "@" + link
	}
	return link
}

// RenderFinalPhrase substitutes the contact placeholder with the
// canonicalized contact reference.
func RenderFinalPhrase(phrase, contact string) string {
	return strings.ReplaceAll(phrase, contactPlaceholder, CanonicalContact(contact))
}

// Operator renders the plain-text report delivered to the operator:
// respondent identity, the answers in traversal order, the resolved contact
// and the closing text as the user saw it.
func Operator(sub models.Submission) string {
	var b strings.Builder

	b.WriteString("New survey submission\n")
	fmt.Fprintf(&b, "ID: %d\n", sub.UserID)
	fmt.Fprintf(&b, "Username: %s\n", username(sub.Username))
	fmt.Fprintf(&b, "First name: %s\n", orDash(sub.FirstName))
	fmt.Fprintf(&b, "Last name: %s\n", orDash(sub.LastName))
	fmt.Fprintf(&b, "Language: %s\n", sub.Lang)
	if !sub.StartedAt.IsZero() {
		fmt.Fprintf(&b, "Started: %s\n", humanize.Time(sub.StartedAt))
	}

	b.WriteString("\nAnswers:\n")
	for _, a := range sub.Answers {
		fmt.Fprintf(&b, "%s: %s\n", a.Label, a.Text)
	}

	fmt.Fprintf(&b, "\nContact for user: %s\n", sub.ContactLink)
	fmt.Fprintf(&b, "Closing message: %s", sub.ClosingText)
	return b.String()
}

func username(u string) string {
	if u == "" {
		return "-"
	}
	return "@" + u
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
