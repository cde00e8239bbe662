// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"fmt"
)

// QuestionType distinguishes free-text prompts from keyboard choices.
type QuestionType string

const (
	TypeText   QuestionType = "text"
	TypeChoice QuestionType = "choice"
)

// Role is the explicit semantic tag on a question. Validator selection keys
// off the role, never off the localized question text.
type Role string

const (
	RoleNone   Role = ""
	RoleAge    Role = "age"    // digits only, under-18 is terminal
	RoleIncome Role = "income" // free text where digits are expected
	RoleName   Role = "name"   // letters, spaces and hyphens only
	RoleSource Role = "source" // choice question with the "other" escape
)

// Dependency gates a question on an earlier answer in the same language's
// list. QuestionIdx must reference an earlier index; the engine does not
// detect forward or cyclic references.
type Dependency struct {
	QuestionIdx int      `json:"question_idx"`
	Values      []string `json:"values"`
}

// Question is one entry in a language's ordered question list. The index in
// the list is its identity; live documents are never reordered.
type Question struct {
	Text      string       `json:"question"`
	Type      QuestionType `json:"type"`
	Choices   []string     `json:"choices,omitempty"`
	DependsOn *Dependency  `json:"depends_on,omitempty"`
	Role      Role         `json:"role,omitempty"`
}

// LocalizedText is a string that may be stored either flat or as a
// per-language map. Both forms appear in deployed documents.
type LocalizedText struct {
	flat   string
	byLang map[string]string
}

// FlatText wraps a single string valid for every language.
func FlatText(s string) LocalizedText {
	return LocalizedText{flat: s}
}

// TextByLang wraps a per-language map.
func TextByLang(m map[string]string) LocalizedText {
	return LocalizedText{byLang: m}
}

// For resolves the text for a language. A flat value wins; a map value falls
// back to the empty string when the language is missing.
func (t LocalizedText) For(lang string) string {
	if t.flat != "" {
		return t.flat
	}
	return t.byLang[lang]
}

// IsZero reports whether no text is set in either form.
func (t LocalizedText) IsZero() bool {
	return t.flat == "" && len(t.byLang) == 0
}

func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if len(t.byLang) > 0 {
		return json.Marshal(t.byLang)
	}
	return json.Marshal(t.flat)
}

func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = LocalizedText{flat: s}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("final phrase must be a string or a per-language map: %w", err)
	}
	*t = LocalizedText{byLang: m}
	return nil
}

// Document keys on disk that are not language lists.
const (
	keyContactLink = "contact_link"
	keyFinalPhrase = "final_phrase"
)

// Document is the versioned question collection plus the two operator
// settings. On disk it is a single object whose contact_link and
// final_phrase keys are scalars and whose remaining keys are locale codes.
type Document struct {
	Questions   map[string][]Question
	ContactLink string
	FinalPhrase LocalizedText
}

// EmptyDocument is the fail-soft value for unreadable documents.
func EmptyDocument() Document {
	return Document{Questions: map[string][]Question{}}
}

// QuestionsFor returns the ordered list for a language (nil when absent).
func (d Document) QuestionsFor(lang string) []Question {
	return d.Questions[lang]
}

// Clone deep-copies the document so panel edits never alias a loaded value.
func (d Document) Clone() Document {
	out := Document{
		Questions:   make(map[string][]Question, len(d.Questions)),
		ContactLink: d.ContactLink,
		FinalPhrase: d.FinalPhrase,
	}
	if len(d.FinalPhrase.byLang) > 0 {
		m := make(map[string]string, len(d.FinalPhrase.byLang))
		for k, v := range d.FinalPhrase.byLang {
			m[k] = v
		}
		out.FinalPhrase = LocalizedText{byLang: m}
	}
	for lang, qs := range d.Questions {
		cp := make([]Question, len(qs))
		copy(cp, qs)
		for i, q := range qs {
			if len(q.Choices) > 0 {
				cp[i].Choices = append([]string(nil), q.Choices...)
			}
			if q.DependsOn != nil {
				dep := *q.DependsOn
				dep.Values = append([]string(nil), q.DependsOn.Values...)
				cp[i].DependsOn = &dep
			}
		}
		out.Questions[lang] = cp
	}
	return out
}

func (d Document) MarshalJSON() ([]byte, error) {
	raw := make(map[string]any, len(d.Questions)+2)
	for lang, qs := range d.Questions {
		raw[lang] = qs
	}
	if d.ContactLink != "" {
		raw[keyContactLink] = d.ContactLink
	}
	if !d.FinalPhrase.IsZero() {
		raw[keyFinalPhrase] = d.FinalPhrase
	}
	return json.Marshal(raw)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := EmptyDocument()
	for key, val := range raw {
		switch key {
		case keyContactLink:
			if err := json.Unmarshal(val, &out.ContactLink); err != nil {
				return fmt.Errorf("contact_link: %w", err)
			}
		case keyFinalPhrase:
			if err := json.Unmarshal(val, &out.FinalPhrase); err != nil {
				return fmt.Errorf("final_phrase: %w", err)
			}
		default:
			var qs []Question
			if err := json.Unmarshal(val, &qs); err != nil {
				return fmt.Errorf("questions for %q: %w", key, err)
			}
			out.Questions[key] = qs
		}
	}
	*d = out
	return nil
}
