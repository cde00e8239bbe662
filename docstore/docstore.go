// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/danielhkuo/askflow/models"
)

// ErrVerifyFailed means the re-read after a write did not match what was
// written. The caller still holds the in-memory document and must surface
// the failure to the operator instead of retrying silently.
var ErrVerifyFailed = errors.New("document on disk does not match the saved value")

// Store is the question document access boundary.
//
// Load is fail-soft: an unreadable or unparsable document degrades to an
// empty one, which callers treat as "no questions configured". Save must
// verify durability and report failure without consuming the caller's edit.
type Store interface {
	Load() models.Document
	Save(models.Document) error
}

// FileStore keeps the document as a single JSON file.
type FileStore struct {
	path string
}

func NewFile(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and decodes the document, then resolves missing semantic role
// tags. Any failure logs a warning and returns an empty document.
func (s *FileStore) Load() models.Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		slog.Warn("questions file unreadable, serving empty document", "path", s.path, "error", err)
		return models.EmptyDocument()
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("questions file unparsable, serving empty document", "path", s.path, "error", err)
		return models.EmptyDocument()
	}
	resolveRoles(&doc)
	return doc
}

// Save writes the document, re-reads it, and structurally compares the
// round-tripped value against what was intended. Any I/O failure or
// mismatch is an error; the in-memory document is untouched either way.
func (s *FileStore) Save(doc models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	onDisk, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("re-read document: %w", err)
	}
	var intended, written models.Document
	if err := json.Unmarshal(data, &intended); err != nil {
		return fmt.Errorf("decode intended document: %w", err)
	}
	if err := json.Unmarshal(onDisk, &written); err != nil {
		return fmt.Errorf("decode document on disk: %w", err)
	}
	if !reflect.DeepEqual(intended, written) {
		return ErrVerifyFailed
	}
	return nil
}

// Legacy documents carry no role tags; the original bot recognized these
// questions by scanning their localized text. That inference happens here,
// once per load, so traversal and validation only ever see explicit roles.
var rolePhrases = map[models.Role][]string{
	models.RoleAge:    {"сколько вам лет", "how old are you"},
	models.RoleIncome: {"какой доход вы хотите получать", "what income would you like to receive"},
	models.RoleSource: {"узнали про компанию", "how did you hear about"},
}

func resolveRoles(doc *models.Document) {
	for lang, qs := range doc.Questions {
		for i := range qs {
			if qs[i].Role != models.RoleNone {
				continue
			}
			qs[i].Role = inferRole(qs[i].Text)
		}
		doc.Questions[lang] = qs
	}
}

func inferRole(text string) models.Role {
	lower := strings.ToLower(text)
	for role, phrases := range rolePhrases {
		for _, p := range phrases {
			if strings.Contains(lower, p) {
				return role
			}
		}
	}
	return models.RoleNone
}
