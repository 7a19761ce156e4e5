// Package notes encodes and decodes the side-channel metadata carried in
// a task's free-form notes field. The channel is best-effort by contract:
// malformed input degrades to zero values, never to an error.
package notes

import (
	"encoding/json"
	"strings"
)

// MetaPrefix is the fixed literal marker that introduces the JSON
// metadata record inside a notes string.
const MetaPrefix = "@meta:"

// Meta is the structured scheduling record stored behind MetaPrefix.
// Empty fields are omitted on encode so a round trip never reintroduces
// them.
type Meta struct {
	PhaseTag        string `json:"phase,omitempty"`
	DependencyID    string `json:"dependency_id,omitempty"`
	Comment         string `json:"comment,omitempty"`
	ChecklistText   string `json:"checklist,omitempty"`
	UnlockAfterDays int    `json:"unlock_after_days,omitempty"`
}

// EncodeMeta serializes m to the prefixed JSON form.
func EncodeMeta(m Meta) string {
	b, err := json.Marshal(m)
	if err != nil {
		return MetaPrefix + "{}"
	}
	return MetaPrefix + string(b)
}

// DecodeMeta parses a prefixed JSON record out of a notes string.
// Returns nil when the prefix is absent or the JSON suffix is malformed.
func DecodeMeta(raw string) *Meta {
	if !strings.HasPrefix(raw, MetaPrefix) {
		return nil
	}
	var m Meta
	if err := json.Unmarshal([]byte(strings.TrimPrefix(raw, MetaPrefix)), &m); err != nil {
		return nil
	}
	return &m
}
