package models

import (
	"time"

	"github.com/google/uuid"
)

// Stats holds the six aggregate counters shared by every aggregate scope.
type Stats struct {
	Total         int `json:"total_strings"`
	Approved      int `json:"approved_strings"`
	Pretranslated int `json:"pretranslated_strings"`
	Errors        int `json:"strings_with_errors"`
	Warnings      int `json:"strings_with_warnings"`
	Unreviewed    int `json:"unreviewed_strings"`
}

// Missing is the number of strings without a usable translation.
func (s Stats) Missing() int {
	return s.Total - s.Approved - s.Pretranslated - s.Errors - s.Warnings
}

// Complete reports whether every string is approved or approved with warnings.
func (s Stats) Complete() bool {
	return s.Total == s.Approved+s.Warnings
}

// Add returns s with every counter of d applied.
func (s Stats) Add(d StatsDelta) Stats {
	return Stats{
		Total:         s.Total + d.Total,
		Approved:      s.Approved + d.Approved,
		Pretranslated: s.Pretranslated + d.Pretranslated,
		Errors:        s.Errors + d.Errors,
		Warnings:      s.Warnings + d.Warnings,
		Unreviewed:    s.Unreviewed + d.Unreviewed,
	}
}

// StatsDelta is a signed per-counter change applied to aggregate scopes.
type StatsDelta struct {
	Total         int `json:"total_strings_diff"`
	Approved      int `json:"approved_strings_diff"`
	Pretranslated int `json:"pretranslated_strings_diff"`
	Errors        int `json:"strings_with_errors_diff"`
	Warnings      int `json:"strings_with_warnings_diff"`
	Unreviewed    int `json:"unreviewed_strings_diff"`
}

// IsZero reports whether applying the delta would change nothing.
func (d StatsDelta) IsZero() bool {
	return d == StatsDelta{}
}

// Scope kinds for aggregate records.
const (
	ScopeTranslatedResource = "translated_resource"
	ScopeProjectLocale      = "project_locale"
	ScopeLocale             = "locale"
	ScopeProject            = "project"
)

// AggregateStats is embedded in every aggregate scope record.
type AggregateStats struct {
	Stats
	LatestTranslationID *uuid.UUID `json:"latest_translation_id,omitempty"`
	LatestActivityAt    *time.Time `json:"latest_activity_at,omitempty"`
}
