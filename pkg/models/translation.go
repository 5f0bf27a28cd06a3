package models

import (
	"time"

	"github.com/google/uuid"
)

// Translation states as reported to callers. A translation is in exactly one.
const (
	TranslationStateSuggested     = "suggested"
	TranslationStateApproved      = "approved"
	TranslationStateRejected      = "rejected"
	TranslationStatePretranslated = "pretranslated"
	TranslationStateFuzzy         = "fuzzy"
)

// Translation is one candidate rendering of an Entity into a Locale.
// PluralForm is nil for non-plural entities.
type Translation struct {
	ID         uuid.UUID `json:"id"`
	EntityID   uuid.UUID `json:"entity_id"`
	LocaleID   uuid.UUID `json:"locale_id"`
	PluralForm *int      `json:"plural_form,omitempty"`
	String     string    `json:"string"`
	User       string    `json:"user,omitempty"`
	Date       time.Time `json:"date"`

	Approved      bool `json:"approved"`
	Rejected      bool `json:"rejected"`
	Pretranslated bool `json:"pretranslated"`
	Fuzzy         bool `json:"fuzzy"`
	Active        bool `json:"active"`

	ApprovedUser   *string    `json:"approved_user,omitempty"`
	ApprovedDate   *time.Time `json:"approved_date,omitempty"`
	UnapprovedUser *string    `json:"unapproved_user,omitempty"`
	UnapprovedDate *time.Time `json:"unapproved_date,omitempty"`
	RejectedUser   *string    `json:"rejected_user,omitempty"`
	RejectedDate   *time.Time `json:"rejected_date,omitempty"`
	UnrejectedUser *string    `json:"unrejected_user,omitempty"`
	UnrejectedDate *time.Time `json:"unrejected_date,omitempty"`

	// Quality check findings recorded at submission time.
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
}

// State returns the single state name of the translation.
func (t *Translation) State() string {
	switch {
	case t.Approved:
		return TranslationStateApproved
	case t.Rejected:
		return TranslationStateRejected
	case t.Pretranslated:
		return TranslationStatePretranslated
	case t.Fuzzy:
		return TranslationStateFuzzy
	default:
		return TranslationStateSuggested
	}
}

// IsOpenSuggestion reports whether the translation still awaits review.
func (t *Translation) IsOpenSuggestion() bool {
	return !t.Approved && !t.Pretranslated && !t.Fuzzy && !t.Rejected
}

// HasChecks reports whether quality checks recorded errors or warnings.
func (t *Translation) HasChecks() bool {
	return t.ErrorCount > 0 || t.WarningCount > 0
}

// ActivityAt is the timestamp used for latest-activity pointers: the approval
// time when it is later than the submission time, else the submission time.
func (t *Translation) ActivityAt() time.Time {
	if t.ApprovedDate != nil && t.ApprovedDate.After(t.Date) {
		return *t.ApprovedDate
	}
	return t.Date
}

// SamePluralForm reports whether two plural forms address the same group.
func SamePluralForm(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Check severities.
const (
	CheckSeverityError   = "error"
	CheckSeverityWarning = "warning"
)

// TranslationCheck is one quality-check finding attached to a translation.
type TranslationCheck struct {
	ID            uuid.UUID `json:"id"`
	TranslationID uuid.UUID `json:"translation_id"`
	Severity      string    `json:"severity"`
	Library       string    `json:"library,omitempty"`
	Message       string    `json:"message"`
}

// TranslationMemoryEntry is a (source, target) pair derived from one
// approved, pretranslated or fuzzy translation.
type TranslationMemoryEntry struct {
	ID            uuid.UUID  `json:"id"`
	Source        string     `json:"source"`
	Target        string     `json:"target"`
	EntityID      uuid.UUID  `json:"entity_id"`
	TranslationID uuid.UUID  `json:"translation_id"`
	LocaleID      uuid.UUID  `json:"locale_id"`
	ProjectID     *uuid.UUID `json:"project_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
