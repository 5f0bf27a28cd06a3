package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ActionKind is the closed set of auditable translation actions.
type ActionKind string

const (
	ActionTranslationCreated    ActionKind = "translation:created"
	ActionTranslationDeleted    ActionKind = "translation:deleted"
	ActionTranslationApproved   ActionKind = "translation:approved"
	ActionTranslationUnapproved ActionKind = "translation:unapproved"
	ActionTranslationRejected   ActionKind = "translation:rejected"
	ActionTranslationUnrejected ActionKind = "translation:unrejected"
)

// Relation presence rules for one action kind.
type relationRule int

const (
	relationForbidden relationRule = iota
	relationRequired
)

// ActionKindRules declares which relations an action kind carries and whether
// it may be logged as an implicit side effect of another action.
type ActionKindRules struct {
	Translation   relationRule
	Entity        relationRule
	Locale        relationRule
	AllowImplicit bool
}

// actionKinds is the static table every ActionLogEntry is validated against.
var actionKinds = map[ActionKind]ActionKindRules{
	ActionTranslationCreated:    {Translation: relationRequired},
	ActionTranslationDeleted:    {Entity: relationRequired, Locale: relationRequired},
	ActionTranslationApproved:   {Translation: relationRequired},
	ActionTranslationUnapproved: {Translation: relationRequired, AllowImplicit: true},
	ActionTranslationRejected:   {Translation: relationRequired, AllowImplicit: true},
	ActionTranslationUnrejected: {Translation: relationRequired},
}

// LookupActionKind returns the relation rules for a kind and whether it is known.
func LookupActionKind(kind ActionKind) (ActionKindRules, bool) {
	rules, ok := actionKinds[kind]
	return rules, ok
}

// ActionLogEntry is one append-only audit record.
type ActionLogEntry struct {
	ID            uuid.UUID  `json:"id"`
	ActionType    ActionKind `json:"action_type"`
	PerformedBy   string     `json:"performed_by"`
	TranslationID *uuid.UUID `json:"translation_id,omitempty"`
	EntityID      *uuid.UUID `json:"entity_id,omitempty"`
	LocaleID      *uuid.UUID `json:"locale_id,omitempty"`
	IsImplicit    bool       `json:"is_implicit"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Validate checks the entry's relation set and implicit flag against the
// action kind table.
func (e *ActionLogEntry) Validate() error {
	rules, ok := actionKinds[e.ActionType]
	if !ok {
		return fmt.Errorf("unknown action type %q", e.ActionType)
	}
	if e.PerformedBy == "" {
		return fmt.Errorf("%s: performed_by is required", e.ActionType)
	}
	if err := checkRelation(e.ActionType, "translation", rules.Translation, e.TranslationID); err != nil {
		return err
	}
	if err := checkRelation(e.ActionType, "entity", rules.Entity, e.EntityID); err != nil {
		return err
	}
	if err := checkRelation(e.ActionType, "locale", rules.Locale, e.LocaleID); err != nil {
		return err
	}
	if e.IsImplicit && !rules.AllowImplicit {
		return fmt.Errorf("%s cannot be logged as an implicit action", e.ActionType)
	}
	return nil
}

func checkRelation(kind ActionKind, name string, rule relationRule, id *uuid.UUID) error {
	present := id != nil && *id != uuid.Nil
	switch {
	case rule == relationRequired && !present:
		return fmt.Errorf("%s requires %s", kind, name)
	case rule == relationForbidden && present:
		return fmt.Errorf("%s must not reference a %s", kind, name)
	}
	return nil
}
