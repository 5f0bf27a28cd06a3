package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestActionLogEntry_Validate(t *testing.T) {
	tid, eid, lid := uuid.New(), uuid.New(), uuid.New()
	nilID := uuid.Nil

	tests := []struct {
		name    string
		entry   ActionLogEntry
		wantErr bool
	}{
		{
			name:  "created",
			entry: ActionLogEntry{ActionType: ActionTranslationCreated, PerformedBy: "u", TranslationID: &tid},
		},
		{
			name:  "deleted",
			entry: ActionLogEntry{ActionType: ActionTranslationDeleted, PerformedBy: "u", EntityID: &eid, LocaleID: &lid},
		},
		{
			name:  "implicit unapproval",
			entry: ActionLogEntry{ActionType: ActionTranslationUnapproved, PerformedBy: "u", TranslationID: &tid, IsImplicit: true},
		},
		{
			name:  "implicit rejection",
			entry: ActionLogEntry{ActionType: ActionTranslationRejected, PerformedBy: "u", TranslationID: &tid, IsImplicit: true},
		},
		{
			name:    "unknown kind",
			entry:   ActionLogEntry{ActionType: "translation:archived", PerformedBy: "u", TranslationID: &tid},
			wantErr: true,
		},
		{
			name:    "missing user",
			entry:   ActionLogEntry{ActionType: ActionTranslationCreated, TranslationID: &tid},
			wantErr: true,
		},
		{
			name:    "approved without translation",
			entry:   ActionLogEntry{ActionType: ActionTranslationApproved, PerformedBy: "u"},
			wantErr: true,
		},
		{
			name:    "nil uuid counts as missing",
			entry:   ActionLogEntry{ActionType: ActionTranslationApproved, PerformedBy: "u", TranslationID: &nilID},
			wantErr: true,
		},
		{
			name:    "approved with entity",
			entry:   ActionLogEntry{ActionType: ActionTranslationApproved, PerformedBy: "u", TranslationID: &tid, EntityID: &eid},
			wantErr: true,
		},
		{
			name:    "deleted with translation",
			entry:   ActionLogEntry{ActionType: ActionTranslationDeleted, PerformedBy: "u", TranslationID: &tid, EntityID: &eid, LocaleID: &lid},
			wantErr: true,
		},
		{
			name:    "deleted without locale",
			entry:   ActionLogEntry{ActionType: ActionTranslationDeleted, PerformedBy: "u", EntityID: &eid},
			wantErr: true,
		},
		{
			name:    "implicit approval",
			entry:   ActionLogEntry{ActionType: ActionTranslationApproved, PerformedBy: "u", TranslationID: &tid, IsImplicit: true},
			wantErr: true,
		},
		{
			name:    "implicit unrejection",
			entry:   ActionLogEntry{ActionType: ActionTranslationUnrejected, PerformedBy: "u", TranslationID: &tid, IsImplicit: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLookupActionKind(t *testing.T) {
	rules, ok := LookupActionKind(ActionTranslationRejected)
	if !ok || !rules.AllowImplicit {
		t.Errorf("expected rejected to allow implicit logging, got %+v %v", rules, ok)
	}
	if _, ok := LookupActionKind("nope"); ok {
		t.Error("expected unknown kind")
	}
}
