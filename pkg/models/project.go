// Package models contains domain types for ekaya-l10n.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Project visibility values.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Project is a set of resources localized together.
type Project struct {
	ID            uuid.UUID `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	SystemProject bool      `json:"system_project"`
	Visibility    string    `json:"visibility"`
	CreatedAt     time.Time `json:"created_at"`

	AggregateStats
}

// CountsTowardsLocale reports whether the project's activity is summed into
// locale-scope aggregates. System and private projects are excluded.
func (p *Project) CountsTowardsLocale() bool {
	return !p.SystemProject && p.Visibility == VisibilityPublic
}

// Resource is one source file of a project.
type Resource struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Path      string    `json:"path"`
}

// ProjectLocale links a project to a locale it is localized into.
type ProjectLocale struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	LocaleID  uuid.UUID `json:"locale_id"`
	// ReadOnly locks every translation of the project in this locale.
	ReadOnly bool `json:"readonly"`

	AggregateStats
}

// TranslatedResource is the resource-scope aggregate for one resource in one locale.
type TranslatedResource struct {
	ID         uuid.UUID `json:"id"`
	ResourceID uuid.UUID `json:"resource_id"`
	LocaleID   uuid.UUID `json:"locale_id"`

	AggregateStats
}
