// Package stats computes per-entity translation statistics and the deltas
// applied to aggregate scopes. Everything here is pure: callers load the
// translations, this package only counts.
package stats

import (
	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
)

// Snapshot computes the statistics contributed by one entity in one locale
// from the full set of that entity's translations in the locale.
//
// Approved and Pretranslated are 0 or 1. A plural entity counts as approved
// only when every one of pluralCount forms has a qualifying translation.
// Errors and Warnings are 0 or 1 and only set when the entity is neither
// approved nor pretranslated; an entity with errors is not also counted as
// having warnings, so missing never goes negative. Unreviewed is the raw number of open suggestions.
// Total is never produced here.
func Snapshot(entity *models.Entity, pluralCount int, translations []*models.Translation) models.Stats {
	var (
		approvedForms      = map[int]struct{}{}
		pretranslatedForms = map[int]struct{}{}
		hasErrors          bool
		hasWarnings        bool
		unreviewed         int
	)

	for _, t := range translations {
		form := formKey(t.PluralForm)
		if qualifiesApproved(t) {
			approvedForms[form] = struct{}{}
		}
		if qualifiesPretranslated(t) {
			pretranslatedForms[form] = struct{}{}
		}
		if t.Approved || t.Pretranslated || t.Fuzzy {
			if t.ErrorCount > 0 {
				hasErrors = true
			}
			if t.WarningCount > 0 {
				hasWarnings = true
			}
		}
		if t.IsOpenSuggestion() {
			unreviewed++
		}
	}

	var s models.Stats
	if entity.IsPlural() {
		if pluralCount < 1 {
			pluralCount = 1
		}
		s.Approved = boolInt(coveredForms(approvedForms, pluralCount) == pluralCount)
		s.Pretranslated = boolInt(coveredForms(pretranslatedForms, pluralCount) == pluralCount)
	} else {
		s.Approved = boolInt(len(approvedForms) > 0)
		s.Pretranslated = boolInt(len(pretranslatedForms) > 0)
	}

	if s.Approved == 1 {
		s.Pretranslated = 0
	}
	if s.Approved == 0 && s.Pretranslated == 0 {
		s.Errors = boolInt(hasErrors)
		s.Warnings = boolInt(hasWarnings && !hasErrors)
	}
	s.Unreviewed = unreviewed
	return s
}

// Diff returns after minus before for every counter. Total is left at zero;
// the caller injects it when a resource-scope record is seeded.
func Diff(before, after models.Stats) models.StatsDelta {
	return models.StatsDelta{
		Approved:      after.Approved - before.Approved,
		Pretranslated: after.Pretranslated - before.Pretranslated,
		Errors:        after.Errors - before.Errors,
		Warnings:      after.Warnings - before.Warnings,
		Unreviewed:    after.Unreviewed - before.Unreviewed,
	}
}

// Sum adds counters of several snapshots or scope records.
func Sum(items ...models.Stats) models.Stats {
	var total models.Stats
	for _, s := range items {
		total.Total += s.Total
		total.Approved += s.Approved
		total.Pretranslated += s.Pretranslated
		total.Errors += s.Errors
		total.Warnings += s.Warnings
		total.Unreviewed += s.Unreviewed
	}
	return total
}

// GroupByEntity splits a flat translation list by entity id.
func GroupByEntity(translations []*models.Translation) map[string][]*models.Translation {
	groups := make(map[string][]*models.Translation)
	for _, t := range translations {
		key := t.EntityID.String()
		groups[key] = append(groups[key], t)
	}
	return groups
}

func qualifiesApproved(t *models.Translation) bool {
	return t.Approved && !t.HasChecks()
}

func qualifiesPretranslated(t *models.Translation) bool {
	return t.Pretranslated && !t.HasChecks()
}

// coveredForms counts the forms in [0, pluralCount) present in forms.
func coveredForms(forms map[int]struct{}, pluralCount int) int {
	n := 0
	for form := range forms {
		if form >= 0 && form < pluralCount {
			n++
		}
	}
	return n
}

func formKey(form *int) int {
	if form == nil {
		return -1
	}
	return *form
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
