package services

import (
	"sort"

	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
)

// ActivePriority ranks a translation's claim to be the active one in its
// (entity, locale, plural form) group. Higher wins.
type ActivePriority int

const (
	// PriorityIneligible is never selected (rejected translations).
	PriorityIneligible ActivePriority = iota
	PriorityNewestOpenSuggestion
	PriorityFuzzy
	PriorityPretranslated
	PriorityApproved
)

func (p ActivePriority) String() string {
	switch p {
	case PriorityApproved:
		return "approved"
	case PriorityPretranslated:
		return "pretranslated"
	case PriorityFuzzy:
		return "fuzzy"
	case PriorityNewestOpenSuggestion:
		return "newest_open_suggestion"
	default:
		return "ineligible"
	}
}

// PriorityOf classifies one translation.
func PriorityOf(t *models.Translation) ActivePriority {
	switch {
	case t.Rejected:
		return PriorityIneligible
	case t.Approved:
		return PriorityApproved
	case t.Pretranslated:
		return PriorityPretranslated
	case t.Fuzzy:
		return PriorityFuzzy
	default:
		return PriorityNewestOpenSuggestion
	}
}

// SelectActive picks the translation that should be active among one group.
// Ties within a priority go to the newest submission, then the greater id,
// so the result does not depend on input order. Returns nil when the group is
// empty or every member is rejected.
func SelectActive(group []*models.Translation) *models.Translation {
	var winner *models.Translation
	best := PriorityIneligible
	for _, t := range group {
		p := PriorityOf(t)
		if p == PriorityIneligible {
			continue
		}
		if winner == nil || p > best || (p == best && newer(t, winner)) {
			winner, best = t, p
		}
	}
	return winner
}

func newer(a, b *models.Translation) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.ID.String() > b.ID.String()
}

// pluralGroup is the set of translations sharing one plural form.
type pluralGroup struct {
	form         *int
	translations []*models.Translation
}

// groupByPluralForm partitions an (entity, locale) translation set into its
// plural-form groups, ordered by form with the non-plural group first.
func groupByPluralForm(translations []*models.Translation) []*pluralGroup {
	var groups []*pluralGroup
	for _, t := range translations {
		var g *pluralGroup
		for _, existing := range groups {
			if models.SamePluralForm(existing.form, t.PluralForm) {
				g = existing
				break
			}
		}
		if g == nil {
			g = &pluralGroup{form: t.PluralForm}
			groups = append(groups, g)
		}
		g.translations = append(g.translations, t)
	}
	sort.Slice(groups, func(i, j int) bool {
		return formOrder(groups[i].form) < formOrder(groups[j].form)
	})
	return groups
}

// sameGroup returns the members of translations in the plural form of form.
func sameGroup(translations []*models.Translation, form *int) []*models.Translation {
	var out []*models.Translation
	for _, t := range translations {
		if models.SamePluralForm(t.PluralForm, form) {
			out = append(out, t)
		}
	}
	return out
}

func formOrder(form *int) int {
	if form == nil {
		return -1
	}
	return *form
}
