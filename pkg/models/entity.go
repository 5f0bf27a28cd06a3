package models

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Entity is a source string unit to be localized.
type Entity struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	Key          string    `json:"key"`
	String       string    `json:"string"`
	StringPlural string    `json:"string_plural,omitempty"`
	Obsolete     bool      `json:"obsolete"`
	WordCount    int       `json:"word_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsPlural reports whether the entity has a plural source form.
func (e *Entity) IsPlural() bool {
	return e.StringPlural != ""
}

// SetSource replaces the source strings and recomputes the word count.
func (e *Entity) SetSource(singular, plural string) {
	e.String = singular
	e.StringPlural = plural
	e.WordCount = CountWords(singular)
}

// CountWords counts words in a source string. Placeholders such as {count},
// %s or $var and punctuation-only tokens are not words.
func CountWords(s string) int {
	count := 0
	for _, token := range strings.Fields(s) {
		if isPlaceholder(token) {
			continue
		}
		if strings.IndexFunc(token, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		}) < 0 {
			continue
		}
		count++
	}
	return count
}

func isPlaceholder(token string) bool {
	t := strings.TrimRight(token, ".,;:!?")
	switch {
	case strings.HasPrefix(t, "{") && strings.HasSuffix(t, "}"):
		return true
	case strings.HasPrefix(t, "%"):
		return true
	case strings.HasPrefix(t, "$") && len(t) > 1:
		return true
	}
	return false
}
