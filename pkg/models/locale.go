package models

import (
	"time"

	"github.com/google/uuid"
)

// Locale is a target language. PluralCount is the number of grammatical
// plural forms translations of plural entities must cover.
type Locale struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	PluralCount int       `json:"plural_count"`
	CreatedAt   time.Time `json:"created_at"`

	AggregateStats
}

// DefaultPluralCount returns the number of plural forms commonly used by the
// language of a locale code ("pt-BR" and "pt_BR" resolve to "pt").
// Unknown languages default to two forms.
func DefaultPluralCount(code string) int {
	base := code
	for i, r := range code {
		if r == '-' || r == '_' {
			base = code[:i]
			break
		}
	}

	switch base {
	case "ja", "ko", "zh", "vi", "th", "id", "ms":
		return 1
	case "ru", "uk", "be", "hr", "sr", "bs", "pl", "cs", "sk", "ro", "lt", "lv":
		return 3
	case "ar":
		return 6
	default:
		return 2
	}
}
