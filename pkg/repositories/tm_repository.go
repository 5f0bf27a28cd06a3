package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ekaya-inc/ekaya-l10n/pkg/database"
	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
)

// TranslationMemoryRepository stores (source, target) pairs derived from
// reviewed translations. No matching logic lives here.
type TranslationMemoryRepository interface {
	Create(ctx context.Context, entry *models.TranslationMemoryEntry) error
	// DeleteByTranslation removes every entry derived from the translation
	// and returns how many were removed.
	DeleteByTranslation(ctx context.Context, translationID uuid.UUID) (int64, error)
	ExistsForTranslation(ctx context.Context, translationID uuid.UUID) (bool, error)
	CountForTranslation(ctx context.Context, translationID uuid.UUID) (int, error)
}

type tmRepository struct{}

// NewTranslationMemoryRepository creates a new TranslationMemoryRepository.
func NewTranslationMemoryRepository() TranslationMemoryRepository {
	return &tmRepository{}
}

var _ TranslationMemoryRepository = (*tmRepository)(nil)

func (r *tmRepository) Create(ctx context.Context, entry *models.TranslationMemoryEntry) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return errNoScope
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()

	query := `
		INSERT INTO l10n_tm_entries (id, source, target, entity_id, translation_id, locale_id, project_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := scope.Conn.Exec(ctx, query,
		entry.ID,
		entry.Source,
		entry.Target,
		entry.EntityID,
		entry.TranslationID,
		entry.LocaleID,
		entry.ProjectID,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create translation memory entry: %w", err)
	}
	return nil
}

func (r *tmRepository) DeleteByTranslation(ctx context.Context, translationID uuid.UUID) (int64, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return 0, errNoScope
	}

	tag, err := scope.Conn.Exec(ctx, `DELETE FROM l10n_tm_entries WHERE translation_id = $1`, translationID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete translation memory entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *tmRepository) ExistsForTranslation(ctx context.Context, translationID uuid.UUID) (bool, error) {
	n, err := r.CountForTranslation(ctx, translationID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *tmRepository) CountForTranslation(ctx context.Context, translationID uuid.UUID) (int, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return 0, errNoScope
	}

	var n int
	err := scope.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM l10n_tm_entries WHERE translation_id = $1`, translationID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count translation memory entries: %w", err)
	}
	return n, nil
}
