package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ekaya-inc/ekaya-l10n/pkg/database"
	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
)

// ActionLogRepository provides data access for the append-only action log.
type ActionLogRepository interface {
	// Create inserts a new action log entry. Relation rules are checked by the
	// caller; the table constraints back them up.
	Create(ctx context.Context, entry *models.ActionLogEntry) error

	// GetByTranslation returns entries for a translation, oldest first.
	GetByTranslation(ctx context.Context, translationID uuid.UUID) ([]*models.ActionLogEntry, error)

	// GetByEntityLocale returns entries recorded with entity and locale
	// relations (deletions), newest first.
	GetByEntityLocale(ctx context.Context, entityID, localeID uuid.UUID) ([]*models.ActionLogEntry, error)

	// GetByUser returns entries performed by a user, newest first.
	GetByUser(ctx context.Context, user string, limit int) ([]*models.ActionLogEntry, error)
}

type actionLogRepository struct{}

// NewActionLogRepository creates a new ActionLogRepository.
func NewActionLogRepository() ActionLogRepository {
	return &actionLogRepository{}
}

var _ ActionLogRepository = (*actionLogRepository)(nil)

const actionLogColumns = `id, action_type, performed_by, translation_id, entity_id, locale_id, is_implicit, created_at`

func (r *actionLogRepository) Create(ctx context.Context, entry *models.ActionLogEntry) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return errNoScope
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO l10n_action_log (` + actionLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := scope.Conn.Exec(ctx, query,
		entry.ID,
		string(entry.ActionType),
		entry.PerformedBy,
		entry.TranslationID,
		entry.EntityID,
		entry.LocaleID,
		entry.IsImplicit,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create action log entry: %w", err)
	}

	return nil
}

func (r *actionLogRepository) GetByTranslation(ctx context.Context, translationID uuid.UUID) ([]*models.ActionLogEntry, error) {
	return r.query(ctx, `
		SELECT `+actionLogColumns+`
		FROM l10n_action_log
		WHERE translation_id = $1
		ORDER BY created_at, id`, translationID)
}

func (r *actionLogRepository) GetByEntityLocale(ctx context.Context, entityID, localeID uuid.UUID) ([]*models.ActionLogEntry, error) {
	return r.query(ctx, `
		SELECT `+actionLogColumns+`
		FROM l10n_action_log
		WHERE entity_id = $1 AND locale_id = $2
		ORDER BY created_at DESC`, entityID, localeID)
}

func (r *actionLogRepository) GetByUser(ctx context.Context, user string, limit int) ([]*models.ActionLogEntry, error) {
	return r.query(ctx, `
		SELECT `+actionLogColumns+`
		FROM l10n_action_log
		WHERE performed_by = $1
		ORDER BY created_at DESC
		LIMIT $2`, user, limit)
}

func (r *actionLogRepository) query(ctx context.Context, query string, args ...any) ([]*models.ActionLogEntry, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	rows, err := scope.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query action log: %w", err)
	}
	defer rows.Close()

	var entries []*models.ActionLogEntry
	for rows.Next() {
		entry, err := scanActionLogEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating action log entries: %w", err)
	}

	return entries, nil
}

func scanActionLogEntry(row pgx.Row) (*models.ActionLogEntry, error) {
	var entry models.ActionLogEntry
	var actionType string

	err := row.Scan(
		&entry.ID,
		&actionType,
		&entry.PerformedBy,
		&entry.TranslationID,
		&entry.EntityID,
		&entry.LocaleID,
		&entry.IsImplicit,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan action log entry: %w", err)
	}
	entry.ActionType = models.ActionKind(actionType)

	return &entry, nil
}
