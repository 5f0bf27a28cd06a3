package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ekaya-inc/ekaya-l10n/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-l10n/pkg/database"
	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
)

// TranslationRepository provides data access for translations and their
// quality-check findings.
type TranslationRepository interface {
	// Create inserts the translation inactive, together with its checks.
	// ErrorCount and WarningCount are derived from checks.
	Create(ctx context.Context, t *models.Translation, checks []*models.TranslationCheck) error
	Get(ctx context.Context, id uuid.UUID) (*models.Translation, error)
	// LockForEntityLocale takes the (entity, locale) transaction lock, then
	// returns every translation of the entity in the locale with row locks
	// held until the transaction ends. The group lock also covers rows that
	// do not exist yet, so concurrent submissions to an empty or growing set
	// serialize too.
	LockForEntityLocale(ctx context.Context, entityID, localeID uuid.UUID) ([]*models.Translation, error)
	ListForEntityLocale(ctx context.Context, entityID, localeID uuid.UUID) ([]*models.Translation, error)
	// ListForResourceLocale returns translations of non-obsolete entities.
	ListForResourceLocale(ctx context.Context, resourceID, localeID uuid.UUID) ([]*models.Translation, error)
	// ListLocalesForResource returns locales with at least one translation in the resource.
	ListLocalesForResource(ctx context.Context, resourceID uuid.UUID) ([]uuid.UUID, error)
	ListChecks(ctx context.Context, translationID uuid.UUID) ([]*models.TranslationCheck, error)
	// UpdateState persists review flags and stamps. The active flag is owned
	// by SetActive and is not written here.
	UpdateState(ctx context.Context, t *models.Translation) error
	// SetActive clears active on every other translation of the group, then
	// marks winner active. A nil winner clears the whole group.
	SetActive(ctx context.Context, entityID, localeID uuid.UUID, pluralForm *int, winner *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type translationRepository struct{}

// NewTranslationRepository creates a new TranslationRepository.
func NewTranslationRepository() TranslationRepository {
	return &translationRepository{}
}

var _ TranslationRepository = (*translationRepository)(nil)

const translationColumns = `t.id, t.entity_id, t.locale_id, t.plural_form, t.string, COALESCE(t.user_id, ''), t.date,
	t.approved, t.rejected, t.pretranslated, t.fuzzy, t.active,
	t.approved_user, t.approved_date, t.unapproved_user, t.unapproved_date,
	t.rejected_user, t.rejected_date, t.unrejected_user, t.unrejected_date,
	t.error_count, t.warning_count`

func (r *translationRepository) Create(ctx context.Context, t *models.Translation, checks []*models.TranslationCheck) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return errNoScope
	}

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.Active = false
	t.ErrorCount, t.WarningCount = 0, 0
	for _, c := range checks {
		switch c.Severity {
		case models.CheckSeverityError:
			t.ErrorCount++
		case models.CheckSeverityWarning:
			t.WarningCount++
		default:
			return fmt.Errorf("unknown check severity %q", c.Severity)
		}
	}

	query := `
		INSERT INTO l10n_translations (
			id, entity_id, locale_id, plural_form, string, user_id, date,
			approved, approved_user, approved_date,
			rejected, pretranslated, fuzzy, active,
			error_count, warning_count
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13, false, $14, $15)`

	_, err := scope.Conn.Exec(ctx, query,
		t.ID, t.EntityID, t.LocaleID, t.PluralForm, t.String, t.User, t.Date,
		t.Approved, t.ApprovedUser, t.ApprovedDate,
		t.Rejected, t.Pretranslated, t.Fuzzy,
		t.ErrorCount, t.WarningCount,
	)
	if err != nil {
		return fmt.Errorf("failed to create translation: %w", err)
	}

	for _, c := range checks {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		c.TranslationID = t.ID
		_, err := scope.Conn.Exec(ctx, `
			INSERT INTO l10n_translation_checks (id, translation_id, severity, library, message)
			VALUES ($1, $2, $3, $4, $5)`,
			c.ID, c.TranslationID, c.Severity, c.Library, c.Message)
		if err != nil {
			return fmt.Errorf("failed to create translation check: %w", err)
		}
	}
	return nil
}

func (r *translationRepository) Get(ctx context.Context, id uuid.UUID) (*models.Translation, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	row := scope.Conn.QueryRow(ctx, `SELECT `+translationColumns+` FROM l10n_translations t WHERE t.id = $1`, id)
	t, err := scanTranslation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("translation %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get translation: %w", err)
	}
	return t, nil
}

func (r *translationRepository) LockForEntityLocale(ctx context.Context, entityID, localeID uuid.UUID) ([]*models.Translation, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}
	// Read committed takes a new snapshot per statement, so the listing below
	// sees every row committed by whoever held the lock before us.
	if _, err := scope.Conn.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`,
		entityLocaleLockKey(entityID, localeID)); err != nil {
		return nil, fmt.Errorf("failed to lock entity locale: %w", err)
	}

	return r.list(ctx, `
		SELECT `+translationColumns+`
		FROM l10n_translations t
		WHERE t.entity_id = $1 AND t.locale_id = $2
		ORDER BY t.date, t.id
		FOR UPDATE`, entityID, localeID)
}

// entityLocaleLockKey names the advisory lock of one (entity, locale) pair.
// Hash collisions only over-serialize unrelated pairs.
func entityLocaleLockKey(entityID, localeID uuid.UUID) string {
	return "l10n_translations:" + entityID.String() + ":" + localeID.String()
}

func (r *translationRepository) ListForEntityLocale(ctx context.Context, entityID, localeID uuid.UUID) ([]*models.Translation, error) {
	return r.list(ctx, `
		SELECT `+translationColumns+`
		FROM l10n_translations t
		WHERE t.entity_id = $1 AND t.locale_id = $2
		ORDER BY t.date, t.id`, entityID, localeID)
}

func (r *translationRepository) ListForResourceLocale(ctx context.Context, resourceID, localeID uuid.UUID) ([]*models.Translation, error) {
	return r.list(ctx, `
		SELECT `+translationColumns+`
		FROM l10n_translations t
		JOIN l10n_entities e ON e.id = t.entity_id
		WHERE e.resource_id = $1 AND t.locale_id = $2 AND NOT e.obsolete
		ORDER BY t.entity_id, t.date, t.id`, resourceID, localeID)
}

func (r *translationRepository) list(ctx context.Context, query string, args ...any) ([]*models.Translation, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	rows, err := scope.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query translations: %w", err)
	}
	defer rows.Close()

	var translations []*models.Translation
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan translation: %w", err)
		}
		translations = append(translations, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating translations: %w", err)
	}
	return translations, nil
}

func (r *translationRepository) ListLocalesForResource(ctx context.Context, resourceID uuid.UUID) ([]uuid.UUID, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	rows, err := scope.Conn.Query(ctx, `
		SELECT DISTINCT t.locale_id
		FROM l10n_translations t
		JOIN l10n_entities e ON e.id = t.entity_id
		WHERE e.resource_id = $1`, resourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list translated locales: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan locale id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locale ids: %w", err)
	}
	return ids, nil
}

func (r *translationRepository) ListChecks(ctx context.Context, translationID uuid.UUID) ([]*models.TranslationCheck, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	rows, err := scope.Conn.Query(ctx, `
		SELECT id, translation_id, severity, library, message
		FROM l10n_translation_checks
		WHERE translation_id = $1
		ORDER BY severity, id`, translationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list translation checks: %w", err)
	}
	defer rows.Close()

	var checks []*models.TranslationCheck
	for rows.Next() {
		var c models.TranslationCheck
		if err := rows.Scan(&c.ID, &c.TranslationID, &c.Severity, &c.Library, &c.Message); err != nil {
			return nil, fmt.Errorf("failed to scan translation check: %w", err)
		}
		checks = append(checks, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating translation checks: %w", err)
	}
	return checks, nil
}

func (r *translationRepository) UpdateState(ctx context.Context, t *models.Translation) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return errNoScope
	}

	query := `
		UPDATE l10n_translations
		SET approved = $2, approved_user = $3, approved_date = $4,
		    unapproved_user = $5, unapproved_date = $6,
		    rejected = $7, rejected_user = $8, rejected_date = $9,
		    unrejected_user = $10, unrejected_date = $11,
		    pretranslated = $12, fuzzy = $13
		WHERE id = $1`

	tag, err := scope.Conn.Exec(ctx, query,
		t.ID,
		t.Approved, t.ApprovedUser, t.ApprovedDate,
		t.UnapprovedUser, t.UnapprovedDate,
		t.Rejected, t.RejectedUser, t.RejectedDate,
		t.UnrejectedUser, t.UnrejectedDate,
		t.Pretranslated, t.Fuzzy,
	)
	if err != nil {
		return fmt.Errorf("failed to update translation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("translation %s: %w", t.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *translationRepository) SetActive(ctx context.Context, entityID, localeID uuid.UUID, pluralForm *int, winner *uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return errNoScope
	}

	// Clear first so the partial unique index never sees two active rows
	// written by this transaction.
	_, err := scope.Conn.Exec(ctx, `
		UPDATE l10n_translations
		SET active = false
		WHERE entity_id = $1 AND locale_id = $2
		  AND plural_form IS NOT DISTINCT FROM $3
		  AND active
		  AND ($4::uuid IS NULL OR id <> $4)`,
		entityID, localeID, pluralForm, winner)
	if err != nil {
		return fmt.Errorf("failed to clear active translations: %w", err)
	}

	if winner == nil {
		return nil
	}

	_, err = scope.Conn.Exec(ctx,
		`UPDATE l10n_translations SET active = true WHERE id = $1 AND NOT active`, *winner)
	if err != nil {
		return fmt.Errorf("failed to set active translation: %w", err)
	}
	return nil
}

func (r *translationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return errNoScope
	}

	tag, err := scope.Conn.Exec(ctx, `DELETE FROM l10n_translations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete translation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("translation %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func scanTranslation(row pgx.Row) (*models.Translation, error) {
	var t models.Translation
	err := row.Scan(
		&t.ID, &t.EntityID, &t.LocaleID, &t.PluralForm, &t.String, &t.User, &t.Date,
		&t.Approved, &t.Rejected, &t.Pretranslated, &t.Fuzzy, &t.Active,
		&t.ApprovedUser, &t.ApprovedDate, &t.UnapprovedUser, &t.UnapprovedDate,
		&t.RejectedUser, &t.RejectedDate, &t.UnrejectedUser, &t.UnrejectedDate,
		&t.ErrorCount, &t.WarningCount,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
