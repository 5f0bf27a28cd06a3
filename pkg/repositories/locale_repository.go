package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ekaya-inc/ekaya-l10n/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-l10n/pkg/database"
	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
)

// LocaleRepository provides data access for locales.
type LocaleRepository interface {
	Create(ctx context.Context, locale *models.Locale) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Locale, error)
	GetByCode(ctx context.Context, code string) (*models.Locale, error)
	List(ctx context.Context) ([]*models.Locale, error)
}

type localeRepository struct{}

// NewLocaleRepository creates a new LocaleRepository.
func NewLocaleRepository() LocaleRepository {
	return &localeRepository{}
}

var _ LocaleRepository = (*localeRepository)(nil)

const localeColumns = `id, code, name, plural_count, created_at,
	total_strings, approved_strings, pretranslated_strings,
	strings_with_errors, strings_with_warnings, unreviewed_strings,
	latest_translation_id, latest_activity_at`

func (r *localeRepository) Create(ctx context.Context, locale *models.Locale) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return errNoScope
	}

	if locale.ID == uuid.Nil {
		locale.ID = uuid.New()
	}
	if locale.PluralCount == 0 {
		locale.PluralCount = models.DefaultPluralCount(locale.Code)
	}
	locale.CreatedAt = time.Now()

	query := `
		INSERT INTO l10n_locales (id, code, name, plural_count, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := scope.Conn.Exec(ctx, query, locale.ID, locale.Code, locale.Name, locale.PluralCount, locale.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("locale %s already exists: %w", locale.Code, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create locale: %w", err)
	}
	return nil
}

func (r *localeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Locale, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	row := scope.Conn.QueryRow(ctx, `SELECT `+localeColumns+` FROM l10n_locales WHERE id = $1`, id)
	locale, err := scanLocale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("locale %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get locale: %w", err)
	}
	return locale, nil
}

func (r *localeRepository) GetByCode(ctx context.Context, code string) (*models.Locale, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	row := scope.Conn.QueryRow(ctx, `SELECT `+localeColumns+` FROM l10n_locales WHERE code = $1`, code)
	locale, err := scanLocale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("locale %s: %w", code, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get locale: %w", err)
	}
	return locale, nil
}

func (r *localeRepository) List(ctx context.Context) ([]*models.Locale, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	rows, err := scope.Conn.Query(ctx, `SELECT `+localeColumns+` FROM l10n_locales ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list locales: %w", err)
	}
	defer rows.Close()

	var locales []*models.Locale
	for rows.Next() {
		locale, err := scanLocale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locale: %w", err)
		}
		locales = append(locales, locale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locales: %w", err)
	}
	return locales, nil
}

func scanLocale(row pgx.Row) (*models.Locale, error) {
	var l models.Locale
	err := row.Scan(
		&l.ID, &l.Code, &l.Name, &l.PluralCount, &l.CreatedAt,
		&l.Total, &l.Approved, &l.Pretranslated,
		&l.Errors, &l.Warnings, &l.Unreviewed,
		&l.LatestTranslationID, &l.LatestActivityAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
