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

// AggregateRepository owns the counters and latest-activity pointers of the
// four aggregate scopes. Interactive writes only ever go through Increment
// and AdvanceLatest; Overwrite is reserved for out-of-band recomputation.
type AggregateRepository interface {
	// GetOrCreateTranslatedResource returns the resource-scope record and
	// whether this call created it. Only one concurrent caller observes created=true.
	GetOrCreateTranslatedResource(ctx context.Context, resourceID, localeID uuid.UUID) (*models.TranslatedResource, bool, error)
	GetTranslatedResource(ctx context.Context, resourceID, localeID uuid.UUID) (*models.TranslatedResource, error)
	ListTranslatedResources(ctx context.Context, projectID uuid.UUID) ([]*models.TranslatedResource, error)

	// Increment applies a relative delta to one scope record.
	Increment(ctx context.Context, scope string, id uuid.UUID, delta models.StatsDelta) error
	// AdvanceLatest moves the latest pointer only when activity is strictly
	// later than the stored one. Reports whether the pointer moved.
	AdvanceLatest(ctx context.Context, scope string, id, translationID uuid.UUID, activity time.Time) (bool, error)
	// Overwrite replaces the six counters of one scope record.
	Overwrite(ctx context.Context, scope string, id uuid.UUID, stats models.Stats) error
	Get(ctx context.Context, scope string, id uuid.UUID) (*models.AggregateStats, error)

	// Sums over resource-scope records, used by recomputation.
	SumForProjectLocale(ctx context.Context, projectID, localeID uuid.UUID) (models.Stats, error)
	SumForProject(ctx context.Context, projectID uuid.UUID) (models.Stats, error)
	// SumForLocale only includes non-system public projects.
	SumForLocale(ctx context.Context, localeID uuid.UUID) (models.Stats, error)
}

type aggregateRepository struct{}

// NewAggregateRepository creates a new AggregateRepository.
func NewAggregateRepository() AggregateRepository {
	return &aggregateRepository{}
}

var _ AggregateRepository = (*aggregateRepository)(nil)

var scopeTables = map[string]string{
	models.ScopeTranslatedResource: "l10n_translated_resources",
	models.ScopeProjectLocale:      "l10n_project_locales",
	models.ScopeLocale:             "l10n_locales",
	models.ScopeProject:            "l10n_projects",
}

func scopeTable(scope string) (string, error) {
	table, ok := scopeTables[scope]
	if !ok {
		return "", fmt.Errorf("unknown aggregate scope %q", scope)
	}
	return table, nil
}

const counterColumns = `total_strings, approved_strings, pretranslated_strings,
	strings_with_errors, strings_with_warnings, unreviewed_strings`

const sumColumns = `COALESCE(SUM(tr.total_strings), 0), COALESCE(SUM(tr.approved_strings), 0),
	COALESCE(SUM(tr.pretranslated_strings), 0), COALESCE(SUM(tr.strings_with_errors), 0),
	COALESCE(SUM(tr.strings_with_warnings), 0), COALESCE(SUM(tr.unreviewed_strings), 0)`

func (r *aggregateRepository) GetOrCreateTranslatedResource(ctx context.Context, resourceID, localeID uuid.UUID) (*models.TranslatedResource, bool, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, false, errNoScope
	}

	var id uuid.UUID
	err := scope.Conn.QueryRow(ctx, `
		INSERT INTO l10n_translated_resources (id, resource_id, locale_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (resource_id, locale_id) DO NOTHING
		RETURNING id`, uuid.New(), resourceID, localeID,
	).Scan(&id)
	switch {
	case err == nil:
		return &models.TranslatedResource{ID: id, ResourceID: resourceID, LocaleID: localeID}, true, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, false, fmt.Errorf("failed to create translated resource: %w", err)
	}

	tr, err := r.GetTranslatedResource(ctx, resourceID, localeID)
	if err != nil {
		return nil, false, err
	}
	return tr, false, nil
}

func (r *aggregateRepository) GetTranslatedResource(ctx context.Context, resourceID, localeID uuid.UUID) (*models.TranslatedResource, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	row := scope.Conn.QueryRow(ctx, `
		SELECT id, resource_id, locale_id, `+counterColumns+`, latest_translation_id, latest_activity_at
		FROM l10n_translated_resources
		WHERE resource_id = $1 AND locale_id = $2`, resourceID, localeID)
	tr, err := scanTranslatedResource(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("translated resource %s/%s: %w", resourceID, localeID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get translated resource: %w", err)
	}
	return tr, nil
}

func (r *aggregateRepository) ListTranslatedResources(ctx context.Context, projectID uuid.UUID) ([]*models.TranslatedResource, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	rows, err := scope.Conn.Query(ctx, `
		SELECT tr.id, tr.resource_id, tr.locale_id,
		       tr.total_strings, tr.approved_strings, tr.pretranslated_strings,
		       tr.strings_with_errors, tr.strings_with_warnings, tr.unreviewed_strings,
		       tr.latest_translation_id, tr.latest_activity_at
		FROM l10n_translated_resources tr
		JOIN l10n_resources res ON res.id = tr.resource_id
		WHERE res.project_id = $1
		ORDER BY res.path, tr.locale_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list translated resources: %w", err)
	}
	defer rows.Close()

	var out []*models.TranslatedResource
	for rows.Next() {
		tr, err := scanTranslatedResource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan translated resource: %w", err)
		}
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating translated resources: %w", err)
	}
	return out, nil
}

func (r *aggregateRepository) Increment(ctx context.Context, scopeName string, id uuid.UUID, delta models.StatsDelta) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return errNoScope
	}
	table, err := scopeTable(scopeName)
	if err != nil {
		return err
	}

	query := `
		UPDATE ` + table + `
		SET total_strings = total_strings + $2,
		    approved_strings = approved_strings + $3,
		    pretranslated_strings = pretranslated_strings + $4,
		    strings_with_errors = strings_with_errors + $5,
		    strings_with_warnings = strings_with_warnings + $6,
		    unreviewed_strings = unreviewed_strings + $7
		WHERE id = $1`

	tag, err := scope.Conn.Exec(ctx, query, id,
		delta.Total, delta.Approved, delta.Pretranslated,
		delta.Errors, delta.Warnings, delta.Unreviewed)
	if err != nil {
		return fmt.Errorf("failed to increment %s stats: %w", scopeName, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", scopeName, id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *aggregateRepository) AdvanceLatest(ctx context.Context, scopeName string, id, translationID uuid.UUID, activity time.Time) (bool, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return false, errNoScope
	}
	table, err := scopeTable(scopeName)
	if err != nil {
		return false, err
	}

	query := `
		UPDATE ` + table + `
		SET latest_translation_id = $2, latest_activity_at = $3
		WHERE id = $1
		  AND (latest_activity_at IS NULL OR latest_activity_at < $3)`

	tag, err := scope.Conn.Exec(ctx, query, id, translationID, activity)
	if err != nil {
		return false, fmt.Errorf("failed to advance %s latest translation: %w", scopeName, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *aggregateRepository) Overwrite(ctx context.Context, scopeName string, id uuid.UUID, stats models.Stats) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return errNoScope
	}
	table, err := scopeTable(scopeName)
	if err != nil {
		return err
	}

	query := `
		UPDATE ` + table + `
		SET total_strings = $2,
		    approved_strings = $3,
		    pretranslated_strings = $4,
		    strings_with_errors = $5,
		    strings_with_warnings = $6,
		    unreviewed_strings = $7
		WHERE id = $1`

	tag, err := scope.Conn.Exec(ctx, query, id,
		stats.Total, stats.Approved, stats.Pretranslated,
		stats.Errors, stats.Warnings, stats.Unreviewed)
	if err != nil {
		return fmt.Errorf("failed to overwrite %s stats: %w", scopeName, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", scopeName, id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *aggregateRepository) Get(ctx context.Context, scopeName string, id uuid.UUID) (*models.AggregateStats, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}
	table, err := scopeTable(scopeName)
	if err != nil {
		return nil, err
	}

	var a models.AggregateStats
	err = scope.Conn.QueryRow(ctx, `
		SELECT `+counterColumns+`, latest_translation_id, latest_activity_at
		FROM `+table+` WHERE id = $1`, id,
	).Scan(
		&a.Total, &a.Approved, &a.Pretranslated,
		&a.Errors, &a.Warnings, &a.Unreviewed,
		&a.LatestTranslationID, &a.LatestActivityAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s %s: %w", scopeName, id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s stats: %w", scopeName, err)
	}
	return &a, nil
}

func (r *aggregateRepository) SumForProjectLocale(ctx context.Context, projectID, localeID uuid.UUID) (models.Stats, error) {
	return r.sum(ctx, `
		SELECT `+sumColumns+`
		FROM l10n_translated_resources tr
		JOIN l10n_resources res ON res.id = tr.resource_id
		WHERE res.project_id = $1 AND tr.locale_id = $2`, projectID, localeID)
}

func (r *aggregateRepository) SumForProject(ctx context.Context, projectID uuid.UUID) (models.Stats, error) {
	return r.sum(ctx, `
		SELECT `+sumColumns+`
		FROM l10n_translated_resources tr
		JOIN l10n_resources res ON res.id = tr.resource_id
		WHERE res.project_id = $1`, projectID)
}

func (r *aggregateRepository) SumForLocale(ctx context.Context, localeID uuid.UUID) (models.Stats, error) {
	return r.sum(ctx, `
		SELECT `+sumColumns+`
		FROM l10n_translated_resources tr
		JOIN l10n_resources res ON res.id = tr.resource_id
		JOIN l10n_projects p ON p.id = res.project_id
		WHERE tr.locale_id = $1
		  AND NOT p.system_project
		  AND p.visibility = 'public'`, localeID)
}

func (r *aggregateRepository) sum(ctx context.Context, query string, args ...any) (models.Stats, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return models.Stats{}, errNoScope
	}

	var s models.Stats
	err := scope.Conn.QueryRow(ctx, query, args...).Scan(
		&s.Total, &s.Approved, &s.Pretranslated,
		&s.Errors, &s.Warnings, &s.Unreviewed,
	)
	if err != nil {
		return models.Stats{}, fmt.Errorf("failed to sum resource stats: %w", err)
	}
	return s, nil
}

func scanTranslatedResource(row pgx.Row) (*models.TranslatedResource, error) {
	var tr models.TranslatedResource
	err := row.Scan(
		&tr.ID, &tr.ResourceID, &tr.LocaleID,
		&tr.Total, &tr.Approved, &tr.Pretranslated,
		&tr.Errors, &tr.Warnings, &tr.Unreviewed,
		&tr.LatestTranslationID, &tr.LatestActivityAt,
	)
	if err != nil {
		return nil, err
	}
	return &tr, nil
}
