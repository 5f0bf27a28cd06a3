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

// EntityRepository provides data access for source strings.
type EntityRepository interface {
	Create(ctx context.Context, entity *models.Entity) error
	Get(ctx context.Context, id uuid.UUID) (*models.Entity, error)
	// ListByResource returns the resource's entities, skipping obsolete ones
	// unless includeObsolete is set.
	ListByResource(ctx context.Context, resourceID uuid.UUID, includeObsolete bool) ([]*models.Entity, error)
	// UpdateSource replaces the source text and recomputes the word count.
	// Obsolete entities cannot be changed.
	UpdateSource(ctx context.Context, id uuid.UUID, singular, plural string) (*models.Entity, error)
	MarkObsolete(ctx context.Context, id uuid.UUID) error
	// CountActive returns the number of non-obsolete entities in a resource.
	CountActive(ctx context.Context, resourceID uuid.UUID) (int, error)
}

type entityRepository struct{}

// NewEntityRepository creates a new EntityRepository.
func NewEntityRepository() EntityRepository {
	return &entityRepository{}
}

var _ EntityRepository = (*entityRepository)(nil)

const entityColumns = `id, resource_id, key, string, string_plural, obsolete, word_count, created_at`

func (r *entityRepository) Create(ctx context.Context, entity *models.Entity) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return errNoScope
	}

	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	entity.SetSource(entity.String, entity.StringPlural)
	entity.CreatedAt = time.Now()

	query := `
		INSERT INTO l10n_entities (id, resource_id, key, string, string_plural, obsolete, word_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := scope.Conn.Exec(ctx, query,
		entity.ID,
		entity.ResourceID,
		entity.Key,
		entity.String,
		entity.StringPlural,
		entity.Obsolete,
		entity.WordCount,
		entity.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("entity %s already exists: %w", entity.Key, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create entity: %w", err)
	}
	return nil
}

func (r *entityRepository) Get(ctx context.Context, id uuid.UUID) (*models.Entity, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	row := scope.Conn.QueryRow(ctx, `SELECT `+entityColumns+` FROM l10n_entities WHERE id = $1`, id)
	entity, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("entity %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	return entity, nil
}

func (r *entityRepository) ListByResource(ctx context.Context, resourceID uuid.UUID, includeObsolete bool) ([]*models.Entity, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	query := `SELECT ` + entityColumns + ` FROM l10n_entities WHERE resource_id = $1`
	if !includeObsolete {
		query += ` AND NOT obsolete`
	}
	query += ` ORDER BY key`

	rows, err := scope.Conn.Query(ctx, query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer rows.Close()

	var entities []*models.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entities: %w", err)
	}
	return entities, nil
}

func (r *entityRepository) UpdateSource(ctx context.Context, id uuid.UUID, singular, plural string) (*models.Entity, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	entity := &models.Entity{}
	entity.SetSource(singular, plural)

	query := `
		UPDATE l10n_entities
		SET string = $2, string_plural = $3, word_count = $4
		WHERE id = $1 AND NOT obsolete
		RETURNING ` + entityColumns

	updated, err := scanEntity(scope.Conn.QueryRow(ctx, query, id, entity.String, entity.StringPlural, entity.WordCount))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to update entity: %w", err)
	}

	// Either missing or obsolete; tell them apart for the caller.
	existing, getErr := r.Get(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	if existing.Obsolete {
		return nil, fmt.Errorf("entity %s is obsolete: %w", id, apperrors.ErrConflict)
	}
	return nil, fmt.Errorf("failed to update entity %s", id)
}

func (r *entityRepository) MarkObsolete(ctx context.Context, id uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return errNoScope
	}

	tag, err := scope.Conn.Exec(ctx, `UPDATE l10n_entities SET obsolete = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark entity obsolete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entity %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *entityRepository) CountActive(ctx context.Context, resourceID uuid.UUID) (int, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return 0, errNoScope
	}

	var count int
	err := scope.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM l10n_entities WHERE resource_id = $1 AND NOT obsolete`, resourceID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entities: %w", err)
	}
	return count, nil
}

func scanEntity(row pgx.Row) (*models.Entity, error) {
	var e models.Entity
	err := row.Scan(&e.ID, &e.ResourceID, &e.Key, &e.String, &e.StringPlural, &e.Obsolete, &e.WordCount, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
