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

// ProjectRepository defines data access for projects, their resources and
// the locales enabled for them.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	Get(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)

	CreateResource(ctx context.Context, resource *models.Resource) error
	GetResource(ctx context.Context, id uuid.UUID) (*models.Resource, error)
	ListResources(ctx context.Context, projectID uuid.UUID) ([]*models.Resource, error)

	// AddLocale enables a locale for a project. Calling it again updates readonly.
	AddLocale(ctx context.Context, pl *models.ProjectLocale) error
	// GetProjectLocale returns apperrors.ErrNotFound when the locale is not enabled.
	GetProjectLocale(ctx context.Context, projectID, localeID uuid.UUID) (*models.ProjectLocale, error)
	ListProjectLocales(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectLocale, error)
}

// projectRepository implements ProjectRepository using PostgreSQL.
type projectRepository struct{}

// NewProjectRepository creates a new project repository.
func NewProjectRepository() ProjectRepository {
	return &projectRepository{}
}

var _ ProjectRepository = (*projectRepository)(nil)

const projectColumns = `id, slug, name, system_project, visibility, created_at,
	total_strings, approved_strings, pretranslated_strings,
	strings_with_errors, strings_with_warnings, unreviewed_strings,
	latest_translation_id, latest_activity_at`

const projectLocaleColumns = `id, project_id, locale_id, readonly,
	total_strings, approved_strings, pretranslated_strings,
	strings_with_errors, strings_with_warnings, unreviewed_strings,
	latest_translation_id, latest_activity_at`

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return errNoScope
	}

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.Visibility == "" {
		project.Visibility = models.VisibilityPublic
	}
	project.CreatedAt = time.Now()

	query := `
		INSERT INTO l10n_projects (id, slug, name, system_project, visibility, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := scope.Conn.Exec(ctx, query,
		project.ID,
		project.Slug,
		project.Name,
		project.SystemProject,
		project.Visibility,
		project.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("project %s already exists: %w", project.Slug, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *projectRepository) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	row := scope.Conn.QueryRow(ctx, `SELECT `+projectColumns+` FROM l10n_projects WHERE id = $1`, id)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]*models.Project, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	rows, err := scope.Conn.Query(ctx, `SELECT `+projectColumns+` FROM l10n_projects ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}
	return projects, nil
}

func (r *projectRepository) CreateResource(ctx context.Context, resource *models.Resource) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return errNoScope
	}

	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	}

	_, err := scope.Conn.Exec(ctx,
		`INSERT INTO l10n_resources (id, project_id, path) VALUES ($1, $2, $3)`,
		resource.ID, resource.ProjectID, resource.Path)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("resource %s already exists: %w", resource.Path, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create resource: %w", err)
	}
	return nil
}

func (r *projectRepository) GetResource(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	var res models.Resource
	err := scope.Conn.QueryRow(ctx,
		`SELECT id, project_id, path FROM l10n_resources WHERE id = $1`, id,
	).Scan(&res.ID, &res.ProjectID, &res.Path)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("resource %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	return &res, nil
}

func (r *projectRepository) ListResources(ctx context.Context, projectID uuid.UUID) ([]*models.Resource, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	rows, err := scope.Conn.Query(ctx,
		`SELECT id, project_id, path FROM l10n_resources WHERE project_id = $1 ORDER BY path`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	var resources []*models.Resource
	for rows.Next() {
		var res models.Resource
		if err := rows.Scan(&res.ID, &res.ProjectID, &res.Path); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		resources = append(resources, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resources: %w", err)
	}
	return resources, nil
}

func (r *projectRepository) AddLocale(ctx context.Context, pl *models.ProjectLocale) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return errNoScope
	}

	if pl.ID == uuid.Nil {
		pl.ID = uuid.New()
	}

	query := `
		INSERT INTO l10n_project_locales (id, project_id, locale_id, readonly)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (project_id, locale_id) DO UPDATE
		SET readonly = EXCLUDED.readonly
		RETURNING id`

	if err := scope.Conn.QueryRow(ctx, query, pl.ID, pl.ProjectID, pl.LocaleID, pl.ReadOnly).Scan(&pl.ID); err != nil {
		return fmt.Errorf("failed to add project locale: %w", err)
	}
	return nil
}

func (r *projectRepository) GetProjectLocale(ctx context.Context, projectID, localeID uuid.UUID) (*models.ProjectLocale, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	row := scope.Conn.QueryRow(ctx,
		`SELECT `+projectLocaleColumns+` FROM l10n_project_locales WHERE project_id = $1 AND locale_id = $2`,
		projectID, localeID)
	pl, err := scanProjectLocale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("project locale %s/%s: %w", projectID, localeID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project locale: %w", err)
	}
	return pl, nil
}

func (r *projectRepository) ListProjectLocales(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectLocale, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}

	rows, err := scope.Conn.Query(ctx,
		`SELECT `+projectLocaleColumns+` FROM l10n_project_locales WHERE project_id = $1`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project locales: %w", err)
	}
	defer rows.Close()

	var pls []*models.ProjectLocale
	for rows.Next() {
		pl, err := scanProjectLocale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project locale: %w", err)
		}
		pls = append(pls, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project locales: %w", err)
	}
	return pls, nil
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.Slug, &p.Name, &p.SystemProject, &p.Visibility, &p.CreatedAt,
		&p.Total, &p.Approved, &p.Pretranslated,
		&p.Errors, &p.Warnings, &p.Unreviewed,
		&p.LatestTranslationID, &p.LatestActivityAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProjectLocale(row pgx.Row) (*models.ProjectLocale, error) {
	var pl models.ProjectLocale
	err := row.Scan(
		&pl.ID, &pl.ProjectID, &pl.LocaleID, &pl.ReadOnly,
		&pl.Total, &pl.Approved, &pl.Pretranslated,
		&pl.Errors, &pl.Warnings, &pl.Unreviewed,
		&pl.LatestTranslationID, &pl.LatestActivityAt,
	)
	if err != nil {
		return nil, err
	}
	return &pl, nil
}
