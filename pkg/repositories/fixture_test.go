//go:build integration

package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
	"github.com/ekaya-inc/ekaya-l10n/pkg/testhelpers"
)

// l10nFixture holds a clean database with one public project, one resource,
// one two-form locale enabled for the project and one entity.
type l10nFixture struct {
	t   *testing.T
	db  *testhelpers.TestDB
	ctx context.Context

	locales      LocaleRepository
	projects     ProjectRepository
	entities     EntityRepository
	translations TranslationRepository
	tm           TranslationMemoryRepository
	actions      ActionLogRepository
	aggregates   AggregateRepository

	locale   *models.Locale
	project  *models.Project
	resource *models.Resource
	pl       *models.ProjectLocale
	entity   *models.Entity
}

func setupFixture(t *testing.T) *l10nFixture {
	t.Helper()
	db := testhelpers.GetTestDB(t)
	db.TruncateAll(t)

	f := &l10nFixture{
		t:            t,
		db:           db,
		ctx:          db.ScopedContext(t),
		locales:      NewLocaleRepository(),
		projects:     NewProjectRepository(),
		entities:     NewEntityRepository(),
		translations: NewTranslationRepository(),
		tm:           NewTranslationMemoryRepository(),
		actions:      NewActionLogRepository(),
		aggregates:   NewAggregateRepository(),
	}

	f.locale = &models.Locale{Code: "de", Name: "German"}
	if err := f.locales.Create(f.ctx, f.locale); err != nil {
		t.Fatalf("failed to create locale: %v", err)
	}
	f.project = f.createProject("app", false, models.VisibilityPublic)
	f.resource = f.createResource(f.project, "strings.po")
	f.pl = &models.ProjectLocale{ProjectID: f.project.ID, LocaleID: f.locale.ID}
	if err := f.projects.AddLocale(f.ctx, f.pl); err != nil {
		t.Fatalf("failed to enable locale: %v", err)
	}
	f.entity = f.createEntity(f.resource, "greeting", "Hello world", "")
	return f
}

func (f *l10nFixture) createProject(slug string, system bool, visibility string) *models.Project {
	f.t.Helper()
	p := &models.Project{Slug: slug, Name: slug, SystemProject: system, Visibility: visibility}
	if err := f.projects.Create(f.ctx, p); err != nil {
		f.t.Fatalf("failed to create project: %v", err)
	}
	return p
}

func (f *l10nFixture) createResource(p *models.Project, path string) *models.Resource {
	f.t.Helper()
	r := &models.Resource{ProjectID: p.ID, Path: path}
	if err := f.projects.CreateResource(f.ctx, r); err != nil {
		f.t.Fatalf("failed to create resource: %v", err)
	}
	return r
}

func (f *l10nFixture) createEntity(r *models.Resource, key, singular, plural string) *models.Entity {
	f.t.Helper()
	e := &models.Entity{ResourceID: r.ID, Key: key, String: singular, StringPlural: plural}
	if err := f.entities.Create(f.ctx, e); err != nil {
		f.t.Fatalf("failed to create entity: %v", err)
	}
	return e
}

func (f *l10nFixture) createTranslation(text string, form *int, checks ...*models.TranslationCheck) *models.Translation {
	f.t.Helper()
	tr := &models.Translation{
		EntityID:   f.entity.ID,
		LocaleID:   f.locale.ID,
		PluralForm: form,
		String:     text,
		User:       "author",
		Date:       time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := f.translations.Create(f.ctx, tr, checks); err != nil {
		f.t.Fatalf("failed to create translation: %v", err)
	}
	return tr
}

// inTx runs fn in a transaction on a fresh context.
func (f *l10nFixture) inTx(fn func(ctx context.Context) error) error {
	return f.db.DB.RunInTx(context.Background(), fn)
}
