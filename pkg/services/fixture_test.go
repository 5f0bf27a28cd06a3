package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
	"github.com/ekaya-inc/ekaya-l10n/pkg/retry"
)

// testEnv wires every service against one memStore.
type testEnv struct {
	t     *testing.T
	ctx   context.Context
	store *memStore
	clock *mockClock

	txRunner        *mockTxRunner
	localeRepo      *mockLocaleRepository
	projectRepo     *mockProjectRepository
	entityRepo      *mockEntityRepository
	translationRepo *mockTranslationRepository
	tmRepo          *mockTMRepository
	actionRepo      *mockActionLogRepository
	aggregateRepo   *mockAggregateRepository

	checker  *mockQualityChecker
	notifier *mockNotifier
	cache    *ScopeCache

	translations  TranslationService
	recalculation StatsRecalculationService

	project  *models.Project
	resource *models.Resource
	locale   *models.Locale
	pl       *models.ProjectLocale
}

func testRetryConfig() *retry.Config {
	return &retry.Config{
		MaxRetries:       3,
		InitialDelay:     time.Millisecond,
		MaxDelay:         time.Millisecond,
		Multiplier:       1,
		MaxSameErrorType: 5,
	}
}

// newTestEnv creates a public project with one resource and one enabled
// two-form locale.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	env := &testEnv{
		t:               t,
		ctx:             context.Background(),
		store:           store,
		clock:           newMockClock(),
		txRunner:        &mockTxRunner{store: store},
		localeRepo:      &mockLocaleRepository{store: store},
		projectRepo:     &mockProjectRepository{store: store},
		entityRepo:      &mockEntityRepository{store: store},
		translationRepo: &mockTranslationRepository{store: store},
		tmRepo:          &mockTMRepository{store: store},
		actionRepo:      &mockActionLogRepository{store: store},
		aggregateRepo:   &mockAggregateRepository{store: store},
		checker:         &mockQualityChecker{result: &CheckResult{}},
		notifier:        &mockNotifier{},
	}
	env.cache = NewScopeCache(100, time.Minute, env.projectRepo, env.localeRepo)

	logger := zap.NewNop()
	counter := NewEntityStringCounter(env.entityRepo)
	rollup := NewStatsRollup(&StatsRollupDeps{
		AggregateRepo: env.aggregateRepo,
		ProjectRepo:   env.projectRepo,
		Counter:       counter,
		Cache:         env.cache,
		Logger:        logger,
	})
	env.translations = NewTranslationService(&TranslationServiceDeps{
		DB:              env.txRunner,
		TranslationRepo: env.translationRepo,
		EntityRepo:      env.entityRepo,
		TMRepo:          env.tmRepo,
		ActionLog:       NewActionLogService(env.actionRepo, logger),
		Rollup:          rollup,
		Cache:           env.cache,
		ReadOnly:        NewReadOnlyChecker(env.projectRepo),
		QualityChecker:  env.checker,
		Notifier:        env.notifier,
		Retry:           testRetryConfig(),
		Now:             env.clock.Now,
		Logger:          logger,
	})
	env.recalculation = NewStatsRecalculationService(&StatsRecalculationDeps{
		DB:              env.txRunner,
		ProjectRepo:     env.projectRepo,
		EntityRepo:      env.entityRepo,
		TranslationRepo: env.translationRepo,
		AggregateRepo:   env.aggregateRepo,
		Counter:         counter,
		Cache:           env.cache,
		Retry:           testRetryConfig(),
		Logger:          logger,
	})

	env.locale = &models.Locale{Code: "de", Name: "German", PluralCount: 2}
	require.NoError(t, env.localeRepo.Create(env.ctx, env.locale))
	env.project = env.newProject("app", false, models.VisibilityPublic)
	env.resource = env.newResource(env.project, "strings.po")
	env.pl = env.enableLocale(env.project, env.locale, false)
	return env
}

func (e *testEnv) newProject(slug string, system bool, visibility string) *models.Project {
	e.t.Helper()
	p := &models.Project{Slug: slug, Name: slug, SystemProject: system, Visibility: visibility}
	require.NoError(e.t, e.projectRepo.Create(e.ctx, p))
	return p
}

func (e *testEnv) newResource(p *models.Project, path string) *models.Resource {
	e.t.Helper()
	r := &models.Resource{ProjectID: p.ID, Path: path}
	require.NoError(e.t, e.projectRepo.CreateResource(e.ctx, r))
	return r
}

func (e *testEnv) enableLocale(p *models.Project, l *models.Locale, readOnly bool) *models.ProjectLocale {
	e.t.Helper()
	pl := &models.ProjectLocale{ProjectID: p.ID, LocaleID: l.ID, ReadOnly: readOnly}
	require.NoError(e.t, e.projectRepo.AddLocale(e.ctx, pl))
	return pl
}

func (e *testEnv) newEntity(key, singular, plural string) *models.Entity {
	e.t.Helper()
	return e.newEntityIn(e.resource, key, singular, plural)
}

func (e *testEnv) newEntityIn(r *models.Resource, key, singular, plural string) *models.Entity {
	e.t.Helper()
	ent := &models.Entity{ResourceID: r.ID, Key: key, String: singular, StringPlural: plural}
	require.NoError(e.t, e.entityRepo.Create(e.ctx, ent))
	return ent
}

func (e *testEnv) suggest(entity *models.Entity, text string) *models.Translation {
	e.t.Helper()
	t, err := e.translations.Create(e.ctx, &CreateTranslationInput{
		EntityID: entity.ID,
		LocaleID: e.locale.ID,
		String:   text,
		User:     "author",
	})
	require.NoError(e.t, err)
	return t
}

func (e *testEnv) suggestForm(entity *models.Entity, form int, text string) *models.Translation {
	e.t.Helper()
	t, err := e.translations.Create(e.ctx, &CreateTranslationInput{
		EntityID:   entity.ID,
		LocaleID:   e.locale.ID,
		PluralForm: &form,
		String:     text,
		User:       "author",
	})
	require.NoError(e.t, err)
	return t
}

func (e *testEnv) approve(id uuid.UUID) *models.Translation {
	e.t.Helper()
	t, err := e.translations.Approve(e.ctx, id, "reviewer")
	require.NoError(e.t, err)
	return t
}

// stored returns the persisted translation.
func (e *testEnv) stored(id uuid.UUID) *models.Translation {
	e.t.Helper()
	t, ok := e.store.translations[id]
	require.True(e.t, ok, "translation %s not stored", id)
	return copyTranslation(t)
}

func (e *testEnv) resourceStats() models.AggregateStats {
	e.t.Helper()
	tr, err := e.aggregateRepo.GetTranslatedResource(e.ctx, e.resource.ID, e.locale.ID)
	require.NoError(e.t, err)
	return tr.AggregateStats
}

func (e *testEnv) scopeStats(scope string, id uuid.UUID) models.AggregateStats {
	e.t.Helper()
	s, err := e.aggregateRepo.Get(e.ctx, scope, id)
	require.NoError(e.t, err)
	return *s
}

func (e *testEnv) activeIn(entityID uuid.UUID, form *int) []*models.Translation {
	var out []*models.Translation
	for _, t := range e.store.translations {
		if t.EntityID == entityID && t.LocaleID == e.locale.ID && t.Active && models.SamePluralForm(t.PluralForm, form) {
			out = append(out, t)
		}
	}
	return out
}

func (e *testEnv) actionsFor(id uuid.UUID) []*models.ActionLogEntry {
	e.t.Helper()
	entries, err := e.actionRepo.GetByTranslation(e.ctx, id)
	require.NoError(e.t, err)
	return entries
}

func (e *testEnv) tmCount(id uuid.UUID) int {
	e.t.Helper()
	n, err := e.tmRepo.CountForTranslation(e.ctx, id)
	require.NoError(e.t, err)
	return n
}

func (e *testEnv) requireVerified() {
	e.t.Helper()
	report, err := e.recalculation.Verify(e.ctx, e.project.ID)
	require.NoError(e.t, err)
	require.True(e.t, report.OK(), "unexpected drift: %+v", report.Drift)
}

func intPtr(i int) *int { return &i }
