package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ekaya-inc/ekaya-l10n/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
	"github.com/ekaya-inc/ekaya-l10n/pkg/repositories"
)

// memStore is an in-memory stand-in for the database. Every fake repository
// shares one store; mockTxRunner snapshots it so a failed transaction leaves
// no partial writes.
type memStore struct {
	mu sync.Mutex

	locales        map[uuid.UUID]*models.Locale
	projects       map[uuid.UUID]*models.Project
	resources      map[uuid.UUID]*models.Resource
	projectLocales map[uuid.UUID]*models.ProjectLocale
	trs            map[uuid.UUID]*models.TranslatedResource
	entities       map[uuid.UUID]*models.Entity
	translations   map[uuid.UUID]*models.Translation
	checks         map[uuid.UUID][]*models.TranslationCheck
	tm             map[uuid.UUID]*models.TranslationMemoryEntry
	actions        []*models.ActionLogEntry

	// setActiveConflicts makes the next N SetActive calls fail as if a
	// concurrent writer had committed an active row first.
	setActiveConflicts int
	txCount            int
}

func newMemStore() *memStore {
	return &memStore{
		locales:        map[uuid.UUID]*models.Locale{},
		projects:       map[uuid.UUID]*models.Project{},
		resources:      map[uuid.UUID]*models.Resource{},
		projectLocales: map[uuid.UUID]*models.ProjectLocale{},
		trs:            map[uuid.UUID]*models.TranslatedResource{},
		entities:       map[uuid.UUID]*models.Entity{},
		translations:   map[uuid.UUID]*models.Translation{},
		checks:         map[uuid.UUID][]*models.TranslationCheck{},
		tm:             map[uuid.UUID]*models.TranslationMemoryEntry{},
	}
}

func (m *memStore) snapshot() *memStore {
	c := newMemStore()
	for k, v := range m.locales {
		cp := *v
		c.locales[k] = &cp
	}
	for k, v := range m.projects {
		cp := *v
		c.projects[k] = &cp
	}
	for k, v := range m.resources {
		cp := *v
		c.resources[k] = &cp
	}
	for k, v := range m.projectLocales {
		cp := *v
		c.projectLocales[k] = &cp
	}
	for k, v := range m.trs {
		cp := *v
		c.trs[k] = &cp
	}
	for k, v := range m.entities {
		cp := *v
		c.entities[k] = &cp
	}
	for k, v := range m.translations {
		c.translations[k] = copyTranslation(v)
	}
	for k, v := range m.checks {
		c.checks[k] = append([]*models.TranslationCheck(nil), v...)
	}
	for k, v := range m.tm {
		cp := *v
		c.tm[k] = &cp
	}
	c.actions = append([]*models.ActionLogEntry(nil), m.actions...)
	return c
}

func (m *memStore) restore(from *memStore) {
	m.locales = from.locales
	m.projects = from.projects
	m.resources = from.resources
	m.projectLocales = from.projectLocales
	m.trs = from.trs
	m.entities = from.entities
	m.translations = from.translations
	m.checks = from.checks
	m.tm = from.tm
	m.actions = from.actions
}

func copyTranslation(t *models.Translation) *models.Translation {
	cp := *t
	return &cp
}

// ---------------------------------------------------------------------------
// mockTxRunner

type mockTxRunner struct {
	store *memStore
}

func (r *mockTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.store.txCount++
	before := r.store.snapshot()
	if err := fn(ctx); err != nil {
		r.store.restore(before)
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockLocaleRepository

type mockLocaleRepository struct {
	store *memStore
}

var _ repositories.LocaleRepository = (*mockLocaleRepository)(nil)

func (r *mockLocaleRepository) Create(ctx context.Context, l *models.Locale) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	cp := *l
	r.store.locales[l.ID] = &cp
	return nil
}

func (r *mockLocaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Locale, error) {
	l, ok := r.store.locales[id]
	if !ok {
		return nil, fmt.Errorf("locale %s: %w", id, apperrors.ErrNotFound)
	}
	cp := *l
	return &cp, nil
}

func (r *mockLocaleRepository) GetByCode(ctx context.Context, code string) (*models.Locale, error) {
	for _, l := range r.store.locales {
		if l.Code == code {
			cp := *l
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("locale %s: %w", code, apperrors.ErrNotFound)
}

func (r *mockLocaleRepository) List(ctx context.Context) ([]*models.Locale, error) {
	var out []*models.Locale
	for _, l := range r.store.locales {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// mockProjectRepository

type mockProjectRepository struct {
	store *memStore
}

var _ repositories.ProjectRepository = (*mockProjectRepository)(nil)

func (r *mockProjectRepository) Create(ctx context.Context, p *models.Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Visibility == "" {
		p.Visibility = models.VisibilityPublic
	}
	cp := *p
	r.store.projects[p.ID] = &cp
	return nil
}

func (r *mockProjectRepository) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	p, ok := r.store.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, apperrors.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *mockProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	var out []*models.Project
	for _, p := range r.store.projects {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *mockProjectRepository) CreateResource(ctx context.Context, res *models.Resource) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	cp := *res
	r.store.resources[res.ID] = &cp
	return nil
}

func (r *mockProjectRepository) GetResource(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	res, ok := r.store.resources[id]
	if !ok {
		return nil, fmt.Errorf("resource %s: %w", id, apperrors.ErrNotFound)
	}
	cp := *res
	return &cp, nil
}

func (r *mockProjectRepository) ListResources(ctx context.Context, projectID uuid.UUID) ([]*models.Resource, error) {
	var out []*models.Resource
	for _, res := range r.store.resources {
		if res.ProjectID == projectID {
			cp := *res
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (r *mockProjectRepository) AddLocale(ctx context.Context, pl *models.ProjectLocale) error {
	for _, existing := range r.store.projectLocales {
		if existing.ProjectID == pl.ProjectID && existing.LocaleID == pl.LocaleID {
			existing.ReadOnly = pl.ReadOnly
			pl.ID = existing.ID
			return nil
		}
	}
	if pl.ID == uuid.Nil {
		pl.ID = uuid.New()
	}
	cp := *pl
	r.store.projectLocales[pl.ID] = &cp
	return nil
}

func (r *mockProjectRepository) GetProjectLocale(ctx context.Context, projectID, localeID uuid.UUID) (*models.ProjectLocale, error) {
	for _, pl := range r.store.projectLocales {
		if pl.ProjectID == projectID && pl.LocaleID == localeID {
			cp := *pl
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("project locale: %w", apperrors.ErrNotFound)
}

func (r *mockProjectRepository) ListProjectLocales(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectLocale, error) {
	var out []*models.ProjectLocale
	for _, pl := range r.store.projectLocales {
		if pl.ProjectID == projectID {
			cp := *pl
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// mockEntityRepository

type mockEntityRepository struct {
	store *memStore
}

var _ repositories.EntityRepository = (*mockEntityRepository)(nil)

func (r *mockEntityRepository) Create(ctx context.Context, e *models.Entity) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.SetSource(e.String, e.StringPlural)
	cp := *e
	r.store.entities[e.ID] = &cp
	return nil
}

func (r *mockEntityRepository) Get(ctx context.Context, id uuid.UUID) (*models.Entity, error) {
	e, ok := r.store.entities[id]
	if !ok {
		return nil, fmt.Errorf("entity %s: %w", id, apperrors.ErrNotFound)
	}
	cp := *e
	return &cp, nil
}

func (r *mockEntityRepository) ListByResource(ctx context.Context, resourceID uuid.UUID, includeObsolete bool) ([]*models.Entity, error) {
	var out []*models.Entity
	for _, e := range r.store.entities {
		if e.ResourceID == resourceID && (includeObsolete || !e.Obsolete) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *mockEntityRepository) UpdateSource(ctx context.Context, id uuid.UUID, singular, plural string) (*models.Entity, error) {
	e, ok := r.store.entities[id]
	if !ok {
		return nil, fmt.Errorf("entity %s: %w", id, apperrors.ErrNotFound)
	}
	if e.Obsolete {
		return nil, fmt.Errorf("entity %s is obsolete: %w", id, apperrors.ErrConflict)
	}
	e.SetSource(singular, plural)
	cp := *e
	return &cp, nil
}

func (r *mockEntityRepository) MarkObsolete(ctx context.Context, id uuid.UUID) error {
	e, ok := r.store.entities[id]
	if !ok {
		return fmt.Errorf("entity %s: %w", id, apperrors.ErrNotFound)
	}
	e.Obsolete = true
	return nil
}

func (r *mockEntityRepository) CountActive(ctx context.Context, resourceID uuid.UUID) (int, error) {
	n := 0
	for _, e := range r.store.entities {
		if e.ResourceID == resourceID && !e.Obsolete {
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// mockTranslationRepository

type mockTranslationRepository struct {
	store *memStore
}

var _ repositories.TranslationRepository = (*mockTranslationRepository)(nil)

func (r *mockTranslationRepository) Create(ctx context.Context, t *models.Translation, checks []*models.TranslationCheck) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.Active = false
	t.ErrorCount, t.WarningCount = 0, 0
	for _, c := range checks {
		c.TranslationID = t.ID
		if c.Severity == models.CheckSeverityError {
			t.ErrorCount++
		} else {
			t.WarningCount++
		}
	}
	r.store.translations[t.ID] = copyTranslation(t)
	r.store.checks[t.ID] = checks
	return nil
}

func (r *mockTranslationRepository) Get(ctx context.Context, id uuid.UUID) (*models.Translation, error) {
	t, ok := r.store.translations[id]
	if !ok {
		return nil, fmt.Errorf("translation %s: %w", id, apperrors.ErrNotFound)
	}
	return copyTranslation(t), nil
}

func (r *mockTranslationRepository) LockForEntityLocale(ctx context.Context, entityID, localeID uuid.UUID) ([]*models.Translation, error) {
	return r.ListForEntityLocale(ctx, entityID, localeID)
}

func (r *mockTranslationRepository) ListForEntityLocale(ctx context.Context, entityID, localeID uuid.UUID) ([]*models.Translation, error) {
	var out []*models.Translation
	for _, t := range r.store.translations {
		if t.EntityID == entityID && t.LocaleID == localeID {
			out = append(out, copyTranslation(t))
		}
	}
	sortTranslations(out)
	return out, nil
}

func (r *mockTranslationRepository) ListForResourceLocale(ctx context.Context, resourceID, localeID uuid.UUID) ([]*models.Translation, error) {
	var out []*models.Translation
	for _, t := range r.store.translations {
		e := r.store.entities[t.EntityID]
		if e == nil || e.Obsolete || e.ResourceID != resourceID || t.LocaleID != localeID {
			continue
		}
		out = append(out, copyTranslation(t))
	}
	sortTranslations(out)
	return out, nil
}

func (r *mockTranslationRepository) ListLocalesForResource(ctx context.Context, resourceID uuid.UUID) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]struct{}{}
	var out []uuid.UUID
	for _, t := range r.store.translations {
		e := r.store.entities[t.EntityID]
		if e == nil || e.ResourceID != resourceID {
			continue
		}
		if _, ok := seen[t.LocaleID]; !ok {
			seen[t.LocaleID] = struct{}{}
			out = append(out, t.LocaleID)
		}
	}
	return out, nil
}

func (r *mockTranslationRepository) ListChecks(ctx context.Context, translationID uuid.UUID) ([]*models.TranslationCheck, error) {
	return r.store.checks[translationID], nil
}

func (r *mockTranslationRepository) UpdateState(ctx context.Context, t *models.Translation) error {
	stored, ok := r.store.translations[t.ID]
	if !ok {
		return fmt.Errorf("translation %s: %w", t.ID, apperrors.ErrNotFound)
	}
	active := stored.Active
	updated := copyTranslation(t)
	updated.Active = active
	r.store.translations[t.ID] = updated
	return nil
}

func (r *mockTranslationRepository) SetActive(ctx context.Context, entityID, localeID uuid.UUID, pluralForm *int, winner *uuid.UUID) error {
	if r.store.setActiveConflicts > 0 {
		r.store.setActiveConflicts--
		return &pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			ConstraintName: "l10n_translations_active_unique",
			Message:        "duplicate key value violates unique constraint",
		}
	}
	for _, t := range r.store.translations {
		if t.EntityID != entityID || t.LocaleID != localeID || !models.SamePluralForm(t.PluralForm, pluralForm) {
			continue
		}
		t.Active = winner != nil && t.ID == *winner
	}
	return nil
}

func (r *mockTranslationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.store.translations[id]; !ok {
		return fmt.Errorf("translation %s: %w", id, apperrors.ErrNotFound)
	}
	delete(r.store.translations, id)
	delete(r.store.checks, id)
	for tmID, e := range r.store.tm {
		if e.TranslationID == id {
			delete(r.store.tm, tmID)
		}
	}
	// The action log references translations with ON DELETE CASCADE.
	kept := r.store.actions[:0:0]
	for _, a := range r.store.actions {
		if a.TranslationID == nil || *a.TranslationID != id {
			kept = append(kept, a)
		}
	}
	r.store.actions = kept
	for _, tr := range r.store.trs {
		if tr.LatestTranslationID != nil && *tr.LatestTranslationID == id {
			tr.LatestTranslationID = nil
		}
	}
	return nil
}

func sortTranslations(list []*models.Translation) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].ID.String() < list[j].ID.String()
	})
}

// ---------------------------------------------------------------------------
// mockTMRepository

type mockTMRepository struct {
	store *memStore
}

var _ repositories.TranslationMemoryRepository = (*mockTMRepository)(nil)

func (r *mockTMRepository) Create(ctx context.Context, e *models.TranslationMemoryEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	cp := *e
	r.store.tm[e.ID] = &cp
	return nil
}

func (r *mockTMRepository) DeleteByTranslation(ctx context.Context, translationID uuid.UUID) (int64, error) {
	var n int64
	for id, e := range r.store.tm {
		if e.TranslationID == translationID {
			delete(r.store.tm, id)
			n++
		}
	}
	return n, nil
}

func (r *mockTMRepository) ExistsForTranslation(ctx context.Context, translationID uuid.UUID) (bool, error) {
	n, _ := r.CountForTranslation(ctx, translationID)
	return n > 0, nil
}

func (r *mockTMRepository) CountForTranslation(ctx context.Context, translationID uuid.UUID) (int, error) {
	n := 0
	for _, e := range r.store.tm {
		if e.TranslationID == translationID {
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// mockActionLogRepository

type mockActionLogRepository struct {
	store *memStore
}

var _ repositories.ActionLogRepository = (*mockActionLogRepository)(nil)

func (r *mockActionLogRepository) Create(ctx context.Context, e *models.ActionLogEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	cp := *e
	r.store.actions = append(r.store.actions, &cp)
	return nil
}

func (r *mockActionLogRepository) GetByTranslation(ctx context.Context, translationID uuid.UUID) ([]*models.ActionLogEntry, error) {
	var out []*models.ActionLogEntry
	for _, a := range r.store.actions {
		if a.TranslationID != nil && *a.TranslationID == translationID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *mockActionLogRepository) GetByEntityLocale(ctx context.Context, entityID, localeID uuid.UUID) ([]*models.ActionLogEntry, error) {
	var out []*models.ActionLogEntry
	for _, a := range r.store.actions {
		if a.EntityID != nil && *a.EntityID == entityID && a.LocaleID != nil && *a.LocaleID == localeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *mockActionLogRepository) GetByUser(ctx context.Context, user string, limit int) ([]*models.ActionLogEntry, error) {
	var out []*models.ActionLogEntry
	for _, a := range r.store.actions {
		if a.PerformedBy == user && len(out) < limit {
			out = append(out, a)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// mockAggregateRepository

type mockAggregateRepository struct {
	store *memStore
}

var _ repositories.AggregateRepository = (*mockAggregateRepository)(nil)

func (r *mockAggregateRepository) GetOrCreateTranslatedResource(ctx context.Context, resourceID, localeID uuid.UUID) (*models.TranslatedResource, bool, error) {
	for _, tr := range r.store.trs {
		if tr.ResourceID == resourceID && tr.LocaleID == localeID {
			cp := *tr
			return &cp, false, nil
		}
	}
	tr := &models.TranslatedResource{ID: uuid.New(), ResourceID: resourceID, LocaleID: localeID}
	r.store.trs[tr.ID] = tr
	cp := *tr
	return &cp, true, nil
}

func (r *mockAggregateRepository) GetTranslatedResource(ctx context.Context, resourceID, localeID uuid.UUID) (*models.TranslatedResource, error) {
	for _, tr := range r.store.trs {
		if tr.ResourceID == resourceID && tr.LocaleID == localeID {
			cp := *tr
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("translated resource: %w", apperrors.ErrNotFound)
}

func (r *mockAggregateRepository) ListTranslatedResources(ctx context.Context, projectID uuid.UUID) ([]*models.TranslatedResource, error) {
	var out []*models.TranslatedResource
	for _, tr := range r.store.trs {
		if res := r.store.resources[tr.ResourceID]; res != nil && res.ProjectID == projectID {
			cp := *tr
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *mockAggregateRepository) record(scope string, id uuid.UUID) (*models.AggregateStats, error) {
	switch scope {
	case models.ScopeTranslatedResource:
		if tr, ok := r.store.trs[id]; ok {
			return &tr.AggregateStats, nil
		}
	case models.ScopeProjectLocale:
		if pl, ok := r.store.projectLocales[id]; ok {
			return &pl.AggregateStats, nil
		}
	case models.ScopeLocale:
		if l, ok := r.store.locales[id]; ok {
			return &l.AggregateStats, nil
		}
	case models.ScopeProject:
		if p, ok := r.store.projects[id]; ok {
			return &p.AggregateStats, nil
		}
	default:
		return nil, fmt.Errorf("unknown aggregate scope %q", scope)
	}
	return nil, fmt.Errorf("%s %s: %w", scope, id, apperrors.ErrNotFound)
}

func (r *mockAggregateRepository) Increment(ctx context.Context, scope string, id uuid.UUID, delta models.StatsDelta) error {
	rec, err := r.record(scope, id)
	if err != nil {
		return err
	}
	rec.Stats = rec.Stats.Add(delta)
	s := rec.Stats
	if s.Total < 0 || s.Approved < 0 || s.Pretranslated < 0 || s.Errors < 0 || s.Warnings < 0 || s.Unreviewed < 0 {
		return &pgconn.PgError{Code: pgerrcode.CheckViolation, Message: "counter went negative"}
	}
	return nil
}

func (r *mockAggregateRepository) AdvanceLatest(ctx context.Context, scope string, id, translationID uuid.UUID, activity time.Time) (bool, error) {
	rec, err := r.record(scope, id)
	if err != nil {
		return false, err
	}
	if rec.LatestActivityAt != nil && !rec.LatestActivityAt.Before(activity) {
		return false, nil
	}
	tid, at := translationID, activity
	rec.LatestTranslationID = &tid
	rec.LatestActivityAt = &at
	return true, nil
}

func (r *mockAggregateRepository) Overwrite(ctx context.Context, scope string, id uuid.UUID, stats models.Stats) error {
	rec, err := r.record(scope, id)
	if err != nil {
		return err
	}
	rec.Stats = stats
	return nil
}

func (r *mockAggregateRepository) Get(ctx context.Context, scope string, id uuid.UUID) (*models.AggregateStats, error) {
	rec, err := r.record(scope, id)
	if err != nil {
		return nil, err
	}
	cp := *rec
	return &cp, nil
}

func (r *mockAggregateRepository) sumWhere(match func(tr *models.TranslatedResource, p *models.Project) bool) models.Stats {
	var s models.Stats
	for _, tr := range r.store.trs {
		res := r.store.resources[tr.ResourceID]
		if res == nil {
			continue
		}
		if match(tr, r.store.projects[res.ProjectID]) {
			s = s.Add(models.StatsDelta(tr.Stats))
		}
	}
	return s
}

func (r *mockAggregateRepository) SumForProjectLocale(ctx context.Context, projectID, localeID uuid.UUID) (models.Stats, error) {
	return r.sumWhere(func(tr *models.TranslatedResource, p *models.Project) bool {
		return p != nil && p.ID == projectID && tr.LocaleID == localeID
	}), nil
}

func (r *mockAggregateRepository) SumForProject(ctx context.Context, projectID uuid.UUID) (models.Stats, error) {
	return r.sumWhere(func(tr *models.TranslatedResource, p *models.Project) bool {
		return p != nil && p.ID == projectID
	}), nil
}

func (r *mockAggregateRepository) SumForLocale(ctx context.Context, localeID uuid.UUID) (models.Stats, error) {
	return r.sumWhere(func(tr *models.TranslatedResource, p *models.Project) bool {
		return p != nil && p.CountsTowardsLocale() && tr.LocaleID == localeID
	}), nil
}

// ---------------------------------------------------------------------------
// Collaborator fakes

type mockQualityChecker struct {
	result *CheckResult
	err    error
	calls  int
	// onCheck runs during the check, between the validation and write
	// transactions of a submission.
	onCheck func()
}

func (m *mockQualityChecker) Check(ctx context.Context, entity *models.Entity, locale *models.Locale, source, candidate string) (*CheckResult, error) {
	m.calls++
	if m.onCheck != nil {
		m.onCheck()
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockNotifier struct {
	events []*StatsChangedEvent
	err    error
}

func (m *mockNotifier) Publish(ctx context.Context, event *StatsChangedEvent) error {
	m.events = append(m.events, event)
	return m.err
}

// mockClock returns strictly increasing timestamps.
type mockClock struct {
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}
