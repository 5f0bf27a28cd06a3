package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-l10n/pkg/database"
	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
	"github.com/ekaya-inc/ekaya-l10n/pkg/repositories"
	"github.com/ekaya-inc/ekaya-l10n/pkg/retry"
	"github.com/ekaya-inc/ekaya-l10n/pkg/stats"
)

// ScopeDrift is one aggregate record whose stored counters differ from the
// expected value.
type ScopeDrift struct {
	Scope    string       `yaml:"scope" json:"scope"`
	ID       uuid.UUID    `yaml:"id" json:"id"`
	Label    string       `yaml:"label,omitempty" json:"label,omitempty"`
	Stored   models.Stats `yaml:"stored" json:"stored"`
	Expected models.Stats `yaml:"expected" json:"expected"`
}

// VerifyReport lists every drifting scope of one project.
type VerifyReport struct {
	ProjectID     uuid.UUID    `yaml:"project_id" json:"project_id"`
	ScopesChecked int          `yaml:"scopes_checked" json:"scopes_checked"`
	Drift         []ScopeDrift `yaml:"drift" json:"drift"`
}

// OK reports whether no drift was found.
func (r *VerifyReport) OK() bool {
	return len(r.Drift) == 0
}

// RecalculationSummary describes one RecalculateProject run.
type RecalculationSummary struct {
	ProjectID           uuid.UUID `yaml:"project_id"`
	TranslatedResources int       `yaml:"translated_resources"`
	ProjectLocales      int       `yaml:"project_locales"`
	Locales             int       `yaml:"locales"`
}

// StatsRecalculationService rebuilds aggregate counters from the live
// translation set. It is the only path allowed to overwrite counters and is
// never invoked by interactive transitions.
type StatsRecalculationService interface {
	// RecalculateResource rebuilds one resource-scope record only.
	RecalculateResource(ctx context.Context, resourceID, localeID uuid.UUID) (models.Stats, error)
	// RecalculateProject rebuilds every scope the project feeds. Idempotent.
	RecalculateProject(ctx context.Context, projectID uuid.UUID) (*RecalculationSummary, error)
	// Verify recomputes without writing and reports disagreeing scopes.
	Verify(ctx context.Context, projectID uuid.UUID) (*VerifyReport, error)
}

type StatsRecalculationDeps struct {
	DB              database.TxRunner
	ProjectRepo     repositories.ProjectRepository
	EntityRepo      repositories.EntityRepository
	TranslationRepo repositories.TranslationRepository
	AggregateRepo   repositories.AggregateRepository
	Counter         StringCounter
	Cache           *ScopeCache
	Retry           *retry.Config // Optional: defaults to retry.DefaultConfig()
	Logger          *zap.Logger
}

type statsRecalculationService struct {
	deps   *StatsRecalculationDeps
	logger *zap.Logger
}

// NewStatsRecalculationService creates a new StatsRecalculationService.
func NewStatsRecalculationService(deps *StatsRecalculationDeps) StatsRecalculationService {
	if deps.Retry == nil {
		deps.Retry = retry.DefaultConfig()
	}
	return &statsRecalculationService{
		deps:   deps,
		logger: deps.Logger.Named("stats-recalculation"),
	}
}

var _ StatsRecalculationService = (*statsRecalculationService)(nil)

func (s *statsRecalculationService) RecalculateResource(ctx context.Context, resourceID, localeID uuid.UUID) (models.Stats, error) {
	var result models.Stats
	err := s.inTx(ctx, func(ctx context.Context) error {
		computed, err := s.compute(ctx, resourceID, localeID)
		if err != nil {
			return err
		}
		tr, _, err := s.deps.AggregateRepo.GetOrCreateTranslatedResource(ctx, resourceID, localeID)
		if err != nil {
			return err
		}
		if err := s.deps.AggregateRepo.Overwrite(ctx, models.ScopeTranslatedResource, tr.ID, computed); err != nil {
			return err
		}
		result = computed
		return nil
	})
	if err != nil {
		return models.Stats{}, err
	}
	return result, nil
}

func (s *statsRecalculationService) RecalculateProject(ctx context.Context, projectID uuid.UUID) (*RecalculationSummary, error) {
	summary := &RecalculationSummary{ProjectID: projectID}
	err := s.inTx(ctx, func(ctx context.Context) error {
		*summary = RecalculationSummary{ProjectID: projectID}

		pairs, err := s.resourceLocalePairs(ctx, projectID)
		if err != nil {
			return err
		}
		locales := map[uuid.UUID]struct{}{}
		for _, p := range pairs {
			computed, err := s.compute(ctx, p.resourceID, p.localeID)
			if err != nil {
				return err
			}
			tr, _, err := s.deps.AggregateRepo.GetOrCreateTranslatedResource(ctx, p.resourceID, p.localeID)
			if err != nil {
				return err
			}
			if err := s.deps.AggregateRepo.Overwrite(ctx, models.ScopeTranslatedResource, tr.ID, computed); err != nil {
				return err
			}
			locales[p.localeID] = struct{}{}
			summary.TranslatedResources++
		}

		pls, err := s.deps.ProjectRepo.ListProjectLocales(ctx, projectID)
		if err != nil {
			return err
		}
		for _, pl := range pls {
			sum, err := s.deps.AggregateRepo.SumForProjectLocale(ctx, projectID, pl.LocaleID)
			if err != nil {
				return err
			}
			if err := s.deps.AggregateRepo.Overwrite(ctx, models.ScopeProjectLocale, pl.ID, sum); err != nil {
				return err
			}
			locales[pl.LocaleID] = struct{}{}
			summary.ProjectLocales++
		}

		projectSum, err := s.deps.AggregateRepo.SumForProject(ctx, projectID)
		if err != nil {
			return err
		}
		if err := s.deps.AggregateRepo.Overwrite(ctx, models.ScopeProject, projectID, projectSum); err != nil {
			return err
		}

		for _, localeID := range sortedIDs(locales) {
			sum, err := s.deps.AggregateRepo.SumForLocale(ctx, localeID)
			if err != nil {
				return err
			}
			if err := s.deps.AggregateRepo.Overwrite(ctx, models.ScopeLocale, localeID, sum); err != nil {
				return err
			}
			summary.Locales++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Recalculated project stats",
		zap.String("project_id", projectID.String()),
		zap.Int("translated_resources", summary.TranslatedResources),
		zap.Int("project_locales", summary.ProjectLocales),
		zap.Int("locales", summary.Locales))
	return summary, nil
}

func (s *statsRecalculationService) Verify(ctx context.Context, projectID uuid.UUID) (*VerifyReport, error) {
	report := &VerifyReport{ProjectID: projectID}
	err := s.deps.DB.RunInTx(ctx, func(ctx context.Context) error {
		project, err := s.deps.ProjectRepo.Get(ctx, projectID)
		if err != nil {
			return err
		}

		stored, err := s.deps.AggregateRepo.ListTranslatedResources(ctx, projectID)
		if err != nil {
			return err
		}
		storedByPair := make(map[resourceLocale]*models.TranslatedResource, len(stored))
		for _, tr := range stored {
			storedByPair[resourceLocale{tr.ResourceID, tr.LocaleID}] = tr
		}

		pairs, err := s.resourceLocalePairs(ctx, projectID)
		if err != nil {
			return err
		}
		locales := map[uuid.UUID]struct{}{}
		for _, p := range pairs {
			locales[p.localeID] = struct{}{}
			computed, err := s.compute(ctx, p.resourceID, p.localeID)
			if err != nil {
				return err
			}
			report.ScopesChecked++
			tr, ok := storedByPair[p]
			if !ok {
				report.Drift = append(report.Drift, ScopeDrift{
					Scope:    models.ScopeTranslatedResource,
					Label:    "missing record",
					Expected: computed,
				})
				continue
			}
			if tr.Stats != computed {
				report.Drift = append(report.Drift, ScopeDrift{
					Scope:    models.ScopeTranslatedResource,
					ID:       tr.ID,
					Stored:   tr.Stats,
					Expected: computed,
				})
			}
		}

		pls, err := s.deps.ProjectRepo.ListProjectLocales(ctx, projectID)
		if err != nil {
			return err
		}
		for _, pl := range pls {
			locales[pl.LocaleID] = struct{}{}
			expected, err := s.deps.AggregateRepo.SumForProjectLocale(ctx, projectID, pl.LocaleID)
			if err != nil {
				return err
			}
			report.check(models.ScopeProjectLocale, pl.ID, pl.Stats, expected)
		}

		expected, err := s.deps.AggregateRepo.SumForProject(ctx, projectID)
		if err != nil {
			return err
		}
		report.check(models.ScopeProject, project.ID, project.Stats, expected)

		if project.CountsTowardsLocale() {
			for _, localeID := range sortedIDs(locales) {
				current, err := s.deps.AggregateRepo.Get(ctx, models.ScopeLocale, localeID)
				if err != nil {
					return err
				}
				expected, err := s.deps.AggregateRepo.SumForLocale(ctx, localeID)
				if err != nil {
					return err
				}
				report.check(models.ScopeLocale, localeID, current.Stats, expected)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	counts := map[string]float64{}
	for _, d := range report.Drift {
		counts[d.Scope]++
	}
	for _, scope := range []string{models.ScopeTranslatedResource, models.ScopeProjectLocale, models.ScopeProject, models.ScopeLocale} {
		recalculationDrift.WithLabelValues(scope).Set(counts[scope])
	}

	if !report.OK() {
		s.logger.Warn("Aggregate stats drift detected",
			zap.String("project_id", projectID.String()),
			zap.Int("drifting_scopes", len(report.Drift)))
	}
	return report, nil
}

func (r *VerifyReport) check(scope string, id uuid.UUID, stored, expected models.Stats) {
	r.ScopesChecked++
	if stored != expected {
		r.Drift = append(r.Drift, ScopeDrift{Scope: scope, ID: id, Stored: stored, Expected: expected})
	}
}

type resourceLocale struct {
	resourceID uuid.UUID
	localeID   uuid.UUID
}

// resourceLocalePairs returns every (resource, locale) pair of the project
// that has a resource-scope record or at least one translation.
func (s *statsRecalculationService) resourceLocalePairs(ctx context.Context, projectID uuid.UUID) ([]resourceLocale, error) {
	seen := map[resourceLocale]struct{}{}
	var pairs []resourceLocale
	add := func(p resourceLocale) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		pairs = append(pairs, p)
	}

	stored, err := s.deps.AggregateRepo.ListTranslatedResources(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, tr := range stored {
		add(resourceLocale{tr.ResourceID, tr.LocaleID})
	}

	resources, err := s.deps.ProjectRepo.ListResources(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, res := range resources {
		localeIDs, err := s.deps.TranslationRepo.ListLocalesForResource(ctx, res.ID)
		if err != nil {
			return nil, err
		}
		for _, localeID := range localeIDs {
			add(resourceLocale{res.ID, localeID})
		}
	}
	return pairs, nil
}

// compute derives resource-scope counters from the live translations using
// the same snapshot rules as the incremental path.
func (s *statsRecalculationService) compute(ctx context.Context, resourceID, localeID uuid.UUID) (models.Stats, error) {
	locale, err := s.deps.Cache.Locale(ctx, localeID)
	if err != nil {
		return models.Stats{}, err
	}
	entities, err := s.deps.EntityRepo.ListByResource(ctx, resourceID, false)
	if err != nil {
		return models.Stats{}, err
	}
	translations, err := s.deps.TranslationRepo.ListForResourceLocale(ctx, resourceID, localeID)
	if err != nil {
		return models.Stats{}, err
	}
	total, err := s.deps.Counter.CountTotalStrings(ctx, resourceID, localeID)
	if err != nil {
		return models.Stats{}, fmt.Errorf("failed to count strings: %w", err)
	}

	byEntity := stats.GroupByEntity(translations)
	snapshots := make([]models.Stats, 0, len(entities)+1)
	for _, e := range entities {
		snapshots = append(snapshots, stats.Snapshot(e, locale.PluralCount, byEntity[e.ID.String()]))
	}
	snapshots = append(snapshots, models.Stats{Total: total})
	return stats.Sum(snapshots...), nil
}

func (s *statsRecalculationService) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return retry.DoIfRetryable(ctx, s.deps.Retry, func() error {
		err := s.deps.DB.RunInTx(ctx, fn)
		if err != nil && database.IsConcurrentWriteConflict(err) {
			return classifyCommitError(err, "recalculate", uuid.Nil)
		}
		return err
	})
}

func sortedIDs(set map[uuid.UUID]struct{}) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}
