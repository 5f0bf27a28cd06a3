package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-l10n/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
	"github.com/ekaya-inc/ekaya-l10n/pkg/repositories"
)

// RollupResult describes what one Apply call touched.
type RollupResult struct {
	// Delta is the applied delta, including a seeded total.
	Delta  models.StatsDelta
	Scopes []ScopeRef
	// Seeded is true when the resource-scope record was created by this call.
	Seeded bool
	// Advanced lists the scopes whose latest pointer moved.
	Advanced []ScopeRef
}

// StatsRollup propagates a per-entity delta to the four aggregate scopes.
// It must run inside the transaction of the transition that produced the delta.
type StatsRollup interface {
	Apply(ctx context.Context, resourceID, localeID uuid.UUID, delta models.StatsDelta, latest *models.Translation) (*RollupResult, error)
}

type StatsRollupDeps struct {
	AggregateRepo repositories.AggregateRepository
	ProjectRepo   repositories.ProjectRepository
	Counter       StringCounter
	Cache         *ScopeCache
	Logger        *zap.Logger
}

type statsRollup struct {
	deps *StatsRollupDeps
}

// NewStatsRollup creates a new StatsRollup.
func NewStatsRollup(deps *StatsRollupDeps) StatsRollup {
	deps.Logger = deps.Logger.Named("stats-rollup")
	return &statsRollup{deps: deps}
}

var _ StatsRollup = (*statsRollup)(nil)

func (r *statsRollup) Apply(ctx context.Context, resourceID, localeID uuid.UUID, delta models.StatsDelta, latest *models.Translation) (*RollupResult, error) {
	tr, created, err := r.deps.AggregateRepo.GetOrCreateTranslatedResource(ctx, resourceID, localeID)
	if err != nil {
		return nil, err
	}

	result := &RollupResult{Seeded: created}
	if created {
		total, err := r.deps.Counter.CountTotalStrings(ctx, resourceID, localeID)
		if err != nil {
			return nil, fmt.Errorf("failed to count strings for new resource scope: %w", err)
		}
		delta.Total += total
		resourceSeedsTotal.Inc()
		r.deps.Logger.Debug("Seeded resource scope",
			zap.String("resource_id", resourceID.String()),
			zap.String("locale_id", localeID.String()),
			zap.Int("total", total))
	}
	result.Delta = delta

	scopes, err := r.scopesFor(ctx, tr, resourceID, localeID)
	if err != nil {
		return nil, err
	}
	result.Scopes = scopes

	if !delta.IsZero() {
		for _, s := range scopes {
			if err := r.deps.AggregateRepo.Increment(ctx, s.Scope, s.ID, delta); err != nil {
				return nil, err
			}
			scopeUpdatesTotal.WithLabelValues(s.Scope).Inc()
		}
	}

	if latest != nil {
		activity := latest.ActivityAt()
		for _, s := range scopes {
			moved, err := r.deps.AggregateRepo.AdvanceLatest(ctx, s.Scope, s.ID, latest.ID, activity)
			if err != nil {
				return nil, err
			}
			if moved {
				result.Advanced = append(result.Advanced, s)
				latestAdvancesTotal.WithLabelValues(s.Scope).Inc()
			}
		}
	}

	return result, nil
}

// scopesFor lists the records a delta for (resource, locale) lands in:
// the resource scope, the project, the locale when the project counts towards
// locale totals, and the project locale when the locale is enabled.
func (r *statsRollup) scopesFor(ctx context.Context, tr *models.TranslatedResource, resourceID, localeID uuid.UUID) ([]ScopeRef, error) {
	resource, err := r.deps.Cache.Resource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	// Visibility and the system flag decide the locale scope, so they are
	// read inside the transaction rather than from the cache.
	project, err := r.deps.ProjectRepo.Get(ctx, resource.ProjectID)
	if err != nil {
		return nil, err
	}

	scopes := []ScopeRef{
		{Scope: models.ScopeTranslatedResource, ID: tr.ID},
		{Scope: models.ScopeProject, ID: project.ID},
	}
	if project.CountsTowardsLocale() {
		scopes = append(scopes, ScopeRef{Scope: models.ScopeLocale, ID: localeID})
	}

	pl, err := r.deps.ProjectRepo.GetProjectLocale(ctx, project.ID, localeID)
	switch {
	case err == nil:
		scopes = append(scopes, ScopeRef{Scope: models.ScopeProjectLocale, ID: pl.ID})
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}
	return scopes, nil
}
