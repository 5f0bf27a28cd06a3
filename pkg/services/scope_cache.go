package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
	"github.com/ekaya-inc/ekaya-l10n/pkg/repositories"
)

// ScopeCache keeps resource and locale metadata that every transition needs
// and that does not change once created: a resource's project and a locale's
// plural count. Mutable project fields are always read from the store.
type ScopeCache struct {
	resources *expirable.LRU[uuid.UUID, *models.Resource]
	locales   *expirable.LRU[uuid.UUID, *models.Locale]

	projectRepo repositories.ProjectRepository
	localeRepo  repositories.LocaleRepository
}

// NewScopeCache creates a cache holding up to size records of each kind for ttl.
func NewScopeCache(size int, ttl time.Duration, projectRepo repositories.ProjectRepository, localeRepo repositories.LocaleRepository) *ScopeCache {
	return &ScopeCache{
		resources:   expirable.NewLRU[uuid.UUID, *models.Resource](size, nil, ttl),
		locales:     expirable.NewLRU[uuid.UUID, *models.Locale](size, nil, ttl),
		projectRepo: projectRepo,
		localeRepo:  localeRepo,
	}
}

// Resource returns the resource, loading it on a miss.
func (c *ScopeCache) Resource(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	if r, ok := c.resources.Get(id); ok {
		scopeCacheHits.Inc()
		return r, nil
	}
	scopeCacheMisses.Inc()
	r, err := c.projectRepo.GetResource(ctx, id)
	if err != nil {
		return nil, err
	}
	c.resources.Add(id, r)
	return r, nil
}

// Locale returns the locale, loading it on a miss.
func (c *ScopeCache) Locale(ctx context.Context, id uuid.UUID) (*models.Locale, error) {
	if l, ok := c.locales.Get(id); ok {
		scopeCacheHits.Inc()
		return l, nil
	}
	scopeCacheMisses.Inc()
	l, err := c.localeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.locales.Add(id, l)
	return l, nil
}

// Purge empties every cache.
func (c *ScopeCache) Purge() {
	c.resources.Purge()
	c.locales.Purge()
}
