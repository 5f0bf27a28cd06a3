package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/ekaya-inc/ekaya-l10n/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
	"github.com/ekaya-inc/ekaya-l10n/pkg/repositories"
)

// CheckResult is the outcome of running quality checks on one candidate.
type CheckResult struct {
	Checks []*models.TranslationCheck
}

// Errors returns the number of error findings.
func (r *CheckResult) Errors() int {
	return r.count(models.CheckSeverityError)
}

// Warnings returns the number of warning findings.
func (r *CheckResult) Warnings() int {
	return r.count(models.CheckSeverityWarning)
}

func (r *CheckResult) count(severity string) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, c := range r.Checks {
		if c.Severity == severity {
			n++
		}
	}
	return n
}

// QualityChecker inspects a candidate translation at submission time.
// A returned error aborts the submission.
type QualityChecker interface {
	Check(ctx context.Context, entity *models.Entity, locale *models.Locale, source, candidate string) (*CheckResult, error)
}

// NoopQualityChecker reports no findings.
type NoopQualityChecker struct{}

func (NoopQualityChecker) Check(context.Context, *models.Entity, *models.Locale, string, string) (*CheckResult, error) {
	return &CheckResult{}, nil
}

const basicCheckLibrary = "basic"

var placeholderPattern = regexp.MustCompile(`\{[^{}\s]*\}|%[sdf]|%\d+\$[sdf]`)

// BasicQualityChecker flags empty candidates, placeholder mismatches and
// whitespace drift between source and candidate.
type BasicQualityChecker struct{}

func (BasicQualityChecker) Check(_ context.Context, _ *models.Entity, _ *models.Locale, source, candidate string) (*CheckResult, error) {
	result := &CheckResult{}
	add := func(severity, msg string) {
		result.Checks = append(result.Checks, &models.TranslationCheck{
			Severity: severity,
			Library:  basicCheckLibrary,
			Message:  msg,
		})
	}

	if strings.TrimSpace(candidate) == "" {
		add(models.CheckSeverityError, "Empty translation")
		return result, nil
	}

	srcPlaceholders := placeholderSet(source)
	dstPlaceholders := placeholderSet(candidate)
	for p := range srcPlaceholders {
		if _, ok := dstPlaceholders[p]; !ok {
			add(models.CheckSeverityError, fmt.Sprintf("Missing placeholder %s", p))
		}
	}
	for p := range dstPlaceholders {
		if _, ok := srcPlaceholders[p]; !ok {
			add(models.CheckSeverityError, fmt.Sprintf("Unknown placeholder %s", p))
		}
	}

	if hasEdgeSpace(source) != hasEdgeSpace(candidate) {
		add(models.CheckSeverityWarning, "Leading or trailing whitespace differs from source")
	}
	if strings.HasSuffix(source, "\n") != strings.HasSuffix(candidate, "\n") {
		add(models.CheckSeverityWarning, "Trailing newline differs from source")
	}

	return result, nil
}

func placeholderSet(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, m := range placeholderPattern.FindAllString(s, -1) {
		set[m] = struct{}{}
	}
	return set
}

func hasEdgeSpace(s string) bool {
	return s != strings.TrimSpace(s)
}

// StringCounter seeds the total of a newly created resource-scope record.
type StringCounter interface {
	CountTotalStrings(ctx context.Context, resourceID, localeID uuid.UUID) (int, error)
}

// entityStringCounter counts one string per non-obsolete entity. Plural
// entities count once, matching how Snapshot resolves them to a single
// approved or pretranslated unit.
type entityStringCounter struct {
	entityRepo repositories.EntityRepository
}

// NewEntityStringCounter creates a StringCounter backed by the entity table.
func NewEntityStringCounter(entityRepo repositories.EntityRepository) StringCounter {
	return &entityStringCounter{entityRepo: entityRepo}
}

func (c *entityStringCounter) CountTotalStrings(ctx context.Context, resourceID, _ uuid.UUID) (int, error) {
	return c.entityRepo.CountActive(ctx, resourceID)
}

// ReadOnlyChecker reports whether translations of a project in a locale are frozen.
type ReadOnlyChecker interface {
	IsReadOnly(ctx context.Context, projectID, localeID uuid.UUID) (bool, error)
}

type projectLocaleReadOnlyChecker struct {
	projectRepo repositories.ProjectRepository
}

// NewReadOnlyChecker creates a ReadOnlyChecker backed by project locales.
// A locale not enabled for the project is not read-only.
func NewReadOnlyChecker(projectRepo repositories.ProjectRepository) ReadOnlyChecker {
	return &projectLocaleReadOnlyChecker{projectRepo: projectRepo}
}

func (c *projectLocaleReadOnlyChecker) IsReadOnly(ctx context.Context, projectID, localeID uuid.UUID) (bool, error) {
	pl, err := c.projectRepo.GetProjectLocale(ctx, projectID, localeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return pl.ReadOnly, nil
}
