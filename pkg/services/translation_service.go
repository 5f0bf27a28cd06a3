package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-l10n/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-l10n/pkg/database"
	"github.com/ekaya-inc/ekaya-l10n/pkg/logging"
	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
	"github.com/ekaya-inc/ekaya-l10n/pkg/repositories"
	"github.com/ekaya-inc/ekaya-l10n/pkg/retry"
	"github.com/ekaya-inc/ekaya-l10n/pkg/stats"
)

// Transition names used in errors, logs and metrics.
const (
	TransitionCreate    = "create"
	TransitionApprove   = "approve"
	TransitionUnapprove = "unapprove"
	TransitionReject    = "reject"
	TransitionUnreject  = "unreject"
	TransitionDelete    = "delete"
)

var errObsoleteEntity = errors.New("entity is obsolete")

// CreateTranslationInput describes a new translation submission.
type CreateTranslationInput struct {
	EntityID   uuid.UUID
	LocaleID   uuid.UUID
	PluralForm *int
	String     string
	User       string

	// CanApprove is true when the submitter may review translations in the locale.
	CanApprove bool
	// ForceSuggestions keeps a privileged submission as a plain suggestion.
	ForceSuggestions bool

	// Pretranslated and Fuzzy mark machine submissions from the pretranslation
	// pipeline. They are never promoted to approved at creation.
	Pretranslated bool
	Fuzzy         bool
}

// TranslationService moves translations through their review states. Every
// operation is one transaction covering the state change, active reselection,
// audit entries, translation memory and the aggregate rollup.
type TranslationService interface {
	Create(ctx context.Context, input *CreateTranslationInput) (*models.Translation, error)
	Approve(ctx context.Context, id uuid.UUID, user string) (*models.Translation, error)
	Unapprove(ctx context.Context, id uuid.UUID, user string) (*models.Translation, error)
	Reject(ctx context.Context, id uuid.UUID, user string) (*models.Translation, error)
	Unreject(ctx context.Context, id uuid.UUID, user string) (*models.Translation, error)
	// Delete removes a rejected translation.
	Delete(ctx context.Context, id uuid.UUID, user string) error

	Get(ctx context.Context, id uuid.UUID) (*models.Translation, error)
	ListForEntity(ctx context.Context, entityID, localeID uuid.UUID) ([]*models.Translation, error)
}

type TranslationServiceDeps struct {
	DB              database.TxRunner
	TranslationRepo repositories.TranslationRepository
	EntityRepo      repositories.EntityRepository
	TMRepo          repositories.TranslationMemoryRepository
	ActionLog       ActionLogService
	Rollup          StatsRollup
	Cache           *ScopeCache
	ReadOnly        ReadOnlyChecker
	QualityChecker  QualityChecker   // Optional: defaults to NoopQualityChecker
	Notifier        StatsNotifier    // Optional: defaults to NoopStatsNotifier
	Retry           *retry.Config    // Optional: defaults to retry.DefaultConfig()
	Now             func() time.Time // Optional: defaults to time.Now
	Logger          *zap.Logger
}

type translationService struct {
	deps   *TranslationServiceDeps
	logger *zap.Logger
}

// NewTranslationService creates a new TranslationService.
func NewTranslationService(deps *TranslationServiceDeps) TranslationService {
	if deps.QualityChecker == nil {
		deps.QualityChecker = NoopQualityChecker{}
	}
	if deps.Notifier == nil {
		deps.Notifier = NoopStatsNotifier{}
	}
	if deps.Retry == nil {
		deps.Retry = retry.DefaultConfig()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &translationService{
		deps:   deps,
		logger: deps.Logger.Named("translations"),
	}
}

var _ TranslationService = (*translationService)(nil)

// transitionState is everything one attempt reads before mutating.
type transitionState struct {
	transition string
	user       string
	now        time.Time

	entity   *models.Entity
	resource *models.Resource
	locale   *models.Locale

	// all holds every translation of (entity, locale), row-locked.
	all    []*models.Translation
	target *models.Translation
	before models.Stats
}

type transitionResult struct {
	translation *models.Translation
	rollup      *RollupResult
}

func (s *translationService) Create(ctx context.Context, input *CreateTranslationInput) (*models.Translation, error) {
	var (
		entity   *models.Entity
		resource *models.Resource
		locale   *models.Locale
	)
	err := s.deps.DB.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		entity, resource, locale, err = s.loadScope(ctx, input.EntityID, input.LocaleID)
		if err != nil {
			return err
		}
		if err := validateCreate(input, entity, locale); err != nil {
			return err
		}
		return s.checkWritable(ctx, TransitionCreate, "", resource, locale)
	})
	if err != nil {
		s.record(TransitionCreate, err)
		return nil, err
	}

	// Quality checks run before any write and outside the transaction.
	checks, err := s.deps.QualityChecker.Check(ctx, entity, locale, sourceFor(entity, input.PluralForm), input.String)
	if err != nil {
		s.record(TransitionCreate, err)
		return nil, fmt.Errorf("quality checks failed: %w", err)
	}

	promote := input.CanApprove && !input.ForceSuggestions && !input.Pretranslated && !input.Fuzzy

	res, err := s.execute(ctx, TransitionCreate, uuid.Nil, func(ctx context.Context) (*transitionResult, error) {
		all, err := s.deps.TranslationRepo.LockForEntityLocale(ctx, input.EntityID, input.LocaleID)
		if err != nil {
			return nil, err
		}
		// Re-read under the group lock; the pairing may have turned read-only
		// or the entity obsolete while quality checks ran.
		entity, resource, locale, err := s.loadScope(ctx, input.EntityID, input.LocaleID)
		if err != nil {
			return nil, err
		}
		if err := validateCreate(input, entity, locale); err != nil {
			return nil, err
		}
		if err := s.checkWritable(ctx, TransitionCreate, "", resource, locale); err != nil {
			return nil, err
		}
		st := &transitionState{
			transition: TransitionCreate,
			user:       input.User,
			now:        s.deps.Now(),
			entity:     entity,
			resource:   resource,
			locale:     locale,
			all:        all,
			before:     stats.Snapshot(entity, locale.PluralCount, all),
		}

		t := &models.Translation{
			EntityID:      entity.ID,
			LocaleID:      locale.ID,
			PluralForm:    input.PluralForm,
			String:        input.String,
			User:          input.User,
			Date:          st.now,
			Pretranslated: input.Pretranslated,
			Fuzzy:         input.Fuzzy,
		}
		if err := s.deps.TranslationRepo.Create(ctx, t, copyChecks(checks)); err != nil {
			return nil, err
		}
		st.target = t
		st.all = append(st.all, t)

		if t.Pretranslated || t.Fuzzy {
			if err := s.createTMEntry(ctx, st, t); err != nil {
				return nil, err
			}
		}
		if promote {
			if err := s.applyApproval(ctx, st, t); err != nil {
				return nil, err
			}
		}
		if err := s.deps.ActionLog.Log(ctx, translationAction(models.ActionTranslationCreated, st.user, t.ID, false)); err != nil {
			return nil, err
		}
		return s.finish(ctx, st, t)
	})
	if err != nil {
		return nil, err
	}
	return res.translation, nil
}

func (s *translationService) Approve(ctx context.Context, id uuid.UUID, user string) (*models.Translation, error) {
	return s.review(ctx, TransitionApprove, id, user, func(ctx context.Context, st *transitionState) error {
		t := st.target
		if t.Approved {
			return s.conflict(st, nil)
		}
		if err := s.applyApproval(ctx, st, t); err != nil {
			return err
		}
		return s.deps.ActionLog.Log(ctx, translationAction(models.ActionTranslationApproved, st.user, t.ID, false))
	})
}

func (s *translationService) Unapprove(ctx context.Context, id uuid.UUID, user string) (*models.Translation, error) {
	return s.review(ctx, TransitionUnapprove, id, user, func(ctx context.Context, st *transitionState) error {
		t := st.target
		if !t.Approved {
			return s.conflict(st, nil)
		}
		t.Approved = false
		t.ApprovedUser = nil
		t.ApprovedDate = nil
		t.UnapprovedUser = stringPtr(st.user)
		t.UnapprovedDate = timePtr(st.now)
		if err := s.deps.TranslationRepo.UpdateState(ctx, t); err != nil {
			return err
		}
		if _, err := s.deps.TMRepo.DeleteByTranslation(ctx, t.ID); err != nil {
			return err
		}
		return s.deps.ActionLog.Log(ctx, translationAction(models.ActionTranslationUnapproved, st.user, t.ID, false))
	})
}

func (s *translationService) Reject(ctx context.Context, id uuid.UUID, user string) (*models.Translation, error) {
	return s.review(ctx, TransitionReject, id, user, func(ctx context.Context, st *transitionState) error {
		t := st.target
		if t.Rejected {
			return s.conflict(st, nil)
		}
		if err := s.markRejected(ctx, st, t); err != nil {
			return err
		}
		return s.deps.ActionLog.Log(ctx, translationAction(models.ActionTranslationRejected, st.user, t.ID, false))
	})
}

func (s *translationService) Unreject(ctx context.Context, id uuid.UUID, user string) (*models.Translation, error) {
	return s.review(ctx, TransitionUnreject, id, user, func(ctx context.Context, st *transitionState) error {
		t := st.target
		if !t.Rejected {
			return s.conflict(st, nil)
		}
		t.Rejected = false
		t.RejectedUser = nil
		t.RejectedDate = nil
		t.UnrejectedUser = stringPtr(st.user)
		t.UnrejectedDate = timePtr(st.now)
		if err := s.deps.TranslationRepo.UpdateState(ctx, t); err != nil {
			return err
		}
		return s.deps.ActionLog.Log(ctx, translationAction(models.ActionTranslationUnrejected, st.user, t.ID, false))
	})
}

func (s *translationService) Delete(ctx context.Context, id uuid.UUID, user string) error {
	_, err := s.run(ctx, TransitionDelete, id, user, func(ctx context.Context, st *transitionState) (*models.Translation, error) {
		t := st.target
		if !t.Rejected {
			return nil, s.conflict(st, nil)
		}
		if _, err := s.deps.TMRepo.DeleteByTranslation(ctx, t.ID); err != nil {
			return nil, err
		}
		if err := s.deps.TranslationRepo.Delete(ctx, t.ID); err != nil {
			return nil, err
		}
		st.all = without(st.all, t.ID)
		if err := s.deps.ActionLog.Log(ctx, deletionAction(st.user, st.entity.ID, st.locale.ID)); err != nil {
			return nil, err
		}
		// A deleted translation never becomes the latest one.
		return nil, nil
	})
	return err
}

func (s *translationService) Get(ctx context.Context, id uuid.UUID) (*models.Translation, error) {
	var t *models.Translation
	err := s.deps.DB.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		t, err = s.deps.TranslationRepo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *translationService) ListForEntity(ctx context.Context, entityID, localeID uuid.UUID) ([]*models.Translation, error) {
	var list []*models.Translation
	err := s.deps.DB.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		list, err = s.deps.TranslationRepo.ListForEntityLocale(ctx, entityID, localeID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// review runs a transition whose target stays in place and becomes the
// candidate for the latest-activity pointers.
func (s *translationService) review(ctx context.Context, transition string, id uuid.UUID, user string, mutate func(ctx context.Context, st *transitionState) error) (*models.Translation, error) {
	res, err := s.run(ctx, transition, id, user, func(ctx context.Context, st *transitionState) (*models.Translation, error) {
		if err := mutate(ctx, st); err != nil {
			return nil, err
		}
		return st.target, nil
	})
	if err != nil {
		return nil, err
	}
	return res.translation, nil
}

// run loads and locks the target's (entity, locale) set, applies mutate and
// finishes the transition. mutate returns the translation to offer to the
// latest-activity pointers, or nil.
func (s *translationService) run(ctx context.Context, transition string, id uuid.UUID, user string, mutate func(ctx context.Context, st *transitionState) (*models.Translation, error)) (*transitionResult, error) {
	if user == "" {
		err := fmt.Errorf("%w: user is required", apperrors.ErrInvalidInput)
		s.record(transition, err)
		return nil, err
	}
	return s.execute(ctx, transition, id, func(ctx context.Context) (*transitionResult, error) {
		st, err := s.load(ctx, transition, id, user)
		if err != nil {
			return nil, err
		}
		latest, err := mutate(ctx, st)
		if err != nil {
			return nil, err
		}
		res, err := s.finish(ctx, st, latest)
		if err != nil {
			return nil, err
		}
		if res.translation == nil {
			res.translation = st.target
		}
		return res, nil
	})
}

// execute runs attempt in a transaction and replays it from a fresh read
// when the commit lost a race with a concurrent writer.
func (s *translationService) execute(ctx context.Context, transition string, id uuid.UUID, attempt func(ctx context.Context) (*transitionResult, error)) (*transitionResult, error) {
	start := time.Now()
	defer func() {
		transitionDuration.WithLabelValues(transition).Observe(time.Since(start).Seconds())
	}()

	var (
		result   *transitionResult
		attempts int
	)
	err := retry.DoIfRetryable(ctx, s.deps.Retry, func() error {
		attempts++
		result = nil
		err := s.deps.DB.RunInTx(ctx, func(ctx context.Context) error {
			r, err := attempt(ctx)
			if err != nil {
				return err
			}
			result = r
			return nil
		})
		return classifyCommitError(err, transition, id)
	})
	s.record(transition, err)
	if err != nil {
		fields := []zap.Field{
			zap.String("transition", transition),
			zap.String("translation_id", id.String()),
			zap.Int("attempts", attempts),
			zap.Error(err),
		}
		if errors.Is(err, apperrors.ErrConflict) {
			s.logger.Warn("Transition conflict", fields...)
		} else {
			s.logger.Error("Transition failed", fields...)
		}
		return nil, err
	}

	t := result.translation
	s.logger.Debug("Transition applied",
		zap.String("transition", transition),
		zap.String("translation_id", t.ID.String()),
		zap.String("entity_id", t.EntityID.String()),
		zap.String("locale_id", t.LocaleID.String()),
		zap.String("state", t.State()),
		zap.String("string", logging.TranslationText(t.String)),
		zap.Int("attempts", attempts))

	s.notify(ctx, transition, result)
	return result, nil
}

// load reads the target with its entity, resource and locale, rejects
// read-only and obsolete scopes, then locks every translation of the
// (entity, locale) pair and takes the before snapshot.
func (s *translationService) load(ctx context.Context, transition string, id uuid.UUID, user string) (*transitionState, error) {
	t, err := s.deps.TranslationRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	entity, resource, locale, err := s.loadScope(ctx, t.EntityID, t.LocaleID)
	if err != nil {
		return nil, err
	}
	if err := s.checkWritable(ctx, transition, id.String(), resource, locale); err != nil {
		return nil, err
	}

	all, err := s.deps.TranslationRepo.LockForEntityLocale(ctx, entity.ID, locale.ID)
	if err != nil {
		return nil, err
	}

	st := &transitionState{
		transition: transition,
		user:       user,
		now:        s.deps.Now(),
		entity:     entity,
		resource:   resource,
		locale:     locale,
		all:        all,
		before:     stats.Snapshot(entity, locale.PluralCount, all),
	}
	for _, candidate := range all {
		if candidate.ID == id {
			st.target = candidate
			break
		}
	}
	if st.target == nil {
		// Deleted between the unlocked read and the lock.
		return nil, fmt.Errorf("translation %s: %w", id, apperrors.ErrNotFound)
	}
	if entity.Obsolete {
		return nil, s.conflict(st, errObsoleteEntity)
	}
	return st, nil
}

func (s *translationService) loadScope(ctx context.Context, entityID, localeID uuid.UUID) (*models.Entity, *models.Resource, *models.Locale, error) {
	entity, err := s.deps.EntityRepo.Get(ctx, entityID)
	if err != nil {
		return nil, nil, nil, err
	}
	resource, err := s.deps.Cache.Resource(ctx, entity.ResourceID)
	if err != nil {
		return nil, nil, nil, err
	}
	locale, err := s.deps.Cache.Locale(ctx, localeID)
	if err != nil {
		return nil, nil, nil, err
	}
	return entity, resource, locale, nil
}

func (s *translationService) checkWritable(ctx context.Context, transition, translationID string, resource *models.Resource, locale *models.Locale) error {
	readOnly, err := s.deps.ReadOnly.IsReadOnly(ctx, resource.ProjectID, locale.ID)
	if err != nil {
		return fmt.Errorf("failed to check read-only state: %w", err)
	}
	if readOnly {
		return apperrors.NewConflict(translationID, transition, "", apperrors.ErrReadOnly)
	}
	return nil
}

// finish reselects the active translation of the target's plural group,
// takes the after snapshot and rolls the delta up.
func (s *translationService) finish(ctx context.Context, st *transitionState, latest *models.Translation) (*transitionResult, error) {
	if err := s.reselect(ctx, st, st.target.PluralForm); err != nil {
		return nil, err
	}

	after := stats.Snapshot(st.entity, st.locale.PluralCount, st.all)
	delta := stats.Diff(st.before, after)

	rollup, err := s.deps.Rollup.Apply(ctx, st.resource.ID, st.locale.ID, delta, latest)
	if err != nil {
		return nil, err
	}
	return &transitionResult{translation: latest, rollup: rollup}, nil
}

// reselect recomputes the active translation of one plural group and writes
// the active flags when they changed.
func (s *translationService) reselect(ctx context.Context, st *transitionState, form *int) error {
	group := sameGroup(st.all, form)
	winner := SelectActive(group)

	changed := false
	for _, t := range group {
		want := winner != nil && t.ID == winner.ID
		if t.Active != want {
			changed = true
		}
	}
	if !changed {
		return nil
	}

	var winnerID *uuid.UUID
	if winner != nil {
		id := winner.ID
		winnerID = &id
	}
	if err := s.deps.TranslationRepo.SetActive(ctx, st.entity.ID, st.locale.ID, form, winnerID); err != nil {
		return err
	}
	for _, t := range group {
		t.Active = winner != nil && t.ID == winner.ID
	}
	return nil
}

// applyApproval approves t and rejects every other reviewed translation of
// its plural group, so at most one translation per group is approved.
func (s *translationService) applyApproval(ctx context.Context, st *transitionState, t *models.Translation) error {
	for _, other := range sameGroup(st.all, t.PluralForm) {
		if other.ID == t.ID || other.Rejected {
			continue
		}
		if !other.Approved && !other.Pretranslated && !other.Fuzzy {
			continue
		}
		if err := s.markRejected(ctx, st, other); err != nil {
			return err
		}
		if err := s.deps.ActionLog.Log(ctx, translationAction(models.ActionTranslationRejected, st.user, other.ID, true)); err != nil {
			return err
		}
	}

	t.Approved = true
	t.ApprovedUser = stringPtr(st.user)
	t.ApprovedDate = timePtr(st.now)
	t.Pretranslated = false
	t.Fuzzy = false
	t.Rejected = false
	t.RejectedUser = nil
	t.RejectedDate = nil
	t.UnapprovedUser = nil
	t.UnapprovedDate = nil
	if err := s.deps.TranslationRepo.UpdateState(ctx, t); err != nil {
		return err
	}

	exists, err := s.deps.TMRepo.ExistsForTranslation(ctx, t.ID)
	if err != nil {
		return err
	}
	if !exists {
		return s.createTMEntry(ctx, st, t)
	}
	return nil
}

// markRejected rejects t, dropping its translation memory entries when it
// had produced any.
func (s *translationService) markRejected(ctx context.Context, st *transitionState, t *models.Translation) error {
	if t.Approved || t.Pretranslated || t.Fuzzy {
		if _, err := s.deps.TMRepo.DeleteByTranslation(ctx, t.ID); err != nil {
			return err
		}
	}
	t.Rejected = true
	t.RejectedUser = stringPtr(st.user)
	t.RejectedDate = timePtr(st.now)
	t.Approved = false
	t.ApprovedUser = nil
	t.ApprovedDate = nil
	t.Pretranslated = false
	t.Fuzzy = false
	return s.deps.TranslationRepo.UpdateState(ctx, t)
}

func (s *translationService) createTMEntry(ctx context.Context, st *transitionState, t *models.Translation) error {
	projectID := st.resource.ProjectID
	return s.deps.TMRepo.Create(ctx, &models.TranslationMemoryEntry{
		Source:        sourceFor(st.entity, t.PluralForm),
		Target:        t.String,
		EntityID:      st.entity.ID,
		TranslationID: t.ID,
		LocaleID:      st.locale.ID,
		ProjectID:     &projectID,
	})
}

func (s *translationService) conflict(st *transitionState, reason error) error {
	return apperrors.NewConflict(st.target.ID.String(), st.transition, st.target.State(), reason)
}

func (s *translationService) notify(ctx context.Context, transition string, result *transitionResult) {
	if result.rollup == nil {
		return
	}
	event := &StatsChangedEvent{
		Transition: transition,
		Delta:      result.rollup.Delta,
		Scopes:     result.rollup.Scopes,
		At:         s.deps.Now(),
	}
	if result.translation != nil {
		event.TranslationID = result.translation.ID
	}
	if err := s.deps.Notifier.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish stats event",
			zap.String("transition", transition),
			zap.Error(err))
	}
}

func (s *translationService) record(transition string, err error) {
	outcome := outcomeOK
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrReadOnly):
		outcome = outcomeReadOnly
	case errors.Is(err, apperrors.ErrConflict):
		outcome = outcomeConflict
	case errors.Is(err, apperrors.ErrNotFound):
		outcome = outcomeNotFound
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrInvalidAction):
		outcome = outcomeInvalid
	default:
		outcome = outcomeError
	}
	transitionsTotal.WithLabelValues(transition, outcome).Inc()
}

// classifyCommitError turns errors caused by a concurrent writer into
// retryable conflicts. Everything else passes through unchanged.
func classifyCommitError(err error, transition string, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	var conflict *apperrors.ConflictError
	if errors.As(err, &conflict) {
		return err
	}
	if database.IsConcurrentWriteConflict(err) {
		return &apperrors.ConflictError{
			TranslationID: id.String(),
			Transition:    transition,
			Retryable:     true,
			Reason:        err,
		}
	}
	return err
}

func validateCreate(input *CreateTranslationInput, entity *models.Entity, locale *models.Locale) error {
	if input.User == "" {
		return fmt.Errorf("%w: user is required", apperrors.ErrInvalidInput)
	}
	if input.Pretranslated && input.Fuzzy {
		return fmt.Errorf("%w: a translation cannot be both pretranslated and fuzzy", apperrors.ErrInvalidInput)
	}
	if entity.Obsolete {
		return apperrors.NewConflict("", TransitionCreate, "", errObsoleteEntity)
	}
	if entity.IsPlural() {
		if input.PluralForm == nil {
			return fmt.Errorf("%w: plural entity requires a plural form", apperrors.ErrInvalidInput)
		}
		if *input.PluralForm < 0 || *input.PluralForm >= locale.PluralCount {
			return fmt.Errorf("%w: plural form %d out of range for %s (%d forms)",
				apperrors.ErrInvalidInput, *input.PluralForm, locale.Code, locale.PluralCount)
		}
	} else if input.PluralForm != nil {
		return fmt.Errorf("%w: non-plural entity does not take a plural form", apperrors.ErrInvalidInput)
	}
	return nil
}

// sourceFor picks the source text a plural form translates.
func sourceFor(entity *models.Entity, form *int) string {
	if form != nil && *form > 0 && entity.IsPlural() {
		return entity.StringPlural
	}
	return entity.String
}

func copyChecks(result *CheckResult) []*models.TranslationCheck {
	if result == nil {
		return nil
	}
	out := make([]*models.TranslationCheck, 0, len(result.Checks))
	for _, c := range result.Checks {
		out = append(out, &models.TranslationCheck{
			Severity: c.Severity,
			Library:  c.Library,
			Message:  c.Message,
		})
	}
	return out
}

func without(list []*models.Translation, id uuid.UUID) []*models.Translation {
	out := list[:0:0]
	for _, t := range list {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func stringPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
