package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-l10n/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
	"github.com/ekaya-inc/ekaya-l10n/pkg/repositories"
)

// ActionLogService is the audit sink for translation actions. Entries are
// validated against the ActionKind table before they are written; an invalid
// entry aborts the surrounding transition.
type ActionLogService interface {
	Log(ctx context.Context, entry *models.ActionLogEntry) error
	ListForTranslation(ctx context.Context, translationID uuid.UUID) ([]*models.ActionLogEntry, error)
}

type actionLogService struct {
	repo   repositories.ActionLogRepository
	logger *zap.Logger
}

// NewActionLogService creates a new ActionLogService.
func NewActionLogService(repo repositories.ActionLogRepository, logger *zap.Logger) ActionLogService {
	return &actionLogService{
		repo:   repo,
		logger: logger.Named("action-log"),
	}
}

var _ ActionLogService = (*actionLogService)(nil)

func (s *actionLogService) Log(ctx context.Context, entry *models.ActionLogEntry) error {
	if err := entry.Validate(); err != nil {
		s.logger.Error("Rejected action log entry",
			zap.String("action_type", string(entry.ActionType)),
			zap.Bool("implicit", entry.IsImplicit),
			zap.Error(err))
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidAction, err)
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return err
	}
	s.logger.Debug("Logged action",
		zap.String("action_type", string(entry.ActionType)),
		zap.String("performed_by", entry.PerformedBy),
		zap.Bool("implicit", entry.IsImplicit))
	return nil
}

func (s *actionLogService) ListForTranslation(ctx context.Context, translationID uuid.UUID) ([]*models.ActionLogEntry, error) {
	return s.repo.GetByTranslation(ctx, translationID)
}

func translationAction(kind models.ActionKind, user string, translationID uuid.UUID, implicit bool) *models.ActionLogEntry {
	id := translationID
	return &models.ActionLogEntry{
		ActionType:    kind,
		PerformedBy:   user,
		TranslationID: &id,
		IsImplicit:    implicit,
	}
}

func deletionAction(user string, entityID, localeID uuid.UUID) *models.ActionLogEntry {
	e, l := entityID, localeID
	return &models.ActionLogEntry{
		ActionType:  models.ActionTranslationDeleted,
		PerformedBy: user,
		EntityID:    &e,
		LocaleID:    &l,
	}
}
