package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
)

// ScopeRef identifies one aggregate scope record.
type ScopeRef struct {
	Scope string    `json:"scope"`
	ID    uuid.UUID `json:"id"`
}

// StatsChangedEvent is published after a transition commits.
type StatsChangedEvent struct {
	Transition    string            `json:"transition"`
	TranslationID uuid.UUID         `json:"translation_id"`
	Delta         models.StatsDelta `json:"delta"`
	Scopes        []ScopeRef        `json:"scopes"`
	At            time.Time         `json:"at"`
}

// StatsNotifier tells downstream consumers (dashboards, cache invalidation)
// that aggregate scopes changed. Delivery is best effort and never affects
// the committed transition.
type StatsNotifier interface {
	Publish(ctx context.Context, event *StatsChangedEvent) error
}

// NoopStatsNotifier drops every event.
type NoopStatsNotifier struct{}

func (NoopStatsNotifier) Publish(context.Context, *StatsChangedEvent) error { return nil }

type redisStatsNotifier struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisStatsNotifier publishes events as JSON on a Redis pub/sub channel.
// A nil client yields a NoopStatsNotifier.
func NewRedisStatsNotifier(client *redis.Client, channel string, logger *zap.Logger) StatsNotifier {
	if client == nil {
		return NoopStatsNotifier{}
	}
	return &redisStatsNotifier{
		client:  client,
		channel: channel,
		logger:  logger.Named("stats-notifier"),
	}
}

func (n *redisStatsNotifier) Publish(ctx context.Context, event *StatsChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal stats event: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish stats event: %w", err)
	}
	n.logger.Debug("Published stats event",
		zap.String("transition", event.Transition),
		zap.String("translation_id", event.TranslationID.String()),
		zap.Int("scopes", len(event.Scopes)))
	return nil
}
