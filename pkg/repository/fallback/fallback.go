// Package fallback decorates a primary repository with the durable local
// side-channel. When a primary write fails, the record is appended to the
// side-channel instead and the operation is reported as succeeded, trading
// strict consistency for availability. Callers needing hard durability
// must check the primary store independently.
package fallback

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/grc-lab/riskdesk/pkg/domain/interfaces"
	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/utils/logging"
)

// Side-channel keys, one per degraded record kind
const (
	KeyProcess     = "process"
	KeyObservation = "observation"
	KeyHistory     = "history"
)

type Repository struct {
	primary interfaces.Repository
	side    interfaces.SideChannel

	process     *processFallback
	observation *observationFallback
	history     *historyFallback
}

var _ interfaces.Repository = &Repository{}

// New wraps primary so that process, observation and history writes
// degrade to the side-channel on failure. Reads and the remaining
// sub-repositories pass through untouched.
func New(primary interfaces.Repository, side interfaces.SideChannel) *Repository {
	r := &Repository{
		primary: primary,
		side:    side,
	}
	r.process = &processFallback{ProcessRepository: primary.Process(), side: side}
	r.observation = &observationFallback{ObservationRepository: primary.Observation(), side: side}
	r.history = &historyFallback{HistoryRepository: primary.History(), side: side}
	return r
}

func (r *Repository) Process() interfaces.ProcessRepository {
	return r.process
}

func (r *Repository) Observation() interfaces.ObservationRepository {
	return r.observation
}

func (r *Repository) History() interfaces.HistoryRepository {
	return r.history
}

func (r *Repository) Notification() interfaces.NotificationRepository {
	return r.primary.Notification()
}

func (r *Repository) Evaluation() interfaces.EvaluationRepository {
	return r.primary.Evaluation()
}

func (r *Repository) Close() error {
	return r.primary.Close()
}

// degrade logs the primary failure and appends the record to the
// side-channel. An error from the side-channel itself is returned: when
// both stores fail there is nothing left to degrade to.
func degrade(ctx context.Context, side interfaces.SideChannel, key string, payload any, cause error) error {
	logging.From(ctx).Warn("primary store write failed, degrading to side-channel",
		"key", key,
		"error", cause.Error(),
	)
	return side.Append(ctx, key, payload)
}

type processFallback struct {
	interfaces.ProcessRepository
	side interfaces.SideChannel
}

func (r *processFallback) Update(ctx context.Context, process *model.RiskProcess) (*model.RiskProcess, error) {
	updated, err := r.ProcessRepository.Update(ctx, process)
	if err == nil {
		return updated, nil
	}

	optimistic := process.Clone()
	optimistic.UpdatedAt = time.Now().UTC()
	if sideErr := degrade(ctx, r.side, KeyProcess, optimistic, err); sideErr != nil {
		return nil, sideErr
	}
	return optimistic, nil
}

type observationFallback struct {
	interfaces.ObservationRepository
	side interfaces.SideChannel
}

func (r *observationFallback) Create(ctx context.Context, obs *model.Observation) (*model.Observation, error) {
	created, err := r.ObservationRepository.Create(ctx, obs)
	if err == nil {
		return created, nil
	}

	optimistic := obs.Clone()
	if optimistic.ID == "" {
		optimistic.ID = uuid.NewString()
	}
	optimistic.CreatedAt = time.Now().UTC()
	if sideErr := degrade(ctx, r.side, KeyObservation, optimistic, err); sideErr != nil {
		return nil, sideErr
	}
	return optimistic, nil
}

func (r *observationFallback) Update(ctx context.Context, obs *model.Observation) (*model.Observation, error) {
	updated, err := r.ObservationRepository.Update(ctx, obs)
	if err == nil {
		return updated, nil
	}

	optimistic := obs.Clone()
	if sideErr := degrade(ctx, r.side, KeyObservation, optimistic, err); sideErr != nil {
		return nil, sideErr
	}
	return optimistic, nil
}

type historyFallback struct {
	interfaces.HistoryRepository
	side interfaces.SideChannel
}

func (r *historyFallback) Append(ctx context.Context, entry *model.HistoryEntry) (*model.HistoryEntry, error) {
	created, err := r.HistoryRepository.Append(ctx, entry)
	if err == nil {
		return created, nil
	}

	optimistic := entry.Clone()
	if optimistic.ID == "" {
		optimistic.ID = uuid.NewString()
	}
	if optimistic.OccurredAt.IsZero() {
		optimistic.OccurredAt = time.Now().UTC()
	}
	if sideErr := degrade(ctx, r.side, KeyHistory, optimistic, err); sideErr != nil {
		return nil, sideErr
	}
	return optimistic, nil
}
