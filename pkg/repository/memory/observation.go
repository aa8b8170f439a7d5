package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
)

type observationRepository struct {
	mu           sync.RWMutex
	observations map[string]*model.Observation
}

func newObservationRepository() *observationRepository {
	return &observationRepository{
		observations: make(map[string]*model.Observation),
	}
}

func (r *observationRepository) Create(ctx context.Context, obs *model.Observation) (*model.Observation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := obs.Clone()
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = time.Now().UTC()

	r.observations[created.ID] = created
	return created.Clone(), nil
}

func (r *observationRepository) Get(ctx context.Context, id string) (*model.Observation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	obs, exists := r.observations[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "observation not found", goerr.V("id", id))
	}

	return obs.Clone(), nil
}

func (r *observationRepository) ListByProcess(ctx context.Context, processID int64) ([]*model.Observation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Observation
	for _, obs := range r.observations {
		if obs.ProcessID == processID {
			result = append(result, obs.Clone())
		}
	}
	sortObservations(result)

	return result, nil
}

func (r *observationRepository) ListPending(ctx context.Context, processID int64) ([]*model.Observation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Observation
	for _, obs := range r.observations {
		if obs.ProcessID == processID && !obs.Resolved {
			result = append(result, obs.Clone())
		}
	}
	sortObservations(result)

	return result, nil
}

func (r *observationRepository) Update(ctx context.Context, obs *model.Observation) (*model.Observation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.observations[obs.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "observation not found", goerr.V("id", obs.ID))
	}

	updated := obs.Clone()
	updated.CreatedAt = existing.CreatedAt

	r.observations[updated.ID] = updated
	return updated.Clone(), nil
}

func sortObservations(obs []*model.Observation) {
	sort.Slice(obs, func(i, j int) bool {
		return obs[i].CreatedAt.Before(obs[j].CreatedAt)
	})
}
