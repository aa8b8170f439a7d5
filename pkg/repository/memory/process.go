package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

type processRepository struct {
	mu        sync.RWMutex
	processes map[int64]*model.RiskProcess
	nextID    int64
}

func newProcessRepository() *processRepository {
	return &processRepository{
		processes: make(map[int64]*model.RiskProcess),
		nextID:    1,
	}
}

func (r *processRepository) Create(ctx context.Context, process *model.RiskProcess) (*model.RiskProcess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := process.Clone()
	created.ID = r.nextID
	created.State = process.State.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.processes[created.ID] = created
	return created.Clone(), nil
}

func (r *processRepository) Get(ctx context.Context, id int64) (*model.RiskProcess, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	process, exists := r.processes[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "process not found", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	return process.Clone(), nil
}

func (r *processRepository) List(ctx context.Context) ([]*model.RiskProcess, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	processes := make([]*model.RiskProcess, 0, len(r.processes))
	for _, p := range r.processes {
		processes = append(processes, p.Clone())
	}

	return processes, nil
}

func (r *processRepository) ListByState(ctx context.Context, state types.ProcessState) ([]*model.RiskProcess, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var processes []*model.RiskProcess
	for _, p := range r.processes {
		if p.State == state {
			processes = append(processes, p.Clone())
		}
	}

	return processes, nil
}

func (r *processRepository) Update(ctx context.Context, process *model.RiskProcess) (*model.RiskProcess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.processes[process.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "process not found", goerr.V("id", process.ID))
	}

	updated := process.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.processes[updated.ID] = updated
	return updated.Clone(), nil
}
