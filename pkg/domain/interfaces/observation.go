package interfaces

import (
	"context"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
)

type ObservationRepository interface {
	// Create creates a new observation
	Create(ctx context.Context, obs *model.Observation) (*model.Observation, error)

	// Get retrieves an observation by ID
	Get(ctx context.Context, id string) (*model.Observation, error)

	// ListByProcess retrieves all observations for a process
	ListByProcess(ctx context.Context, processID int64) ([]*model.Observation, error)

	// ListPending retrieves unresolved observations for a process
	ListPending(ctx context.Context, processID int64) ([]*model.Observation, error)

	// Update replaces an existing observation. Observations are never
	// deleted; resolution is the only mutation.
	Update(ctx context.Context, obs *model.Observation) (*model.Observation, error)
}
