package interfaces

import (
	"context"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

type ProcessRepository interface {
	// Create creates a new process with auto-generated ID
	Create(ctx context.Context, process *model.RiskProcess) (*model.RiskProcess, error)

	// Get retrieves a process by ID
	Get(ctx context.Context, id int64) (*model.RiskProcess, error)

	// List retrieves all processes
	List(ctx context.Context) ([]*model.RiskProcess, error)

	// ListByState retrieves processes in the given state
	ListByState(ctx context.Context, state types.ProcessState) ([]*model.RiskProcess, error)

	// Update replaces an existing process. Last write wins: there is no
	// optimistic-concurrency token on process records.
	Update(ctx context.Context, process *model.RiskProcess) (*model.RiskProcess, error)
}
