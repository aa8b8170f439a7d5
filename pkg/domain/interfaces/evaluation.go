package interfaces

import (
	"context"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
)

type EvaluationRepository interface {
	// Create stores a scoring snapshot
	Create(ctx context.Context, eval *model.RiskEvaluation) (*model.RiskEvaluation, error)

	// ListByProcess retrieves all scoring snapshots for a process,
	// newest first.
	ListByProcess(ctx context.Context, processID int64) ([]*model.RiskEvaluation, error)
}
