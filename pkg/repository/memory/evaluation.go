package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
)

type evaluationRepository struct {
	mu          sync.RWMutex
	evaluations []*model.RiskEvaluation
}

func newEvaluationRepository() *evaluationRepository {
	return &evaluationRepository{}
}

func (r *evaluationRepository) Create(ctx context.Context, eval *model.RiskEvaluation) (*model.RiskEvaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *eval
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = time.Now().UTC()

	r.evaluations = append(r.evaluations, &created)
	result := created
	return &result, nil
}

func (r *evaluationRepository) ListByProcess(ctx context.Context, processID int64) ([]*model.RiskEvaluation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.RiskEvaluation
	for _, eval := range r.evaluations {
		if eval.ProcessID == processID {
			copied := *eval
			result = append(result, &copied)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}
