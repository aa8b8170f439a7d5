package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskdesk/pkg/domain/interfaces"
	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/scoring"
)

type EvaluationUseCase struct {
	repo interfaces.Repository
	calc *scoring.Calculator
}

func NewEvaluationUseCase(repo interfaces.Repository, calc *scoring.Calculator) *EvaluationUseCase {
	return &EvaluationUseCase{
		repo: repo,
		calc: calc,
	}
}

// Score computes a live score without persisting anything. Inputs are
// clamped into range first; the calculator itself does not validate.
func (uc *EvaluationUseCase) Score(in scoring.Input) scoring.Result {
	return uc.calc.Evaluate(clampInput(in))
}

// RecordEvaluation computes a score and stores it as a snapshot attached
// to the process. The workflow does not interpret the snapshot further;
// reviewers read it when deciding to approve or return.
func (uc *EvaluationUseCase) RecordEvaluation(ctx context.Context, processID int64, in scoring.Input) (*model.RiskEvaluation, error) {
	if _, err := uc.repo.Process().Get(ctx, processID); err != nil {
		return nil, goerr.Wrap(ErrProcessNotFound, "process not found", goerr.V(ProcessIDKey, processID))
	}

	in = clampInput(in)
	result := uc.calc.Evaluate(in)

	eval, err := uc.repo.Evaluation().Create(ctx, &model.RiskEvaluation{
		ProcessID:      processID,
		Impacts:        in.Impacts,
		Probability:    in.Probability,
		Classification: in.Classification.Normalize(),
		WeightedImpact: result.WeightedImpact,
		MaxImpact:      result.MaxImpact,
		InherentScore:  result.InherentScore,
		RiskLevel:      result.RiskLevel,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store evaluation", goerr.V(ProcessIDKey, processID))
	}

	return eval, nil
}

// ListEvaluations returns the scoring snapshots for a process, newest first
func (uc *EvaluationUseCase) ListEvaluations(ctx context.Context, processID int64) ([]*model.RiskEvaluation, error) {
	evals, err := uc.repo.Evaluation().ListByProcess(ctx, processID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list evaluations", goerr.V(ProcessIDKey, processID))
	}

	return evals, nil
}

// clampInput forces ratings into [1,5] (technological may be 0, the
// excluded-dimension variant) and probability into [1,5].
func clampInput(in scoring.Input) scoring.Input {
	clamped := in.Impacts.Clamp(1, 5)
	if in.Impacts.Technological <= 0 {
		clamped.Technological = 0
	}
	in.Impacts = clamped

	if in.Probability < 1 {
		in.Probability = 1
	}
	if in.Probability > 5 {
		in.Probability = 5
	}

	return in
}
