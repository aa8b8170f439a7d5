package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskdesk/pkg/domain/interfaces"
	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
	"github.com/grc-lab/riskdesk/pkg/service/slack"
	"github.com/grc-lab/riskdesk/pkg/utils/async"
	"github.com/grc-lab/riskdesk/pkg/utils/errutil"
)

// ReviewUseCase implements the process review workflow. Every operation
// follows the same sequence: pre-flight legality check, primary
// persistence write (degrading to the side-channel behind the repository
// decorator), then unconditional history append and, on success, a
// notification to the counterpart actor.
type ReviewUseCase struct {
	repo     interfaces.Repository
	notifier slack.Service
}

func NewReviewUseCase(repo interfaces.Repository, notifier slack.Service) *ReviewUseCase {
	return &ReviewUseCase{
		repo:     repo,
		notifier: notifier,
	}
}

// SubmitForReview moves a Draft process into review and assigns the
// reviewer. On re-submission after a return-to-draft, an empty reviewerID
// reuses the retained reviewer so the same person is re-notified.
func (uc *ReviewUseCase) SubmitForReview(ctx context.Context, processID int64, reviewerID types.UserID) (*model.RiskProcess, error) {
	actor, err := model.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	process, err := uc.getProcess(ctx, processID)
	if err != nil {
		return nil, err
	}

	switch process.State {
	case types.ProcessStateDraft:
		// legal
	case types.ProcessStateInReview, types.ProcessStateApproved, types.ProcessStateHasObservations:
		return nil, goerr.Wrap(ErrIllegalTransition, "only a draft process can be submitted",
			goerr.V(ProcessIDKey, processID), goerr.V(StateKey, process.State))
	default:
		return nil, goerr.New("unknown process state",
			goerr.V(ProcessIDKey, processID), goerr.V(StateKey, process.State))
	}

	if reviewerID == "" {
		reviewerID = process.ReviewerID
	}
	if reviewerID == "" {
		return nil, goerr.Wrap(ErrReviewerRequired, "submission requires a reviewer",
			goerr.V(ProcessIDKey, processID))
	}

	now := time.Now().UTC()
	process.State = types.ProcessStateInReview
	process.ReviewerID = reviewerID
	process.SubmittedAt = &now

	updated, err := uc.repo.Process().Update(ctx, process)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to persist submission", goerr.V(ProcessIDKey, processID))
	}

	uc.recordHistory(ctx, actor, &model.HistoryEntry{
		ProcessID:   processID,
		Action:      types.HistoryActionSubmitted,
		Description: fmt.Sprintf("%q submitted for review", updated.Title),
	})
	uc.notify(ctx, &model.Notification{
		TargetUserID: reviewerID,
		Kind:         types.NotificationKindSubmitted,
		Title:        "Process submitted for review",
		Body:         fmt.Sprintf("%s submitted %q for your review", actor.Name, updated.Title),
		ProcessID:    processID,
	})

	return updated, nil
}

// Approve marks an in-review process as approved. Approved is terminal.
func (uc *ReviewUseCase) Approve(ctx context.Context, processID int64) (*model.RiskProcess, error) {
	actor, err := model.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	process, err := uc.getProcess(ctx, processID)
	if err != nil {
		return nil, err
	}

	switch process.State {
	case types.ProcessStateInReview:
		// legal
	case types.ProcessStateDraft, types.ProcessStateApproved, types.ProcessStateHasObservations:
		return nil, goerr.Wrap(ErrIllegalTransition, "only an in-review process can be approved",
			goerr.V(ProcessIDKey, processID), goerr.V(StateKey, process.State))
	default:
		return nil, goerr.New("unknown process state",
			goerr.V(ProcessIDKey, processID), goerr.V(StateKey, process.State))
	}

	now := time.Now().UTC()
	process.State = types.ProcessStateApproved
	process.ApprovedAt = &now

	updated, err := uc.repo.Process().Update(ctx, process)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to persist approval", goerr.V(ProcessIDKey, processID))
	}

	uc.recordHistory(ctx, actor, &model.HistoryEntry{
		ProcessID:   processID,
		Action:      types.HistoryActionApproved,
		Description: fmt.Sprintf("%q approved", updated.Title),
	})
	uc.notify(ctx, &model.Notification{
		TargetUserID: updated.OwnerID,
		Kind:         types.NotificationKindApproved,
		Title:        "Process approved",
		Body:         fmt.Sprintf("%s approved %q", actor.Name, updated.Title),
		ProcessID:    processID,
	})

	return updated, nil
}

// ReturnWithObservations records a reviewer objection and moves the
// process out of review. One observation is created per call; prior
// unresolved observations are never overwritten.
func (uc *ReviewUseCase) ReturnWithObservations(ctx context.Context, processID int64, text string) (*model.RiskProcess, error) {
	actor, err := model.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, goerr.Wrap(ErrEmptyObservationText, "observation text is required",
			goerr.V(ProcessIDKey, processID))
	}

	process, err := uc.getProcess(ctx, processID)
	if err != nil {
		return nil, err
	}

	switch process.State {
	case types.ProcessStateInReview:
		// legal
	case types.ProcessStateDraft, types.ProcessStateApproved, types.ProcessStateHasObservations:
		return nil, goerr.Wrap(ErrIllegalTransition, "observations can only be returned on an in-review process",
			goerr.V(ProcessIDKey, processID), goerr.V(StateKey, process.State))
	default:
		return nil, goerr.New("unknown process state",
			goerr.V(ProcessIDKey, processID), goerr.V(StateKey, process.State))
	}

	obs, err := uc.repo.Observation().Create(ctx, &model.Observation{
		ProcessID: processID,
		AuthorID:  actor.ID,
		Text:      text,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create observation", goerr.V(ProcessIDKey, processID))
	}

	process.State = types.ProcessStateHasObservations

	updated, err := uc.repo.Process().Update(ctx, process)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to persist returned process", goerr.V(ProcessIDKey, processID))
	}

	uc.recordHistory(ctx, actor, &model.HistoryEntry{
		ProcessID:   processID,
		Action:      types.HistoryActionObservationsAdded,
		Description: fmt.Sprintf("%q returned with observations", updated.Title),
		FieldDiffs: map[string]model.FieldDiff{
			"observation": {Before: "", After: text},
		},
	})
	uc.notify(ctx, &model.Notification{
		TargetUserID:  updated.OwnerID,
		Kind:          types.NotificationKindObservationsAdded,
		Title:         "Observations on your process",
		Body:          fmt.Sprintf("%s returned %q with observations: %s", actor.Name, updated.Title, text),
		ProcessID:     processID,
		ObservationID: obs.ID,
	})

	return updated, nil
}

// ResolveObservations marks the listed observations as resolved. When no
// pending observation remains for the process it returns to Draft and the
// retained reviewer is notified; otherwise the state is unchanged. The
// process never reaches Draft while any observation remains unresolved.
func (uc *ReviewUseCase) ResolveObservations(ctx context.Context, processID int64, observationIDs []string) (*model.RiskProcess, error) {
	actor, err := model.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if len(observationIDs) == 0 {
		return nil, goerr.Wrap(ErrNoObservationIDs, "nothing to resolve",
			goerr.V(ProcessIDKey, processID))
	}

	process, err := uc.getProcess(ctx, processID)
	if err != nil {
		return nil, err
	}

	pending, err := uc.repo.Observation().ListPending(ctx, processID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list pending observations", goerr.V(ProcessIDKey, processID))
	}

	// HasObservations is the expected state, but any state with pending
	// observations is accepted defensively.
	if process.State != types.ProcessStateHasObservations && len(pending) == 0 {
		return nil, goerr.Wrap(ErrIllegalTransition, "process has no pending observations",
			goerr.V(ProcessIDKey, processID), goerr.V(StateKey, process.State))
	}

	now := time.Now().UTC()
	var resolvedTexts []string
	for _, id := range observationIDs {
		obs, err := uc.repo.Observation().Get(ctx, id)
		if err != nil {
			return nil, goerr.Wrap(ErrObservationNotFound, "unknown observation",
				goerr.V(ObservationIDKey, id), goerr.V(ProcessIDKey, processID))
		}
		if obs.ProcessID != processID {
			return nil, goerr.Wrap(ErrObservationMismatch, "observation belongs to another process",
				goerr.V(ObservationIDKey, id), goerr.V(ProcessIDKey, processID))
		}
		if obs.Resolved {
			continue
		}

		obs.Resolved = true
		obs.ResolvedAt = &now
		if _, err := uc.repo.Observation().Update(ctx, obs); err != nil {
			return nil, goerr.Wrap(err, "failed to resolve observation",
				goerr.V(ObservationIDKey, id), goerr.V(ProcessIDKey, processID))
		}
		resolvedTexts = append(resolvedTexts, obs.Text)
	}

	remaining, err := uc.repo.Observation().ListPending(ctx, processID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to recount pending observations", goerr.V(ProcessIDKey, processID))
	}

	stateBefore := process.State
	updated := process
	if len(remaining) == 0 {
		process.State = types.ProcessStateDraft
		updated, err = uc.repo.Process().Update(ctx, process)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to persist resolved process", goerr.V(ProcessIDKey, processID))
		}
	}

	diffs := map[string]model.FieldDiff{
		"state": {Before: stateBefore.String(), After: updated.State.String()},
	}
	for i, text := range resolvedTexts {
		diffs[fmt.Sprintf("observation_%d", i+1)] = model.FieldDiff{Before: text, After: "resolved"}
	}
	uc.recordHistory(ctx, actor, &model.HistoryEntry{
		ProcessID:   processID,
		Action:      types.HistoryActionObservationsResolved,
		Description: fmt.Sprintf("%d observation(s) resolved on %q", len(resolvedTexts), updated.Title),
		FieldDiffs:  diffs,
	})

	if len(remaining) == 0 && updated.ReviewerID != "" {
		uc.notify(ctx, &model.Notification{
			TargetUserID: updated.ReviewerID,
			Kind:         types.NotificationKindObservationsResolved,
			Title:        "Observations resolved",
			Body:         fmt.Sprintf("%s resolved all observations on %q", actor.Name, updated.Title),
			ProcessID:    processID,
		})
	}

	return updated, nil
}

func (uc *ReviewUseCase) getProcess(ctx context.Context, processID int64) (*model.RiskProcess, error) {
	process, err := uc.repo.Process().Get(ctx, processID)
	if err != nil {
		return nil, goerr.Wrap(ErrProcessNotFound, "process not found", goerr.V(ProcessIDKey, processID))
	}
	return process, nil
}

// recordHistory appends an audit entry attributed to the actor. The audit
// trail is best effort: once the state mutation has been attempted, a
// history failure is logged but never rolls the operation back.
func (uc *ReviewUseCase) recordHistory(ctx context.Context, actor *model.Actor, entry *model.HistoryEntry) {
	entry.ActorID = actor.ID
	entry.ActorName = actor.Name
	if _, err := uc.repo.History().Append(ctx, entry); err != nil {
		_ = errutil.Handle(ctx, err, "failed to append history entry")
	}
}

// notify stores the notification record and, when a notifier is
// configured, dispatches Slack delivery without awaiting it.
func (uc *ReviewUseCase) notify(ctx context.Context, n *model.Notification) {
	created, err := uc.repo.Notification().Create(ctx, n)
	if err != nil {
		_ = errutil.Handle(ctx, err, "failed to create notification")
		return
	}

	if uc.notifier != nil {
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.notifier.DeliverNotification(ctx, created)
		})
	}
}
