package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskdesk/pkg/domain/interfaces"
	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
	"github.com/grc-lab/riskdesk/pkg/utils/errutil"
)

type ProcessUseCase struct {
	repo interfaces.Repository
}

func NewProcessUseCase(repo interfaces.Repository) *ProcessUseCase {
	return &ProcessUseCase{
		repo: repo,
	}
}

// CreateProcess registers a new draft process owned by the acting user
func (uc *ProcessUseCase) CreateProcess(ctx context.Context, title, description string) (*model.RiskProcess, error) {
	actor, err := model.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if title == "" {
		return nil, goerr.Wrap(ErrTitleRequired, "cannot create process without title")
	}

	created, err := uc.repo.Process().Create(ctx, &model.RiskProcess{
		Title:       title,
		Description: description,
		State:       types.ProcessStateDraft,
		OwnerID:     actor.ID,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create process")
	}

	uc.recordHistory(ctx, actor, &model.HistoryEntry{
		ProcessID:   created.ID,
		Action:      types.HistoryActionCreated,
		Description: fmt.Sprintf("%q created", created.Title),
	})

	return created, nil
}

// UpdateProcess edits the title/description of a process. Only permitted
// while the state allows owner edits (Draft or HasObservations); changed
// fields are recorded as diffs on a Modified history entry.
func (uc *ProcessUseCase) UpdateProcess(ctx context.Context, id int64, title, description string) (*model.RiskProcess, error) {
	actor, err := model.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if title == "" {
		return nil, goerr.Wrap(ErrTitleRequired, "cannot update process without title")
	}

	process, err := uc.repo.Process().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrProcessNotFound, "process not found", goerr.V(ProcessIDKey, id))
	}

	if !process.State.Editable() {
		return nil, goerr.Wrap(ErrNotEditable, "process cannot be edited",
			goerr.V(ProcessIDKey, id), goerr.V(StateKey, process.State))
	}

	diffs := make(map[string]model.FieldDiff)
	if process.Title != title {
		diffs["title"] = model.FieldDiff{Before: process.Title, After: title}
	}
	if process.Description != description {
		diffs["description"] = model.FieldDiff{Before: process.Description, After: description}
	}
	if len(diffs) == 0 {
		return process, nil
	}

	process.Title = title
	process.Description = description

	updated, err := uc.repo.Process().Update(ctx, process)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update process", goerr.V(ProcessIDKey, id))
	}

	uc.recordHistory(ctx, actor, &model.HistoryEntry{
		ProcessID:   id,
		Action:      types.HistoryActionModified,
		Description: fmt.Sprintf("%q modified", updated.Title),
		FieldDiffs:  diffs,
	})

	return updated, nil
}

func (uc *ProcessUseCase) GetProcess(ctx context.Context, id int64) (*model.RiskProcess, error) {
	process, err := uc.repo.Process().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrProcessNotFound, "process not found", goerr.V(ProcessIDKey, id))
	}

	return process, nil
}

func (uc *ProcessUseCase) ListProcesses(ctx context.Context) ([]*model.RiskProcess, error) {
	processes, err := uc.repo.Process().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list processes")
	}

	return processes, nil
}

func (uc *ProcessUseCase) ListProcessesByState(ctx context.Context, state types.ProcessState) ([]*model.RiskProcess, error) {
	if !state.IsValid() {
		return nil, goerr.New("invalid process state", goerr.V(StateKey, state))
	}

	processes, err := uc.repo.Process().ListByState(ctx, state)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list processes", goerr.V(StateKey, state))
	}

	return processes, nil
}

// ListHistory returns the audit trail of a process, newest first
func (uc *ProcessUseCase) ListHistory(ctx context.Context, processID int64) ([]*model.HistoryEntry, error) {
	entries, err := uc.repo.History().ListByProcess(ctx, processID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list history", goerr.V(ProcessIDKey, processID))
	}

	return entries, nil
}

// ListObservations returns a process's observations; pendingOnly narrows
// the result to unresolved ones.
func (uc *ProcessUseCase) ListObservations(ctx context.Context, processID int64, pendingOnly bool) ([]*model.Observation, error) {
	var (
		obs []*model.Observation
		err error
	)
	if pendingOnly {
		obs, err = uc.repo.Observation().ListPending(ctx, processID)
	} else {
		obs, err = uc.repo.Observation().ListByProcess(ctx, processID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list observations", goerr.V(ProcessIDKey, processID))
	}

	return obs, nil
}

func (uc *ProcessUseCase) recordHistory(ctx context.Context, actor *model.Actor, entry *model.HistoryEntry) {
	entry.ActorID = actor.ID
	entry.ActorName = actor.Name
	if _, err := uc.repo.History().Append(ctx, entry); err != nil {
		_ = errutil.Handle(ctx, err, "failed to append history entry")
	}
}
