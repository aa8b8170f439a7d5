package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskdesk/pkg/domain/interfaces"
	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

type NotificationUseCase struct {
	repo interfaces.Repository
}

func NewNotificationUseCase(repo interfaces.Repository) *NotificationUseCase {
	return &NotificationUseCase{
		repo: repo,
	}
}

// ListNotifications returns a user's notifications, newest first
func (uc *NotificationUseCase) ListNotifications(ctx context.Context, target types.UserID, unreadOnly bool) ([]*model.Notification, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	notifications, err := uc.repo.Notification().ListByTarget(ctx, target, unreadOnly)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list notifications", goerr.V("target", target))
	}

	return notifications, nil
}

// MarkRead dismisses a notification. Read state is independent of the
// workflow that produced the notification.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id string) (*model.Notification, error) {
	n, err := uc.repo.Notification().MarkRead(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrNotificationNotFound, "notification not found", goerr.V("id", id))
	}

	return n, nil
}
