package interfaces

import (
	"context"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

type NotificationRepository interface {
	// Create creates a new notification
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)

	// Get retrieves a notification by ID
	Get(ctx context.Context, id string) (*model.Notification, error)

	// ListByTarget retrieves notifications for a user, newest first.
	// When unreadOnly is true, read notifications are excluded.
	ListByTarget(ctx context.Context, target types.UserID, unreadOnly bool) ([]*model.Notification, error)

	// MarkRead marks a notification as read
	MarkRead(ctx context.Context, id string) (*model.Notification, error)
}
