package slack

import (
	"context"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
)

// Service delivers workflow notifications to Slack. The workflow treats
// delivery as fire-and-forget: a delivery failure is logged, never
// propagated back to the actor.
type Service interface {
	// DeliverNotification sends the notification as a direct message to
	// the target user.
	DeliverNotification(ctx context.Context, n *model.Notification) error
}
