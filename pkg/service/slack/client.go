package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
)

type client struct {
	api *slack.Client
}

var _ Service = &client{}

// New creates a Slack delivery service using a bot token. Notification
// target user IDs are expected to be Slack user IDs.
func New(botToken string) Service {
	return &client{
		api: slack.New(botToken),
	}
}

func (c *client) DeliverNotification(ctx context.Context, n *model.Notification) error {
	channel, _, _, err := c.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users: []string{n.TargetUserID.String()},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to open conversation",
			goerr.V("target", n.TargetUserID),
		)
	}

	if _, _, err := c.api.PostMessageContext(ctx, channel.ID,
		slack.MsgOptionText(FormatNotification(n), false),
	); err != nil {
		return goerr.Wrap(err, "failed to post notification message",
			goerr.V("target", n.TargetUserID),
			goerr.V("channel", channel.ID),
		)
	}

	return nil
}
