package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/grc-lab/riskdesk/pkg/service/slack"
	"github.com/grc-lab/riskdesk/pkg/utils/logging"
)

// Slack holds CLI flags for Slack notification delivery
type Slack struct {
	botToken string
}

// Flags returns CLI flags for Slack configuration
func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token for notification delivery",
			Category:    "Slack",
			Sources:     cli.EnvVars("RISKDESK_SLACK_BOT_TOKEN"),
			Destination: &x.botToken,
		},
	}
}

// LogValue hides the token from startup logs
func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
	)
}

// Configure returns a Slack delivery service, or nil when no token is
// configured. Notifications are always persisted; Slack delivery is an
// optional extra channel.
func (x *Slack) Configure() slack.Service {
	if x.botToken == "" {
		logging.Default().Info("Slack delivery disabled (no bot token)")
		return nil
	}
	return slack.New(x.botToken)
}
