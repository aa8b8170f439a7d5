package slack_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
	"github.com/grc-lab/riskdesk/pkg/service/slack"
)

func TestFormatNotification(t *testing.T) {
	testCases := []struct {
		name  string
		kind  types.NotificationKind
		emoji string
	}{
		{"submitted", types.NotificationKindSubmitted, ":inbox_tray:"},
		{"approved", types.NotificationKindApproved, ":white_check_mark:"},
		{"observations added", types.NotificationKindObservationsAdded, ":warning:"},
		{"observations resolved", types.NotificationKindObservationsResolved, ":recycle:"},
		{"unknown kind falls back to a bell", types.NotificationKind("other"), ":bell:"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			text := slack.FormatNotification(&model.Notification{
				TargetUserID: "u-reviewer",
				Kind:         tc.kind,
				Title:        "Process submitted for review",
				Body:         `Olivia Owner submitted "Vendor onboarding" for your review`,
				ProcessID:    42,
			})

			gt.Bool(t, strings.HasPrefix(text, tc.emoji)).True()
			gt.Bool(t, strings.Contains(text, "Process submitted for review")).True()
			gt.Bool(t, strings.Contains(text, "#42")).True()
		})
	}
}
