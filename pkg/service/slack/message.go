package slack

import (
	"fmt"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

// FormatNotification renders a notification as a Slack message text
func FormatNotification(n *model.Notification) string {
	return fmt.Sprintf("%s %s\n%s\n(process #%d)", kindEmoji(n.Kind), n.Title, n.Body, n.ProcessID)
}

func kindEmoji(kind types.NotificationKind) string {
	switch kind {
	case types.NotificationKindSubmitted:
		return ":inbox_tray:"
	case types.NotificationKindApproved:
		return ":white_check_mark:"
	case types.NotificationKindObservationsAdded:
		return ":warning:"
	case types.NotificationKindObservationsResolved:
		return ":recycle:"
	default:
		return ":bell:"
	}
}
