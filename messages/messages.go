package messages

import (
	"fmt"
)

// DesyncNotice is posted to the channel after the status message of a
// server was deleted by someone else.
func DesyncNotice(kind, endpoint string) string {
	return fmt.Sprintf(
		"The status message for %s server **%s** was deleted, so it is no longer being monitored.\n"+
			"Add it again to resume status updates.",
		kind, endpoint,
	)
}
