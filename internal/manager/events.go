package manager

import (
	"github.com/mindtris/uitheme/internal/theme"
)

// Event is the payload published on the manager's broker.
//
// Event types: pubsub.AppliedEvent after a successful apply,
// pubsub.FallbackEvent when the fallback ran (Err is set if it failed too),
// pubsub.SavedEvent after save-current or an artifact import, and
// pubsub.ResetEvent after ResetTheme.
type Event struct {
	ApplyID string
	Request string
	Mode    theme.Mode
	Err     error
}
