package usecase

import (
	"context"

	"github.com/studentos/backend/domain"
)

// LifecycleRecorder receives candidate lifecycle events for local analytics.
// Ignore reasons in particular are recorded here and never persisted on the
// candidate row. Implementations must tolerate being handed a nil context
// value by tests; use cases tolerate a nil recorder.
type LifecycleRecorder interface {
	RecordConfirm(ctx context.Context, candidateID, taskID, userID string) error
	RecordIgnore(ctx context.Context, candidateID, userID string, reason domain.IgnoreReason) error
}
