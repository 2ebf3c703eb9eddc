package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

// now is the clock used for timestamps written by the services.
var now = func() time.Time { return time.Now().UTC() }

// validate wraps shape errors into a *domain.ValidationError.
func validate(v interface{ Validate() error }) error {
	if err := v.Validate(); err != nil {
		return &domain.ValidationError{Err: err}
	}
	return nil
}

// notify publishes a change after its write committed. Publishing is best effort:
// the write already succeeded, so a failure is logged and not returned.
func notify(ctx context.Context, publisher domain.EventPublisher, change domain.Change) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, change); err != nil {
		slog.WarnContext(ctx, "publishing change failed",
			"entity", change.Entity,
			"action", string(change.Action),
			"entity_id", change.EntityID,
			"error", err,
		)
	}
}
