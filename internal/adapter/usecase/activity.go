package usecase

import (
	"context"
	"errors"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// ActivityLogs fans events out to several sinks. Every sink is attempted;
// the failures are joined.
type ActivityLogs []port.ActivityLog

var _ port.ActivityLog = ActivityLogs(nil)

// Record forwards events to every sink.
func (l ActivityLogs) Record(ctx context.Context, events []domain.ActivityEvent) error {
	var errs []error
	for _, sink := range l {
		if sink == nil {
			continue
		}
		if err := sink.Record(ctx, events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
