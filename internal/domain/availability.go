package domain

import (
	"context"
	"time"
)

// AvailabilityChecker asks the booking service which candidate rooms have no booking
// overlapping [start, end). The returned ids keep the order the service produced.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, roomIDs []int64, start, end time.Time) ([]int64, error)
}
