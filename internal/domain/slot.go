package domain

import (
	"time"

	"github.com/m04kA/SMC-BeautyBookingService/pkg/types"
)

// TimeSlot represents a bookable appointment window for one service on one date.
// IsAvailable is the single source of truth for bookability: it is flipped
// eagerly when a booking takes the slot, not derived from bookings at read time.
type TimeSlot struct {
	ID          int64
	ServiceID   int64
	ProviderID  int64
	SlotDate    time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Overlaps reports whether two slots truly overlap in time.
// Adjacent slots (one ends exactly where the other starts) do NOT overlap:
// the check uses strict inequalities on both boundaries.
func (s *TimeSlot) Overlaps(other *TimeSlot) bool {
	return other.StartTime.IsBefore(s.EndTime) && s.StartTime.IsBefore(other.EndTime)
}
