package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// WeeklyScheduleBlock represents a recurring availability window of a professional
// tied to a day of week rather than to a specific date
type WeeklyScheduleBlock struct {
	ID             int64
	ProfessionalID int64
	DayOfWeek      time.Weekday // 0 = Sunday .. 6 = Saturday
	StartTime      types.TimeString
	EndTime        types.TimeString
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the block invariants
func (b *WeeklyScheduleBlock) Validate() error {
	if b.DayOfWeek < time.Sunday || b.DayOfWeek > time.Saturday {
		return fmt.Errorf("%w: %d", ErrInvalidDayOfWeek, b.DayOfWeek)
	}
	if err := b.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidTimeRange, err)
	}
	if err := b.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidTimeRange, err)
	}
	if !b.StartTime.IsBefore(b.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidTimeRange)
	}
	return nil
}

// Overlaps returns true if both blocks are active, fall on the same day and intersect
func (b *WeeklyScheduleBlock) Overlaps(other *WeeklyScheduleBlock) bool {
	if !b.Active || !other.Active || b.DayOfWeek != other.DayOfWeek {
		return false
	}
	return b.StartTime.IsBefore(other.EndTime) && b.EndTime.IsAfter(other.StartTime)
}

// DurationMinutes returns the block length
func (b *WeeklyScheduleBlock) DurationMinutes() int {
	return b.EndTime.Minutes() - b.StartTime.Minutes()
}

// CheckNoOverlap validates that candidate does not intersect any other active block of the same day
// Blocks with the same ID as candidate are skipped, so the check works for updates
func CheckNoOverlap(candidate *WeeklyScheduleBlock, existing []*WeeklyScheduleBlock) error {
	for _, other := range existing {
		if candidate.ID != 0 && other.ID == candidate.ID {
			continue
		}
		if candidate.Overlaps(other) {
			return fmt.Errorf("%w: %s-%s intersects block id=%d (%s-%s)", ErrBlockOverlap,
				candidate.StartTime, candidate.EndTime, other.ID, other.StartTime, other.EndTime)
		}
	}
	return nil
}
