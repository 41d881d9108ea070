// Package availability turns a weekly schedule, a service duration and the
// appointment ledger into bookable slots and per-date availability.
// Everything here is pure: no I/O, no clock reads, no errors.
package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Generate returns the full tiling of the date with availability flags.
//
// Active blocks of the date's weekday are walked from their start in steps of
// durationMinutes; a slot is kept only if it ends no later than the block end.
// Blocks are concatenated in the given order. A slot is unavailable if it
// overlaps a non-cancelled ledger entry of the same date ([s, e) against
// [a.start, a.end), touching boundaries do not overlap) or if it starts
// before notBefore minutes after midnight. Pass notBefore = 0 to disable.
func Generate(
	date time.Time,
	blocks []*domain.WeeklyScheduleBlock,
	durationMinutes int,
	ledger []*domain.Appointment,
	notBefore int,
) []domain.Slot {
	slots := make([]domain.Slot, 0)
	if durationMinutes <= 0 {
		return slots
	}

	day := domain.DateOf(date)
	busy := busyRanges(day, ledger)

	for _, block := range blocks {
		if block == nil || !block.Active || block.DayOfWeek != day.Weekday() {
			continue
		}

		blockStart := block.StartTime.Minutes()
		blockEnd := block.EndTime.Minutes()
		if blockStart < 0 || blockEnd < 0 {
			continue
		}

		for start := blockStart; start+durationMinutes <= blockEnd; start += durationMinutes {
			end := start + durationMinutes
			slots = append(slots, domain.Slot{
				StartTime: minutesToTime(start),
				EndTime:   minutesToTime(end),
				Available: start >= notBefore && !overlapsAny(start, end, busy),
			})
		}
	}

	return slots
}

// OnlyAvailable returns the bookable slots, preserving order
func OnlyAvailable(slots []domain.Slot) []domain.Slot {
	result := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.Available {
			result = append(result, slot)
		}
	}
	return result
}

// Contains reports whether start is a slot of the tiling and whether it is available
func Contains(slots []domain.Slot, start types.TimeString) (onGrid bool, available bool) {
	for _, slot := range slots {
		if slot.StartTime.Equal(start) {
			return true, slot.Available
		}
	}
	return false, false
}

type interval struct {
	start int
	end   int
}

// busyRanges собирает занятые интервалы активных записей на указанную дату
func busyRanges(day time.Time, ledger []*domain.Appointment) []interval {
	busy := make([]interval, 0, len(ledger))
	for _, appt := range ledger {
		if appt == nil || !appt.IsActive() || !domain.DateOf(appt.Date).Equal(day) {
			continue
		}
		start, end := appt.StartTime.Minutes(), appt.EndTime.Minutes()
		if start < 0 || end < 0 {
			continue
		}
		busy = append(busy, interval{start: start, end: end})
	}
	return busy
}

// overlapsAny проверяет пересечение полуоткрытого интервала [start, end) с занятыми
func overlapsAny(start, end int, busy []interval) bool {
	for _, b := range busy {
		if start < b.end && end > b.start {
			return true
		}
	}
	return false
}

// minutesToTime slots never end after their block, and blocks end at 23:59 at the latest
func minutesToTime(minutes int) types.TimeString {
	t, err := types.NewTimeStringFromMinutes(minutes)
	if err != nil {
		return ""
	}
	return t
}
