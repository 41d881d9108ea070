package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Params fixes everything except the date and the ledger, so the slot view,
// the calendar view and the booking commit all read through the same generator
type Params struct {
	Blocks          []*domain.WeeklyScheduleBlock
	DurationMinutes int
	// Now is the current wall-clock time in the professional's timezone
	Now         time.Time
	HorizonDays int
}

// Today returns the calendar date of Now
func (p Params) Today() time.Time {
	return domain.DateOf(p.Now)
}

// InHorizon reports whether date is within today..today+HorizonDays
func (p Params) InHorizon(date time.Time) bool {
	day := domain.DateOf(date)
	today := p.Today()
	if day.Before(today) {
		return false
	}
	return !day.After(today.AddDate(0, 0, p.HorizonDays))
}

// SlotsFor returns the full tiling of date with flags. Dates outside the horizon have no slots.
// For today, slots starting before the current time are unavailable.
func (p Params) SlotsFor(date time.Time, ledger []*domain.Appointment) []domain.Slot {
	if !p.InHorizon(date) {
		return []domain.Slot{}
	}

	notBefore := 0
	if domain.DateOf(date).Equal(p.Today()) {
		notBefore = p.Now.Hour()*60 + p.Now.Minute()
	}

	return Generate(date, p.Blocks, p.DurationMinutes, ledger, notBefore)
}

// AvailableSlots returns only the bookable slots of date
func (p Params) AvailableSlots(date time.Time, ledger []*domain.Appointment) []domain.Slot {
	return OnlyAvailable(p.SlotsFor(date, ledger))
}

// Summarize returns one entry per date of the inclusive range [from, to] in ascending order.
// HasAvailability is true iff AvailableSlots for that date is not empty.
func (p Params) Summarize(from, to time.Time, ledger []*domain.Appointment) []domain.DateAvailability {
	first := domain.DateOf(from)
	last := domain.DateOf(to)
	if last.Before(first) {
		return []domain.DateAvailability{}
	}

	byDate := groupByDate(ledger)

	result := make([]domain.DateAvailability, 0, domain.DaysBetween(first, last)+1)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		result = append(result, domain.DateAvailability{
			Date:            day,
			HasAvailability: hasAvailable(p.SlotsFor(day, byDate[day])),
		})
	}

	return result
}

func hasAvailable(slots []domain.Slot) bool {
	for _, slot := range slots {
		if slot.Available {
			return true
		}
	}
	return false
}

func groupByDate(ledger []*domain.Appointment) map[time.Time][]*domain.Appointment {
	grouped := make(map[time.Time][]*domain.Appointment)
	for _, appt := range ledger {
		if appt == nil {
			continue
		}
		day := domain.DateOf(appt.Date)
		grouped[day] = append(grouped[day], appt)
	}
	return grouped
}
