package domain

import (
	"fmt"
	"time"
)

// CheckTransition validates that actor may move the appointment to target.
// today is the server's calendar date (see DateOf).
//
// Rules:
//   - only CONFIRMED appointments can change status, every other state is terminal
//   - CANCELLED can be requested by the owning client or the owning professional at any time
//   - COMPLETED and NO_SHOW can be requested only by the owning professional
//     and only when the appointment date is strictly before today
func CheckTransition(appt *Appointment, actor Actor, target AppointmentStatus, today time.Time) error {
	if !target.IsValid() || target == StatusConfirmed {
		return fmt.Errorf("%w: unsupported target status %q", ErrInvalidTransition, target)
	}
	if appt.Status != StatusConfirmed {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, target)
	}
	if !actor.OwnsAppointment(appt) {
		return ErrActorNotAllowed
	}

	switch target {
	case StatusCancelled:
		return nil
	case StatusCompleted, StatusNoShow:
		if actor.Role != RoleProfessional {
			return fmt.Errorf("%w: only the professional can mark an appointment as %s", ErrActorNotAllowed, target)
		}
		if !DateOf(appt.Date).Before(DateOf(today)) {
			return fmt.Errorf("%w: appointment date %s", ErrAppointmentNotPast, appt.Date.Format(DateFormat))
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported target status %q", ErrInvalidTransition, target)
	}
}

// ApplyTransition sets the new status and the cancellation audit fields.
// The caller must run CheckTransition first.
func ApplyTransition(appt *Appointment, actor Actor, target AppointmentStatus, now time.Time) {
	appt.Status = target
	appt.UpdatedAt = now
	if target == StatusCancelled {
		role := actor.Role
		cancelledAt := now
		appt.CancelledBy = &role
		appt.CancelledAt = &cancelledAt
	}
}
