package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusNoShow    AppointmentStatus = "no_show"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a committed booking of a client with a professional
type Appointment struct {
	ID             int64
	ProfessionalID int64
	ClientID       int64
	ServiceID      int64
	Date           time.Time // date only, UTC midnight
	StartTime      types.TimeString
	EndTime        types.TimeString // stored explicitly, later service edits do not touch history
	Status         AppointmentStatus
	Notes          *string

	// Denormalized data for history
	ServiceName   string
	ServicePrice  float64
	DepositAmount float64

	CancelledBy *ActorRole
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its time range in the ledger
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal returns true if no further transitions are possible
func (a *Appointment) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// Overlaps checks the half-open intervals [start, end) and [a.StartTime, a.EndTime)
// Touching boundaries are not an overlap, back-to-back appointments are legal
func (a *Appointment) Overlaps(start, end types.TimeString) bool {
	return start.Minutes() < a.EndTime.Minutes() && end.Minutes() > a.StartTime.Minutes()
}

// IsTerminal returns true for COMPLETED, NO_SHOW and CANCELLED
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusNoShow || s == StatusCancelled
}

// IsValid returns true for a known status
func (s AppointmentStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// AppointmentFilter фильтр для выборки записей
type AppointmentFilter struct {
	ProfessionalID   *int64
	ClientID         *int64
	StartDate        *time.Time         // Начало периода включительно (опционально)
	EndDate          *time.Time         // Конец периода включительно (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отмененные записи
}

// IsSingleDate returns true if the filter targets exactly one date
func (f AppointmentFilter) IsSingleDate() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}
