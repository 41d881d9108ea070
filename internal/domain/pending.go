package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// PendingBooking holds the facts of a deposit booking while the client pays.
// It is not an appointment and does not hold the slot: the slot is checked
// again when the payment succeeds.
type PendingBooking struct {
	ID             string
	ClientID       int64
	ProfessionalID int64
	ServiceID      int64
	Date           time.Time
	StartTime      types.TimeString
	Notes          *string
	DepositAmount  float64
	Currency       string
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

// IsExpired returns true once the payment window is over
func (p *PendingBooking) IsExpired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}
