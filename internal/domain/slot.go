package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Slot represents a fixed-duration candidate appointment time on a specific date
// Computed per request, never stored
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
}

// DateAvailability tells whether a date has at least one bookable slot
type DateAvailability struct {
	Date            time.Time
	HasAvailability bool
}
