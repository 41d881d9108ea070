package get_available_dates

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса календаря доступности
// Если From/To не заданы, используется период today..today+horizon
type Request struct {
	ProfessionalID int64
	ServiceID      int64
	From           *time.Time
	To             *time.Time
}

// Response по одному значению на каждую дату периода в порядке возрастания
type Response struct {
	ProfessionalID int64
	ServiceID      int64
	From           time.Time
	To             time.Time
	Dates          []domain.DateAvailability
}
