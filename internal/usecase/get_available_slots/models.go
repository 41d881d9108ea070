package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProfessionalID int64     // ID специалиста
	ServiceID      int64     // ID услуги
	Date           time.Time // Дата (без времени)
}

// Response модель ответа со списком доступных слотов
// Slots содержит только доступные для записи слоты в порядке генерации
type Response struct {
	Date            time.Time
	ProfessionalID  int64
	ServiceID       int64
	DurationMinutes int
	Slots           []domain.Slot
}
