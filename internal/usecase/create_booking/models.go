package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Результаты записи для метрик
const (
	OutcomeConfirmed       = "confirmed"
	OutcomeDepositRequired = "deposit_required"
	OutcomeSlotConflict    = "slot_conflict"
	OutcomeRejected        = "rejected"
	OutcomeError           = "error"
)

// Request модель запроса на запись
type Request struct {
	ClientID  int64            // ID клиента из токена
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
	Notes     *string          // Комментарий клиента (опционально)
}

// Booking факты записи, которые фиксируются в расписании
// Для записи с депозитом восстанавливаются из PendingBooking после оплаты
type Booking struct {
	ClientID      int64
	ServiceID     int64
	Date          time.Time
	StartTime     types.TimeString
	Notes         *string
	DepositAmount float64 // Оплаченный депозит, 0 для услуг без депозита
}

// DepositHandoff данные для перехода клиента на оплату депозита
type DepositHandoff struct {
	PendingID     string
	CheckoutURL   string
	DepositAmount float64
	Currency      string
	ExpiresAt     time.Time
}

// Response результат запроса на запись: либо подтвержденная запись, либо переход к оплате
type Response struct {
	Appointment *domain.Appointment
	Deposit     *DepositHandoff
}

// BookingFromPending восстанавливает факты записи из ожидающей оплаты записи
func BookingFromPending(p *domain.PendingBooking) Booking {
	return Booking{
		ClientID:      p.ClientID,
		ServiceID:     p.ServiceID,
		Date:          p.Date,
		StartTime:     p.StartTime,
		Notes:         p.Notes,
		DepositAmount: p.DepositAmount,
	}
}
