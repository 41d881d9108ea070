package confirm_deposit

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Результаты записи для метрик
const (
	OutcomeDepositSlotLost = "deposit_slot_lost"
	OutcomeDepositRejected = "deposit_rejected"
	OutcomeDepositExpired  = "deposit_expired"
)

// NotificationAction что сделано по уведомлению провайдера
type NotificationAction string

const (
	ActionConfirmed NotificationAction = "confirmed"
	ActionRejected  NotificationAction = "rejected"
	ActionSlotLost  NotificationAction = "slot_lost"
	ActionIgnored   NotificationAction = "ignored"
	ActionExpired   NotificationAction = "expired" // Оплачено после истечения ожидающей записи
)

// NotificationResult результат обработки уведомления о платеже
type NotificationResult struct {
	PendingID   string
	Action      NotificationAction
	Appointment *domain.Appointment // Заполняется для ActionConfirmed
}
