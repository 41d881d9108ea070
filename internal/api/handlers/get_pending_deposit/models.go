package get_pending_deposit

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// PendingDepositResponse данные ожидающей оплаты записи для страницы оплаты
// Маршрут публичный, поэтому клиент, специалист и заметки не отдаются
type PendingDepositResponse struct {
	PendingID     string  `json:"pendingId"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	DepositAmount float64 `json:"depositAmount"`
	Currency      string  `json:"currency"`
	ExpiresAt     string  `json:"expiresAt"` // ISO 8601 format
}

// FromDomainPending конвертирует domain модель в HTTP response
func FromDomainPending(p *domain.PendingBooking) *PendingDepositResponse {
	return &PendingDepositResponse{
		PendingID:     p.ID,
		Date:          p.Date.Format(domain.DateFormat),
		StartTime:     p.StartTime.String(),
		DepositAmount: p.DepositAmount,
		Currency:      p.Currency,
		ExpiresAt:     p.ExpiresAt.Format(time.RFC3339),
	}
}
