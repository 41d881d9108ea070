package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
// Клиент берется из токена, а не из тела запроса
type CreateAppointmentRequest struct {
	ServiceID int64   `json:"serviceId"`
	Date      string  `json:"date"`      // "2026-10-19"
	StartTime string  `json:"startTime"` // "09:50"
	Notes     *string `json:"notes,omitempty"`
}

// DepositResponse HTTP response model для записи, ожидающей оплаты депозита
type DepositResponse struct {
	PendingID     string  `json:"pendingId"`
	CheckoutURL   string  `json:"checkoutUrl"`
	DepositAmount float64 `json:"depositAmount"`
	Currency      string  `json:"currency"`
	ExpiresAt     string  `json:"expiresAt"` // ISO 8601 format
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	return &createBooking.Request{
		ClientID:  clientID,
		ServiceID: r.ServiceID,
		Date:      date,
		StartTime: startTime,
		Notes:     r.Notes,
	}, nil
}

// FromAppointment конвертирует подтвержденную запись в HTTP response
func FromAppointment(appointment *domain.Appointment) *models.AppointmentResponse {
	return models.FromDomainAppointment(appointment)
}

// FromDeposit конвертирует данные перехода к оплате в HTTP response
func FromDeposit(deposit *createBooking.DepositHandoff) *DepositResponse {
	return &DepositResponse{
		PendingID:     deposit.PendingID,
		CheckoutURL:   deposit.CheckoutURL,
		DepositAmount: deposit.DepositAmount,
		Currency:      deposit.Currency,
		ExpiresAt:     deposit.ExpiresAt.Format(time.RFC3339),
	}
}
