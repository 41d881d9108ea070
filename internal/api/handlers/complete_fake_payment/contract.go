package complete_fake_payment

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type ConfirmDepositUseCase interface {
	ConfirmPayment(ctx context.Context, pendingID string) (*domain.Appointment, error)
	RejectPayment(ctx context.Context, pendingID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
