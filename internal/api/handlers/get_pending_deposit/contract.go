package get_pending_deposit

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type ConfirmDepositUseCase interface {
	GetPending(ctx context.Context, pendingID string) (*domain.PendingBooking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
