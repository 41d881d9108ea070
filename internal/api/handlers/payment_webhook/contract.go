package payment_webhook

import (
	"context"

	confirmDeposit "github.com/m04kA/SMC-AppointmentService/internal/usecase/confirm_deposit"
)

type ConfirmDepositUseCase interface {
	HandleProviderNotification(ctx context.Context, paymentRef string) (*confirmDeposit.NotificationResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
