package confirm_deposit

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/payments"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

// PendingStore хранилище записей, ожидающих оплаты депозита
type PendingStore interface {
	Get(ctx context.Context, id string) (*domain.PendingBooking, error)
	Claim(ctx context.Context, id string) (*domain.PendingBooking, error)
	Restore(ctx context.Context, pending *domain.PendingBooking) error
	Delete(ctx context.Context, id string) (bool, error)
	WasClaimed(ctx context.Context, id string) (bool, error)
}

// BookingCommitter фиксирует запись в расписании (create_booking.UseCase)
type BookingCommitter interface {
	Commit(ctx context.Context, booking create_booking.Booking) (*domain.Appointment, error)
}

// PaymentGateway интерфейс платежного провайдера
type PaymentGateway interface {
	GetPayment(ctx context.Context, ref string) (*payments.Payment, error)
}

// Metrics метрики результатов записи
type Metrics interface {
	IncBookingOutcome(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
