package confirm_deposit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	pendingStore "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/pending"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/payments"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

// UseCase use case обработки результата оплаты депозита
// Ожидающая запись забирается из хранилища атомарно, поэтому повторный колбэк
// с тем же ID не создаст вторую запись
type UseCase struct {
	pending   PendingStore
	committer BookingCommitter
	gateway   PaymentGateway
	metrics   Metrics
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	pending PendingStore,
	committer BookingCommitter,
	gateway PaymentGateway,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		pending:   pending,
		committer: committer,
		gateway:   gateway,
		metrics:   metrics,
		logger:    logger,
	}
}

// ConfirmPayment фиксирует запись после успешной оплаты депозита
func (uc *UseCase) ConfirmPayment(ctx context.Context, pendingID string) (*domain.Appointment, error) {
	uc.logger.Info("ConfirmDeposit: confirm pending=%s", pendingID)

	if err := validatePendingID(pendingID); err != nil {
		uc.logger.Warn("ConfirmDeposit: validation failed: %v", err)
		return nil, err
	}

	// 1. Атомарно забираем ожидающую запись
	pending, err := uc.pending.Claim(ctx, pendingID)
	if err != nil {
		if errors.Is(err, pendingStore.ErrPendingNotFound) {
			uc.logger.Warn("ConfirmDeposit: pending=%s not found", pendingID)
			return nil, ErrPendingNotFound
		}
		uc.logger.Error("ConfirmDeposit: failed to claim pending=%s: %v", pendingID, err)
		return nil, fmt.Errorf("%w: failed to claim pending booking: %v", ErrInternal, err)
	}

	// 2. Фиксируем запись теми же проверками, что и без депозита
	appointment, err := uc.committer.Commit(ctx, create_booking.BookingFromPending(pending))
	if err != nil {
		if isSlotLost(err) {
			uc.logger.Warn("ConfirmDeposit: slot lost for pending=%s (client=%d, %s %s, deposit %.2f %s): %v",
				pending.ID, pending.ClientID, pending.Date.Format(domain.DateFormat), pending.StartTime,
				pending.DepositAmount, pending.Currency, err)
			uc.metrics.IncBookingOutcome(OutcomeDepositSlotLost)
			return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}

		// Инфраструктурная ошибка: возвращаем запись, чтобы колбэк можно было повторить
		uc.logger.Error("ConfirmDeposit: failed to commit pending=%s: %v", pending.ID, err)
		if restoreErr := uc.pending.Restore(ctx, pending); restoreErr != nil {
			uc.logger.Error("ConfirmDeposit: failed to restore pending=%s: %v", pending.ID, restoreErr)
		}
		return nil, fmt.Errorf("%w: failed to commit booking: %v", ErrInternal, err)
	}

	uc.logger.Info("ConfirmDeposit: pending=%s committed as appointment id=%d", pending.ID, appointment.ID)

	return appointment, nil
}

// RejectPayment удаляет ожидающую запись после неуспешной оплаты, записи в расписании нет
func (uc *UseCase) RejectPayment(ctx context.Context, pendingID string) error {
	uc.logger.Info("ConfirmDeposit: reject pending=%s", pendingID)

	if err := validatePendingID(pendingID); err != nil {
		uc.logger.Warn("ConfirmDeposit: validation failed: %v", err)
		return err
	}

	deleted, err := uc.pending.Delete(ctx, pendingID)
	if err != nil {
		uc.logger.Error("ConfirmDeposit: failed to delete pending=%s: %v", pendingID, err)
		return fmt.Errorf("%w: failed to delete pending booking: %v", ErrInternal, err)
	}
	if !deleted {
		uc.logger.Warn("ConfirmDeposit: pending=%s not found", pendingID)
		return ErrPendingNotFound
	}

	uc.metrics.IncBookingOutcome(OutcomeDepositRejected)
	uc.logger.Info("ConfirmDeposit: pending=%s dropped", pendingID)

	return nil
}

// GetPending возвращает данные ожидающей записи для страницы оплаты
func (uc *UseCase) GetPending(ctx context.Context, pendingID string) (*domain.PendingBooking, error) {
	if err := validatePendingID(pendingID); err != nil {
		return nil, err
	}

	pending, err := uc.pending.Get(ctx, pendingID)
	if err != nil {
		if errors.Is(err, pendingStore.ErrPendingNotFound) {
			return nil, ErrPendingNotFound
		}
		uc.logger.Error("ConfirmDeposit: failed to get pending=%s: %v", pendingID, err)
		return nil, fmt.Errorf("%w: failed to get pending booking: %v", ErrInternal, err)
	}

	return pending, nil
}

// HandleProviderNotification обрабатывает уведомление провайдера о платеже
// Статус всегда перечитывается у провайдера, телу уведомления не доверяем
func (uc *UseCase) HandleProviderNotification(ctx context.Context, paymentRef string) (*NotificationResult, error) {
	uc.logger.Info("ConfirmDeposit: notification for payment=%s", paymentRef)

	if strings.TrimSpace(paymentRef) == "" {
		return nil, fmt.Errorf("%w: payment reference is required", ErrInvalidInput)
	}

	payment, err := uc.gateway.GetPayment(ctx, paymentRef)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidReference):
			uc.logger.Warn("ConfirmDeposit: invalid payment reference %q", paymentRef)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		case errors.Is(err, payments.ErrPaymentNotFound):
			uc.logger.Warn("ConfirmDeposit: payment=%s not found at provider", paymentRef)
			return nil, ErrPaymentNotFound
		default:
			uc.logger.Error("ConfirmDeposit: failed to get payment=%s: %v", paymentRef, err)
			return nil, fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
		}
	}

	result := &NotificationResult{PendingID: payment.PendingID, Action: ActionIgnored}

	switch {
	case payment.Status.IsSuccessful():
		appointment, err := uc.ConfirmPayment(ctx, payment.PendingID)
		switch {
		case err == nil:
			result.Action = ActionConfirmed
			result.Appointment = appointment
		case errors.Is(err, ErrPendingNotFound):
			action, err := uc.missingPending(ctx, paymentRef, payment.PendingID)
			if err != nil {
				return nil, err
			}
			result.Action = action
		case errors.Is(err, ErrSlotNotAvailable):
			result.Action = ActionSlotLost
		default:
			return nil, err
		}
	case payment.Status.IsFailed():
		err := uc.RejectPayment(ctx, payment.PendingID)
		switch {
		case err == nil:
			result.Action = ActionRejected
		case errors.Is(err, ErrPendingNotFound):
			uc.logger.Info("ConfirmDeposit: payment=%s already processed", paymentRef)
		default:
			return nil, err
		}
	default:
		uc.logger.Info("ConfirmDeposit: payment=%s in status %s, waiting", paymentRef, payment.Status)
	}

	return result, nil
}

// missingPending разбирает одобренный платеж без ожидающей записи:
// повторное уведомление игнорируется, а оплата после истечения записи требует ручного возврата
func (uc *UseCase) missingPending(ctx context.Context, paymentRef, pendingID string) (NotificationAction, error) {
	claimed, err := uc.pending.WasClaimed(ctx, pendingID)
	if err != nil {
		uc.logger.Error("ConfirmDeposit: failed to check pending=%s: %v", pendingID, err)
		return "", fmt.Errorf("%w: failed to check pending booking: %v", ErrInternal, err)
	}

	if claimed {
		uc.logger.Info("ConfirmDeposit: payment=%s already processed", paymentRef)
		return ActionIgnored, nil
	}

	uc.logger.Error("ConfirmDeposit: payment=%s approved after pending=%s expired, refund required",
		paymentRef, pendingID)
	uc.metrics.IncBookingOutcome(OutcomeDepositExpired)
	return ActionExpired, nil
}

func validatePendingID(pendingID string) error {
	if strings.TrimSpace(pendingID) == "" {
		return fmt.Errorf("%w: pendingID is required", ErrInvalidInput)
	}
	return nil
}

// isSlotLost возвращает true, если запись нельзя зафиксировать по бизнес-причине:
// слот занят, услуга отключена или дата ушла из горизонта за время оплаты
func isSlotLost(err error) bool {
	return errors.Is(err, create_booking.ErrSlotNotAvailable) ||
		errors.Is(err, create_booking.ErrInvalidTimeSlot) ||
		errors.Is(err, create_booking.ErrServiceInactive) ||
		errors.Is(err, create_booking.ErrServiceNotFound) ||
		errors.Is(err, create_booking.ErrDateOutOfHorizon)
}
