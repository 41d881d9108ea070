package payment_webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	confirmDeposit "github.com/m04kA/SMC-AppointmentService/internal/usecase/confirm_deposit"
)

const (
	msgInvalidNotification = "некорректное уведомление"
	msgPaymentNotFound     = "платеж не найден"

	// maxNotificationBytes ограничение размера уведомления
	maxNotificationBytes = 64 << 10
)

type Handler struct {
	useCase ConfirmDepositUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmDepositUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
// Статус платежа перечитывается у провайдера. 5xx означает, что провайдер должен повторить уведомление
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var notification Notification
	if r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxNotificationBytes))
		if err != nil {
			h.logger.Warn("POST /payments/webhook - Failed to read body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidNotification)
			return
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &notification); err != nil {
				h.logger.Warn("POST /payments/webhook - Invalid body: %v", err)
				handlers.RespondBadRequest(w, msgInvalidNotification)
				return
			}
		}
	}

	paymentRef := notification.PaymentRef(r.URL.Query())
	if paymentRef == "" {
		h.logger.Info("POST /payments/webhook - Notification ignored: type=%s, action=%s", notification.Type, notification.Action)
		handlers.RespondJSON(w, http.StatusOK, &NotificationResponse{Action: string(confirmDeposit.ActionIgnored)})
		return
	}

	result, err := h.useCase.HandleProviderNotification(r.Context(), paymentRef)
	if err != nil {
		switch {
		case errors.Is(err, confirmDeposit.ErrInvalidInput):
			h.logger.Warn("POST /payments/webhook - Invalid payment reference: payment=%s", paymentRef)
			handlers.RespondBadRequest(w, msgInvalidNotification)

		case errors.Is(err, confirmDeposit.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/webhook - Payment not found: payment=%s", paymentRef)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		default:
			h.logger.Error("POST /payments/webhook - Failed to handle notification: payment=%s, error=%v", paymentRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/webhook - Notification handled: payment=%s, pending_id=%s, action=%s",
		paymentRef, result.PendingID, result.Action)
	handlers.RespondJSON(w, http.StatusOK, FromResult(result))
}
