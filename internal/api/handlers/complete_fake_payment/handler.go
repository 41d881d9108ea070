package complete_fake_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	confirmDeposit "github.com/m04kA/SMC-AppointmentService/internal/usecase/confirm_deposit"
)

// Исходы тестовой оплаты
const (
	OutcomeComplete = "complete"
	OutcomeFail     = "fail"
)

const (
	msgInvalidPendingID = "некорректный ID ожидающей записи"
	msgInvalidOutcome   = "исход оплаты должен быть complete или fail"
	msgPendingNotFound  = "ожидающая оплаты запись не найдена или уже обработана"
	msgSlotNotAvailable = "слот заняли во время оплаты"
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

// Handle POST /api/v1/payments/fake/{pendingId}/{outcome}
// Регистрируется только для тестового провайдера оплаты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pendingID := vars["pendingId"]

	switch vars["outcome"] {
	case OutcomeComplete:
		h.complete(w, r, pendingID)
	case OutcomeFail:
		h.fail(w, r, pendingID)
	default:
		h.logger.Warn("POST /payments/fake/{id}/{outcome} - Invalid outcome: %s", vars["outcome"])
		handlers.RespondBadRequest(w, msgInvalidOutcome)
	}
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request, pendingID string) {
	appointment, err := h.useCase.ConfirmPayment(r.Context(), pendingID)
	if err != nil {
		h.respondError(w, "complete", pendingID, err)
		return
	}

	h.logger.Info("POST /payments/fake/{id}/complete - Deposit confirmed: pending_id=%s, appointment_id=%d",
		pendingID, appointment.ID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainAppointment(appointment))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, pendingID string) {
	if err := h.useCase.RejectPayment(r.Context(), pendingID); err != nil {
		h.respondError(w, "fail", pendingID, err)
		return
	}

	h.logger.Info("POST /payments/fake/{id}/fail - Deposit rejected: pending_id=%s", pendingID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, outcome, pendingID string, err error) {
	switch {
	case errors.Is(err, confirmDeposit.ErrInvalidInput):
		h.logger.Warn("POST /payments/fake/{id}/%s - Invalid pending ID", outcome)
		handlers.RespondBadRequest(w, msgInvalidPendingID)

	case errors.Is(err, confirmDeposit.ErrPendingNotFound):
		h.logger.Warn("POST /payments/fake/{id}/%s - Pending not found: pending_id=%s", outcome, pendingID)
		handlers.RespondNotFound(w, msgPendingNotFound)

	case errors.Is(err, confirmDeposit.ErrSlotNotAvailable):
		h.logger.Warn("POST /payments/fake/{id}/%s - Slot lost: pending_id=%s", outcome, pendingID)
		handlers.RespondConflict(w, msgSlotNotAvailable)

	default:
		h.logger.Error("POST /payments/fake/{id}/%s - Failed: pending_id=%s, error=%v", outcome, pendingID, err)
		handlers.RespondInternalError(w)
	}
}
