package get_pending_deposit

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	confirmDeposit "github.com/m04kA/SMC-AppointmentService/internal/usecase/confirm_deposit"
)

const (
	msgInvalidPendingID = "некорректный ID ожидающей записи"
	msgPendingNotFound  = "ожидающая оплаты запись не найдена или истекла"
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

// Handle GET /api/v1/payments/pending/{pendingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	pendingID := mux.Vars(r)["pendingId"]

	pending, err := h.useCase.GetPending(r.Context(), pendingID)
	if err != nil {
		switch {
		case errors.Is(err, confirmDeposit.ErrInvalidInput):
			h.logger.Warn("GET /payments/pending/{id} - Invalid pending ID")
			handlers.RespondBadRequest(w, msgInvalidPendingID)

		case errors.Is(err, confirmDeposit.ErrPendingNotFound):
			h.logger.Warn("GET /payments/pending/{id} - Pending not found: pending_id=%s", pendingID)
			handlers.RespondNotFound(w, msgPendingNotFound)

		default:
			h.logger.Error("GET /payments/pending/{id} - Failed to get pending: pending_id=%s, error=%v", pendingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /payments/pending/{id} - Pending retrieved successfully: pending_id=%s", pendingID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainPending(pending))
}
