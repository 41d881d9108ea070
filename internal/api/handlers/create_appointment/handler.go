package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingClient      = "требуется аутентификация клиента"
	msgOnlyClients        = "записываться могут только клиенты"
	msgSlotNotAvailable   = "выбранный слот больше недоступен"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для записи"
	msgDateOutOfHorizon   = "дата вне доступного периода записи"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgInvalidInput       = "некорректные данные записи"
	msgPaymentUnavailable = "сервис оплаты временно недоступен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
// 201 - запись подтверждена, 202 - требуется оплата депозита
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingClient)
		return
	}
	if !actor.IsClient() {
		h.logger.Warn("POST /appointments - Actor is not a client: role=%s, id=%d", actor.Role, actor.ID)
		handlers.RespondForbidden(w, msgOnlyClients)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.ID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: client_id=%d, service_id=%d, date=%s, start=%s",
				actor.ID, req.ServiceID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			h.logger.Warn("POST /appointments - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondUnprocessable(w, msgServiceInactive)

		case errors.Is(err, createBooking.ErrDateOutOfHorizon):
			h.logger.Warn("POST /appointments - Date out of horizon: client_id=%d, date=%s", actor.ID, req.Date)
			handlers.RespondUnprocessable(w, msgDateOutOfHorizon)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: service_id=%d, date=%s, start=%s",
				req.ServiceID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrUnauthenticatedClient):
			h.logger.Warn("POST /appointments - Unauthenticated client")
			handlers.RespondUnauthorized(w, msgMissingClient)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrPaymentUnavailable):
			h.logger.Error("POST /appointments - Payment provider unavailable: client_id=%d, service_id=%d",
				actor.ID, req.ServiceID)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentUnavailable)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, service_id=%d, error=%v",
				actor.ID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Deposit != nil {
		h.logger.Info("POST /appointments - Deposit required: pending_id=%s, client_id=%d, amount=%.2f",
			result.Deposit.PendingID, actor.ID, result.Deposit.DepositAmount)
		handlers.RespondJSON(w, http.StatusAccepted, FromDeposit(result.Deposit))
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, client_id=%d",
		result.Appointment.ID, actor.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromAppointment(result.Appointment))
}
