package get_client_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const (
	msgMissingActor  = "требуется аутентификация"
	msgOnlyClients   = "история доступна только клиентам"
	msgInvalidStatus = "некорректный статус"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/me/appointments
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/me/appointments - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	req := &models.ListClientRequest{Actor: actor}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.ListClient(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /clients/me/appointments - Not a client: %s=%d", actor.Role, actor.ID)
			handlers.RespondForbidden(w, msgOnlyClients)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /clients/me/appointments - Invalid status: client_id=%d", actor.ID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /clients/me/appointments - Failed to list appointments: client_id=%d, error=%v", actor.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/me/appointments - Appointments retrieved successfully: client_id=%d, count=%d",
		actor.ID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
