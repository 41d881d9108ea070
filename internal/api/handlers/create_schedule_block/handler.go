package create_schedule_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidBlock          = "некорректный блок расписания"
	msgBlockOverlap          = "блок пересекается с другим активным блоком этого дня"
	msgMissingActor          = "требуется аутентификация"
	msgForbidden             = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/professionals/{professionalId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathID(r, "professionalId")
	if err != nil {
		h.logger.Warn("POST /professionals/{id}/schedule - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /professionals/{id}/schedule - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /professionals/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	block, err := h.service.Create(r.Context(), professionalID, actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /professionals/{id}/schedule - Access denied: professional_id=%d, %s=%d",
				professionalID, actor.Role, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /professionals/{id}/schedule - Invalid block: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBlock)

		case errors.Is(err, schedule.ErrBlockOverlap):
			h.logger.Warn("POST /professionals/{id}/schedule - Block overlap: professional_id=%d, day=%d, %s-%s",
				professionalID, req.DayOfWeek, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgBlockOverlap)

		default:
			h.logger.Error("POST /professionals/{id}/schedule - Failed to create block: professional_id=%d, error=%v", professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /professionals/{id}/schedule - Block created successfully: professional_id=%d, block_id=%d",
		professionalID, block.ID)
	handlers.RespondJSON(w, http.StatusCreated, block)
}
