package delete_schedule_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidBlockID        = "некорректный ID блока"
	msgBlockNotFound         = "блок расписания не найден"
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

// Handle DELETE /api/v1/professionals/{professionalId}/schedule/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathID(r, "professionalId")
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id}/schedule/{id} - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	blockID, err := handlers.PathID(r, "blockId")
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id}/schedule/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /professionals/{id}/schedule/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	if err := h.service.Delete(r.Context(), professionalID, blockID, actor); err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /professionals/{id}/schedule/{id} - Access denied: professional_id=%d, %s=%d",
				professionalID, actor.Role, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrBlockNotFound):
			h.logger.Warn("DELETE /professionals/{id}/schedule/{id} - Block not found: professional_id=%d, block_id=%d",
				professionalID, blockID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		default:
			h.logger.Error("DELETE /professionals/{id}/schedule/{id} - Failed to delete block: professional_id=%d, block_id=%d, error=%v",
				professionalID, blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /professionals/{id}/schedule/{id} - Block deleted successfully: professional_id=%d, block_id=%d",
		professionalID, blockID)
	w.WriteHeader(http.StatusNoContent)
}
