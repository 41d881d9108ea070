package update_schedule_block

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
	msgInvalidBlockID        = "некорректный ID блока"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidBlock          = "некорректный блок расписания"
	msgBlockOverlap          = "блок пересекается с другим активным блоком этого дня"
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

// Handle PUT /api/v1/professionals/{professionalId}/schedule/{blockId}
// Обновляются только переданные поля
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathID(r, "professionalId")
	if err != nil {
		h.logger.Warn("PUT /professionals/{id}/schedule/{id} - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	blockID, err := handlers.PathID(r, "blockId")
	if err != nil {
		h.logger.Warn("PUT /professionals/{id}/schedule/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /professionals/{id}/schedule/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.UpdateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /professionals/{id}/schedule/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	block, err := h.service.Update(r.Context(), professionalID, blockID, actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /professionals/{id}/schedule/{id} - Access denied: professional_id=%d, %s=%d",
				professionalID, actor.Role, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrBlockNotFound):
			h.logger.Warn("PUT /professionals/{id}/schedule/{id} - Block not found: professional_id=%d, block_id=%d",
				professionalID, blockID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /professionals/{id}/schedule/{id} - Invalid block: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBlock)

		case errors.Is(err, schedule.ErrBlockOverlap):
			h.logger.Warn("PUT /professionals/{id}/schedule/{id} - Block overlap: professional_id=%d, block_id=%d",
				professionalID, blockID)
			handlers.RespondConflict(w, msgBlockOverlap)

		default:
			h.logger.Error("PUT /professionals/{id}/schedule/{id} - Failed to update block: professional_id=%d, block_id=%d, error=%v",
				professionalID, blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /professionals/{id}/schedule/{id} - Block updated successfully: professional_id=%d, block_id=%d",
		professionalID, blockID)
	handlers.RespondJSON(w, http.StatusOK, block)
}
