package list_services

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const msgInvalidProfessionalID = "некорректный ID специалиста"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/services
// Публичный маршрут: без токена видны только активные услуги, владелец видит все
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.PathID(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/services - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	var actor *domain.Actor
	if a, ok := middleware.GetActor(r.Context()); ok {
		actor = &a
	}

	services, err := h.service.List(r.Context(), professionalID, actor)
	if err != nil {
		h.logger.Error("GET /professionals/{id}/services - Failed to list services: professional_id=%d, error=%v", professionalID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /professionals/{id}/services - Services retrieved successfully: professional_id=%d, count=%d",
		professionalID, len(services.Services))
	handlers.RespondJSON(w, http.StatusOK, services)
}
