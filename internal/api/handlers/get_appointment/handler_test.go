package get_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService struct {
	gotID    int64
	gotActor domain.Actor
	err      error
}

func (s *stubService) GetByID(_ context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.gotID, s.gotActor = id, actor
	if s.err != nil {
		return nil, s.err
	}
	return &models.AppointmentResponse{ID: id, Status: "confirmed"}, nil
}

func serve(svc AppointmentService, actor *domain.Actor, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{appointmentId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	client := domain.Actor{UserID: 1, Role: domain.RoleClient, ID: 100}

	tests := []struct {
		name       string
		target     string
		actor      *domain.Actor
		err        error
		wantStatus int
	}{
		{name: "ok", target: "/api/v1/appointments/7", actor: &client, wantStatus: http.StatusOK},
		{name: "bad id", target: "/api/v1/appointments/x", actor: &client, wantStatus: http.StatusBadRequest},
		{name: "no actor", target: "/api/v1/appointments/7", wantStatus: http.StatusUnauthorized},
		{name: "not found", target: "/api/v1/appointments/7", actor: &client, err: appointments.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign", target: "/api/v1/appointments/7", actor: &client, err: appointments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", target: "/api/v1/appointments/7", actor: &client, err: appointments.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{err: tt.err}
			rec := serve(svc, tt.actor, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, int64(7), svc.gotID)
				assert.Equal(t, client, svc.gotActor)
			}
		})
	}
}
