package get_professional_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService struct {
	got *models.ListProfessionalRequest
	err error
}

func (s *stubService) ListProfessional(_ context.Context, req *models.ListProfessionalRequest) (*models.AppointmentListResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{}}, nil
}

var professional = domain.Actor{UserID: 3, Role: domain.RoleProfessional, ID: 10}

func get(svc AppointmentService, actor *domain.Actor, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/professionals/{professionalId}/appointments", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Filters(t *testing.T) {
	svc := &stubService{}

	rec := get(svc, &professional,
		"/api/v1/professionals/10/appointments?startDate=2026-10-01&endDate=2026-10-31&status=completed&includeCancelled=true")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, svc.got)
	assert.Equal(t, int64(10), svc.got.ProfessionalID)
	require.NotNil(t, svc.got.StartDate)
	require.NotNil(t, svc.got.EndDate)
	assert.Equal(t, "2026-10-01", svc.got.StartDate.Format(domain.DateFormat))
	assert.Equal(t, "2026-10-31", svc.got.EndDate.Format(domain.DateFormat))
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "completed", *svc.got.Status)
	assert.True(t, svc.got.IncludeCancelled)
}

func TestHandler_SingleDate(t *testing.T) {
	svc := &stubService{}

	rec := get(svc, &professional, "/api/v1/professionals/10/appointments?date=2026-10-19")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.got.StartDate.Equal(*svc.got.EndDate))
	assert.False(t, svc.got.IncludeCancelled)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		actor      *domain.Actor
		err        error
		wantStatus int
	}{
		{name: "bad id", target: "/api/v1/professionals/-1/appointments", actor: &professional, wantStatus: http.StatusBadRequest},
		{name: "no actor", target: "/api/v1/professionals/10/appointments", wantStatus: http.StatusUnauthorized},
		{name: "bad date", target: "/api/v1/professionals/10/appointments?date=yesterday", actor: &professional, wantStatus: http.StatusBadRequest},
		{name: "bad flag", target: "/api/v1/professionals/10/appointments?includeCancelled=maybe", actor: &professional, wantStatus: http.StatusBadRequest},
		{name: "other professional", target: "/api/v1/professionals/11/appointments", actor: &professional, err: appointments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "invalid filter", target: "/api/v1/professionals/10/appointments?status=x", actor: &professional, err: appointments.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", target: "/api/v1/professionals/10/appointments", actor: &professional, err: appointments.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(&stubService{err: tt.err}, tt.actor, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
