package create_service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService struct {
	got *models.CreateServiceRequest
	err error
}

func (s *stubService) Create(_ context.Context, professionalID int64, _ domain.Actor, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.ServiceResponse{ID: 5, ProfessionalID: professionalID, Name: req.Name, Status: "active"}, nil
}

var owner = domain.Actor{UserID: 1, Role: domain.RoleProfessional, ID: 10}

func post(svc CatalogService, actor *domain.Actor, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/professionals/{professionalId}/services", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/professionals/10/services", strings.NewReader(body))
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"name":"Primera consulta","price":1000,"durationMinutes":50,"depositPercentage":30}`

func TestHandler_Created(t *testing.T) {
	svc := &stubService{}

	rec := post(svc, &owner, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, 50, svc.got.DurationMinutes)
	assert.Equal(t, 30, svc.got.DepositPercentage)
	assert.Contains(t, rec.Body.String(), `"name":"Primera consulta"`)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		actor      *domain.Actor
		body       string
		err        error
		wantStatus int
	}{
		{name: "no actor", body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "bad json", actor: &owner, body: `{"price":"free"}`, wantStatus: http.StatusBadRequest},
		{name: "stranger", actor: &owner, body: validBody, err: catalog.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "invalid", actor: &owner, body: validBody, err: catalog.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", actor: &owner, body: validBody, err: catalog.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(&stubService{err: tt.err}, tt.actor, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
