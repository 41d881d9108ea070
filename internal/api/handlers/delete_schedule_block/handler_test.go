package delete_schedule_block

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService struct {
	deleted []int64
	err     error
}

func (s *stubService) Delete(_ context.Context, _, blockID int64, _ domain.Actor) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, blockID)
	return nil
}

func TestHandler(t *testing.T) {
	owner := domain.Actor{UserID: 1, Role: domain.RoleProfessional, ID: 10}

	tests := []struct {
		name       string
		actor      *domain.Actor
		err        error
		wantStatus int
	}{
		{name: "deleted", actor: &owner, wantStatus: http.StatusNoContent},
		{name: "no actor", wantStatus: http.StatusUnauthorized},
		{name: "missing", actor: &owner, err: schedule.ErrBlockNotFound, wantStatus: http.StatusNotFound},
		{name: "stranger", actor: &owner, err: schedule.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", actor: &owner, err: schedule.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{err: tt.err}
			r := mux.NewRouter()
			r.HandleFunc("/api/v1/professionals/{professionalId}/schedule/{blockId}",
				NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodDelete)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/professionals/10/schedule/4", nil)
			if tt.actor != nil {
				req = req.WithContext(middleware.WithActor(req.Context(), *tt.actor))
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, []int64{4}, svc.deleted)
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}
