package get_pending_deposit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	confirmDeposit "github.com/m04kA/SMC-AppointmentService/internal/usecase/confirm_deposit"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type stubUseCase struct {
	pending map[string]*domain.PendingBooking
	err     error
}

func (s *stubUseCase) GetPending(_ context.Context, pendingID string) (*domain.PendingBooking, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.pending[pendingID]
	if !ok {
		return nil, confirmDeposit.ErrPendingNotFound
	}
	return p, nil
}

func get(uc ConfirmDepositUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/payments/pending/{pendingId}", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler(t *testing.T) {
	uc := &stubUseCase{pending: map[string]*domain.PendingBooking{
		"p-1": {
			ID:             "p-1",
			ClientID:       100,
			ProfessionalID: 10,
			ServiceID:      5,
			Date:           time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
			StartTime:      types.MustTimeString("09:50"),
			Notes:          ptr.Ptr("alergia a la penicilina"),
			DepositAmount:  300,
			Currency:       "ARS",
			ExpiresAt:      time.Date(2026, 10, 15, 12, 30, 0, 0, time.UTC),
		},
	}}

	rec := get(uc, "/api/v1/payments/pending/p-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"pendingId": "p-1",
		"date": "2026-10-19",
		"startTime": "09:50",
		"depositAmount": 300,
		"currency": "ARS",
		"expiresAt": "2026-10-15T12:30:00Z"
	}`, rec.Body.String(), "public page must not expose client, professional or notes")

	rec = get(uc, "/api/v1/payments/pending/p-2")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(&stubUseCase{err: confirmDeposit.ErrInternal}, "/api/v1/payments/pending/p-1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
