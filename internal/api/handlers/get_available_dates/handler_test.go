package get_available_dates

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_dates"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubUseCase struct {
	got  *getAvailableDates.Request
	resp *getAvailableDates.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableDates.Request) (*getAvailableDates.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc GetAvailableDatesUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/professionals/{professionalId}/services/{serviceId}/available-dates",
		NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func date(day int) time.Time {
	return time.Date(2026, 10, day, 0, 0, 0, 0, time.UTC)
}

func TestHandler_DefaultRange(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableDates.Response{
		ProfessionalID: 10,
		ServiceID:      5,
		From:           date(18),
		To:             date(19),
		Dates: []domain.DateAvailability{
			{Date: date(18), HasAvailability: false},
			{Date: date(19), HasAvailability: true},
		},
	}}

	rec := serve(uc, "/api/v1/professionals/10/services/5/available-dates")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Nil(t, uc.got.From)
	assert.Nil(t, uc.got.To)

	var body AvailableDatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []DateAvailable{
		{Date: "2026-10-18", HasAvailability: false},
		{Date: "2026-10-19", HasAvailability: true},
	}, body.Dates)
}

func TestHandler_ExplicitRange(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableDates.Response{From: date(1), To: date(20)}}

	rec := serve(uc, "/api/v1/professionals/10/services/5/available-dates?from=2026-10-01&to=2026-10-20")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got.From)
	require.NotNil(t, uc.got.To)
	assert.True(t, date(1).Equal(*uc.got.From))
	assert.True(t, date(20).Equal(*uc.got.To))
	assert.Contains(t, rec.Body.String(), `"dates":[]`)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
	}{
		{name: "bad from", query: "?from=tomorrow", wantStatus: http.StatusBadRequest},
		{name: "inverted range", query: "?from=2026-10-20&to=2026-10-01", err: getAvailableDates.ErrInvalidRange, wantStatus: http.StatusBadRequest},
		{name: "too large", err: getAvailableDates.ErrRangeTooLarge, wantStatus: http.StatusBadRequest},
		{name: "unknown service", err: getAvailableDates.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", err: getAvailableDates.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, "/api/v1/professionals/10/services/5/available-dates"+tt.query)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
