package get_available_dates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeServices map[int64]*domain.Service

func (f fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeSchedule []*domain.WeeklyScheduleBlock

func (f fakeSchedule) GetByProfessional(_ context.Context, _ int64, _ bool) ([]*domain.WeeklyScheduleBlock, error) {
	return f, nil
}

type fakeAppointments struct {
	ledger  []*domain.Appointment
	filters []domain.AppointmentFilter
}

func (f *fakeAppointments) GetWithFilter(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	f.filters = append(f.filters, filter)
	return f.ledger, nil
}

type nopMetrics struct{}

func (nopMetrics) ObserveAvailability(string, time.Duration) {}

// Thursday 2026-10-15 08:00
var now = time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

func date(month time.Month, day int) time.Time {
	return time.Date(2026, month, day, 0, 0, 0, 0, time.UTC)
}

func newUseCase(appointments *fakeAppointments) *UseCase {
	services := fakeServices{
		1: {ID: 1, ProfessionalID: 10, Name: "Terapia", Price: 100, DurationMinutes: 50, Status: domain.ServiceActive},
		2: {ID: 2, ProfessionalID: 10, Name: "Pareja", Price: 100, DurationMinutes: 50, Status: domain.ServiceInactive},
	}
	schedule := fakeSchedule{{
		ProfessionalID: 10,
		DayOfWeek:      time.Monday,
		StartTime:      types.MustTimeString("09:00"),
		EndTime:        types.MustTimeString("13:00"),
		Active:         true,
	}}

	uc := NewUseCase(services, schedule, appointments, nopMetrics{}, time.UTC, 30, 31, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func availableDates(dates []domain.DateAvailability) []string {
	result := make([]string, 0)
	for _, d := range dates {
		if d.HasAvailability {
			result = append(result, d.Date.Format(domain.DateFormat))
		}
	}
	return result
}

func TestUseCase_Execute_DefaultRange(t *testing.T) {
	appointments := &fakeAppointments{ledger: []*domain.Appointment{{
		ProfessionalID: 10,
		Date:           date(time.October, 19),
		StartTime:      types.MustTimeString("09:00"),
		EndTime:        types.MustTimeString("13:00"),
		Status:         domain.StatusConfirmed,
	}}}
	uc := newUseCase(appointments)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 10, ServiceID: 1})
	require.NoError(t, err)

	assert.Equal(t, date(time.October, 15), resp.From)
	assert.Equal(t, date(time.November, 14), resp.To)
	assert.Len(t, resp.Dates, 31)
	assert.Equal(t, []string{"2026-10-26", "2026-11-02", "2026-11-09"}, availableDates(resp.Dates))

	require.Len(t, appointments.filters, 1, "ledger must be read with a single range query")
	assert.Equal(t, date(time.October, 15), *appointments.filters[0].StartDate)
	assert.Equal(t, date(time.November, 14), *appointments.filters[0].EndDate)
}

func TestUseCase_Execute_ExplicitRange(t *testing.T) {
	uc := newUseCase(&fakeAppointments{})

	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 10,
		ServiceID:      1,
		From:           ptr.Ptr(date(time.October, 1)),
		To:             ptr.Ptr(date(time.October, 20)),
	})
	require.NoError(t, err)

	require.Len(t, resp.Dates, 20)
	assert.Equal(t, date(time.October, 1), resp.Dates[0].Date)
	assert.Equal(t, date(time.October, 20), resp.Dates[19].Date)
	// 2026-10-05 and 2026-10-12 are Mondays in the past
	assert.Equal(t, []string{"2026-10-19"}, availableDates(resp.Dates))
}

func TestUseCase_Execute_InactiveService(t *testing.T) {
	appointments := &fakeAppointments{}
	uc := newUseCase(appointments)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 10, ServiceID: 2})
	require.NoError(t, err)

	assert.Len(t, resp.Dates, 31)
	assert.Empty(t, availableDates(resp.Dates))
	assert.Empty(t, appointments.filters)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := newUseCase(&fakeAppointments{})
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{
		ProfessionalID: 10,
		ServiceID:      1,
		From:           ptr.Ptr(date(time.October, 20)),
		To:             ptr.Ptr(date(time.October, 19)),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = uc.Execute(ctx, &Request{
		ProfessionalID: 10,
		ServiceID:      1,
		From:           ptr.Ptr(date(time.October, 1)),
		To:             ptr.Ptr(date(time.December, 1)),
	})
	assert.ErrorIs(t, err, ErrRangeTooLarge)

	_, err = uc.Execute(ctx, &Request{ProfessionalID: 11, ServiceID: 1})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = uc.Execute(ctx, &Request{ProfessionalID: 10, ServiceID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewUseCase_NilLocationDefaultsToUTC(t *testing.T) {
	uc := NewUseCase(fakeServices{
		1: {ID: 1, ProfessionalID: 10, Name: "Terapia", Price: 100, DurationMinutes: 50, Status: domain.ServiceActive},
	}, fakeSchedule{}, &fakeAppointments{}, nopMetrics{}, nil, 30, 31, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 10, ServiceID: 1})
	require.NoError(t, err)
	assert.Equal(t, date(time.October, 15), resp.From)
	assert.Len(t, resp.Dates, 31)
}
