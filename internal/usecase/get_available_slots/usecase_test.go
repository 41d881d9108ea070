package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
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

type fakeSchedule struct {
	blocks []*domain.WeeklyScheduleBlock
	err    error
}

func (f fakeSchedule) GetByProfessional(_ context.Context, _ int64, _ bool) ([]*domain.WeeklyScheduleBlock, error) {
	return f.blocks, f.err
}

type fakeAppointments struct {
	ledger []*domain.Appointment
	calls  int
}

func (f *fakeAppointments) GetWithFilter(_ context.Context, _ domain.AppointmentFilter) ([]*domain.Appointment, error) {
	f.calls++
	return f.ledger, nil
}

type nopMetrics struct{}

func (nopMetrics) ObserveAvailability(string, time.Duration) {}

// Thursday 2026-10-15 08:00
var now = time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
var monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func newUseCase(services fakeServices, schedule fakeSchedule, appointments *fakeAppointments) *UseCase {
	uc := NewUseCase(services, schedule, appointments, nopMetrics{}, time.UTC, 30, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func defaultServices() fakeServices {
	return fakeServices{
		1: {ID: 1, ProfessionalID: 10, Name: "Terapia", Price: 100, DurationMinutes: 50, Status: domain.ServiceActive},
		2: {ID: 2, ProfessionalID: 10, Name: "Pareja", Price: 100, DurationMinutes: 50, Status: domain.ServiceInactive},
		3: {ID: 3, ProfessionalID: 11, Name: "Otro", Price: 100, DurationMinutes: 50, Status: domain.ServiceActive},
	}
}

func mondayMorning() fakeSchedule {
	return fakeSchedule{blocks: []*domain.WeeklyScheduleBlock{{
		ProfessionalID: 10,
		DayOfWeek:      time.Monday,
		StartTime:      types.MustTimeString("09:00"),
		EndTime:        types.MustTimeString("13:00"),
		Active:         true,
	}}}
}

func slotStarts(slots []domain.Slot) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.StartTime.String())
	}
	return result
}

func TestUseCase_Execute(t *testing.T) {
	appointments := &fakeAppointments{ledger: []*domain.Appointment{{
		ProfessionalID: 10,
		Date:           monday,
		StartTime:      types.MustTimeString("09:50"),
		EndTime:        types.MustTimeString("10:40"),
		Status:         domain.StatusConfirmed,
	}}}
	uc := newUseCase(defaultServices(), mondayMorning(), appointments)

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 10, ServiceID: 1, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:40", "11:30"}, slotStarts(resp.Slots))
	assert.Equal(t, 50, resp.DurationMinutes)
	for _, s := range resp.Slots {
		assert.True(t, s.Available)
	}
}

func TestUseCase_Execute_EmptyResults(t *testing.T) {
	tests := []struct {
		name     string
		req      Request
		schedule fakeSchedule
	}{
		{name: "inactive service", req: Request{ProfessionalID: 10, ServiceID: 2, Date: monday}, schedule: mondayMorning()},
		{name: "no schedule", req: Request{ProfessionalID: 10, ServiceID: 1, Date: monday}},
		{name: "date in the past", req: Request{ProfessionalID: 10, ServiceID: 1, Date: monday.AddDate(0, 0, -14)}, schedule: mondayMorning()},
		{name: "date beyond horizon", req: Request{ProfessionalID: 10, ServiceID: 1, Date: monday.AddDate(0, 0, 28)}, schedule: mondayMorning()},
		{name: "day without blocks", req: Request{ProfessionalID: 10, ServiceID: 1, Date: monday.AddDate(0, 0, 1)}, schedule: mondayMorning()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(defaultServices(), tt.schedule, &fakeAppointments{})

			resp, err := uc.Execute(context.Background(), &tt.req)
			require.NoError(t, err)
			assert.NotNil(t, resp.Slots)
			assert.Empty(t, resp.Slots)
		})
	}
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := newUseCase(defaultServices(), mondayMorning(), &fakeAppointments{})
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{ProfessionalID: 10, ServiceID: 99, Date: monday})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = uc.Execute(ctx, &Request{ProfessionalID: 10, ServiceID: 3, Date: monday})
	assert.ErrorIs(t, err, ErrServiceNotFound, "service of another professional")

	_, err = uc.Execute(ctx, &Request{ProfessionalID: 10, ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	uc = newUseCase(defaultServices(), fakeSchedule{err: errors.New("connection reset")}, &fakeAppointments{})
	_, err = uc.Execute(ctx, &Request{ProfessionalID: 10, ServiceID: 1, Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestNewUseCase_NilLocationDefaultsToUTC(t *testing.T) {
	uc := NewUseCase(defaultServices(), mondayMorning(), &fakeAppointments{}, nopMetrics{}, nil, 30, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 10, ServiceID: 1, Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:50", "10:40", "11:30"}, slotStarts(resp.Slots))
}
