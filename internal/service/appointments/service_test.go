package appointments

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// memoryRepo хранит копии записей, UpdateStatus применяется только к статусу confirmed
type memoryRepo struct {
	mu    sync.Mutex
	items map[int64]domain.Appointment
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *memoryRepo) GetByClientID(_ context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Appointment
	for _, a := range r.items {
		if a.ClientID == clientID && (status == nil || a.Status == *status) {
			copied := a
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memoryRepo) GetWithFilter(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Appointment
	for _, a := range r.items {
		if a.ProfessionalID != *filter.ProfessionalID {
			continue
		}
		if !filter.IncludeCancelled && filter.Status == nil && !a.IsActive() {
			continue
		}
		copied := a
		result = append(result, &copied)
	}
	return result, nil
}

func (r *memoryRepo) UpdateStatus(_ context.Context, appt *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[appt.ID]
	if !ok || stored.Status != domain.StatusConfirmed {
		return appointmentRepo.ErrStatusConflict
	}
	r.items[appt.ID] = *appt
	return nil
}

type nopMetrics struct{}

func (nopMetrics) IncTransition(string, string, string) {}

// Thursday 2026-10-15 12:00
var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

var (
	client       = domain.Actor{UserID: 1, Role: domain.RoleClient, ID: 100}
	otherClient  = domain.Actor{UserID: 2, Role: domain.RoleClient, ID: 101}
	professional = domain.Actor{UserID: 3, Role: domain.RoleProfessional, ID: 10}
)

func newService() (*Service, *memoryRepo) {
	repo := &memoryRepo{items: map[int64]domain.Appointment{
		1: {ID: 1, ProfessionalID: 10, ClientID: 100, Date: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
			StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("09:50"), Status: domain.StatusConfirmed},
		2: {ID: 2, ProfessionalID: 10, ClientID: 100, Date: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
			StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("09:50"), Status: domain.StatusConfirmed},
		3: {ID: 3, ProfessionalID: 10, ClientID: 101, Date: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
			StartTime: types.MustTimeString("10:00"), EndTime: types.MustTimeString("10:50"), Status: domain.StatusCancelled},
	}}

	svc := NewService(repo, nopMetrics{}, time.UTC, logger.NewNop())
	svc.timeProvider = fixedTime{now: now}
	return svc, repo
}

func TestService_GetByID_Access(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	resp, err := svc.GetByID(ctx, 1, client)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", resp.Date)
	assert.Equal(t, "09:50", resp.EndTime)

	_, err = svc.GetByID(ctx, 1, professional)
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, 1, otherClient)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, 99, client)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_Transition_CompleteFutureAppointmentFails(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Transition(context.Background(), 1, professional, &models.TransitionRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrAppointmentNotPast)
	assert.Equal(t, domain.StatusConfirmed, repo.items[1].Status)
}

func TestService_Transition_CompletePastAppointment(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.Transition(context.Background(), 2, professional, &models.TransitionRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, domain.StatusCompleted, repo.items[2].Status)

	_, err = svc.Transition(context.Background(), 2, professional, &models.TransitionRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidTransition, "completed is terminal")
}

func TestService_Transition_ClientCancels(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.Transition(context.Background(), 1, client, &models.TransitionRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancelledBy)
	assert.Equal(t, "client", *resp.CancelledBy)

	stored := repo.items[1]
	require.NotNil(t, stored.CancelledAt)
	assert.True(t, now.Equal(*stored.CancelledAt))
}

func TestService_Transition_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		actor   domain.Actor
		status  string
		wantErr error
	}{
		{name: "client completes", id: 2, actor: client, status: "completed", wantErr: ErrAccessDenied},
		{name: "stranger cancels", id: 1, actor: otherClient, status: "cancelled", wantErr: ErrAccessDenied},
		{name: "back to confirmed", id: 1, actor: professional, status: "confirmed", wantErr: ErrInvalidTransition},
		{name: "unknown status", id: 1, actor: professional, status: "done", wantErr: ErrInvalidInput},
		{name: "already cancelled", id: 3, actor: professional, status: "no_show", wantErr: ErrInvalidTransition},
		{name: "missing", id: 42, actor: professional, status: "cancelled", wantErr: ErrAppointmentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService()

			_, err := svc.Transition(context.Background(), tt.id, tt.actor, &models.TransitionRequest{Status: tt.status})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Transition_ConcurrentChangeIsRejected(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, actor := range []domain.Actor{client, professional} {
		wg.Add(1)
		go func(i int, actor domain.Actor) {
			defer wg.Done()
			_, errs[i] = svc.Transition(ctx, 1, actor, &models.TransitionRequest{Status: "cancelled"})
		}(i, actor)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrInvalidTransition)
			failed++
		}
	}
	assert.Equal(t, 1, failed)
}

func TestService_Lists(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	clientList, err := svc.ListClient(ctx, &models.ListClientRequest{Actor: client})
	require.NoError(t, err)
	assert.Len(t, clientList.Appointments, 2)

	_, err = svc.ListClient(ctx, &models.ListClientRequest{Actor: client, Status: ptr.Ptr("unknown")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListClient(ctx, &models.ListClientRequest{Actor: professional})
	assert.ErrorIs(t, err, ErrAccessDenied)

	active, err := svc.ListProfessional(ctx, &models.ListProfessionalRequest{Actor: professional, ProfessionalID: 10})
	require.NoError(t, err)
	assert.Len(t, active.Appointments, 2)

	all, err := svc.ListProfessional(ctx, &models.ListProfessionalRequest{Actor: professional, ProfessionalID: 10, IncludeCancelled: true})
	require.NoError(t, err)
	assert.Len(t, all.Appointments, 3)

	_, err = svc.ListProfessional(ctx, &models.ListProfessionalRequest{Actor: professional, ProfessionalID: 11})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
