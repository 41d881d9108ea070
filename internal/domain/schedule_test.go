package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func block(id int64, day time.Weekday, start, end string, active bool) *WeeklyScheduleBlock {
	return &WeeklyScheduleBlock{
		ID:             id,
		ProfessionalID: 1,
		DayOfWeek:      day,
		StartTime:      types.TimeString(start),
		EndTime:        types.TimeString(end),
		Active:         active,
	}
}

func TestWeeklyScheduleBlock_Validate(t *testing.T) {
	tests := []struct {
		name    string
		block   *WeeklyScheduleBlock
		wantErr error
	}{
		{name: "valid", block: block(0, time.Monday, "09:00", "13:00", true)},
		{name: "sunday", block: block(0, time.Sunday, "00:00", "23:59", true)},
		{name: "day out of range", block: block(0, time.Weekday(7), "09:00", "13:00", true), wantErr: ErrInvalidDayOfWeek},
		{name: "negative day", block: block(0, time.Weekday(-1), "09:00", "13:00", true), wantErr: ErrInvalidDayOfWeek},
		{name: "start equals end", block: block(0, time.Monday, "09:00", "09:00", true), wantErr: ErrInvalidTimeRange},
		{name: "start after end", block: block(0, time.Monday, "14:00", "13:00", true), wantErr: ErrInvalidTimeRange},
		{name: "malformed time", block: block(0, time.Monday, "9am", "13:00", true), wantErr: ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.block.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckNoOverlap(t *testing.T) {
	existing := []*WeeklyScheduleBlock{
		block(1, time.Monday, "09:00", "13:00", true),
		block(2, time.Monday, "15:00", "18:00", true),
		block(3, time.Monday, "13:00", "15:00", false),
		block(4, time.Tuesday, "09:00", "18:00", true),
	}

	t.Run("adjacent block is allowed", func(t *testing.T) {
		assert.NoError(t, CheckNoOverlap(block(0, time.Monday, "13:00", "15:00", true), existing))
	})

	t.Run("intersecting block is rejected", func(t *testing.T) {
		err := CheckNoOverlap(block(0, time.Monday, "12:00", "14:00", true), existing)
		assert.ErrorIs(t, err, ErrBlockOverlap)
	})

	t.Run("inactive candidate never overlaps", func(t *testing.T) {
		assert.NoError(t, CheckNoOverlap(block(0, time.Monday, "10:00", "11:00", false), existing))
	})

	t.Run("update does not collide with itself", func(t *testing.T) {
		assert.NoError(t, CheckNoOverlap(block(1, time.Monday, "08:00", "14:00", true), existing))
	})

	t.Run("update still checks other blocks", func(t *testing.T) {
		err := CheckNoOverlap(block(1, time.Monday, "08:00", "16:00", true), existing)
		assert.ErrorIs(t, err, ErrBlockOverlap)
	})
}

func TestService_DepositAmount(t *testing.T) {
	s := &Service{Price: 150, DepositPercentage: 50}
	assert.True(t, s.RequiresDeposit())
	assert.InDelta(t, 75.0, s.DepositAmount(), 0.0001)

	s = &Service{Price: 99.99, DepositPercentage: 33}
	assert.InDelta(t, 33.0, s.DepositAmount(), 0.0001)

	s = &Service{Price: 150}
	assert.False(t, s.RequiresDeposit())
	assert.Zero(t, s.DepositAmount())
}

func TestService_Validate(t *testing.T) {
	valid := Service{Name: "Sesion", Price: 100, DurationMinutes: 50, Status: ServiceActive}
	assert.NoError(t, valid.Validate())

	broken := []Service{
		{Name: " ", Price: 100, DurationMinutes: 50, Status: ServiceActive},
		{Name: "x", Price: -1, DurationMinutes: 50, Status: ServiceActive},
		{Name: "x", Price: 100, DurationMinutes: 0, Status: ServiceActive},
		{Name: "x", Price: 100, DurationMinutes: 50, DepositPercentage: 101, Status: ServiceActive},
		{Name: "x", Price: 100, DurationMinutes: 50, Status: "archived"},
	}
	for _, s := range broken {
		assert.ErrorIs(t, s.Validate(), ErrInvalidService)
	}
}
