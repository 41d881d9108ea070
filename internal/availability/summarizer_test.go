package availability

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Thursday 2026-10-15 11:05
var now = time.Date(2026, 10, 15, 11, 5, 0, 0, time.UTC)

func weekdayParams() Params {
	return Params{
		Blocks: []*domain.WeeklyScheduleBlock{
			newBlock(time.Monday, "09:00", "13:00"),
			newBlock(time.Thursday, "09:00", "13:00"),
			newBlock(time.Friday, "15:00", "18:00"),
		},
		DurationMinutes: 60,
		Now:             now,
		HorizonDays:     domain.DefaultBookingHorizonDays,
	}
}

func TestParams_InHorizon(t *testing.T) {
	p := weekdayParams()
	today := domain.DateOf(now)

	assert.True(t, p.InHorizon(today))
	assert.True(t, p.InHorizon(today.AddDate(0, 0, 30)))
	assert.False(t, p.InHorizon(today.AddDate(0, 0, 31)))
	assert.False(t, p.InHorizon(today.AddDate(0, 0, -1)))
}

func TestParams_SlotsForToday(t *testing.T) {
	p := weekdayParams()

	slots := p.SlotsFor(now, nil)

	require.Equal(t, []string{"09:00", "10:00", "11:00", "12:00"}, starts(slots))
	assert.Equal(t, []string{"12:00"}, starts(p.AvailableSlots(now, nil)))
}

func TestParams_SlotsOutsideHorizon(t *testing.T) {
	p := weekdayParams()

	assert.Empty(t, p.SlotsFor(monday.AddDate(0, 0, -7), nil))
	assert.Empty(t, p.SlotsFor(monday.AddDate(0, 0, 35), nil))
	assert.Len(t, p.SlotsFor(monday, nil), 4)
}

func TestParams_Summarize(t *testing.T) {
	p := weekdayParams()
	today := domain.DateOf(now)
	friday := today.AddDate(0, 0, 1)

	ledger := []*domain.Appointment{
		newAppointment(friday, "15:00", "16:00"),
		newAppointment(friday, "16:00", "17:00"),
		newAppointment(friday, "17:00", "18:00"),
	}

	days := p.Summarize(today, today.AddDate(0, 0, 6), ledger)

	require.Len(t, days, 7)
	// Thursday (12:00 is still ahead), Friday fully booked, weekend, Monday, Tuesday, Wednesday
	expected := []bool{true, false, false, false, true, false, false}
	for i, d := range days {
		assert.Equal(t, today.AddDate(0, 0, i), d.Date)
		assert.Equal(t, expected[i], d.HasAvailability, d.Date.Format(domain.DateFormat))
	}
}

func TestParams_SummarizeEmptyData(t *testing.T) {
	p := Params{Now: now, DurationMinutes: 60, HorizonDays: 30}
	today := domain.DateOf(now)

	days := p.Summarize(today, today.AddDate(0, 0, 30), nil)

	require.Len(t, days, 31)
	for _, d := range days {
		assert.False(t, d.HasAvailability)
	}

	assert.Empty(t, p.Summarize(today.AddDate(0, 0, 1), today, nil))
}

func TestParams_DateAndSlotViewsAgree(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	today := domain.DateOf(now)

	for iteration := 0; iteration < 50; iteration++ {
		p := Params{
			Blocks: []*domain.WeeklyScheduleBlock{
				newBlock(time.Weekday(rnd.Intn(7)), "08:00", "12:00"),
				newBlock(time.Weekday(rnd.Intn(7)), "13:00", "17:30"),
			},
			DurationMinutes: 15 * (1 + rnd.Intn(8)),
			Now:             now,
			HorizonDays:     30,
		}

		ledger := make([]*domain.Appointment, 0)
		for i := 0; i < 40; i++ {
			startMinutes := 8*60 + 15*rnd.Intn(36)
			start, err := types.NewTimeStringFromMinutes(startMinutes)
			require.NoError(t, err)
			end, err := types.NewTimeStringFromMinutes(startMinutes + 15*(1+rnd.Intn(6)))
			require.NoError(t, err)
			ledger = append(ledger, newAppointment(today.AddDate(0, 0, rnd.Intn(31)), start.String(), end.String()))
		}

		days := p.Summarize(today, today.AddDate(0, 0, 30), ledger)
		require.Len(t, days, 31)

		for _, d := range days {
			dayLedger := make([]*domain.Appointment, 0)
			for _, a := range ledger {
				if a.Date.Equal(d.Date) {
					dayLedger = append(dayLedger, a)
				}
			}
			available := p.AvailableSlots(d.Date, dayLedger)
			assert.Equal(t, len(available) > 0, d.HasAvailability, "date %s", d.Date.Format(domain.DateFormat))

			// the whole ledger gives the same answer, other dates are ignored
			assert.Equal(t, available, p.AvailableSlots(d.Date, ledger))
		}
	}
}
