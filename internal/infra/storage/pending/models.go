package pending

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// record формат хранения в Redis
type record struct {
	ID             string    `json:"id"`
	ClientID       int64     `json:"client_id"`
	ProfessionalID int64     `json:"professional_id"`
	ServiceID      int64     `json:"service_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	Notes          *string   `json:"notes,omitempty"`
	DepositAmount  float64   `json:"deposit_amount"`
	Currency       string    `json:"currency"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

func toRecord(p *domain.PendingBooking) record {
	return record{
		ID:             p.ID,
		ClientID:       p.ClientID,
		ProfessionalID: p.ProfessionalID,
		ServiceID:      p.ServiceID,
		Date:           p.Date.Format(domain.DateFormat),
		StartTime:      p.StartTime.String(),
		Notes:          p.Notes,
		DepositAmount:  p.DepositAmount,
		Currency:       p.Currency,
		CreatedAt:      p.CreatedAt,
		ExpiresAt:      p.ExpiresAt,
	}
}

func (r record) toDomain() (*domain.PendingBooking, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &domain.PendingBooking{
		ID:             r.ID,
		ClientID:       r.ClientID,
		ProfessionalID: r.ProfessionalID,
		ServiceID:      r.ServiceID,
		Date:           date,
		StartTime:      start,
		Notes:          r.Notes,
		DepositAmount:  r.DepositAmount,
		Currency:       r.Currency,
		CreatedAt:      r.CreatedAt,
		ExpiresAt:      r.ExpiresAt,
	}, nil
}
