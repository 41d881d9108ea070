package get_available_dates

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	ProfessionalID int64           `json:"professionalId"`
	ServiceID      int64           `json:"serviceId"`
	From           string          `json:"from"`
	To             string          `json:"to"`
	Dates          []DateAvailable `json:"dates"`
}

// DateAvailable есть ли на дату хотя бы один свободный слот
type DateAvailable struct {
	Date            string `json:"date"`
	HasAvailability bool   `json:"hasAvailability"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]DateAvailable, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = DateAvailable{
			Date:            d.Date.Format(domain.DateFormat),
			HasAvailability: d.HasAvailability,
		}
	}

	return &AvailableDatesResponse{
		ProfessionalID: resp.ProfessionalID,
		ServiceID:      resp.ServiceID,
		From:           resp.From.Format(domain.DateFormat),
		To:             resp.To.Format(domain.DateFormat),
		Dates:          dates,
	}
}

// ToUseCaseRequest создает запрос use case, пустые from/to означают период по умолчанию
func ToUseCaseRequest(professionalID, serviceID int64, fromStr, toStr string) (*getAvailableDates.Request, error) {
	req := &getAvailableDates.Request{
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
	}

	if fromStr != "" {
		from, err := domain.ParseDate(fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := domain.ParseDate(toStr)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	return req, nil
}
