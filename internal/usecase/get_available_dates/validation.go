package get_available_dates

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	return nil
}

// resolveRange подставляет период по умолчанию и проверяет его длину
func resolveRange(req *Request, today time.Time, horizonDays, maxRangeDays int) (time.Time, time.Time, error) {
	from := today
	if req.From != nil {
		from = domain.DateOf(*req.From)
	}

	to := from.AddDate(0, 0, horizonDays)
	if req.To != nil {
		to = domain.DateOf(*req.To)
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s > %s",
			ErrInvalidRange, from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	}

	if days := domain.DaysBetween(from, to) + 1; days > maxRangeDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d days requested, max %d", ErrRangeTooLarge, days, maxRangeDays)
	}

	return from, to, nil
}
