package get_available_dates

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена у специалиста
	ErrServiceNotFound = errors.New("get_available_dates: service not found")

	// ErrInvalidRange возвращается, когда конец периода раньше начала
	ErrInvalidRange = errors.New("get_available_dates: end date is before start date")

	// ErrRangeTooLarge возвращается, когда период длиннее допустимого
	ErrRangeTooLarge = errors.New("get_available_dates: date range is too large")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_dates: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_dates: internal error")
)
