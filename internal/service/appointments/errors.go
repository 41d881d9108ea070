package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied возвращается, когда у участника нет прав на запись
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается, когда переход из текущего статуса невозможен
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAppointmentNotPast возвращается при попытке закрыть запись до ее даты
	ErrAppointmentNotPast = errors.New("appointment date has not passed yet")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
