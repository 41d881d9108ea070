package domain

import "errors"

var (
	// ErrInvalidDayOfWeek возвращается, когда день недели вне диапазона 0..6
	ErrInvalidDayOfWeek = errors.New("domain: invalid day of week")

	// ErrInvalidTimeRange возвращается, когда время начала не раньше времени окончания
	ErrInvalidTimeRange = errors.New("domain: invalid time range")

	// ErrBlockOverlap возвращается, когда блок расписания пересекается с другим активным блоком
	ErrBlockOverlap = errors.New("domain: schedule block overlaps another active block")

	// ErrInvalidService возвращается при нарушении инвариантов услуги
	ErrInvalidService = errors.New("domain: invalid service")

	// ErrInvalidTransition возвращается при попытке перехода из недопустимого состояния
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrActorNotAllowed возвращается, когда участник не может выполнить переход
	ErrActorNotAllowed = errors.New("domain: actor is not allowed to perform this transition")

	// ErrAppointmentNotPast возвращается при попытке закрыть запись, дата которой еще не прошла
	ErrAppointmentNotPast = errors.New("domain: appointment date is not in the past yet")
)
