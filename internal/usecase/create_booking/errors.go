package create_booking

import "errors"

var (
	// ErrUnauthenticatedClient возвращается, когда запись создается без аутентифицированного клиента
	ErrUnauthenticatedClient = errors.New("create_booking: unauthenticated client")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга не доступна для записи
	ErrServiceInactive = errors.New("create_booking: service is inactive")

	// ErrDateOutOfHorizon возвращается, когда дата в прошлом или дальше горизонта записи
	ErrDateOutOfHorizon = errors.New("create_booking: date is out of booking horizon")

	// ErrInvalidTimeSlot возвращается, когда время начала не совпадает ни с одним слотом расписания
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда слот уже занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is no longer available")

	// ErrPaymentUnavailable возвращается, когда не удалось создать страницу оплаты депозита
	ErrPaymentUnavailable = errors.New("create_booking: payment provider is unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
