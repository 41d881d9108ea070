package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда провайдер не знает платеж
	ErrPaymentNotFound = errors.New("payments: payment not found")

	// ErrInvalidReference возвращается при некорректном идентификаторе платежа
	ErrInvalidReference = errors.New("payments: invalid payment reference")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("payments: invalid provider response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payments: internal error")
)
