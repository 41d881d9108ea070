package confirm_deposit

import "errors"

var (
	// ErrPendingNotFound возвращается, когда ожидающая запись не найдена, истекла или уже обработана
	ErrPendingNotFound = errors.New("confirm_deposit: pending booking not found")

	// ErrSlotNotAvailable возвращается, когда за время оплаты слот заняли
	ErrSlotNotAvailable = errors.New("confirm_deposit: slot is no longer available")

	// ErrPaymentNotFound возвращается, когда провайдер не знает платеж
	ErrPaymentNotFound = errors.New("confirm_deposit: payment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_deposit: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_deposit: internal error")
)
