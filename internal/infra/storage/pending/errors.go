package pending

import "errors"

var (
	// ErrPendingNotFound возвращается, когда ожидающая оплаты запись не найдена или истекла
	ErrPendingNotFound = errors.New("pending.store: pending booking not found")

	// ErrAlreadyExists возвращается при повторном сохранении с тем же ID
	ErrAlreadyExists = errors.New("pending.store: pending booking already exists")

	// ErrExpired возвращается при попытке сохранить запись с истекшим сроком
	ErrExpired = errors.New("pending.store: pending booking is already expired")

	// ErrEncode возвращается при ошибке сериализации записи
	ErrEncode = errors.New("pending.store: failed to encode pending booking")

	// ErrDecode возвращается при ошибке десериализации записи
	ErrDecode = errors.New("pending.store: failed to decode pending booking")

	// ErrRedis возвращается при ошибках Redis
	ErrRedis = errors.New("pending.store: redis error")
)
