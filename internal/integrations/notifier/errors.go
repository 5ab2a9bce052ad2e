package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrSendFailed возвращается, когда сервис уведомлений отклонил отправку
	ErrSendFailed = errors.New("notifier client: send failed")
)
