package userservice

import "errors"

var (
	// ErrInvalidEmail возвращается, когда UserService отклонил email
	ErrInvalidEmail = errors.New("userservice client: invalid email")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")
)
