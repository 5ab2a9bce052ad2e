package confirm_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных данных события
	ErrInvalidInput = errors.New("confirm_booking: invalid event data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
