package settle_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("settle_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("settle_booking: booking not found")

	// ErrInvalidAmount возвращается при отрицательной итоговой стоимости
	ErrInvalidAmount = errors.New("settle_booking: final cost must not be negative")

	// ErrDepositNotPaid возвращается, когда депозит по бронированию не оплачен
	ErrDepositNotPaid = errors.New("settle_booking: deposit is not paid")

	// ErrAlreadySettled возвращается при повторном расчёте бронирования
	ErrAlreadySettled = errors.New("settle_booking: booking is already settled")

	// ErrGateway возвращается при ошибке вызова платёжного шлюза
	ErrGateway = errors.New("settle_booking: payment gateway error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("settle_booking: internal error")
)
