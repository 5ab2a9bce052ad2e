package start_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("start_booking: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("start_booking: service not found")

	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("start_booking: provider not found")

	// ErrSlotNotFound возвращается, когда временной слот не найден
	ErrSlotNotFound = errors.New("start_booking: time slot not found")

	// ErrSlotMismatch возвращается, когда слот принадлежит другой услуге
	ErrSlotMismatch = errors.New("start_booking: slot does not belong to service")

	// ErrSlotUnavailable возвращается, когда слот уже занят
	ErrSlotUnavailable = errors.New("start_booking: slot is not available")

	// ErrPaymentSetupIncomplete возвращается, когда аккаунт провайдера
	// в платёжном шлюзе не может принимать платежи
	ErrPaymentSetupIncomplete = errors.New("start_booking: provider payment setup is incomplete")

	// ErrGateway возвращается при ошибке вызова платёжного шлюза
	ErrGateway = errors.New("start_booking: payment gateway error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("start_booking: internal error")
)
