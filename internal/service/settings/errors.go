package settings

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда настройки провайдера не найдены
	ErrSettingsNotFound = errors.New("provider settings not found")

	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("provider not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
