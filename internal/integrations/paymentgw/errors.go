package paymentgw

import "errors"

var (
	// ErrGateway возвращается при любой ошибке вызова платёжного шлюза
	ErrGateway = errors.New("paymentgw client: gateway error")

	// ErrCustomerNotFound возвращается, когда клиент с таким email не найден
	ErrCustomerNotFound = errors.New("paymentgw client: customer not found")

	// ErrAccountNotFound возвращается, когда connected-аккаунт не найден
	ErrAccountNotFound = errors.New("paymentgw client: account not found")

	// ErrPaymentIntentNotFound возвращается, когда платёжный интент не найден
	ErrPaymentIntentNotFound = errors.New("paymentgw client: payment intent not found")

	// ErrCardDeclined возвращается, когда шлюз отклонил списание по карте
	ErrCardDeclined = errors.New("paymentgw client: card declined")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("paymentgw client: invalid response")
)
