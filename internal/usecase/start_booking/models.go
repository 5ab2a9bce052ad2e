package start_booking

// CustomerInfo контактные данные клиента.
// Для гостевых бронирований аккаунт не требуется - этих полей достаточно.
type CustomerInfo struct {
	Name  string
	Email string
	Phone string
}

// Request модель запроса на начало бронирования
type Request struct {
	ServiceID  int64
	TimeSlotID int64
	Customer   CustomerInfo

	// AmountCents сумма к оплате сейчас в минорных единицах:
	// депозит при DepositFlow=true, иначе полная цена
	AmountCents int64

	// FullPriceCents полная цена услуги в минорных единицах
	FullPriceCents int64

	DepositFlow bool

	// CreateAccount клиент согласился на создание аккаунта при оплате
	CreateAccount bool
}

// Response модель ответа с созданным бронированием и ссылкой на оплату
type Response struct {
	BookingID        int64
	PaymentSessionID string
	CheckoutURL      string
}

// Config бизнес-параметры usecase
type Config struct {
	PlatformFeePercent float64
	Currency           string
	SuccessURL         string
	CancelURL          string
}
