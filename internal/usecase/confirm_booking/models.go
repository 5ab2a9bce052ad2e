package confirm_booking

// Request модель подтверждения оплаты, собранная из metadata
// checkout-сессии
type Request struct {
	ServiceID  int64
	TimeSlotID int64

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	DepositFlow    bool
	FullPriceCents int64

	// CreateAccount клиент согласился на создание аккаунта при оплате
	CreateAccount bool

	// PaymentIntentID идентификатор платежа, завершившего сессию
	PaymentIntentID string

	// GatewayCustomerID идентификатор клиента в платёжном шлюзе
	GatewayCustomerID string
}

// Response модель результата обработки события
type Response struct {
	// Processed false означает идемпотентный no-op:
	// ожидающего бронирования для пары услуга+слот уже нет
	Processed bool
	BookingID int64
}
