package paymentgw

// Статусы платёжного интента на стороне шлюза
const (
	IntentStatusSucceeded             = "succeeded"
	IntentStatusProcessing            = "processing"
	IntentStatusRequiresPaymentMethod = "requires_payment_method"
	IntentStatusRequiresAction        = "requires_action"
	IntentStatusCanceled              = "canceled"
)

// Тип события, доставляемого шлюзом на webhook при успешной оплате
const EventCheckoutSessionCompleted = "checkout.session.completed"

// Ключи метаданных checkout-сессии.
// Шлюз возвращает метаданные в событии без изменений, поэтому их
// достаточно для восстановления бронирования при подтверждении.
const (
	MetaServiceID      = "service_id"
	MetaTimeSlotID     = "time_slot_id"
	MetaCustomerName   = "customer_name"
	MetaCustomerEmail  = "customer_email"
	MetaCustomerPhone  = "customer_phone"
	MetaDepositFlow    = "deposit_flow"
	MetaFullPriceCents = "full_price_cents"
	MetaCreateAccount  = "create_account"
)

// Customer клиент платёжного шлюза (плательщик)
type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Account connected-аккаунт провайдера на стороне шлюза
type Account struct {
	ID               string `json:"id"`
	ChargesEnabled   bool   `json:"charges_enabled"`
	PayoutsEnabled   bool   `json:"payouts_enabled"`
	DetailsSubmitted bool   `json:"details_submitted"`
}

// CanAcceptCharges сообщает, может ли аккаунт принимать платежи
func (a *Account) CanAcceptCharges() bool {
	return a.ChargesEnabled && a.DetailsSubmitted
}

// CheckoutSession hosted-страница оплаты
type CheckoutSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentIntent string `json:"payment_intent"`
	Customer      string `json:"customer"`
}

// PaymentIntent платёжный интент
type PaymentIntent struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	AmountCents   int64  `json:"amount"`
	Customer      string `json:"customer"`
	PaymentMethod string `json:"payment_method"`
}

// Succeeded сообщает, завершился ли платёж успешно
func (p *PaymentIntent) Succeeded() bool {
	return p.Status == IntentStatusSucceeded
}

// CreateCheckoutSessionParams параметры создания checkout-сессии.
// ApplicationFeeCents удерживается в пользу площадки, остаток
// переводится на DestinationAccountID провайдера.
type CreateCheckoutSessionParams struct {
	AmountCents          int64
	Currency             string
	ProductName          string
	CustomerID           string
	ApplicationFeeCents  int64
	DestinationAccountID string
	SuccessURL           string
	CancelURL            string
	Metadata             map[string]string
}

// CreatePaymentIntentParams параметры off-session списания финального баланса
type CreatePaymentIntentParams struct {
	AmountCents          int64
	Currency             string
	CustomerID           string
	PaymentMethodID      string
	ApplicationFeeCents  int64
	DestinationAccountID string
	OffSession           bool
	Description          string
}

// Event асинхронное событие шлюза, доставляемое на webhook.
// Метаданные checkout-сессии возвращаются в исходном виде.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object EventObject `json:"object"`
	} `json:"data"`
}

// EventObject объект события (checkout-сессия)
type EventObject struct {
	ID            string            `json:"id"`
	Customer      string            `json:"customer"`
	PaymentIntent string            `json:"payment_intent"`
	Metadata      map[string]string `json:"metadata"`
}

// errorResponse модель ошибки от шлюза
type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// customerListResponse ответ на поиск клиентов
type customerListResponse struct {
	Data []Customer `json:"data"`
}
