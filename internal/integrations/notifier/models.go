package notifier

// Шаблоны уведомлений
const (
	TemplateBookingConfirmedCustomer = "booking_confirmed_customer"
	TemplateBookingConfirmedProvider = "booking_confirmed_provider"
	TemplateBookingCancelled         = "booking_cancelled"
	TemplateFinalPaymentCollected    = "final_payment_collected"
)

// SendRequest запрос на отправку уведомления.
// Recipient — email либо внутренний идентификатор получателя,
// Data — данные для подстановки в шаблон.
type SendRequest struct {
	Recipient string            `json:"recipient"`
	Template  string            `json:"template"`
	Data      map[string]string `json:"data"`
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
