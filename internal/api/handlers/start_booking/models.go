package start_booking

import (
	startBooking "github.com/m04kA/SMC-BeautyBookingService/internal/usecase/start_booking"
)

// CustomerInfo контактные данные клиента в HTTP запросе
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// StartBookingRequest HTTP request model
type StartBookingRequest struct {
	ServiceID      int64        `json:"serviceId"`
	TimeSlotID     int64        `json:"timeSlotId"`
	Customer       CustomerInfo `json:"customer"`
	AmountCents    int64        `json:"amountCents"`
	FullPriceCents int64        `json:"fullPriceCents"`
	DepositFlow    bool         `json:"depositFlow"`
	CreateAccount  bool         `json:"createAccount,omitempty"`
}

// StartBookingResponse HTTP response model
type StartBookingResponse struct {
	BookingID        int64  `json:"bookingId"`
	PaymentSessionID string `json:"paymentSessionId"`
	CheckoutURL      string `json:"checkoutUrl"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *StartBookingRequest) ToUseCaseRequest() *startBooking.Request {
	return &startBooking.Request{
		ServiceID:  r.ServiceID,
		TimeSlotID: r.TimeSlotID,
		Customer: startBooking.CustomerInfo{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
		},
		AmountCents:    r.AmountCents,
		FullPriceCents: r.FullPriceCents,
		DepositFlow:    r.DepositFlow,
		CreateAccount:  r.CreateAccount,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *startBooking.Response) *StartBookingResponse {
	return &StartBookingResponse{
		BookingID:        resp.BookingID,
		PaymentSessionID: resp.PaymentSessionID,
		CheckoutURL:      resp.CheckoutURL,
	}
}
