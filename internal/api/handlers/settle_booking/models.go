package settle_booking

import (
	settleBooking "github.com/m04kA/SMC-BeautyBookingService/internal/usecase/settle_booking"
)

// SettleBookingRequest HTTP request model
type SettleBookingRequest struct {
	FinalCost     float64 `json:"finalCost"`
	ProviderNotes *string `json:"providerNotes,omitempty"`
}

// SettleBookingResponse HTTP response model
type SettleBookingResponse struct {
	Success         bool    `json:"success"`
	Balance         float64 `json:"balance"`
	PaymentIntentID string  `json:"paymentIntentId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SettleBookingRequest) ToUseCaseRequest(bookingID int64) *settleBooking.Request {
	return &settleBooking.Request{
		BookingID:        bookingID,
		FinalCostDollars: r.FinalCost,
		ProviderNotes:    r.ProviderNotes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *settleBooking.Response) *SettleBookingResponse {
	return &SettleBookingResponse{
		Success:         resp.Success,
		Balance:         resp.BalanceDollars,
		PaymentIntentID: resp.PaymentIntentID,
	}
}
