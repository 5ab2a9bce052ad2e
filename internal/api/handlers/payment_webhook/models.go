package payment_webhook

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/paymentgw"
	confirmBooking "github.com/m04kA/SMC-BeautyBookingService/internal/usecase/confirm_booking"
)

// WebhookResponse HTTP response model
type WebhookResponse struct {
	Received  bool `json:"received"`
	Processed bool `json:"processed"`
}

// ToUseCaseRequest собирает запрос use case из metadata checkout-сессии
func ToUseCaseRequest(obj *paymentgw.EventObject) (*confirmBooking.Request, error) {
	serviceID, err := strconv.ParseInt(obj.Metadata[paymentgw.MetaServiceID], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid service_id metadata: %v", err)
	}
	timeSlotID, err := strconv.ParseInt(obj.Metadata[paymentgw.MetaTimeSlotID], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid time_slot_id metadata: %v", err)
	}

	// Необязательные поля metadata игнорируем при ошибках разбора
	depositFlow, _ := strconv.ParseBool(obj.Metadata[paymentgw.MetaDepositFlow])
	createAccount, _ := strconv.ParseBool(obj.Metadata[paymentgw.MetaCreateAccount])
	fullPriceCents, _ := strconv.ParseInt(obj.Metadata[paymentgw.MetaFullPriceCents], 10, 64)

	return &confirmBooking.Request{
		ServiceID:         serviceID,
		TimeSlotID:        timeSlotID,
		CustomerName:      obj.Metadata[paymentgw.MetaCustomerName],
		CustomerEmail:     obj.Metadata[paymentgw.MetaCustomerEmail],
		CustomerPhone:     obj.Metadata[paymentgw.MetaCustomerPhone],
		DepositFlow:       depositFlow,
		FullPriceCents:    fullPriceCents,
		CreateAccount:     createAccount,
		PaymentIntentID:   obj.PaymentIntent,
		GatewayCustomerID: obj.Customer,
	}, nil
}
