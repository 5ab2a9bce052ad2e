package cancel_booking

import (
	"github.com/m04kA/SMC-BeautyBookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса.
// Ровно один из userID/providerID должен быть задан - это
// гарантирует обработчик.
func (r *CancelBookingRequest) ToServiceRequest(userID, providerID *int64) *models.CancelBookingRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &models.CancelBookingRequest{
		UserID:             userID,
		ProviderID:         providerID,
		CancellationReason: reason,
	}
}
