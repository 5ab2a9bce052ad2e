package update_provider_settings

import (
	"github.com/m04kA/SMC-BeautyBookingService/internal/service/settings/models"
)

// UpdateProviderSettingsRequest HTTP request model
type UpdateProviderSettingsRequest struct {
	FinalCostDiscountPct *float64 `json:"finalCostDiscountPct,omitempty"`
	CommissionPct        *float64 `json:"commissionPct,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateProviderSettingsRequest) ToServiceRequest(providerID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		ProviderID:           providerID,
		FinalCostDiscountPct: r.FinalCostDiscountPct,
		CommissionPct:        r.CommissionPct,
	}
}
