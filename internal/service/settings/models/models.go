package models

import (
	"time"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек провайдера
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	ProviderID           int64    `json:"providerId"`
	FinalCostDiscountPct *float64 `json:"finalCostDiscountPct,omitempty"`
	CommissionPct        *float64 `json:"commissionPct,omitempty"`
}

// ApplyToSettings применяет обновления к существующим настройкам
// Обновляются только непустые (not nil) поля из request
func (r *UpdateSettingsRequest) ApplyToSettings(settings *domain.ProviderSettings) {
	if r.FinalCostDiscountPct != nil {
		settings.FinalCostDiscountPct = *r.FinalCostDiscountPct
	}
	if r.CommissionPct != nil {
		settings.CommissionPct = r.CommissionPct
	}
}

// Response модели

// SettingsResponse ответ с настройками провайдера
type SettingsResponse struct {
	ID                   int64     `json:"id"`
	ProviderID           int64     `json:"providerId"`
	FinalCostDiscountPct float64   `json:"finalCostDiscountPct"`
	CommissionPct        *float64  `json:"commissionPct,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.ProviderSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	return &SettingsResponse{
		ID:                   s.ID,
		ProviderID:           s.ProviderID,
		FinalCostDiscountPct: s.FinalCostDiscountPct,
		CommissionPct:        s.CommissionPct,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}
