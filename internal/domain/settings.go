package domain

import "time"

// ProviderSettings represents per-provider settlement configuration.
// FinalCostDiscountPct is applied to the provider-entered final cost
// before the remaining balance is computed; CommissionPct overrides the
// platform-wide commission when set.
type ProviderSettings struct {
	ID                   int64
	ProviderID           int64
	FinalCostDiscountPct float64
	CommissionPct        *float64 // nil = platform default from config
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// HasCommissionOverride returns true when the provider has a custom commission rate
func (s *ProviderSettings) HasCommissionOverride() bool {
	return s.CommissionPct != nil
}
