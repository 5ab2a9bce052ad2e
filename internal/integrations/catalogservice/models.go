package catalogservice

// Service модель услуги из CatalogService
type Service struct {
	ID         int64    `json:"id"`
	ProviderID int64    `json:"provider_id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Price      *float64 `json:"price"`
	IsActive   bool     `json:"is_active"`
}

// Provider модель провайдера услуг из CatalogService
type Provider struct {
	ID               int64  `json:"id"`
	DisplayName      string `json:"display_name"`
	Email            string `json:"email"`
	GatewayAccountID string `json:"gateway_account_id"`
	IsActive         bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
