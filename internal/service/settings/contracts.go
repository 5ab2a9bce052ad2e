package settings

import (
	"context"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/catalogservice"
)

// SettingsRepository интерфейс репозитория настроек провайдера
type SettingsRepository interface {
	GetByProviderID(ctx context.Context, providerID int64) (*domain.ProviderSettings, error)
	Upsert(ctx context.Context, settings *domain.ProviderSettings) (*domain.ProviderSettings, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetProvider(ctx context.Context, providerID int64) (*catalogservice.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
