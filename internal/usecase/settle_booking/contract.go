package settle_booking

import (
	"context"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	"github.com/m04kA/SMC-BeautyBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/paymentgw"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateSettlement(ctx context.Context, id int64, upd booking.SettlementUpdate) error
}

// SettingsRepository интерфейс репозитория настроек провайдера
type SettingsRepository interface {
	GetByProviderID(ctx context.Context, providerID int64) (*domain.ProviderSettings, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetProvider(ctx context.Context, providerID int64) (*catalogservice.Provider, error)
}

// PaymentGateway интерфейс клиента платёжного шлюза
type PaymentGateway interface {
	RetrievePaymentIntent(ctx context.Context, intentID string) (*paymentgw.PaymentIntent, error)
	CreatePaymentIntent(ctx context.Context, params paymentgw.CreatePaymentIntentParams) (*paymentgw.PaymentIntent, error)
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	Send(ctx context.Context, recipient, template string, data map[string]string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
