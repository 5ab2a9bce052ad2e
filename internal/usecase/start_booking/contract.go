package start_booking

import (
	"context"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/paymentgw"
)

// SlotRepository интерфейс репозитория временных слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	Hold(ctx context.Context, id int64) (bool, error)
	Release(ctx context.Context, id int64) error
	LockOverlapping(ctx context.Context, slot *domain.TimeSlot) (int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
	GetProvider(ctx context.Context, providerID int64) (*catalogservice.Provider, error)
}

// PaymentGateway интерфейс клиента платёжного шлюза
type PaymentGateway interface {
	FindCustomerByEmail(ctx context.Context, email string) (*paymentgw.Customer, error)
	CreateCustomer(ctx context.Context, email, name string) (*paymentgw.Customer, error)
	RetrieveAccount(ctx context.Context, accountID string) (*paymentgw.Account, error)
	CreateCheckoutSession(ctx context.Context, params paymentgw.CreateCheckoutSessionParams) (*paymentgw.CheckoutSession, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
