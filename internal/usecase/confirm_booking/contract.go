package confirm_booking

import (
	"context"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	"github.com/m04kA/SMC-BeautyBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ConfirmPending(ctx context.Context, serviceID, timeSlotID int64, upd booking.ConfirmUpdate) (*domain.Booking, error)
	AttachUser(ctx context.Context, id, userID int64) error
}

// SlotRepository интерфейс репозитория временных слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	Hold(ctx context.Context, id int64) (bool, error)
	LockOverlapping(ctx context.Context, slot *domain.TimeSlot) (int64, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetProvider(ctx context.Context, providerID int64) (*catalogservice.Provider, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	FindOrCreateByEmail(ctx context.Context, email, name, phone string) (*userservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
