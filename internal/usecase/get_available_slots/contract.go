package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
)

// SlotRepository интерфейс репозитория временных слотов
type SlotRepository interface {
	ListAvailable(ctx context.Context, serviceID int64, date time.Time) ([]domain.TimeSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
