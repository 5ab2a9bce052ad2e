package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
)

// Request модель запроса списка доступных слотов
type Request struct {
	ServiceID int64
	Date      time.Time
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Slots []domain.TimeSlot
}
