package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/types"
)

// UseCase use case получения доступных слотов услуги на дату
type UseCase struct {
	slotRepo SlotRepository
	logger   Logger

	// minNotice минимальный интервал до начала слота при записи
	// на сегодняшний день
	minNotice time.Duration

	now func() time.Time
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, minNoticeMinutes int, logger Logger) *UseCase {
	if minNoticeMinutes < 0 {
		minNoticeMinutes = 0
	}
	return &UseCase{
		slotRepo:  slotRepo,
		logger:    logger,
		minNotice: time.Duration(minNoticeMinutes) * time.Minute,
		now:       time.Now,
	}
}

// Execute выполняет use case получения доступных слотов.
// Для сегодняшней даты слоты, начинающиеся раньше чем через
// минимальный интервал от текущего момента, отбрасываются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем доступные слоты из хранилища
	slots, err := uc.slotRepo.ListAvailable(ctx, req.ServiceID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots for service=%d, date=%s: %v",
			req.ServiceID, req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 3. Отбрасываем слоты, на которые уже нельзя успеть записаться
	slots = uc.filterByNotice(req.Date, slots)

	uc.logger.Info("GetAvailableSlots: service=%d, date=%s, found=%d",
		req.ServiceID, req.Date.Format(domain.DateFormat), len(slots))

	return &Response{Slots: slots}, nil
}

func (uc *UseCase) filterByNotice(date time.Time, slots []domain.TimeSlot) []domain.TimeSlot {
	now := uc.now()
	if date.Format(domain.DateFormat) != now.Format(domain.DateFormat) {
		return slots
	}

	cutoff := types.NewTimeString(now.Add(uc.minNotice))
	filtered := make([]domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.StartTime.IsBefore(cutoff) {
			continue
		}
		filtered = append(filtered, slot)
	}
	return filtered
}
