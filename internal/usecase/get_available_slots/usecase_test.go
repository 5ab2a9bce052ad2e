package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type slotRepoMock struct {
	slots []domain.TimeSlot
	err   error
}

func (m *slotRepoMock) ListAvailable(ctx context.Context, serviceID int64, date time.Time) ([]domain.TimeSlot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.slots, nil
}

func daySlots() []domain.TimeSlot {
	return []domain.TimeSlot{
		{ID: 1, ServiceID: 10, StartTime: types.TimeString("09:00"), EndTime: types.TimeString("10:00")},
		{ID: 2, ServiceID: 10, StartTime: types.TimeString("12:30"), EndTime: types.TimeString("13:30")},
		{ID: 3, ServiceID: 10, StartTime: types.TimeString("18:00"), EndTime: types.TimeString("19:00")},
	}
}

func TestExecute_FutureDateReturnsAllSlots(t *testing.T) {
	uc := NewUseCase(&slotRepoMock{slots: daySlots()}, 60, nopLogger{})
	uc.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 10,
		Date:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 3)
}

func TestExecute_TodayFiltersByMinimumNotice(t *testing.T) {
	uc := NewUseCase(&slotRepoMock{slots: daySlots()}, 60, nopLogger{})
	// Сейчас 12:00, минимальный интервал час: слот 12:30 уже не успеть
	uc.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 10,
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, int64(3), resp.Slots[0].ID)
}

func TestExecute_CutoffBoundarySlotStays(t *testing.T) {
	uc := NewUseCase(&slotRepoMock{slots: daySlots()}, 30, nopLogger{})
	// Граница ровно на начале слота: 12:00 + 30 минут = 12:30
	uc.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 10,
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, int64(2), resp.Slots[0].ID)
}

func TestExecute_RepositoryError(t *testing.T) {
	uc := NewUseCase(&slotRepoMock{err: errors.New("connection refused")}, 60, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: 10,
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&slotRepoMock{}, 60, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
