package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	bookingstore "github.com/m04kA/SMC-BeautyBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-BeautyBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type txManagerFake struct{}

func (txManagerFake) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type bookingRepoMock struct {
	booking      *domain.Booking
	getErr       error
	userBookings []*domain.Booking
	filter       domain.ProviderBookingsFilter
	cancelErr    error
	cancelCalls  int
	cancelReason string
}

func (m *bookingRepoMock) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.booking, nil
}

func (m *bookingRepoMock) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return m.userBookings, nil
}

func (m *bookingRepoMock) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	m.filter = filter
	return m.userBookings, nil
}

func (m *bookingRepoMock) Cancel(ctx context.Context, id int64, reason string) error {
	m.cancelCalls++
	m.cancelReason = reason
	return m.cancelErr
}

type slotRepoMock struct {
	releaseCalls int
	releasedID   int64
	releaseErr   error
}

func (m *slotRepoMock) Release(ctx context.Context, id int64) error {
	m.releaseCalls++
	m.releasedID = id
	return m.releaseErr
}

type notifierMock struct {
	sent []string
}

func (m *notifierMock) Send(ctx context.Context, recipient, template string, data map[string]string) error {
	m.sent = append(m.sent, template)
	return nil
}

func activeBooking() *domain.Booking {
	return &domain.Booking{
		ID:            42,
		ServiceID:     10,
		ProviderID:    3,
		TimeSlotID:    7,
		UserID:        ptr.Ptr(int64(15)),
		Status:        domain.StatusConfirmed,
		CustomerName:  "Anna",
		CustomerEmail: "anna@example.com",
	}
}

func newTestService(bookings *bookingRepoMock, slots *slotRepoMock, notify *notifierMock) *Service {
	return NewService(bookings, slots, txManagerFake{}, notify, nopLogger{})
}

func TestGetByID_OwnerAccess(t *testing.T) {
	svc := newTestService(&bookingRepoMock{booking: activeBooking()}, &slotRepoMock{}, &notifierMock{})

	resp, err := svc.GetByID(context.Background(), 42, ptr.Ptr(int64(15)), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}

func TestGetByID_ProviderAccess(t *testing.T) {
	svc := newTestService(&bookingRepoMock{booking: activeBooking()}, &slotRepoMock{}, &notifierMock{})

	resp, err := svc.GetByID(context.Background(), 42, nil, ptr.Ptr(int64(3)))
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}

func TestGetByID_AccessDenied(t *testing.T) {
	svc := newTestService(&bookingRepoMock{booking: activeBooking()}, &slotRepoMock{}, &notifierMock{})

	// Чужой пользователь и чужой провайдер
	_, err := svc.GetByID(context.Background(), 42, ptr.Ptr(int64(99)), nil)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 42, nil, ptr.Ptr(int64(99)))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_GuestBookingHidesFromOtherUsers(t *testing.T) {
	booking := activeBooking()
	booking.UserID = nil
	svc := newTestService(&bookingRepoMock{booking: booking}, &slotRepoMock{}, &notifierMock{})

	_, err := svc.GetByID(context.Background(), 42, ptr.Ptr(int64(15)), nil)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&bookingRepoMock{getErr: bookingstore.ErrBookingNotFound}, &slotRepoMock{}, &notifierMock{})

	_, err := svc.GetByID(context.Background(), 404, ptr.Ptr(int64(15)), nil)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := newTestService(&bookingRepoMock{}, &slotRepoMock{}, &notifierMock{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 15,
		Status: ptr.Ptr("paid"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetProviderBookings_PassesFilter(t *testing.T) {
	bookings := &bookingRepoMock{userBookings: []*domain.Booking{activeBooking()}}
	svc := newTestService(bookings, &slotRepoMock{}, &notifierMock{})

	resp, err := svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{
		ProviderID:      3,
		ServiceID:       ptr.Ptr(int64(10)),
		Status:          ptr.Ptr("confirmed"),
		IncludeInactive: true,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(3), bookings.filter.ProviderID)
	require.NotNil(t, bookings.filter.Status)
	assert.Equal(t, domain.StatusConfirmed, *bookings.filter.Status)
	assert.True(t, bookings.filter.IncludeInactive)
}

func TestCancel_ReleasesSlot(t *testing.T) {
	bookings := &bookingRepoMock{booking: activeBooking()}
	slots := &slotRepoMock{}
	notify := &notifierMock{}
	svc := newTestService(bookings, slots, notify)

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		UserID:             ptr.Ptr(int64(15)),
		CancellationReason: "не смогу прийти",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, bookings.cancelCalls)
	assert.Equal(t, "не смогу прийти", bookings.cancelReason)

	// Слот вернулся в доступные
	assert.Equal(t, 1, slots.releaseCalls)
	assert.Equal(t, int64(7), slots.releasedID)

	assert.Equal(t, []string{notifier.TemplateBookingCancelled}, notify.sent)
}

func TestCancel_AccessDenied(t *testing.T) {
	bookings := &bookingRepoMock{booking: activeBooking()}
	slots := &slotRepoMock{}
	svc := newTestService(bookings, slots, &notifierMock{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		UserID: ptr.Ptr(int64(99)),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 0, bookings.cancelCalls)
	assert.Equal(t, 0, slots.releaseCalls)
}

func TestCancel_TerminalBooking(t *testing.T) {
	booking := activeBooking()
	booking.Status = domain.StatusCancelled
	bookings := &bookingRepoMock{booking: booking}
	svc := newTestService(bookings, &slotRepoMock{}, &notifierMock{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: ptr.Ptr(int64(15))})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, 0, bookings.cancelCalls)
}

func TestCancel_LostRaceMapsToCannotCancel(t *testing.T) {
	// Бронирование стало неактивным между чтением и отменой
	bookings := &bookingRepoMock{booking: activeBooking(), cancelErr: bookingstore.ErrCannotCancel}
	slots := &slotRepoMock{}
	svc := newTestService(bookings, slots, &notifierMock{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: ptr.Ptr(int64(15))})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_ReleaseFailureRollsBack(t *testing.T) {
	bookings := &bookingRepoMock{booking: activeBooking()}
	slots := &slotRepoMock{releaseErr: errors.New("connection reset")}
	notify := &notifierMock{}
	svc := newTestService(bookings, slots, notify)

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: ptr.Ptr(int64(15))})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, notify.sent)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	svc := newTestService(&bookingRepoMock{booking: activeBooking()}, &slotRepoMock{}, &notifierMock{})

	reason := make([]byte, domain.MaxCancelReasonLength+1)
	for i := range reason {
		reason[i] = 'x'
	}

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		UserID:             ptr.Ptr(int64(15)),
		CancellationReason: string(reason),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
