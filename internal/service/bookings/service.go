package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BeautyBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-BeautyBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: чтение и отмена
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	txManager   TransactionManager
	notifier    NotifierClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	notifier NotifierClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		txManager:   txManager,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь видит только своё бронирование,
// провайдер - бронирования своих услуг
func (s *Service) GetByID(ctx context.Context, id int64, userID, providerID *int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if err := checkAccess(booking, userID, providerID); err != nil {
		s.logger.Warn("GetByID: access denied to booking id=%d", id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetProviderBookings получает бронирования провайдера с гибкой фильтрацией
// Поддерживает фильтрацию по услуге, периоду, статусу и включению
// неактивных бронирований
//
// Примеры использования:
// - Все активные бронирования: GetProviderBookings(ctx, &GetProviderBookingsRequest{ProviderID: 123})
// - Бронирования конкретной услуги: указать ServiceID
// - Бронирования за период: StartDate и EndDate
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetProviderBookings: fetching bookings for provider=%d", req.ProviderID)

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderBookings: invalid filter for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderBookings: successfully fetched %d bookings for provider=%d", len(bookings), req.ProviderID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование и возвращает слот в доступные.
// Пользователь может отменить только своё бронирование,
// провайдер - бронирование своей услуги.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	if len(req.CancellationReason) > domain.MaxCancelReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, bookingID, "Cancel")
	if err != nil {
		return err
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Проверяем права доступа
	if err := checkAccess(booking, req.UserID, req.ProviderID); err != nil {
		s.logger.Warn("Cancel: access denied to booking id=%d", bookingID)
		return err
	}

	// Отмена и возврат слота в доступные - одна транзакция: либо
	// бронирование отменено и слот свободен, либо ничего не произошло
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
			return err
		}
		return s.slotRepo.Release(ctx, booking.TimeSlotID)
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrCannotCancel) {
			s.logger.Warn("Cancel: booking id=%d is no longer active", bookingID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.notifyCancelled(ctx, booking)

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) notifyCancelled(ctx context.Context, booking *domain.Booking) {
	err := s.notifier.Send(ctx, booking.CustomerEmail, notifier.TemplateBookingCancelled, map[string]string{
		"booking_id":    fmt.Sprintf("%d", booking.ID),
		"customer_name": booking.CustomerName,
	})
	if err != nil {
		s.logger.Error("Cancel: failed to notify customer for booking id=%d: %v", booking.ID, err)
	}
}

// checkAccess проверяет, что запрос исходит от владельца бронирования
// или от провайдера услуги
func checkAccess(booking *domain.Booking, userID, providerID *int64) error {
	if userID != nil && booking.UserID != nil && *booking.UserID == *userID {
		return nil
	}
	if providerID != nil && booking.ProviderID == *providerID {
		return nil
	}
	return ErrAccessDenied
}
