package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	bookingstore "github.com/m04kA/SMC-BeautyBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/ptr"
)

// UseCase use case подтверждения бронирования по событию оплаты.
// Переход pending -> confirmed выполняется одним условным UPDATE,
// поэтому повторная доставка того же события безопасна.
type UseCase struct {
	bookingRepo   BookingRepository
	slotRepo      SlotRepository
	catalogClient CatalogServiceClient
	userClient    UserServiceClient
	txManager     TransactionManager
	notifier      NotifierClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	catalogClient CatalogServiceClient,
	userClient UserServiceClient,
	txManager TransactionManager,
	notifier NotifierClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		slotRepo:      slotRepo,
		catalogClient: catalogClient,
		userClient:    userClient,
		txManager:     txManager,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute выполняет use case подтверждения оплаты.
// После успешного перехода статуса бронирование считается подтверждённым:
// ошибки привязки пользователя, повторной блокировки слотов и уведомлений
// только логируются и не откатывают подтверждение.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: service=%d, slot=%d, intent=%s",
		req.ServiceID, req.TimeSlotID, req.PaymentIntentID)

	// 1. Валидация данных события
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Условный переход pending -> confirmed.
	// Отсутствие ожидающего бронирования - не ошибка: событие уже было
	// обработано или бронирование отменили до прихода вебхука.
	upd := bookingstore.ConfirmUpdate{
		DepositPaid: req.DepositFlow,
	}
	if note := contactNote(req); note != "" {
		upd.CustomerNotes = ptr.Ptr(note)
	}
	if req.PaymentIntentID != "" {
		upd.DepositPaymentIntentID = ptr.Ptr(req.PaymentIntentID)
	}
	if req.GatewayCustomerID != "" {
		upd.GatewayCustomerID = ptr.Ptr(req.GatewayCustomerID)
	}

	// Переход статуса и восстановление блокировок слотов выполняются
	// в одной транзакции
	var confirmed *domain.Booking
	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := uc.bookingRepo.ConfirmPending(ctx, req.ServiceID, req.TimeSlotID, upd)
		if err != nil {
			return err
		}
		confirmed = booking

		// 3. Повторно закрепляем слот и блокируем пересечения.
		// Захват уже состоялся при старте бронирования, этот шаг лишь
		// восстанавливает блокировки, если шаг старта их не довёл
		uc.reassertSlotLocks(ctx, confirmed.TimeSlotID)
		return nil
	})
	if err != nil {
		if errors.Is(err, bookingstore.ErrNoPendingBooking) {
			uc.logger.Info("ConfirmBooking: no pending booking for service=%d, slot=%d - skipping",
				req.ServiceID, req.TimeSlotID)
			return &Response{Processed: false}, nil
		}
		uc.logger.Error("ConfirmBooking: failed to confirm booking: %v", err)
		return nil, fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
	}

	// 4. Привязываем пользователя, если клиент согласился на аккаунт
	if req.CreateAccount {
		uc.attachUser(ctx, confirmed, req)
	}

	// 5. Уведомляем клиента и провайдера
	uc.sendNotifications(ctx, confirmed)

	uc.logger.Info("ConfirmBooking: booking id=%d confirmed", confirmed.ID)

	return &Response{Processed: true, BookingID: confirmed.ID}, nil
}

func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}
	if req.TimeSlotID <= 0 {
		return fmt.Errorf("%w: timeSlotId must be positive", ErrInvalidInput)
	}
	return nil
}

// contactNote собирает контакт гостя для заметок бронирования
func contactNote(req *Request) string {
	if req.CustomerPhone == "" {
		return ""
	}
	return fmt.Sprintf("Контакт клиента: %s, телефон %s", req.CustomerName, req.CustomerPhone)
}

func (uc *UseCase) reassertSlotLocks(ctx context.Context, slotID int64) {
	slot, err := uc.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		uc.logger.Error("ConfirmBooking: failed to get slot id=%d for lock re-assert: %v", slotID, err)
		return
	}

	if slot.IsAvailable {
		held, err := uc.slotRepo.Hold(ctx, slot.ID)
		if err != nil {
			uc.logger.Error("ConfirmBooking: failed to re-hold slot id=%d: %v", slot.ID, err)
		} else if held {
			uc.logger.Warn("ConfirmBooking: slot id=%d was released, re-held on confirmation", slot.ID)
		}
	}

	if _, err := uc.slotRepo.LockOverlapping(ctx, slot); err != nil {
		uc.logger.Error("ConfirmBooking: failed to lock overlapping slots for slot id=%d: %v", slot.ID, err)
	}
}

func (uc *UseCase) attachUser(ctx context.Context, confirmed *domain.Booking, req *Request) {
	user, err := uc.userClient.FindOrCreateByEmail(ctx, req.CustomerEmail, req.CustomerName, req.CustomerPhone)
	if err != nil {
		uc.logger.Error("ConfirmBooking: failed to find or create user for booking id=%d: %v", confirmed.ID, err)
		return
	}
	if err := uc.bookingRepo.AttachUser(ctx, confirmed.ID, user.ID); err != nil {
		uc.logger.Error("ConfirmBooking: failed to attach user id=%d to booking id=%d: %v",
			user.ID, confirmed.ID, err)
		return
	}
	uc.logger.Info("ConfirmBooking: attached user id=%d to booking id=%d", user.ID, confirmed.ID)
}

func (uc *UseCase) sendNotifications(ctx context.Context, confirmed *domain.Booking) {
	data := map[string]string{
		"booking_id":    fmt.Sprintf("%d", confirmed.ID),
		"customer_name": confirmed.CustomerName,
	}

	if err := uc.notifier.Send(ctx, confirmed.CustomerEmail, notifier.TemplateBookingConfirmedCustomer, data); err != nil {
		uc.logger.Error("ConfirmBooking: failed to notify customer for booking id=%d: %v", confirmed.ID, err)
	}

	provider, err := uc.catalogClient.GetProvider(ctx, confirmed.ProviderID)
	if err != nil {
		uc.logger.Error("ConfirmBooking: failed to get provider id=%d for notification: %v", confirmed.ProviderID, err)
		return
	}
	if err := uc.notifier.Send(ctx, provider.Email, notifier.TemplateBookingConfirmedProvider, data); err != nil {
		uc.logger.Error("ConfirmBooking: failed to notify provider id=%d for booking id=%d: %v",
			confirmed.ProviderID, confirmed.ID, err)
	}
}
