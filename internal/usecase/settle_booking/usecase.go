package settle_booking

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	bookingstore "github.com/m04kA/SMC-BeautyBookingService/internal/infra/storage/booking"
	settingsstore "github.com/m04kA/SMC-BeautyBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/paymentgw"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/ptr"
)

// UseCase use case итогового расчёта после оказания услуги:
// скидка провайдера, вычет депозита, off-session списание остатка
// с сохранённого способа оплаты
type UseCase struct {
	bookingRepo   BookingRepository
	settingsRepo  SettingsRepository
	catalogClient CatalogServiceClient
	gateway       PaymentGateway
	notifier      NotifierClient
	cfg           Config
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	catalogClient CatalogServiceClient,
	gateway PaymentGateway,
	notifier NotifierClient,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		settingsRepo:  settingsRepo,
		catalogClient: catalogClient,
		gateway:       gateway,
		notifier:      notifier,
		cfg:           cfg,
		logger:        logger,
	}
}

// Execute выполняет use case итогового расчёта.
// Итоговая стоимость может отличаться от цены при бронировании:
// провайдер заявляет её после оказания услуги
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SettleBooking: booking=%d, finalCost=%.2f", req.BookingID, req.FinalCostDollars)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SettleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование и проверяем предусловия расчёта
	booking, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	// 3. Считаем остаток: скидка провайдера, затем вычет депозита
	discountPct := uc.resolveDiscountPct(ctx, booking.ProviderID)
	balance := FinalBalanceDollars(req.FinalCostDollars, discountPct, depositAmount(booking))
	balanceCents := int64(math.Round(balance * 100))

	uc.logger.Info("SettleBooking: booking id=%d, discount=%.1f%%, balance=%.2f",
		booking.ID, discountPct, balance)

	// 4. Нулевой остаток: депозит покрыл итоговую стоимость,
	// списывать нечего - фиксируем расчёт без обращения к шлюзу
	if balanceCents == 0 {
		if err := uc.recordSettlement(ctx, booking.ID, req, domain.FinalPaymentPaid, nil); err != nil {
			return nil, err
		}
		uc.logger.Info("SettleBooking: booking id=%d settled with zero balance", booking.ID)
		return &Response{Success: true, BalanceDollars: 0}, nil
	}

	// 5. Получаем способ оплаты из платежа депозита
	customerID, paymentMethodID, err := uc.resolvePaymentMethod(ctx, booking)
	if err != nil {
		return nil, err
	}

	// 6. Списываем остаток off-session с комиссией площадки
	intent, chargeErr := uc.chargeBalance(ctx, booking, balanceCents, customerID, paymentMethodID)

	// 7. Фиксируем результат в реестре.
	// Идентификатор интента сохраняем и при неуспехе - для сверки
	// и повторного списания.
	status := domain.FinalPaymentPaid
	var intentID *string
	if intent != nil {
		intentID = ptr.Ptr(intent.ID)
	}
	if chargeErr != nil || intent == nil || !intent.Succeeded() {
		status = domain.FinalPaymentFailed
	}

	if err := uc.recordSettlement(ctx, booking.ID, req, status, intentID); err != nil {
		// Списание уже состоялось - ошибку реестра не компенсируем
		if status == domain.FinalPaymentPaid {
			uc.logger.Error("SettleBooking: charge succeeded but ledger update failed for booking id=%d: %v",
				booking.ID, err)
			return &Response{Success: true, BalanceDollars: balance, PaymentIntentID: valueOrEmpty(intentID)}, nil
		}
		return nil, err
	}

	if status == domain.FinalPaymentFailed {
		uc.logger.Warn("SettleBooking: final charge failed for booking id=%d: %v", booking.ID, chargeErr)
		return &Response{Success: false, BalanceDollars: balance, PaymentIntentID: valueOrEmpty(intentID)}, nil
	}

	uc.notifyCustomer(ctx, booking, balance)

	uc.logger.Info("SettleBooking: booking id=%d settled, charged %.2f", booking.ID, balance)

	return &Response{Success: true, BalanceDollars: balance, PaymentIntentID: valueOrEmpty(intentID)}, nil
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if req.FinalCostDollars < 0 {
		return ErrInvalidAmount
	}
	if req.ProviderNotes != nil && len(*req.ProviderNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: provider notes are too long", ErrInvalidInput)
	}
	return nil
}

func (uc *UseCase) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingstore.ErrBookingNotFound) {
			uc.logger.Warn("SettleBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("SettleBooking: failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.IsSettled() {
		uc.logger.Warn("SettleBooking: booking id=%d is already settled", id)
		return nil, ErrAlreadySettled
	}
	if !booking.DepositFlow || !booking.DepositPaid {
		uc.logger.Warn("SettleBooking: deposit is not paid for booking id=%d", id)
		return nil, ErrDepositNotPaid
	}

	return booking, nil
}

// resolveDiscountPct возвращает скидку провайдера на итоговую стоимость.
// Отсутствие настроек - штатная ситуация, действует значение по умолчанию.
func (uc *UseCase) resolveDiscountPct(ctx context.Context, providerID int64) float64 {
	settings, err := uc.settingsRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		if !errors.Is(err, settingsstore.ErrSettingsNotFound) {
			uc.logger.Error("SettleBooking: failed to get settings for provider id=%d: %v", providerID, err)
		}
		return domain.DefaultFinalCostDiscountPct
	}
	return settings.FinalCostDiscountPct
}

func (uc *UseCase) resolvePaymentMethod(ctx context.Context, booking *domain.Booking) (string, string, error) {
	if booking.DepositPaymentIntentID == nil || *booking.DepositPaymentIntentID == "" {
		uc.logger.Error("SettleBooking: booking id=%d has no deposit payment intent", booking.ID)
		return "", "", fmt.Errorf("%w: booking has no deposit payment intent", ErrInternal)
	}

	intent, err := uc.gateway.RetrievePaymentIntent(ctx, *booking.DepositPaymentIntentID)
	if err != nil {
		uc.logger.Error("SettleBooking: failed to retrieve deposit intent for booking id=%d: %v", booking.ID, err)
		return "", "", fmt.Errorf("%w: failed to retrieve deposit intent: %v", ErrGateway, err)
	}
	if intent.Customer == "" || intent.PaymentMethod == "" {
		uc.logger.Error("SettleBooking: deposit intent %s has no reusable payment method", intent.ID)
		return "", "", fmt.Errorf("%w: deposit intent has no reusable payment method", ErrGateway)
	}

	return intent.Customer, intent.PaymentMethod, nil
}

// chargeBalance списывает остаток off-session.
// Отказ карты - не системная ошибка: возвращаем её вызывающему для
// записи статуса failed, без прерывания расчёта.
func (uc *UseCase) chargeBalance(
	ctx context.Context,
	booking *domain.Booking,
	balanceCents int64,
	customerID, paymentMethodID string,
) (*paymentgw.PaymentIntent, error) {
	provider, err := uc.catalogClient.GetProvider(ctx, booking.ProviderID)
	if err != nil {
		uc.logger.Error("SettleBooking: failed to get provider id=%d: %v", booking.ProviderID, err)
		return nil, err
	}

	feePct := uc.cfg.PlatformFeePercent
	if settings, sErr := uc.settingsRepo.GetByProviderID(ctx, booking.ProviderID); sErr == nil && settings.HasCommissionOverride() {
		feePct = *settings.CommissionPct
	}

	return uc.gateway.CreatePaymentIntent(ctx, paymentgw.CreatePaymentIntentParams{
		AmountCents:          balanceCents,
		Currency:             uc.cfg.Currency,
		CustomerID:           customerID,
		PaymentMethodID:      paymentMethodID,
		ApplicationFeeCents:  int64(math.Round(float64(balanceCents) * feePct / 100)),
		DestinationAccountID: provider.GatewayAccountID,
		OffSession:           true,
		Description:          fmt.Sprintf("Final balance for booking %d", booking.ID),
	})
}

func (uc *UseCase) recordSettlement(
	ctx context.Context,
	bookingID int64,
	req *Request,
	status domain.FinalPaymentStatus,
	intentID *string,
) error {
	err := uc.bookingRepo.UpdateSettlement(ctx, bookingID, bookingstore.SettlementUpdate{
		FinalCost:            req.FinalCostDollars,
		FinalPaymentStatus:   status,
		FinalPaymentIntentID: intentID,
		ProviderNotes:        req.ProviderNotes,
	})
	if err != nil {
		uc.logger.Error("SettleBooking: failed to update settlement for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: failed to update settlement: %v", ErrInternal, err)
	}
	return nil
}

func (uc *UseCase) notifyCustomer(ctx context.Context, booking *domain.Booking, balance float64) {
	err := uc.notifier.Send(ctx, booking.CustomerEmail, notifier.TemplateFinalPaymentCollected, map[string]string{
		"booking_id": fmt.Sprintf("%d", booking.ID),
		"amount":     fmt.Sprintf("%.2f", balance),
	})
	if err != nil {
		uc.logger.Error("SettleBooking: failed to notify customer for booking id=%d: %v", booking.ID, err)
	}
}

// FinalBalanceDollars считает остаток к списанию: скидка применяется к
// итоговой стоимости, затем вычитается депозит, отрицательный остаток
// обнуляется
func FinalBalanceDollars(finalCost, discountPct, deposit float64) float64 {
	discounted := finalCost * (1 - discountPct/100)
	balance := discounted - deposit
	if balance < 0 {
		return 0
	}
	return balance
}

func depositAmount(booking *domain.Booking) float64 {
	if booking.DepositAmount == nil {
		return 0
	}
	return *booking.DepositAmount
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
