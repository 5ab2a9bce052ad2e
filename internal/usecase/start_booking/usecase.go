package start_booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/paymentgw"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/ptr"
)

// UseCase use case начала бронирования: проверка слота, создание
// платёжной сессии, вставка ожидающего бронирования и блокировка
// пересекающихся слотов
type UseCase struct {
	slotRepo      SlotRepository
	bookingRepo   BookingRepository
	catalogClient CatalogServiceClient
	gateway       PaymentGateway
	cfg           Config
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	catalogClient CatalogServiceClient,
	gateway PaymentGateway,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	return &UseCase{
		slotRepo:      slotRepo,
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		gateway:       gateway,
		cfg:           cfg,
		logger:        logger,
	}
}

// Execute выполняет use case начала бронирования.
// Решение о допуске принимает условный UPDATE флага доступности слота:
// из двух конкурентных запросов на один слот только один получит захват,
// второй завершится ErrSlotUnavailable ещё до обращения к шлюзу.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("StartBooking: service=%d, slot=%d, amount=%d, fullPrice=%d, deposit=%t",
		req.ServiceID, req.TimeSlotID, req.AmountCents, req.FullPriceCents, req.DepositFlow)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("StartBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем слот и проверяем его принадлежность услуге
	slot, err := uc.getSlot(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Получаем услугу и провайдера из каталога
	service, provider, err := uc.resolveServiceAndProvider(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	// 4. Проверяем, что аккаунт провайдера в шлюзе может принимать платежи
	if err := uc.checkPaymentSetup(ctx, provider); err != nil {
		return nil, err
	}

	// 5. Захватываем слот условным UPDATE (is_available=true -> false).
	// Нулевое количество затронутых строк означает, что слот уже занят.
	held, err := uc.slotRepo.Hold(ctx, slot.ID)
	if err != nil {
		uc.logger.Error("StartBooking: failed to hold slot id=%d: %v", slot.ID, err)
		return nil, fmt.Errorf("%w: failed to hold slot: %v", ErrInternal, err)
	}
	if !held {
		uc.logger.Warn("StartBooking: slot id=%d is no longer available", slot.ID)
		return nil, ErrSlotUnavailable
	}

	// 6. Находим или создаем клиента шлюза по email
	customer, err := uc.findOrCreateCustomer(ctx, req.Customer)
	if err != nil {
		uc.releaseHold(ctx, slot.ID)
		return nil, err
	}

	// 7. Создаем hosted checkout-сессию с комиссией площадки
	session, err := uc.createCheckoutSession(ctx, req, service, provider, customer)
	if err != nil {
		uc.releaseHold(ctx, slot.ID)
		return nil, err
	}

	// 8. Вставляем ожидающее бронирование
	booking, err := uc.insertPendingBooking(ctx, req, slot)
	if err != nil {
		uc.releaseHold(ctx, slot.ID)
		return nil, err
	}

	// 9. Блокируем пересекающиеся слоты провайдера на эту дату.
	// Платёжная сессия уже существует, поэтому ошибка здесь не прерывает
	// бронирование - ссылку на оплату всё равно возвращаем, а недостающую
	// блокировку повторно применит обработчик подтверждения.
	locked, err := uc.slotRepo.LockOverlapping(ctx, slot)
	if err != nil {
		uc.logger.Error("StartBooking: failed to lock overlapping slots for slot id=%d: %v", slot.ID, err)
	} else if locked > 0 {
		uc.logger.Info("StartBooking: locked %d overlapping slots for slot id=%d", locked, slot.ID)
	}

	uc.logger.Info("StartBooking: booking id=%d created, session=%s", booking.ID, session.ID)

	return &Response{
		BookingID:        booking.ID,
		PaymentSessionID: session.ID,
		CheckoutURL:      session.URL,
	}, nil
}

func (uc *UseCase) getSlot(ctx context.Context, req *Request) (*domain.TimeSlot, error) {
	slot, err := uc.slotRepo.GetByID(ctx, req.TimeSlotID)
	if err != nil {
		uc.logger.Warn("StartBooking: slot id=%d lookup failed: %v", req.TimeSlotID, err)
		return nil, ErrSlotNotFound
	}
	if slot.ServiceID != req.ServiceID {
		uc.logger.Warn("StartBooking: slot id=%d belongs to service=%d, requested service=%d",
			slot.ID, slot.ServiceID, req.ServiceID)
		return nil, ErrSlotMismatch
	}
	// Ранний отказ до обращения к шлюзу; настоящим решением о допуске
	// остаётся условный UPDATE на шаге захвата
	if !slot.IsAvailable {
		uc.logger.Warn("StartBooking: slot id=%d is not available", slot.ID)
		return nil, ErrSlotUnavailable
	}
	return slot, nil
}

func (uc *UseCase) resolveServiceAndProvider(ctx context.Context, serviceID int64) (*catalogservice.Service, *catalogservice.Provider, error) {
	service, err := uc.catalogClient.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("StartBooking: service id=%d not found", serviceID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("StartBooking: failed to get service id=%d: %v", serviceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	provider, err := uc.catalogClient.GetProvider(ctx, service.ProviderID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrProviderNotFound) {
			uc.logger.Warn("StartBooking: provider id=%d not found", service.ProviderID)
			return nil, nil, ErrProviderNotFound
		}
		uc.logger.Error("StartBooking: failed to get provider id=%d: %v", service.ProviderID, err)
		return nil, nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	return service, provider, nil
}

// checkPaymentSetup проверяет connected-аккаунт провайдера.
// Любая ошибка проверки трактуется как незавершённая настройка выплат:
// начинать приём денег за провайдера, который не может их получить, нельзя.
func (uc *UseCase) checkPaymentSetup(ctx context.Context, provider *catalogservice.Provider) error {
	if provider.GatewayAccountID == "" {
		uc.logger.Warn("StartBooking: provider id=%d has no gateway account", provider.ID)
		return ErrPaymentSetupIncomplete
	}

	account, err := uc.gateway.RetrieveAccount(ctx, provider.GatewayAccountID)
	if err != nil {
		uc.logger.Warn("StartBooking: failed to retrieve gateway account for provider id=%d: %v", provider.ID, err)
		return ErrPaymentSetupIncomplete
	}

	if !account.CanAcceptCharges() {
		uc.logger.Warn("StartBooking: provider id=%d cannot accept charges (charges_enabled=%t, details_submitted=%t)",
			provider.ID, account.ChargesEnabled, account.DetailsSubmitted)
		return ErrPaymentSetupIncomplete
	}

	return nil
}

func (uc *UseCase) findOrCreateCustomer(ctx context.Context, info CustomerInfo) (*paymentgw.Customer, error) {
	customer, err := uc.gateway.FindCustomerByEmail(ctx, info.Email)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, paymentgw.ErrCustomerNotFound) {
		uc.logger.Error("StartBooking: customer lookup failed: %v", err)
		return nil, fmt.Errorf("%w: customer lookup failed: %v", ErrGateway, err)
	}

	customer, err = uc.gateway.CreateCustomer(ctx, info.Email, info.Name)
	if err != nil {
		uc.logger.Error("StartBooking: failed to create gateway customer: %v", err)
		return nil, fmt.Errorf("%w: failed to create customer: %v", ErrGateway, err)
	}
	return customer, nil
}

func (uc *UseCase) createCheckoutSession(
	ctx context.Context,
	req *Request,
	service *catalogservice.Service,
	provider *catalogservice.Provider,
	customer *paymentgw.Customer,
) (*paymentgw.CheckoutSession, error) {
	session, err := uc.gateway.CreateCheckoutSession(ctx, paymentgw.CreateCheckoutSessionParams{
		AmountCents:          req.AmountCents,
		Currency:             uc.cfg.Currency,
		ProductName:          service.Name,
		CustomerID:           customer.ID,
		ApplicationFeeCents:  PlatformFeeCents(req.AmountCents, uc.cfg.PlatformFeePercent),
		DestinationAccountID: provider.GatewayAccountID,
		SuccessURL:           uc.cfg.SuccessURL,
		CancelURL:            uc.cfg.CancelURL,
		Metadata: map[string]string{
			paymentgw.MetaServiceID:      strconv.FormatInt(req.ServiceID, 10),
			paymentgw.MetaTimeSlotID:     strconv.FormatInt(req.TimeSlotID, 10),
			paymentgw.MetaCustomerName:   req.Customer.Name,
			paymentgw.MetaCustomerEmail:  req.Customer.Email,
			paymentgw.MetaCustomerPhone:  req.Customer.Phone,
			paymentgw.MetaDepositFlow:    strconv.FormatBool(req.DepositFlow),
			paymentgw.MetaFullPriceCents: strconv.FormatInt(req.FullPriceCents, 10),
			paymentgw.MetaCreateAccount:  strconv.FormatBool(req.CreateAccount),
		},
	})
	if err != nil {
		uc.logger.Error("StartBooking: failed to create checkout session: %v", err)
		return nil, fmt.Errorf("%w: failed to create checkout session: %v", ErrGateway, err)
	}
	return session, nil
}

func (uc *UseCase) insertPendingBooking(ctx context.Context, req *Request, slot *domain.TimeSlot) (*domain.Booking, error) {
	booking := &domain.Booking{
		ServiceID:     req.ServiceID,
		ProviderID:    slot.ProviderID,
		TimeSlotID:    slot.ID,
		TotalPrice:    centsToDollars(req.FullPriceCents),
		Status:        domain.StatusPending,
		CustomerName:  req.Customer.Name,
		CustomerEmail: req.Customer.Email,
		CustomerPhone: req.Customer.Phone,
		DepositFlow:   req.DepositFlow,
	}

	if req.DepositFlow {
		booking.DepositAmount = ptr.Ptr(centsToDollars(req.AmountCents))
		booking.DepositPaid = false
		booking.FinalPaymentStatus = ptr.Ptr(domain.FinalPaymentPending)
	} else {
		booking.TotalPrice = centsToDollars(req.AmountCents)
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("StartBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}
	return created, nil
}

// releaseHold компенсирует захват слота при неудаче последующих шагов.
// Ошибка компенсации только логируется: слот останется занятым до
// ручного вмешательства или внешней логики отмены.
func (uc *UseCase) releaseHold(ctx context.Context, slotID int64) {
	if err := uc.slotRepo.Release(ctx, slotID); err != nil {
		uc.logger.Error("StartBooking: failed to release slot id=%d after failure: %v", slotID, err)
	}
}

// PlatformFeeCents вычисляет комиссию площадки в минорных единицах,
// округляя к ближайшему центу
func PlatformFeeCents(amountCents int64, feePercent float64) int64 {
	return int64(math.Round(float64(amountCents) * feePercent / 100))
}

func centsToDollars(cents int64) float64 {
	return float64(cents) / 100
}
