package settle_booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	bookingstore "github.com/m04kA/SMC-BeautyBookingService/internal/infra/storage/booking"
	settingsstore "github.com/m04kA/SMC-BeautyBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/paymentgw"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type bookingRepoMock struct {
	booking  *domain.Booking
	getErr   error
	upd      bookingstore.SettlementUpdate
	updCalls int
	updErr   error
}

func (m *bookingRepoMock) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.booking, nil
}

func (m *bookingRepoMock) UpdateSettlement(ctx context.Context, id int64, upd bookingstore.SettlementUpdate) error {
	m.updCalls++
	m.upd = upd
	return m.updErr
}

type settingsRepoMock struct {
	settings *domain.ProviderSettings
	err      error
}

func (m *settingsRepoMock) GetByProviderID(ctx context.Context, providerID int64) (*domain.ProviderSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.settings, nil
}

type catalogMock struct {
	provider *catalogservice.Provider
	err      error
}

func (m *catalogMock) GetProvider(ctx context.Context, providerID int64) (*catalogservice.Provider, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.provider, nil
}

type gatewayMock struct {
	depositIntent *paymentgw.PaymentIntent
	retrieveErr   error
	retrieveCalls int

	createdIntent *paymentgw.PaymentIntent
	createErr     error
	createCalls   int
	createParams  paymentgw.CreatePaymentIntentParams
}

func (m *gatewayMock) RetrievePaymentIntent(ctx context.Context, intentID string) (*paymentgw.PaymentIntent, error) {
	m.retrieveCalls++
	if m.retrieveErr != nil {
		return nil, m.retrieveErr
	}
	return m.depositIntent, nil
}

func (m *gatewayMock) CreatePaymentIntent(ctx context.Context, params paymentgw.CreatePaymentIntentParams) (*paymentgw.PaymentIntent, error) {
	m.createCalls++
	m.createParams = params
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.createdIntent, nil
}

type notifierMock struct {
	sent []string
}

func (m *notifierMock) Send(ctx context.Context, recipient, template string, data map[string]string) error {
	m.sent = append(m.sent, template)
	return nil
}

// depositBooking - подтверждённое бронирование с оплаченным депозитом 50$
func depositBooking() *domain.Booking {
	return &domain.Booking{
		ID:                     42,
		ServiceID:              10,
		ProviderID:             3,
		TimeSlotID:             7,
		Status:                 domain.StatusConfirmed,
		CustomerName:           "Anna",
		CustomerEmail:          "anna@example.com",
		TotalPrice:             200,
		DepositFlow:            true,
		DepositAmount:          ptr.Ptr(50.0),
		DepositPaid:            true,
		FinalPaymentStatus:     ptr.Ptr(domain.FinalPaymentPending),
		GatewayCustomerID:      ptr.Ptr("cus_1"),
		DepositPaymentIntentID: ptr.Ptr("pi_deposit"),
	}
}

func savedDepositIntent() *paymentgw.PaymentIntent {
	return &paymentgw.PaymentIntent{
		ID:            "pi_deposit",
		Status:        paymentgw.IntentStatusSucceeded,
		Customer:      "cus_1",
		PaymentMethod: "pm_card",
	}
}

func newTestUseCase(
	bookings *bookingRepoMock,
	settings *settingsRepoMock,
	catalog *catalogMock,
	gateway *gatewayMock,
	notify *notifierMock,
) *UseCase {
	return NewUseCase(bookings, settings, catalog, gateway, notify, Config{PlatformFeePercent: 7.0}, nopLogger{})
}

func TestExecute_ChargesRemainingBalance(t *testing.T) {
	bookings := &bookingRepoMock{booking: depositBooking()}
	settings := &settingsRepoMock{settings: &domain.ProviderSettings{
		ProviderID:           3,
		FinalCostDiscountPct: 10,
	}}
	catalog := &catalogMock{provider: &catalogservice.Provider{ID: 3, GatewayAccountID: "acct_3"}}
	gateway := &gatewayMock{
		depositIntent: savedDepositIntent(),
		createdIntent: &paymentgw.PaymentIntent{ID: "pi_final", Status: paymentgw.IntentStatusSucceeded},
	}
	notify := &notifierMock{}
	uc := newTestUseCase(bookings, settings, catalog, gateway, notify)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, FinalCostDollars: 200})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	// 200 со скидкой 10% = 180, минус депозит 50 = 130
	assert.InDelta(t, 130.0, resp.BalanceDollars, 0.001)
	assert.Equal(t, "pi_final", resp.PaymentIntentID)

	// Списание off-session с сохранённого способа оплаты
	require.Equal(t, 1, gateway.createCalls)
	assert.Equal(t, int64(13000), gateway.createParams.AmountCents)
	assert.Equal(t, "usd", gateway.createParams.Currency)
	assert.Equal(t, "cus_1", gateway.createParams.CustomerID)
	assert.Equal(t, "pm_card", gateway.createParams.PaymentMethodID)
	assert.Equal(t, int64(910), gateway.createParams.ApplicationFeeCents) // 7% от 13000
	assert.Equal(t, "acct_3", gateway.createParams.DestinationAccountID)
	assert.True(t, gateway.createParams.OffSession)

	// Результат зафиксирован в реестре
	require.Equal(t, 1, bookings.updCalls)
	assert.Equal(t, domain.FinalPaymentPaid, bookings.upd.FinalPaymentStatus)
	require.NotNil(t, bookings.upd.FinalPaymentIntentID)
	assert.Equal(t, "pi_final", *bookings.upd.FinalPaymentIntentID)
	assert.InDelta(t, 200.0, bookings.upd.FinalCost, 0.001)

	assert.Equal(t, []string{notifier.TemplateFinalPaymentCollected}, notify.sent)
}

func TestExecute_ZeroBalanceSkipsGateway(t *testing.T) {
	bookings := &bookingRepoMock{booking: depositBooking()}
	settings := &settingsRepoMock{err: settingsstore.ErrSettingsNotFound}
	gateway := &gatewayMock{}
	uc := newTestUseCase(bookings, settings, &catalogMock{}, gateway, &notifierMock{})

	// Итоговая стоимость ниже депозита: 40 * 0.9 = 36 < 50
	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, FinalCostDollars: 40})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Zero(t, resp.BalanceDollars)
	assert.Empty(t, resp.PaymentIntentID)

	// До шлюза дело не дошло, но расчёт зафиксирован
	assert.Equal(t, 0, gateway.retrieveCalls)
	assert.Equal(t, 0, gateway.createCalls)
	require.Equal(t, 1, bookings.updCalls)
	assert.Equal(t, domain.FinalPaymentPaid, bookings.upd.FinalPaymentStatus)
	assert.Nil(t, bookings.upd.FinalPaymentIntentID)
}

func TestExecute_CommissionOverride(t *testing.T) {
	bookings := &bookingRepoMock{booking: depositBooking()}
	settings := &settingsRepoMock{settings: &domain.ProviderSettings{
		ProviderID:           3,
		FinalCostDiscountPct: 0,
		CommissionPct:        ptr.Ptr(12.0),
	}}
	catalog := &catalogMock{provider: &catalogservice.Provider{ID: 3, GatewayAccountID: "acct_3"}}
	gateway := &gatewayMock{
		depositIntent: savedDepositIntent(),
		createdIntent: &paymentgw.PaymentIntent{ID: "pi_final", Status: paymentgw.IntentStatusSucceeded},
	}
	uc := newTestUseCase(bookings, settings, catalog, gateway, &notifierMock{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, FinalCostDollars: 150})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	// 150 без скидки, минус депозит 50 = 100
	assert.Equal(t, int64(10000), gateway.createParams.AmountCents)
	// Индивидуальная комиссия провайдера вместо общей
	assert.Equal(t, int64(1200), gateway.createParams.ApplicationFeeCents)
}

func TestExecute_ChargeFailureRecordsFailedStatus(t *testing.T) {
	bookings := &bookingRepoMock{booking: depositBooking()}
	settings := &settingsRepoMock{err: settingsstore.ErrSettingsNotFound}
	catalog := &catalogMock{provider: &catalogservice.Provider{ID: 3, GatewayAccountID: "acct_3"}}
	gateway := &gatewayMock{
		depositIntent: savedDepositIntent(),
		createErr:     paymentgw.ErrCardDeclined,
	}
	notify := &notifierMock{}
	uc := newTestUseCase(bookings, settings, catalog, gateway, notify)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, FinalCostDollars: 200})

	// Отказ карты - не ошибка use case: результат в ответе
	require.NoError(t, err)
	assert.False(t, resp.Success)

	require.Equal(t, 1, bookings.updCalls)
	assert.Equal(t, domain.FinalPaymentFailed, bookings.upd.FinalPaymentStatus)
	assert.Nil(t, bookings.upd.FinalPaymentIntentID)
	assert.Empty(t, notify.sent)
}

func TestExecute_DeclinedIntentKeepsIntentID(t *testing.T) {
	bookings := &bookingRepoMock{booking: depositBooking()}
	settings := &settingsRepoMock{err: settingsstore.ErrSettingsNotFound}
	catalog := &catalogMock{provider: &catalogservice.Provider{ID: 3, GatewayAccountID: "acct_3"}}
	gateway := &gatewayMock{
		depositIntent: savedDepositIntent(),
		createdIntent: &paymentgw.PaymentIntent{ID: "pi_final", Status: "requires_payment_method"},
	}
	uc := newTestUseCase(bookings, settings, catalog, gateway, &notifierMock{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, FinalCostDollars: 200})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "pi_final", resp.PaymentIntentID)

	// Идентификатор интента сохраняем для сверки и повторного списания
	require.NotNil(t, bookings.upd.FinalPaymentIntentID)
	assert.Equal(t, "pi_final", *bookings.upd.FinalPaymentIntentID)
	assert.Equal(t, domain.FinalPaymentFailed, bookings.upd.FinalPaymentStatus)
}

func TestExecute_LedgerFailureAfterChargeStillSucceeds(t *testing.T) {
	bookings := &bookingRepoMock{booking: depositBooking(), updErr: errors.New("connection reset")}
	settings := &settingsRepoMock{err: settingsstore.ErrSettingsNotFound}
	catalog := &catalogMock{provider: &catalogservice.Provider{ID: 3, GatewayAccountID: "acct_3"}}
	gateway := &gatewayMock{
		depositIntent: savedDepositIntent(),
		createdIntent: &paymentgw.PaymentIntent{ID: "pi_final", Status: paymentgw.IntentStatusSucceeded},
	}
	uc := newTestUseCase(bookings, settings, catalog, gateway, &notifierMock{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, FinalCostDollars: 200})

	// Деньги уже списаны - ошибка реестра не отменяет результат
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "pi_final", resp.PaymentIntentID)
}

func TestExecute_AlreadySettled(t *testing.T) {
	booking := depositBooking()
	booking.FinalPaymentStatus = ptr.Ptr(domain.FinalPaymentPaid)
	bookings := &bookingRepoMock{booking: booking}
	uc := newTestUseCase(bookings, &settingsRepoMock{}, &catalogMock{}, &gatewayMock{}, &notifierMock{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, FinalCostDollars: 200})
	assert.ErrorIs(t, err, ErrAlreadySettled)
	assert.Equal(t, 0, bookings.updCalls)
}

func TestExecute_DepositNotPaid(t *testing.T) {
	booking := depositBooking()
	booking.DepositPaid = false
	bookings := &bookingRepoMock{booking: booking}
	uc := newTestUseCase(bookings, &settingsRepoMock{}, &catalogMock{}, &gatewayMock{}, &notifierMock{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, FinalCostDollars: 200})
	assert.ErrorIs(t, err, ErrDepositNotPaid)
}

func TestExecute_PayInFullBookingCannotBeSettled(t *testing.T) {
	booking := depositBooking()
	booking.DepositFlow = false
	bookings := &bookingRepoMock{booking: booking}
	uc := newTestUseCase(bookings, &settingsRepoMock{}, &catalogMock{}, &gatewayMock{}, &notifierMock{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, FinalCostDollars: 200})
	assert.ErrorIs(t, err, ErrDepositNotPaid)
}

func TestExecute_BookingNotFound(t *testing.T) {
	bookings := &bookingRepoMock{getErr: bookingstore.ErrBookingNotFound}
	uc := newTestUseCase(bookings, &settingsRepoMock{}, &catalogMock{}, &gatewayMock{}, &notifierMock{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 404, FinalCostDollars: 200})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_NegativeFinalCost(t *testing.T) {
	uc := newTestUseCase(&bookingRepoMock{}, &settingsRepoMock{}, &catalogMock{}, &gatewayMock{}, &notifierMock{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, FinalCostDollars: -10})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestExecute_MissingDepositIntent(t *testing.T) {
	booking := depositBooking()
	booking.DepositPaymentIntentID = nil
	bookings := &bookingRepoMock{booking: booking}
	uc := newTestUseCase(bookings, &settingsRepoMock{err: settingsstore.ErrSettingsNotFound}, &catalogMock{}, &gatewayMock{}, &notifierMock{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, FinalCostDollars: 200})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_DepositIntentWithoutSavedCard(t *testing.T) {
	bookings := &bookingRepoMock{booking: depositBooking()}
	gateway := &gatewayMock{depositIntent: &paymentgw.PaymentIntent{ID: "pi_deposit", Customer: "cus_1"}}
	uc := newTestUseCase(bookings, &settingsRepoMock{err: settingsstore.ErrSettingsNotFound}, &catalogMock{}, gateway, &notifierMock{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, FinalCostDollars: 200})
	assert.ErrorIs(t, err, ErrGateway)
	assert.Equal(t, 0, gateway.createCalls)
}

func TestFinalBalanceDollars(t *testing.T) {
	tests := []struct {
		name        string
		finalCost   float64
		discountPct float64
		deposit     float64
		want        float64
	}{
		{"discount then deposit", 200, 10, 50, 130},
		{"no discount", 150, 0, 50, 100},
		{"deposit covers everything", 40, 10, 50, 0},
		{"exact zero", 50, 0, 50, 0},
		{"full discount", 200, 100, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FinalBalanceDollars(tt.finalCost, tt.discountPct, tt.deposit), 0.001)
		})
	}
}
