package payment_webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/paymentgw"
	confirmBooking "github.com/m04kA/SMC-BeautyBookingService/internal/usecase/confirm_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type useCaseMock struct {
	req   *confirmBooking.Request
	resp  *confirmBooking.Response
	err   error
	calls int
}

func (m *useCaseMock) Execute(ctx context.Context, req *confirmBooking.Request) (*confirmBooking.Response, error) {
	m.calls++
	m.req = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func completedSessionEvent() string {
	return `{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_1",
				"customer": "cus_1",
				"payment_intent": "pi_1",
				"metadata": {
					"service_id": "10",
					"time_slot_id": "7",
					"customer_name": "Anna",
					"customer_email": "anna@example.com",
					"customer_phone": "+15550001122",
					"deposit_flow": "true",
					"full_price_cents": "20000",
					"create_account": "false"
				}
			}
		}
	}`
}

func doRequest(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_CompletedSession(t *testing.T) {
	uc := &useCaseMock{resp: &confirmBooking.Response{Processed: true, BookingID: 42}}
	h := NewHandler(uc, nopLogger{})

	rec := doRequest(h, completedSessionEvent())

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp WebhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Received)
	assert.True(t, resp.Processed)

	// Metadata сессии разобрана в запрос use case
	require.Equal(t, 1, uc.calls)
	assert.Equal(t, int64(10), uc.req.ServiceID)
	assert.Equal(t, int64(7), uc.req.TimeSlotID)
	assert.Equal(t, "Anna", uc.req.CustomerName)
	assert.True(t, uc.req.DepositFlow)
	assert.Equal(t, int64(20000), uc.req.FullPriceCents)
	assert.Equal(t, "pi_1", uc.req.PaymentIntentID)
	assert.Equal(t, "cus_1", uc.req.GatewayCustomerID)
}

func TestHandle_SkipsOtherEventTypes(t *testing.T) {
	uc := &useCaseMock{}
	h := NewHandler(uc, nopLogger{})

	rec := doRequest(h, `{"id": "evt_2", "type": "payment_intent.created", "data": {"object": {"id": "pi_9"}}}`)

	// Неинтересные события подтверждаем, чтобы шлюз не повторял доставку
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, uc.calls)

	var resp WebhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Received)
	assert.False(t, resp.Processed)
}

func TestHandle_DuplicateDelivery(t *testing.T) {
	uc := &useCaseMock{resp: &confirmBooking.Response{Processed: false}}
	h := NewHandler(uc, nopLogger{})

	rec := doRequest(h, completedSessionEvent())

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp WebhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Received)
	assert.False(t, resp.Processed)
}

func TestHandle_ToleratesUnknownEnvelopeFields(t *testing.T) {
	uc := &useCaseMock{resp: &confirmBooking.Response{Processed: true, BookingID: 42}}
	h := NewHandler(uc, nopLogger{})

	// Шлюз добавляет поля в конверт без смены версии API -
	// доставка не должна превращаться в 400
	rec := doRequest(h, `{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"api_version": "2026-08-01",
		"livemode": false,
		"pending_webhooks": 1,
		"data": {
			"object": {
				"id": "cs_1",
				"customer": "cus_1",
				"payment_intent": "pi_1",
				"amount_total": 5000,
				"payment_status": "paid",
				"metadata": {
					"service_id": "10",
					"time_slot_id": "7"
				}
			}
		}
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, uc.calls)
}

func TestHandle_InvalidPayload(t *testing.T) {
	uc := &useCaseMock{}
	h := NewHandler(uc, nopLogger{})

	rec := doRequest(h, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, uc.calls)
}

func TestHandle_MissingMetadata(t *testing.T) {
	uc := &useCaseMock{}
	h := NewHandler(uc, nopLogger{})

	rec := doRequest(h, `{
		"id": "evt_3",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_3", "metadata": {"customer_name": "Anna"}}}
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, uc.calls)
}

func TestHandle_UseCaseFailureTriggersRetry(t *testing.T) {
	uc := &useCaseMock{err: errors.New("db is down")}
	h := NewHandler(uc, nopLogger{})

	rec := doRequest(h, completedSessionEvent())

	// 500: шлюз повторит доставку события
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestToUseCaseRequest_IgnoresBadOptionalMetadata(t *testing.T) {
	req, err := ToUseCaseRequest(&paymentgw.EventObject{
		ID: "cs_4",
		Metadata: map[string]string{
			paymentgw.MetaServiceID:      "10",
			paymentgw.MetaTimeSlotID:     "7",
			paymentgw.MetaDepositFlow:    "not-a-bool",
			paymentgw.MetaFullPriceCents: "not-a-number",
		},
	})

	require.NoError(t, err)
	assert.False(t, req.DepositFlow)
	assert.Zero(t, req.FullPriceCents)
}
