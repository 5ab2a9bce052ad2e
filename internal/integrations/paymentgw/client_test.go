package paymentgw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "sk_test_123", 5*time.Second, nopLogger{})
}

func TestFindCustomerByEmail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/customers", r.URL.Path)
		assert.Equal(t, "anna@example.com", r.URL.Query().Get("email"))
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		w.Write([]byte(`{"data": [{"id": "cus_1", "email": "anna@example.com", "name": "Anna"}]}`))
	})

	customer, err := client.FindCustomerByEmail(context.Background(), "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, "cus_1", customer.ID)
	assert.Equal(t, "Anna", customer.Name)
}

func TestFindCustomerByEmail_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	})

	_, err := client.FindCustomerByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCreateCustomer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/customers", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "anna@example.com", r.PostForm.Get("email"))
		assert.Equal(t, "Anna", r.PostForm.Get("name"))

		w.Write([]byte(`{"id": "cus_2", "email": "anna@example.com", "name": "Anna"}`))
	})

	customer, err := client.CreateCustomer(context.Background(), "anna@example.com", "Anna")
	require.NoError(t, err)
	assert.Equal(t, "cus_2", customer.ID)
}

func TestCreateCheckoutSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())

		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "usd", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "5000", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "Haircut", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
		assert.Equal(t, "cus_1", r.PostForm.Get("customer"))
		assert.Equal(t, "350", r.PostForm.Get("payment_intent_data[application_fee_amount]"))
		assert.Equal(t, "acct_3", r.PostForm.Get("payment_intent_data[transfer_data][destination]"))
		assert.Equal(t, "10", r.PostForm.Get("metadata[service_id]"))
		assert.Equal(t, "7", r.PostForm.Get("metadata[time_slot_id]"))

		w.Write([]byte(`{"id": "cs_1", "url": "https://pay.example.com/cs_1", "customer": "cus_1"}`))
	})

	session, err := client.CreateCheckoutSession(context.Background(), CreateCheckoutSessionParams{
		AmountCents:          5000,
		Currency:             "usd",
		ProductName:          "Haircut",
		CustomerID:           "cus_1",
		ApplicationFeeCents:  350,
		DestinationAccountID: "acct_3",
		SuccessURL:           "https://app.example.com/success",
		CancelURL:            "https://app.example.com/cancel",
		Metadata: map[string]string{
			MetaServiceID:  "10",
			MetaTimeSlotID: "7",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_1", session.ID)
	assert.Equal(t, "https://pay.example.com/cs_1", session.URL)
}

func TestCreatePaymentIntent_OffSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment_intents", r.URL.Path)
		require.NoError(t, r.ParseForm())

		assert.Equal(t, "13000", r.PostForm.Get("amount"))
		assert.Equal(t, "cus_1", r.PostForm.Get("customer"))
		assert.Equal(t, "pm_card", r.PostForm.Get("payment_method"))
		assert.Equal(t, "true", r.PostForm.Get("confirm"))
		assert.Equal(t, "true", r.PostForm.Get("off_session"))
		assert.Equal(t, "910", r.PostForm.Get("application_fee_amount"))
		assert.Equal(t, "acct_3", r.PostForm.Get("transfer_data[destination]"))

		w.Write([]byte(`{"id": "pi_final", "status": "succeeded", "amount": 13000}`))
	})

	intent, err := client.CreatePaymentIntent(context.Background(), CreatePaymentIntentParams{
		AmountCents:          13000,
		Currency:             "usd",
		CustomerID:           "cus_1",
		PaymentMethodID:      "pm_card",
		ApplicationFeeCents:  910,
		DestinationAccountID: "acct_3",
		OffSession:           true,
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_final", intent.ID)
	assert.True(t, intent.Succeeded())
}

func TestCreatePaymentIntent_CardDeclined(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error": {"type": "card_error", "code": "card_declined", "message": "Your card was declined."}}`))
	})

	_, err := client.CreatePaymentIntent(context.Background(), CreatePaymentIntentParams{
		AmountCents:     13000,
		Currency:        "usd",
		CustomerID:      "cus_1",
		PaymentMethodID: "pm_card",
	})
	assert.ErrorIs(t, err, ErrCardDeclined)
}

func TestRetrieveAccount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/acct_3", r.URL.Path)
		w.Write([]byte(`{"id": "acct_3", "charges_enabled": true, "details_submitted": true}`))
	})

	account, err := client.RetrieveAccount(context.Background(), "acct_3")
	require.NoError(t, err)
	assert.True(t, account.CanAcceptCharges())
}

func TestRetrieveAccount_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"type": "invalid_request_error", "message": "No such account"}}`))
	})

	_, err := client.RetrieveAccount(context.Background(), "acct_missing")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestRetrievePaymentIntent_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"type": "invalid_request_error", "message": "No such payment_intent"}}`))
	})

	_, err := client.RetrievePaymentIntent(context.Background(), "pi_missing")
	assert.ErrorIs(t, err, ErrPaymentIntentNotFound)
}

func TestDo_UnreadableErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream timeout`))
	})

	_, err := client.RetrievePaymentIntent(context.Background(), "pi_1")
	assert.ErrorIs(t, err, ErrGateway)
}
