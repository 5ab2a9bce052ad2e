package notifier

import (
	"context"
	"encoding/json"
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
	return NewClient(srv.URL, 5*time.Second, nopLogger{})
}

func TestSend(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/notifications", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req SendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "anna@example.com", req.Recipient)
		assert.Equal(t, TemplateBookingConfirmedCustomer, req.Template)
		assert.Equal(t, map[string]string{"booking_id": "42", "customer_name": "Anna"}, req.Data)

		w.WriteHeader(http.StatusAccepted)
	})

	err := client.Send(context.Background(), "anna@example.com", TemplateBookingConfirmedCustomer, map[string]string{
		"booking_id":    "42",
		"customer_name": "Anna",
	})
	require.NoError(t, err)
}

func TestSend_ServiceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"code": 503, "message": "queue is full"}`))
	})

	err := client.Send(context.Background(), "anna@example.com", TemplateBookingCancelled, nil)
	assert.ErrorIs(t, err, ErrSendFailed)
}
