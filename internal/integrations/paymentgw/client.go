package paymentgw

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client клиент платёжного шлюза.
// API шлюза принимает form-encoded запросы с Bearer-авторизацией
// и отвечает JSON объектами.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	log        Logger
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewClient создает новый экземпляр клиента платёжного шлюза
func NewClient(baseURL, secretKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FindCustomerByEmail ищет клиента шлюза по email.
// Возвращает ErrCustomerNotFound, если клиента с таким email нет.
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	query := url.Values{}
	query.Set("email", email)
	query.Set("limit", "1")

	var list customerListResponse
	if err := c.get(ctx, "/customers?"+query.Encode(), &list); err != nil {
		return nil, err
	}

	if len(list.Data) == 0 {
		return nil, ErrCustomerNotFound
	}
	return &list.Data[0], nil
}

// CreateCustomer создает нового клиента шлюза
func (c *Client) CreateCustomer(ctx context.Context, email, name string) (*Customer, error) {
	form := url.Values{}
	form.Set("email", email)
	if name != "" {
		form.Set("name", name)
	}

	var customer Customer
	if err := c.postForm(ctx, "/customers", form, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// RetrieveAccount получает connected-аккаунт провайдера с флагами возможностей
func (c *Client) RetrieveAccount(ctx context.Context, accountID string) (*Account, error) {
	var account Account
	if err := c.get(ctx, "/accounts/"+accountID, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateCheckoutSession создает hosted checkout-сессию.
// Метаданные возвращаются шлюзом в событии checkout.session.completed
// в исходном виде, что позволяет восстановить бронирование при подтверждении.
func (c *Client) CreateCheckoutSession(ctx context.Context, params CreateCheckoutSessionParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	if params.CustomerID != "" {
		form.Set("customer", params.CustomerID)
	}
	if params.ApplicationFeeCents > 0 {
		form.Set("payment_intent_data[application_fee_amount]", strconv.FormatInt(params.ApplicationFeeCents, 10))
	}
	if params.DestinationAccountID != "" {
		form.Set("payment_intent_data[transfer_data][destination]", params.DestinationAccountID)
	}
	for k, v := range params.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	var session CheckoutSession
	if err := c.postForm(ctx, "/checkout/sessions", form, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// RetrievePaymentIntent получает платёжный интент вместе с использованным
// методом оплаты (нужен для off-session списания финального баланса)
func (c *Client) RetrievePaymentIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	var intent PaymentIntent
	if err := c.get(ctx, "/payment_intents/"+intentID, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// CreatePaymentIntent создает и подтверждает платёжный интент.
// При OffSession=true списание выполняется без участия плательщика
// по сохранённому методу оплаты.
func (c *Client) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(params.AmountCents, 10))
	form.Set("currency", params.Currency)
	form.Set("customer", params.CustomerID)
	form.Set("payment_method", params.PaymentMethodID)
	form.Set("confirm", "true")
	if params.OffSession {
		form.Set("off_session", "true")
	}
	if params.ApplicationFeeCents > 0 {
		form.Set("application_fee_amount", strconv.FormatInt(params.ApplicationFeeCents, 10))
	}
	if params.DestinationAccountID != "" {
		form.Set("transfer_data[destination]", params.DestinationAccountID)
	}
	if params.Description != "" {
		form.Set("description", params.Description)
	}

	var intent PaymentIntent
	if err := c.postForm(ctx, "/payment_intents", form, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrGateway, err)
	}
	return c.do(req, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrGateway, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.apiError(req, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// apiError разбирает тело ошибки шлюза и маппит его на sentinel-ошибки клиента.
// Детали ошибки логируются, наружу уходит только тип.
func (c *Client) apiError(req *http.Request, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil {
		c.log.Error("paymentgw: %s %s - unexpected status %d: %s", req.Method, req.URL.Path, resp.StatusCode, string(body))
		return fmt.Errorf("%w: unexpected status code %d", ErrGateway, resp.StatusCode)
	}

	c.log.Error("paymentgw: %s %s - status=%d type=%s code=%s message=%s",
		req.Method, req.URL.Path, resp.StatusCode, apiErr.Error.Type, apiErr.Error.Code, apiErr.Error.Message)

	switch {
	case apiErr.Error.Code == "card_declined":
		return ErrCardDeclined
	case resp.StatusCode == http.StatusNotFound && strings.HasPrefix(req.URL.Path, c.pathPrefix("/accounts/")):
		return ErrAccountNotFound
	case resp.StatusCode == http.StatusNotFound && strings.HasPrefix(req.URL.Path, c.pathPrefix("/payment_intents/")):
		return ErrPaymentIntentNotFound
	default:
		return fmt.Errorf("%w: %s", ErrGateway, apiErr.Error.Type)
	}
}

func (c *Client) pathPrefix(path string) string {
	if u, err := url.Parse(c.baseURL); err == nil {
		return u.Path + path
	}
	return path
}
